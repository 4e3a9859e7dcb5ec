package wedding

import (
	"time"

	"wedding-companion/internal/models"
)

// DietaryOptions are the restrictions offered on the RSVP form
var DietaryOptions = []string{
	"Végétarien",
	"Vegan",
	"Sans gluten",
	"Sans lactose",
	"Sans fruits de mer",
	"Sans noix",
}

var paris = mustLoadLocation("Europe/Paris")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("CEST", 2*60*60)
	}
	return loc
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.June, day, hour, minute, 0, 0, paris)
}

// SeedGuests returns the demo invitations loaded at startup
func SeedGuests() []models.GuestRecord {
	return []models.GuestRecord{
		{
			ID:             "1",
			InvitationType: models.InvitationCouple,
			PrimaryGuest: models.Guest{
				Name:                "Jean Dupont",
				Email:               "jean.dupont@email.com",
				Phone:               "+33 6 12 34 56 78",
				DietaryRestrictions: []string{"Végétarien"},
				RSVPStatus:          models.RSVPConfirmed,
			},
			SecondaryGuest: &models.Guest{
				Name:                "Marie Dupont",
				Email:               "marie.dupont@email.com",
				Phone:               "+33 6 12 34 56 79",
				DietaryRestrictions: []string{"Sans gluten"},
				RSVPStatus:          models.RSVPConfirmed,
			},
			TableNumber:        "1",
			NumberOfGuests:     2,
			ConfirmationStatus: models.ConfirmationConfirmed,
			InvitationCode:     "JEAN2025",
			HasCompletedRSVP:   true,
			RegistrationDate:   models.NewDate(2025, time.May, 20),
		},
		{
			ID:             "2",
			InvitationType: models.InvitationSingle,
			PrimaryGuest: models.Guest{
				Name:                "Sophie Martin",
				Email:               "sophie.martin@email.com",
				Phone:               "+33 6 23 45 67 89",
				DietaryRestrictions: []string{"Vegan"},
				RSVPStatus:          models.RSVPConfirmed,
			},
			TableNumber:        "2",
			NumberOfGuests:     1,
			ConfirmationStatus: models.ConfirmationConfirmed,
			InvitationCode:     "SOPHIE2025",
			HasCompletedRSVP:   true,
			RegistrationDate:   models.NewDate(2025, time.May, 18),
		},
		{
			ID:             "3",
			InvitationType: models.InvitationCouple,
			PrimaryGuest: models.Guest{
				Name:                "Pierre Dubois",
				Email:               "pierre.dubois@email.com",
				Phone:               "+33 6 34 56 78 90",
				DietaryRestrictions: []string{},
				RSVPStatus:          models.RSVPPending,
			},
			SecondaryGuest: &models.Guest{
				Name:                "Claire Dubois",
				Email:               "claire.dubois@email.com",
				Phone:               "+33 6 34 56 78 91",
				DietaryRestrictions: []string{"Sans lactose"},
				RSVPStatus:          models.RSVPPending,
			},
			TableNumber:        "3",
			NumberOfGuests:     2,
			ConfirmationStatus: models.ConfirmationPending,
			InvitationCode:     "PIERRE2025",
			RegistrationDate:   models.NewDate(2025, time.May, 22),
		},
		{
			ID:             "4",
			InvitationType: models.InvitationSingle,
			PrimaryGuest: models.Guest{
				Name:                "Lucas Bernard",
				Email:               "lucas.bernard@email.com",
				Phone:               "+33 6 45 67 89 01",
				DietaryRestrictions: []string{"Sans gluten", "Sans fruits de mer"},
				RSVPStatus:          models.RSVPDeclined,
			},
			TableNumber:        "4",
			NumberOfGuests:     1,
			ConfirmationStatus: models.ConfirmationCancelled,
			InvitationCode:     "LUCAS2025",
			HasCompletedRSVP:   true,
			RegistrationDate:   models.NewDate(2025, time.May, 19),
		},
	}
}

// SeedInfo returns the general wedding information
func SeedInfo() models.WeddingInfo {
	return models.WeddingInfo{
		CoupleName: "Sophie & Thomas",
		Date:       "15 Juin 2025",
		Venue: models.Venue{
			Name:         "Château des Fleurs",
			Address:      "123 Avenue des Roses, 75000 Paris",
			LocationLink: "https://maps.google.com",
			Coordinates:  &models.Coords{Latitude: 48.8566, Longitude: 2.3522},
		},
		DressCode: "Tenue formelle - Couleurs claires",
		ContactPerson: models.ContactPerson{
			Name:  "Marie Martin",
			Phone: "+33 6 98 76 54 32",
			Email: "marie.martin@email.com",
		},
	}
}

// SeedActivities returns the programme of the day
func SeedActivities() []models.Activity {
	return []models.Activity{
		{
			ID:             "ceremony",
			Title:          "Cérémonie Civile",
			Start:          at(15, 14, 0),
			End:            at(15, 15, 0),
			Location:       "Mairie du 8ème arrondissement",
			Description:    "Cérémonie officielle à la mairie",
			Icon:           "document-text",
			Color:          "#92400e",
			AdditionalInfo: "Merci d'arriver 15 minutes en avance",
		},
		{
			ID:             "church",
			Title:          "Cérémonie Religieuse",
			Start:          at(15, 15, 30),
			End:            at(15, 16, 30),
			Location:       "Église Saint-Honoré",
			Description:    "Cérémonie religieuse traditionnelle",
			Icon:           "heart",
			Color:          "#b45309",
			AdditionalInfo: "Photos autorisées pendant la cérémonie",
		},
		{
			ID:             "cocktail",
			Title:          "Cocktail",
			Start:          at(15, 17, 0),
			End:            at(15, 19, 0),
			Location:       "Jardins du Château",
			Description:    "Cocktail et photos dans les jardins",
			Icon:           "wine",
			Color:          "#d97706",
			AdditionalInfo: "Bar à champagne et animations",
		},
		{
			ID:          "dinner",
			Title:       "Dîner",
			Start:       at(15, 19, 30),
			End:         at(15, 23, 0),
			Location:    "Grande Salle du Château",
			Description: "Dîner de réception",
			Icon:        "restaurant",
			Color:       "#92400e",
			Menu: &models.DinnerMenu{
				Starter: "Foie gras maison et son chutney de figues",
				Main:    "Filet de bœuf Wellington, légumes de saison",
				Dessert: "Pièce montée traditionnelle",
			},
		},
		{
			ID:             "party",
			Title:          "Soirée Dansante",
			Start:          at(15, 23, 0),
			End:            at(16, 4, 0),
			Location:       "Salle de Bal du Château",
			Description:    "Soirée dansante avec DJ",
			Icon:           "musical-notes",
			Color:          "#b45309",
			AdditionalInfo: "Open bar et animations surprises",
		},
	}
}

// SeedBeverages returns the drinks menu
func SeedBeverages() []models.Beverage {
	return []models.Beverage{
		{ID: "champagne", Name: "Champagne Moët & Chandon", Description: "Champagne brut impérial, notes fruitées et légères", Category: models.BeverageAlcoholic, Icon: "wine-outline"},
		{ID: "wine1", Name: "Vin blanc - Chablis 2022", Description: "Frais et minéral, parfait pour l'apéritif", Category: models.BeverageAlcoholic, Icon: "wine-outline"},
		{ID: "wine2", Name: "Vin rouge - Saint-Émilion 2018", Description: "Rond et fruité, accompagne parfaitement les plats", Category: models.BeverageAlcoholic, Icon: "wine-outline"},
		{ID: "cocktail1", Name: "Cocktail Signature - Amour Passion", Description: "Vodka, fruits de la passion et jus de cranberry", Category: models.BeverageCocktails, Icon: "beer-outline"},
		{ID: "cocktail2", Name: "Spritz Royal", Description: "Aperol, prosecco et orange, une touche d'élégance", Category: models.BeverageCocktails, Icon: "beer-outline"},
		{ID: "soft1", Name: "Eaux minérales", Description: "Plate ou pétillante, à volonté", Category: models.BeverageNonAlcoholic, Icon: "water-outline"},
		{ID: "soft2", Name: "Jus de fruits frais", Description: "Orange, pomme, ananas ou multi-fruits", Category: models.BeverageNonAlcoholic, Icon: "water-outline"},
		{ID: "soft3", Name: "Mocktails", Description: "Virgin Mojito et Fruits Rouges Pétillant", Category: models.BeverageNonAlcoholic, Icon: "water-outline"},
	}
}
