package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wedding-companion/internal/app"
	"wedding-companion/internal/badge"
	"wedding-companion/internal/directory"
	"wedding-companion/internal/models"
	"wedding-companion/internal/rsvp"
	"wedding-companion/internal/verifier"
	"wedding-companion/internal/wedding"
)

const requestTimeout = 15 * time.Second

type cli struct {
	app     *app.App
	scanner *bufio.Scanner
	out     io.Writer
}

func newCLI(a *app.App, in io.Reader, out io.Writer) *cli {
	return &cli{
		app:     a,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (c *cli) run(ctx context.Context) {
	for ctx.Err() == nil {
		c.printMenu()

		command, ok := c.prompt("\nEnter command (0-10): ")
		if !ok {
			return
		}

		switch command {
		case "1":
			c.login(ctx)
		case "2":
			c.lookup(ctx)
		case "3":
			c.profile()
		case "4":
			c.submitRSVP(ctx)
		case "5":
			c.schedule(ctx)
		case "6":
			c.venue(ctx)
		case "7":
			c.beverages()
		case "8":
			c.showQR()
		case "9":
			c.updatePhone(ctx)
		case "10":
			c.app.Auth.Logout(ctx)
			fmt.Fprintln(c.out, "Vous êtes déconnecté(e).")
		case "0":
			return
		default:
			fmt.Fprintln(c.out, "Invalid command. Please try again.")
		}
	}
}

func (c *cli) printMenu() {
	fmt.Fprintln(c.out, "\nCommands:")
	fmt.Fprintln(c.out, "  1. Enter invitation code")
	fmt.Fprintln(c.out, "  2. Find my invitation by email")
	fmt.Fprintln(c.out, "  3. My invitation")
	fmt.Fprintln(c.out, "  4. RSVP")
	fmt.Fprintln(c.out, "  5. Schedule")
	fmt.Fprintln(c.out, "  6. Venue & info")
	fmt.Fprintln(c.out, "  7. Beverages")
	fmt.Fprintln(c.out, "  8. Show my QR code")
	fmt.Fprintln(c.out, "  9. Update my phone number")
	fmt.Fprintln(c.out, " 10. Log out")
	fmt.Fprintln(c.out, "  0. Exit")
}

func (c *cli) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

func (c *cli) login(ctx context.Context) {
	code, ok := c.prompt("Invitation code: ")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	fmt.Fprintln(c.out, "Vérification de votre invitation...")
	if !c.app.Auth.Login(ctx, code) {
		err := c.app.Auth.LastError()
		switch {
		case errors.Is(err, verifier.ErrInvalidCode):
			fmt.Fprintln(c.out, "❌ Invitation introuvable, veuillez réessayer.")
		default:
			fmt.Fprintf(c.out, "❌ Service indisponible, veuillez réessayer (%v).\n", err)
		}
		return
	}

	guest, _ := c.app.Auth.CurrentGuest()
	fmt.Fprintf(c.out, "✅ Bienvenue %s !\n", guest.DisplayName())
	if err := c.app.Auth.LastError(); err != nil {
		fmt.Fprintln(c.out, "⚠️  Votre session ne sera pas conservée après redémarrage.")
	}
	if !guest.HasCompletedRSVP {
		fmt.Fprintln(c.out, "Pensez à confirmer votre présence (commande 4).")
	}
}

func (c *cli) lookup(ctx context.Context) {
	email, ok := c.prompt("Email: ")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	guest, err := c.app.API.GetGuestByEmail(ctx, email)
	if err != nil {
		fmt.Fprintln(c.out, "Aucune invitation trouvée pour cet email. Scannez votre QR code ou contactez les mariés.")
		return
	}
	fmt.Fprintf(c.out, "Invitation trouvée : %s (table %s). Utilisez votre code d'invitation pour vous connecter.\n",
		guest.DisplayName(), guest.TableNumber)
}

func (c *cli) currentGuest() (models.GuestRecord, bool) {
	guest, ok := c.app.Auth.CurrentGuest()
	if !ok {
		fmt.Fprintln(c.out, "Veuillez d'abord saisir votre code d'invitation (commande 1).")
	}
	return guest, ok
}

func (c *cli) profile() {
	guest, ok := c.currentGuest()
	if !ok {
		return
	}

	fmt.Fprintf(c.out, "\n👤 %s\n", guest.DisplayName())
	fmt.Fprintln(c.out, strings.Repeat("-", 60))
	for _, g := range guest.Invitees() {
		fmt.Fprintf(c.out, "Name: %s\n", g.Name)
		fmt.Fprintf(c.out, "Email: %s\n", g.Email)
		fmt.Fprintf(c.out, "Phone: %s\n", g.Phone)
		fmt.Fprintf(c.out, "RSVP: %s\n", g.RSVPStatus)
		if len(g.DietaryRestrictions) > 0 {
			fmt.Fprintf(c.out, "Dietary: %s\n", strings.Join(g.DietaryRestrictions, ", "))
		}
		fmt.Fprintln(c.out, strings.Repeat("-", 60))
	}
	fmt.Fprintf(c.out, "Table: %s\n", guest.TableNumber)
	fmt.Fprintf(c.out, "Guests: %d\n", guest.NumberOfGuests)
	fmt.Fprintf(c.out, "Status: %s\n", guest.ConfirmationStatus.Label())
	fmt.Fprintf(c.out, "Invitation code: %s\n", guest.InvitationCode)
	if !guest.RegistrationDate.IsZero() {
		fmt.Fprintf(c.out, "Registered: %s\n", guest.RegistrationDate)
	}
}

func (c *cli) submitRSVP(ctx context.Context) {
	guest, ok := c.currentGuest()
	if !ok {
		return
	}

	primary, ok := c.askResponse(guest.PrimaryGuest)
	if !ok {
		return
	}
	sub := rsvp.Submission{RecordID: guest.ID, Primary: primary}

	if guest.SecondaryGuest != nil {
		secondary, ok := c.askResponse(*guest.SecondaryGuest)
		if !ok {
			return
		}
		sub.Secondary = &secondary
	}

	updated, err := c.app.RSVP.Submit(ctx, sub)
	if err != nil {
		fmt.Fprintf(c.out, "❌ Une erreur est survenue : %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "✅ RSVP enregistré : %s. Merci pour votre réponse !\n", updated.ConfirmationStatus.Label())
}

func (c *cli) askResponse(g models.Guest) (rsvp.Response, bool) {
	for {
		answer, ok := c.prompt(fmt.Sprintf("%s sera présent(e) ? (o/n): ", g.Name))
		if !ok {
			return rsvp.Response{}, false
		}
		switch strings.ToLower(answer) {
		case "n", "non":
			return rsvp.Response{Status: models.RSVPDeclined}, true
		case "o", "oui":
			restrictions, ok := c.askRestrictions(g)
			if !ok {
				return rsvp.Response{}, false
			}
			return rsvp.Response{Status: models.RSVPConfirmed, DietaryRestrictions: restrictions}, true
		}
		fmt.Fprintln(c.out, "Veuillez répondre par o ou n.")
	}
}

func (c *cli) askRestrictions(g models.Guest) ([]string, bool) {
	fmt.Fprintln(c.out, "Restrictions alimentaires :")
	for i, opt := range wedding.DietaryOptions {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, opt)
	}
	current := strings.Join(g.DietaryRestrictions, ", ")
	if current == "" {
		current = "aucune"
	}
	answer, ok := c.prompt(fmt.Sprintf("Numéros séparés par des virgules (actuel : %s, vide = aucune): ", current))
	if !ok {
		return nil, false
	}
	return parseChoices(answer, wedding.DietaryOptions), true
}

// parseChoices maps "1, 3" to the matching options, ignoring anything out of range
func parseChoices(answer string, options []string) []string {
	var out []string
	for _, field := range strings.Split(answer, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 || n > len(options) {
			continue
		}
		out = append(out, options[n-1])
	}
	return out
}

func (c *cli) schedule(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	activities, err := c.app.API.GetActivities(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "❌ Programme indisponible : %v\n", err)
		return
	}

	now := time.Now()
	if cur, ok := c.app.Catalog.Current(now); ok {
		fmt.Fprintf(c.out, "\n🔔 En ce moment : %s (%s)\n", cur.Title, cur.Location)
	} else if next, ok := c.app.Catalog.Next(now); ok {
		fmt.Fprintf(c.out, "\n⏭  Prochaine étape : %s à %s\n", next.Title, next.Start.Format("15:04"))
	}

	fmt.Fprintf(c.out, "\n📅 Programme (%d étapes):\n", len(activities))
	fmt.Fprintln(c.out, strings.Repeat("-", 60))
	for i, a := range activities {
		fmt.Fprintf(c.out, "%d. %s - %s  %s (%s)\n", i+1, a.Start.Format("15:04"), a.End.Format("15:04"), a.Title, a.Location)
	}

	choice, ok := c.prompt("Détail d'une étape (numéro, vide = retour): ")
	if !ok || choice == "" {
		return
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(activities) {
		fmt.Fprintln(c.out, "Étape inconnue.")
		return
	}

	a, err := c.app.API.GetActivity(ctx, activities[n-1].ID)
	if err != nil {
		fmt.Fprintf(c.out, "❌ Étape indisponible : %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "\n%s\n", a.Title)
	fmt.Fprintln(c.out, strings.Repeat("-", 60))
	fmt.Fprintf(c.out, "%s - %s, %s\n", a.Start.Format("15:04"), a.End.Format("15:04"), a.Location)
	fmt.Fprintf(c.out, "%s\n", a.Description)
	if a.AdditionalInfo != "" {
		fmt.Fprintf(c.out, "ℹ️  %s\n", a.AdditionalInfo)
	}
	if a.Menu != nil {
		fmt.Fprintf(c.out, "Entrée : %s\nPlat : %s\nDessert : %s\n", a.Menu.Starter, a.Menu.Main, a.Menu.Dessert)
	}
}

func (c *cli) venue(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	info, err := c.app.API.GetWeddingInfo(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "❌ Informations indisponibles : %v\n", err)
		return
	}

	fmt.Fprintf(c.out, "\n💒 %s, %s\n", info.CoupleName, info.Date)
	fmt.Fprintln(c.out, strings.Repeat("-", 60))
	fmt.Fprintf(c.out, "📍 %s\n   %s\n", info.Venue.Name, info.Venue.Address)
	if info.Venue.LocationLink != "" {
		fmt.Fprintf(c.out, "   Ouvrir dans Plans : %s\n", info.Venue.LocationLink)
	}
	if info.Venue.Coordinates != nil {
		fmt.Fprintf(c.out, "   %.4f, %.4f\n", info.Venue.Coordinates.Latitude, info.Venue.Coordinates.Longitude)
	}
	if info.DressCode != "" {
		fmt.Fprintf(c.out, "👔 Dress code : %s\n", info.DressCode)
	}
	contact := info.ContactPerson
	if contact.Name != "" {
		fmt.Fprintf(c.out, "📞 Contact : %s, %s", contact.Name, contact.Phone)
		if contact.Email != "" {
			fmt.Fprintf(c.out, ", %s", contact.Email)
		}
		fmt.Fprintln(c.out)
	}
}

func (c *cli) updatePhone(ctx context.Context) {
	guest, ok := c.currentGuest()
	if !ok {
		return
	}

	phone, ok := c.prompt(fmt.Sprintf("Nouveau numéro (actuel : %s): ", guest.PrimaryGuest.Phone))
	if !ok || phone == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	primary := guest.PrimaryGuest
	primary.Phone = phone
	updated, err := c.app.API.UpdateGuest(ctx, guest.PrimaryGuest.Email, directory.Patch{PrimaryGuest: &primary})
	if err != nil {
		fmt.Fprintf(c.out, "❌ Une erreur est survenue : %v\n", err)
		return
	}
	c.app.Auth.Refresh(ctx, updated)
	fmt.Fprintf(c.out, "✅ Numéro mis à jour : %s\n", updated.PrimaryGuest.Phone)
}

func (c *cli) beverages() {
	choice, ok := c.prompt("Catégorie (1. Toutes 2. Alcoolisées 3. Cocktails 4. Sans alcool): ")
	if !ok {
		return
	}

	var category models.BeverageCategory
	switch choice {
	case "2":
		category = models.BeverageAlcoholic
	case "3":
		category = models.BeverageCocktails
	case "4":
		category = models.BeverageNonAlcoholic
	}

	fmt.Fprintln(c.out, "\n🥂 Boissons")
	fmt.Fprintln(c.out, strings.Repeat("-", 60))
	for _, b := range c.app.Catalog.Beverages(category) {
		fmt.Fprintf(c.out, "%s\n  %s\n", b.Name, b.Description)
	}
}

func (c *cli) showQR() {
	guest, ok := c.currentGuest()
	if !ok {
		return
	}

	block, err := badge.Terminal(guest.InvitationCode)
	if err != nil {
		fmt.Fprintf(c.out, "QR Code: %s\n", guest.InvitationCode)
		return
	}
	fmt.Fprintln(c.out, "\n"+block)
	fmt.Fprintf(c.out, "Code : %s\n", guest.InvitationCode)

	save, ok := c.prompt("Enregistrer en PNG ? Chemin (vide = non): ")
	if !ok || save == "" {
		return
	}
	if err := badge.WritePNG(guest.InvitationCode, filepath.Clean(save), badge.DefaultSize); err != nil {
		fmt.Fprintf(c.out, "❌ %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "QR code enregistré dans %s\n", save)
}
