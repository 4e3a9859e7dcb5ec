package models

import "time"

// Coords is a map position
type Coords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Venue describes where the reception takes place
type Venue struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	LocationLink string  `json:"locationLink"`
	Coordinates  *Coords `json:"coordinates,omitempty"`
}

// ContactPerson is who guests can call on the day
type ContactPerson struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// WeddingInfo holds the general event information
type WeddingInfo struct {
	CoupleName    string        `json:"coupleName"`
	Date          string        `json:"date"`
	Venue         Venue         `json:"venue"`
	DressCode     string        `json:"dresscode"`
	ContactPerson ContactPerson `json:"contactPerson"`
}

// DinnerMenu is attached to the dinner activity
type DinnerMenu struct {
	Starter string `json:"starter"`
	Main    string `json:"main"`
	Dessert string `json:"dessert"`
}

// Activity is one entry of the day's schedule
type Activity struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Start          time.Time   `json:"startTime"`
	End            time.Time   `json:"endTime"`
	Location       string      `json:"location"`
	Description    string      `json:"description"`
	Icon           string      `json:"icon"`
	Color          string      `json:"color"`
	AdditionalInfo string      `json:"additionalInfo,omitempty"`
	Menu           *DinnerMenu `json:"menu,omitempty"`
}

// BeverageCategory groups the drinks menu
type BeverageCategory string

const (
	BeverageAlcoholic    BeverageCategory = "alcoholic"
	BeverageCocktails    BeverageCategory = "cocktails"
	BeverageNonAlcoholic BeverageCategory = "nonalcoholic"
)

// Beverage is one entry of the drinks menu
type Beverage struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    BeverageCategory `json:"category"`
	Icon        string           `json:"icon"`
}

// Clone returns a copy that shares no pointers with i
func (i WeddingInfo) Clone() WeddingInfo {
	out := i
	if i.Venue.Coordinates != nil {
		c := *i.Venue.Coordinates
		out.Venue.Coordinates = &c
	}
	return out
}

// Clone returns a copy that shares no pointers with a
func (a Activity) Clone() Activity {
	out := a
	if a.Menu != nil {
		m := *a.Menu
		out.Menu = &m
	}
	return out
}
