package wedding

import (
	"sort"
	"time"

	"wedding-companion/internal/models"
)

// Catalog serves the read-only wedding content: information, schedule and drinks
type Catalog struct {
	info       models.WeddingInfo
	activities []models.Activity
	beverages  []models.Beverage
}

// NewCatalog creates a catalog. Activities are kept ordered by start time.
func NewCatalog(info models.WeddingInfo, activities []models.Activity, beverages []models.Beverage) *Catalog {
	sorted := make([]models.Activity, len(activities))
	for i, a := range activities {
		sorted[i] = a.Clone()
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	drinks := make([]models.Beverage, len(beverages))
	copy(drinks, beverages)

	return &Catalog{
		info:       info.Clone(),
		activities: sorted,
		beverages:  drinks,
	}
}

// NewSeedCatalog creates a catalog from the built-in demo content
func NewSeedCatalog() *Catalog {
	return NewCatalog(SeedInfo(), SeedActivities(), SeedBeverages())
}

// Info returns the general wedding information
func (c *Catalog) Info() models.WeddingInfo {
	return c.info.Clone()
}

// Activities returns the schedule ordered by start time
func (c *Catalog) Activities() []models.Activity {
	out := make([]models.Activity, len(c.activities))
	for i, a := range c.activities {
		out[i] = a.Clone()
	}
	return out
}

// Activity looks up a schedule entry by id
func (c *Catalog) Activity(id string) (models.Activity, bool) {
	for _, a := range c.activities {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return models.Activity{}, false
}

// Current returns the activity running at now, if any
func (c *Catalog) Current(now time.Time) (models.Activity, bool) {
	for _, a := range c.activities {
		if !now.Before(a.Start) && now.Before(a.End) {
			return a.Clone(), true
		}
	}
	return models.Activity{}, false
}

// Next returns the first activity starting after now
func (c *Catalog) Next(now time.Time) (models.Activity, bool) {
	for _, a := range c.activities {
		if a.Start.After(now) {
			return a.Clone(), true
		}
	}
	return models.Activity{}, false
}

// Beverages returns the drinks of a category. An empty category returns the whole menu.
func (c *Catalog) Beverages(category models.BeverageCategory) []models.Beverage {
	var out []models.Beverage
	for _, b := range c.beverages {
		if category == "" || b.Category == category {
			out = append(out, b)
		}
	}
	return out
}
