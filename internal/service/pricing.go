package service

import (
	"math"

	"yulebook/internal/config"
	"yulebook/internal/models"
)

type SurchargeLine struct {
	ItemName string  `json:"item_name"`
	Amount   float64 `json:"amount"`
}

type PricingBreakdown struct {
	Subtotal   float64         `json:"subtotal"`
	Tip        float64         `json:"tip"`
	Total      float64         `json:"total"`
	Surcharges []SurchargeLine `json:"surcharges"`
}

// ComputeTotal prices a set of guest selections against the catalog. Each
// guest contributes a deposit keyed by course option plus the surcharges of
// every selected dish. The tip is applied once over the aggregate subtotal so
// per-line rounding can never drift the total by a penny.
//
// Selections referencing ids absent from the catalog contribute zero
// surcharge; existence checks belong to the caller, not the price function.
func ComputeTotal(guests []models.GuestSelection, catalog map[int64]models.MenuItem, pricing config.PricingConfig) PricingBreakdown {
	var subtotal float64
	surcharges := []SurchargeLine{}

	for _, guest := range guests {
		if guest.CourseOption == models.CourseOptionTwo {
			subtotal += pricing.TwoCourseDeposit
		} else {
			subtotal += pricing.ThreeCourseDeposit
		}

		for _, id := range guest.Orders.ItemIDs() {
			item, ok := catalog[id]
			if !ok || item.Surcharge == 0 {
				continue
			}
			subtotal += item.Surcharge
			surcharges = append(surcharges, SurchargeLine{ItemName: item.Name, Amount: item.Surcharge})
		}
	}

	subtotal = round2(subtotal)
	tip := round2(subtotal * pricing.TipRate)
	total := round2(subtotal + tip)

	return PricingBreakdown{
		Subtotal:   subtotal,
		Tip:        tip,
		Total:      total,
		Surcharges: surcharges,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
