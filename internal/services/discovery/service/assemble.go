package service

import (
	"math"
	"sort"

	"openslots/internal/core/geo"
	"openslots/internal/core/pricing"
	"openslots/internal/core/timewindow"
	"openslots/internal/services/discovery/domain"
	"openslots/internal/services/discovery/repo"
)

// assemble folds the denormalized join rows into sorted provider aggregates.
// It filters, it never errors: malformed rows are dropped, providers left
// without slots are dropped, an empty result is a valid result
func assemble(rows []repo.SlotRow, window timewindow.Window, est geo.Estimator) []domain.Provider {
	order := make([]string, 0, 8)
	byID := make(map[string]*domain.Provider, 8)

	for _, r := range rows {
		if !usableRow(r) {
			continue
		}
		// the window resolves against the provider's own city, not the raw
		// request string: spellings may differ even when both name one place
		if hr, ok := timewindow.Resolve(window, r.City); ok && !hr.Matches(r.StartsAt) {
			continue
		}

		p, seen := byID[r.ProviderID]
		if !seen {
			// first row wins for provider metadata
			p = &domain.Provider{
				ID:      r.ProviderID,
				Name:    r.ProviderName,
				Rating:  r.Rating,
				City:    r.City,
				Address: r.Address,
			}
			if r.BookingURL != nil {
				p.BookingURL = *r.BookingURL
			}
			byID[r.ProviderID] = p
			order = append(order, r.ProviderID)
		}

		p.Slots = append(p.Slots, domain.Slot{
			ID:                      r.SlotID,
			ServiceID:               r.ServiceID,
			ServiceName:             *r.ServiceName,
			DurationMin:             int(*r.DurationMin),
			Category:                r.Category,
			StartsAt:                r.StartsAt.UTC(),
			EndsAt:                  r.EndsAt.UTC(),
			BasePriceCents:          *r.BasePriceCents,
			MaxDiscount:             *r.MaxDiscount,
			MaxDiscountedPriceCents: pricing.MaxDiscounted(*r.BasePriceCents, *r.MaxDiscount),
		})
	}

	out := make([]domain.Provider, 0, len(order))
	for _, id := range order {
		p := byID[id]
		if len(p.Slots) == 0 {
			continue
		}
		sortSlots(p.Slots)
		p.LowestPriceCents = p.Slots[0].MaxDiscountedPriceCents
		p.DistanceKm = est.EstimateKm(p.ID)
		out = append(out, *p)
	}
	sortProviders(out)
	return out
}

// discountTol absorbs float noise from upstream writers; anything further
// outside [0,1] is bad data, not rounding
const discountTol = 1e-9

// usableRow rejects rows that would leak partial inventory data: null
// service fields, null or out-of-range pricing, nonsense durations or timestamps
func usableRow(r repo.SlotRow) bool {
	if r.ServiceName == nil || *r.ServiceName == "" {
		return false
	}
	if r.DurationMin == nil || *r.DurationMin <= 0 {
		return false
	}
	if r.BasePriceCents == nil || r.MaxDiscount == nil {
		return false
	}
	if d := *r.MaxDiscount; math.IsNaN(d) || d < -discountTol || d > 1+discountTol {
		return false
	}
	if r.StartsAt.IsZero() || r.EndsAt.IsZero() || !r.EndsAt.After(r.StartsAt) {
		return false
	}
	return true
}

// sortSlots orders a provider's slots by discounted price, start time.
// Both keys are already computed; the sort never recomputes anything
func sortSlots(slots []domain.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.MaxDiscountedPriceCents != b.MaxDiscountedPriceCents {
			return a.MaxDiscountedPriceCents < b.MaxDiscountedPriceCents
		}
		return a.StartsAt.Before(b.StartsAt)
	})
}

// sortProviders orders providers by lowest price, then rating descending,
// then distance. Ties beyond that keep first-seen order (stable sort over
// a deterministic base ordering from the repo)
func sortProviders(ps []domain.Provider) {
	sort.SliceStable(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		if a.LowestPriceCents != b.LowestPriceCents {
			return a.LowestPriceCents < b.LowestPriceCents
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.DistanceKm < b.DistanceKm
	})
}
