package domain

import (
	"strings"
	"time"

	"openslots/internal/core/normalize"
	"openslots/internal/core/timewindow"
)

// DiscoverInput is the discovery search request
// Window names parse case-insensitively after bind; unknown names are
// rejected by the service before any cache or data access
type DiscoverInput struct {
	ServiceCategory string `json:"serviceCategory" validate:"required,oneof=MASSAGE ACUPUNCTURE NAILS HAIR FACIALS_AND_SKIN LASHES_AND_BROWS" example:"MASSAGE"` //nolint:lll
	City            string `json:"city"            validate:"required,min=2,max=120" example:"New York"`
	ZipCode         string `json:"zipCode,omitempty"     validate:"omitempty,numeric,min=3,max=10" example:"10001"`
	TimeWindow      string `json:"timeWindow,omitempty"  validate:"omitempty,max=32" example:"Morning"`
	ServiceType     string `json:"serviceType,omitempty" validate:"omitempty,max=200" example:"Deep Tissue Massage"`
}

// CacheKey derives the deterministic cache key for this query.
// Identical logical queries always map to the same key: the city and
// service type segments are normalized, the window uses its canonical name
func (in DiscoverInput) CacheKey() string {
	w, _ := timewindow.ParseWindow(in.TimeWindow)
	return strings.Join([]string{
		"discovery",
		normalize.Fold(in.City),
		in.ServiceCategory,
		w.Key(),
		normalize.KeySegment(in.ServiceType),
	}, ":")
}

// Slot is one bookable opening in a discovery response
type Slot struct {
	ID                      string    `json:"id"          example:"7f1c9a4e-0b3d-4f3e-9a1d-2c5e8b6f0a11"`
	ServiceID               string    `json:"serviceId"   example:"b3a2c1d0-1111-4222-8333-944445555666"`
	ServiceName             string    `json:"serviceName" example:"Deep Tissue Massage"`
	DurationMin             int       `json:"durationMin" example:"60"`
	Category                string    `json:"category"    example:"MASSAGE"`
	StartsAt                time.Time `json:"startsAt"    example:"2025-06-01T14:00:00Z"`
	EndsAt                  time.Time `json:"endsAt"      example:"2025-06-01T15:00:00Z"`
	BasePriceCents          int64     `json:"basePriceCents"          example:"12000"`
	MaxDiscount             float64   `json:"maxDiscount"             example:"0.25"`
	MaxDiscountedPriceCents int64     `json:"maxDiscountedPriceCents" example:"9000"`
}

// Provider is one provider aggregate in a discovery response
type Provider struct {
	ID               string  `json:"id"     example:"0a1b2c3d-4e5f-4677-8899-aabbccddeeff"`
	Name             string  `json:"name"   example:"Hands of Stone Massage"`
	Rating           float64 `json:"rating" example:"4.85"`
	City             string  `json:"city"   example:"New York"`
	Address          string  `json:"address" example:"350 5th Ave, New York, NY"`
	BookingURL       string  `json:"bookingUrl,omitempty" example:"https://book.example.com/hos"`
	DistanceKm       float64 `json:"distanceKm"       example:"4"`
	LowestPriceCents int64   `json:"lowestPriceCents" example:"9000"`
	Slots            []Slot  `json:"slots"`
}

// DiscoverResponse is the full discovery payload. An empty provider list is
// a valid answer, not an error
type DiscoverResponse struct {
	Providers []Provider `json:"providers"`
}

// ServiceTypesInput asks for the distinct service menu under a filter
type ServiceTypesInput struct {
	ServiceCategory string `json:"serviceCategory" validate:"required,oneof=MASSAGE ACUPUNCTURE NAILS HAIR FACIALS_AND_SKIN LASHES_AND_BROWS" example:"MASSAGE"` //nolint:lll
	City            string `json:"city"           validate:"required,min=2,max=120" example:"New York"`
	TimeWindow      string `json:"timeWindow,omitempty" validate:"omitempty,max=32" example:"Afternoon"`
}

// CacheKey derives the deterministic cache key for this aggregate query
func (in ServiceTypesInput) CacheKey() string {
	w, _ := timewindow.ParseWindow(in.TimeWindow)
	return strings.Join([]string{
		"service-types",
		normalize.Fold(in.City),
		in.ServiceCategory,
		w.Key(),
	}, ":")
}

// ServiceType is one row of the service menu
type ServiceType struct {
	Name        string `json:"name"        example:"Deep Tissue Massage"`
	DurationMin int    `json:"durationMin" example:"60"`
	SlotCount   int64  `json:"slotCount"   example:"12"`
}

// ServiceTypesResponse lists the menu sorted by name ascending
type ServiceTypesResponse struct {
	ServiceTypes []ServiceType `json:"serviceTypes"`
}

// ClearCacheInput selects which cached namespace to invalidate.
// Empty prefix clears both
type ClearCacheInput struct {
	Prefix string `json:"prefix,omitempty" validate:"omitempty,oneof=discovery service-types" example:"discovery"`
}

// ClearCacheResponse reports how many entries were invalidated across tiers
type ClearCacheResponse struct {
	Deleted int `json:"deleted" example:"14"`
}
