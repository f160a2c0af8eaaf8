// Package domain holds DTOs and ports for search-demand analytics
package domain

import "time"

// SearchEvent is one discovery search, recorded fire-and-forget.
// City and service type arrive already normalized to their cache-key form
type SearchEvent struct {
	ID          string
	At          time.Time
	City        string
	Category    string
	Window      string
	ServiceType string
	ResultCount int
	CacheHit    bool
}

// TopInput selects the demand leaderboard window
type TopInput struct {
	Days  int `json:"days,omitempty"  validate:"omitempty,min=1,max=90" example:"7"`
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=100" example:"20"`
}

// TopRow is one (city, category) demand aggregate
type TopRow struct {
	City       string `json:"city"       example:"new york"`
	Category   string `json:"category"   example:"MASSAGE"`
	Searches   uint64 `json:"searches"   example:"412"`
	ZeroResult uint64 `json:"zeroResult" example:"17"`
}

// TopResponse is the demand leaderboard payload
type TopResponse struct {
	Rows []TopRow `json:"rows"`
}
