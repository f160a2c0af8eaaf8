// Package repo provides the read-only postgres access for discovery.
// The engine never writes inventory; providers, services and slots are
// owned by the upstream marketplace systems
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"openslots/internal/core/timewindow"
	"openslots/internal/modkit/repokit"
)

// Repo is the persistence surface the discovery service needs
type Repo interface {
	OpenSlots(ctx context.Context, f OpenSlotsFilter) ([]SlotRow, error)
	ServiceTypes(ctx context.Context, f ServiceTypesFilter) ([]ServiceTypeRow, error)
}

// OpenSlotsFilter narrows the denormalized slot join.
// City matching is case-insensitive at the data layer; the time window is
// deliberately NOT part of this filter, the assembler applies it per row
// against each provider's own city
type OpenSlotsFilter struct {
	City        string
	Category    string
	ServiceType string // exact service name, empty means all
}

// ServiceTypesFilter narrows the service menu aggregate. Hours, when set,
// is pushed down as a parameterized predicate on the slot start hour
type ServiceTypesFilter struct {
	City     string
	Category string
	Hours    *timewindow.HourRange
}

// SlotRow is one (provider, slot, service) join result. Columns that the
// upstream schema allows to be null arrive as pointers so a malformed row
// survives the scan and gets dropped by the assembler instead of failing
// the whole result
type SlotRow struct {
	ProviderID   string
	ProviderName string
	Rating       float64
	City         string
	Address      string
	BookingURL   *string

	SlotID    string
	ServiceID string
	StartsAt  time.Time
	EndsAt    time.Time

	ServiceName    *string
	DurationMin    *int32
	Category       string
	BasePriceCents *int64
	MaxDiscount    *float64
}

// ServiceTypeRow is one aggregate row of the service menu
type ServiceTypeRow struct {
	Name        string
	DurationMin int32
	SlotCount   int64
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// OpenSlots fetches every open slot for the city and category, joined with
// its service and provider. The base ordering (provider id, start, slot id)
// makes downstream stable sorts fully deterministic
func (r *queries) OpenSlots(ctx context.Context, f OpenSlotsFilter) ([]SlotRow, error) {
	where := []string{
		"sl.status = 'OPEN'",
		"lower(p.city) = lower($1)",
		"s.category = $2",
		"p.name IS NOT NULL",
		"p.address IS NOT NULL",
	}
	args := []any{f.City, f.Category}

	if f.ServiceType != "" {
		args = append(args, f.ServiceType)
		where = append(where, fmt.Sprintf("s.name = $%d", len(args)))
	}

	sql := fmt.Sprintf(`
select
	p.id::text, p.name, p.rating, p.city, p.address, p.booking_url,
	sl.id::text, s.id::text, sl.starts_at, sl.ends_at,
	s.name, s.duration_min, s.category, sl.base_price_cents, sl.max_discount
from slots sl
join services s on s.id = sl.service_id
join providers p on p.id = sl.provider_id
where %s
order by p.id asc, sl.starts_at asc, sl.id asc
`, strings.Join(where, "\n  and "))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SlotRow
	for rows.Next() {
		var sr SlotRow
		if err := rows.Scan(
			&sr.ProviderID, &sr.ProviderName, &sr.Rating, &sr.City, &sr.Address, &sr.BookingURL,
			&sr.SlotID, &sr.ServiceID, &sr.StartsAt, &sr.EndsAt,
			&sr.ServiceName, &sr.DurationMin, &sr.Category, &sr.BasePriceCents, &sr.MaxDiscount,
		); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// ServiceTypes aggregates the distinct service menu for the city and
// category. A resolved time window travels as bound hour parameters through
// the range's SQL adapter; nothing user-controlled is ever interpolated
func (r *queries) ServiceTypes(ctx context.Context, f ServiceTypesFilter) ([]ServiceTypeRow, error) {
	where := []string{
		"sl.status = 'OPEN'",
		"lower(p.city) = lower($1)",
		"s.category = $2",
		"p.name IS NOT NULL",
		"p.address IS NOT NULL",
		"s.name IS NOT NULL",
		"s.duration_min IS NOT NULL",
	}
	args := []any{f.City, f.Category}

	if f.Hours != nil {
		var cond string
		cond, args = f.Hours.SQL("sl.starts_at", args)
		where = append(where, cond)
	}

	sql := fmt.Sprintf(`
select s.name, min(s.duration_min)::int, count(sl.id)
from slots sl
join services s on s.id = sl.service_id
join providers p on p.id = sl.provider_id
where %s
group by s.name
having count(sl.id) > 0
order by s.name asc
`, strings.Join(where, "\n  and "))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ServiceTypeRow
	for rows.Next() {
		var tr ServiceTypeRow
		if err := rows.Scan(&tr.Name, &tr.DurationMin, &tr.SlotCount); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}
