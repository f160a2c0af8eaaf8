// Package repo provides clickhouse access for search-demand analytics
package repo

import (
	"context"

	"openslots/internal/platform/store"
	"openslots/internal/services/trends/domain"
)

// Repo is the persistence surface for demand analytics
type Repo interface {
	InsertEvents(ctx context.Context, evs []domain.SearchEvent) error
	Top(ctx context.Context, days, limit int) ([]domain.TopRow, error)
}

// CH implements Repo over the store's clickhouse seam
type CH struct {
	ch store.Clickhouse
}

// NewCH wires the clickhouse seam
func NewCH(ch store.Clickhouse) *CH {
	if ch == nil {
		panic("trends.Repo requires a non nil clickhouse seam")
	}
	return &CH{ch: ch}
}

// InsertEvents batches events into search_events in one shot
func (r *CH) InsertEvents(ctx context.Context, evs []domain.SearchEvent) error {
	if len(evs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(evs))
	for _, e := range evs {
		rows = append(rows, []any{
			e.ID,
			e.At,
			e.City,
			e.Category,
			e.Window,
			e.ServiceType,
			int32(e.ResultCount),
			e.CacheHit,
		})
	}
	return r.ch.Insert(ctx, "search_events", rows)
}

// Top aggregates searches per (city, category) over the trailing window.
// Secondary keys pin the order for equal search counts
func (r *CH) Top(ctx context.Context, days, limit int) ([]domain.TopRow, error) {
	const sql = `
SELECT
	city,
	category,
	count()                     AS searches,
	countIf(result_count = 0)   AS zero_result
FROM search_events
WHERE at >= now() - INTERVAL ? DAY
GROUP BY city, category
ORDER BY searches DESC, city ASC, category ASC
LIMIT ?
`
	rs, err := r.ch.Query(ctx, sql, int32(days), int32(limit))
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []domain.TopRow
	for rs.Next() {
		var row domain.TopRow
		if err := rs.Scan(&row.City, &row.Category, &row.Searches, &row.ZeroResult); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rs.Err()
}
