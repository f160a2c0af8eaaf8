// Package pricing holds the pure price math for discovery results
package pricing

import "math"

// MaxDiscounted returns the best obtainable price in minor units for a slot:
// round(base * (1 - discount)) with the discount fraction clamped into [0, 1].
// Pure and idempotent; the assembler computes it once per slot and every later
// stage reuses the stored value
func MaxDiscounted(baseCents int64, discount float64) int64 {
	if baseCents <= 0 {
		return 0
	}
	if discount < 0 || math.IsNaN(discount) {
		discount = 0
	}
	if discount > 1 {
		discount = 1
	}
	return int64(math.Round(float64(baseCents) * (1 - discount)))
}
