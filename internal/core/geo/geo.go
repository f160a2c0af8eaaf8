// Package geo provides distance estimation for provider results
package geo

import "hash/fnv"

// Estimator produces a distance figure for a provider. Implementations must
// be deterministic: the sorter relies on stable distances across runs
type Estimator interface {
	EstimateKm(providerID string) float64
}

// HashEstimator is the MVP stand-in for real geo lookup: a stable FNV-1a hash
// of the provider id reduced into the 1..11 km band. No coordinates involved;
// it keeps ordering deterministic until real distance data lands
type HashEstimator struct{}

// EstimateKm implements Estimator
func (HashEstimator) EstimateKm(providerID string) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(providerID))
	return float64(1 + h.Sum64()%11)
}
