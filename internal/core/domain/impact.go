package domain

// DefaultUnitCost is the estimated size in KB of one redundant package copy.
const DefaultUnitCost = 10

// ImpactEstimate is the projected savings from consolidating one duplicate set.
type ImpactEstimate struct {
	Name             string
	PotentialSavings int
	CurrentVersions  int
}

// Savings returns (versions - 1) * unitCost for a duplicate set.
func Savings(set DuplicateSet, unitCost int) int {
	if len(set.Versions) < 2 {
		return 0
	}
	return (len(set.Versions) - 1) * unitCost
}

// EstimateImpact returns one estimate per duplicate set, in input order.
func EstimateImpact(sets []DuplicateSet, unitCost int) []ImpactEstimate {
	estimates := make([]ImpactEstimate, 0, len(sets))
	for _, set := range sets {
		estimates = append(estimates, ImpactEstimate{
			Name:             set.Name,
			PotentialSavings: Savings(set, unitCost),
			CurrentVersions:  len(set.Versions),
		})
	}
	return estimates
}

// TotalSavings sums the potential savings of all estimates.
func TotalSavings(estimates []ImpactEstimate) int {
	total := 0
	for _, e := range estimates {
		total += e.PotentialSavings
	}
	return total
}
