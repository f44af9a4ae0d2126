package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depclean/internal/core/domain"
)

func TestSavings(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		unit     int
		expected int
	}{
		{"two versions", []string{"1.0.0", "2.0.0"}, 10, 10},
		{"three versions", []string{"1.0.0", "2.0.0", "3.0.0"}, 10, 20},
		{"custom unit", []string{"1.0.0", "2.0.0"}, 64, 64},
		{"degenerate", []string{"1.0.0"}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := domain.DuplicateSet{Name: "x", Versions: tt.versions}
			assert.Equal(t, tt.expected, domain.Savings(set, tt.unit))
		})
	}
}

func TestEstimateImpact(t *testing.T) {
	sets := []domain.DuplicateSet{
		{Name: "serde", Versions: []string{"1.0.193", "1.0.190"}},
		{Name: "syn", Versions: []string{"1.0.109", "2.0.39", "2.0.40"}},
	}

	estimates := domain.EstimateImpact(sets, domain.DefaultUnitCost)

	assert.Equal(t, []domain.ImpactEstimate{
		{Name: "serde", PotentialSavings: 10, CurrentVersions: 2},
		{Name: "syn", PotentialSavings: 20, CurrentVersions: 3},
	}, estimates)
	assert.Equal(t, 30, domain.TotalSavings(estimates))
	assert.Empty(t, domain.EstimateImpact(nil, 10))
}
