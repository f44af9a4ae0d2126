package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depclean/internal/core/domain"
)

func TestDetectDuplicates(t *testing.T) {
	tests := []struct {
		name     string
		records  []domain.PackageRecord
		expected []domain.DuplicateSet
	}{
		{
			name:     "empty graph",
			records:  nil,
			expected: nil,
		},
		{
			name: "single versions only",
			records: []domain.PackageRecord{
				{Name: "a", Version: "1.0.0"},
				{Name: "b", Version: "2.0.0"},
			},
			expected: nil,
		},
		{
			name:    "serde",
			records: serdeRecords(),
			expected: []domain.DuplicateSet{
				{Name: "serde", Versions: []string{"1.0.193", "1.0.190"}},
			},
		},
		{
			name: "exact duplicates are not distinct versions",
			records: []domain.PackageRecord{
				{Name: "a", Version: "1.0.0"},
				{Name: "a", Version: "1.0.0"},
			},
			expected: nil,
		},
		{
			name: "ordered by first appearance",
			records: []domain.PackageRecord{
				{Name: "syn", Version: "1.0.109"},
				{Name: "bitflags", Version: "1.3.2"},
				{Name: "syn", Version: "2.0.39"},
				{Name: "bitflags", Version: "2.4.1"},
				{Name: "syn", Version: "1.0.109"},
				{Name: "bitflags", Version: "0.9.0"},
			},
			expected: []domain.DuplicateSet{
				{Name: "syn", Versions: []string{"1.0.109", "2.0.39"}},
				{Name: "bitflags", Versions: []string{"1.3.2", "2.4.1", "0.9.0"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets := domain.DetectDuplicates(domain.BuildGraph(tt.records))
			assert.Equal(t, tt.expected, sets)
		})
	}
}

func TestDetectDuplicates_SerdeScenario(t *testing.T) {
	g := domain.BuildGraph(serdeRecords())
	sets := domain.DetectDuplicates(g)

	require.Len(t, sets, 1)
	assert.Equal(t, "serde", sets[0].Name)
	assert.Len(t, sets[0].Versions, 2)

	from, _ := g.Lookup("serde_json 1.0.108")
	to, _ := g.Lookup("serde 1.0.193")
	assert.True(t, g.HasEdge(from, to))
}
