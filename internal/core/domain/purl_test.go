package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depclean/internal/core/domain"
)

func TestCargoPURL(t *testing.T) {
	assert.Equal(t, "pkg:cargo/serde@1.0.193", domain.CargoPURL("serde", "1.0.193"))
	assert.Equal(t, "pkg:cargo/serde", domain.CargoPURL("serde", ""))
	assert.Equal(t, "pkg:cargo/tokio-util@0.7.10-alpha.1", domain.CargoPURL("tokio-util", "0.7.10-alpha.1"))
}
