package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depclean/internal/app"
	"go.trai.ch/depclean/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestNewComponents(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	a := &app.App{}

	components := app.NewComponents(a, log)

	assert.Same(t, a, components.App)
	assert.Equal(t, log, components.Logger)
}
