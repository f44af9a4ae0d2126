package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/depclean/internal/ui/output"
)

func TestProfile(t *testing.T) {
	tests := []struct {
		name     string
		noColor  string
		force    string
		expected termenv.Profile
	}{
		{name: "pipe is plain", expected: termenv.Ascii},
		{name: "forced color on a pipe", force: "1", expected: termenv.ANSI},
		{name: "no color beats force", noColor: "1", force: "1", expected: termenv.Ascii},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("CLICOLOR_FORCE", tt.force)

			assert.Equal(t, tt.expected, output.Profile(&bytes.Buffer{}))
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)

	_, _ = out.WriteString("test")
	assert.Equal(t, "test", buf.String())
	assert.NotNil(t, output.New(nil))
}

func TestRenderer_PlainOnPipe(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "")

	r := output.Renderer(&bytes.Buffer{})
	assert.Equal(t, termenv.Ascii, r.ColorProfile())
	assert.Equal(t, "plain", r.NewStyle().Bold(true).Render("plain"))
}
