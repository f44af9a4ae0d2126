package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depclean/cmd/depclean/commands"
	"go.trai.ch/depclean/internal/app"
	"go.trai.ch/depclean/internal/build"
	"go.trai.ch/depclean/internal/core/domain"
)

type mockApp struct {
	analyzeFunc func(ctx context.Context, w io.Writer, opts app.AnalyzeOptions) (*domain.Report, error)
	jsonLogs    *bool
	logLevel    *domain.LogLevel
}

func (m *mockApp) Analyze(ctx context.Context, w io.Writer, opts app.AnalyzeOptions) (*domain.Report, error) {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, w, opts)
	}
	return &domain.Report{}, nil
}

func (m *mockApp) SetJSONLogs(enable bool) {
	m.jsonLogs = &enable
}

func (m *mockApp) SetLogLevel(level domain.LogLevel) {
	m.logLevel = &level
}

func TestCommands_Analyze(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.AnalyzeOptions
		called := false

		mock := &mockApp{
			analyzeFunc: func(_ context.Context, _ io.Writer, opts app.AnalyzeOptions) (*domain.Report, error) {
				captured = opts
				called = true
				return &domain.Report{}, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"analyze", "-l", "sub/Cargo.lock", "--fix", "-f", "yaml",
			"--offline", "-j", "4", "--unit-cost", "25", "--json-logs", "--log-level", "debug",
		})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, app.AnalyzeOptions{
			Lockfile:    "sub/Cargo.lock",
			Format:      domain.FormatYAML,
			Offline:     true,
			Concurrency: 4,
			UnitCost:    25,
			Fix:         true,
		}, captured)
		require.NotNil(t, mock.jsonLogs)
		assert.True(t, *mock.jsonLogs)
		require.NotNil(t, mock.logLevel)
		assert.Equal(t, domain.LogLevelDebug, *mock.logLevel)
	})

	t.Run("defaults", func(t *testing.T) {
		var captured app.AnalyzeOptions
		mock := &mockApp{
			analyzeFunc: func(_ context.Context, _ io.Writer, opts app.AnalyzeOptions) (*domain.Report, error) {
				captured = opts
				return &domain.Report{}, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"analyze"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, domain.DefaultLockfilePath, captured.Lockfile)
		assert.Equal(t, domain.FormatTable, captured.Format)
		assert.Equal(t, app.UseConfigured, captured.UnitCost)
		assert.Zero(t, captured.Concurrency)
		assert.False(t, captured.Offline)
		assert.False(t, captured.Fix)
		assert.Nil(t, mock.jsonLogs)
		assert.Nil(t, mock.logLevel)
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		called := false
		mock := &mockApp{
			analyzeFunc: func(_ context.Context, _ io.Writer, _ app.AnalyzeOptions) (*domain.Report, error) {
				called = true
				return &domain.Report{}, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"analyze", "--log-level", "loud"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrInvalidSetting.Error())
		assert.False(t, called)
	})

	t.Run("report goes to stdout", func(t *testing.T) {
		mock := &mockApp{
			analyzeFunc: func(_ context.Context, w io.Writer, _ app.AnalyzeOptions) (*domain.Report, error) {
				_, _ = io.WriteString(w, "report body")
				return &domain.Report{}, nil
			},
		}

		cli := commands.New(mock)
		stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
		cli.SetOutput(stdout, stderr)
		cli.SetArgs([]string{"analyze"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "report body", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("returns error on analyze failure", func(t *testing.T) {
		mock := &mockApp{
			analyzeFunc: func(_ context.Context, _ io.Writer, _ app.AnalyzeOptions) (*domain.Report, error) {
				return nil, errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"analyze"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetArgs([]string{"analyze", "Cargo.lock"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "depclean version "+build.Version)
}

func TestCommands_Help(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--help"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "A tool to analyze and optimize project dependencies")
	assert.Contains(t, buf.String(), "analyze")
}
