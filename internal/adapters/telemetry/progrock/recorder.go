// Package progrock records analysis progress on a progrock tape.
package progrock

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/depclean/internal/core/domain"
	"go.trai.ch/depclean/internal/core/ports"
)

// Recorder implements ports.Telemetry on top of a progrock recorder.
//
// Vertex logs are also echoed to a ports.Logger when one is set: warnings at warn level,
// everything else at debug level.
type Recorder struct {
	w      progrock.Writer
	rec    *progrock.Recorder
	logger ports.Logger

	mu   sync.Mutex
	seen map[digest.Digest]int
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger echoes vertex logs to l.
func WithLogger(l ports.Logger) Option {
	return func(r *Recorder) {
		r.logger = l
	}
}

// New creates a new Recorder writing to an in-memory tape.
func New(opts ...Option) *Recorder {
	return NewRecorder(progrock.NewTape(), opts...)
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer, opts ...Option) *Recorder {
	r := &Recorder{
		w:    w,
		rec:  progrock.NewRecorder(w),
		seen: make(map[digest.Digest]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record starts a vertex named after the unit of work.
// Recording the same name twice yields two distinct vertices.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	vertex := &Vertex{rec: r.rec.Vertex(r.digestFor(name), name), logger: r.logger}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

func (r *Recorder) digestFor(name string) digest.Digest {
	d := digest.FromString(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.seen[d]
	r.seen[d] = n + 1
	if n == 0 {
		return d
	}
	return digest.FromString(fmt.Sprintf("%s#%d", name, n))
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Vertex is one scored duplicate set on the tape.
type Vertex struct {
	rec    *progrock.VertexRecorder
	logger ports.Logger
}

func (v *Vertex) Stdout() io.Writer { return v.rec.Stdout() }

func (v *Vertex) Stderr() io.Writer { return v.rec.Stderr() }

// Log appends "level: msg" to the vertex. Warnings and errors land on stderr.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.rec.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.rec.Stderr()
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", strings.ToLower(level.String()), msg)

	switch {
	case v.logger == nil:
	case level >= domain.LogLevelWarn:
		v.logger.Warn(msg)
	default:
		v.logger.Debug(msg)
	}
}

// Complete finishes the vertex; a non-nil err marks it failed.
func (v *Vertex) Complete(err error) {
	v.rec.Done(err)
}
