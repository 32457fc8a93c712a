// Package jgo is the public embeddable interpreter API, mirroring the
// teacher's pkg/dwscript embedding surface: a Session an embedding host
// feeds source lines to and reads results back from, without depending on
// any of the interpreter's internal packages directly.
package jgo

import (
	"github.com/google/uuid"

	"github.com/sambacha/jgo/internal/config"
	"github.com/sambacha/jgo/internal/display"
	"github.com/sambacha/jgo/internal/foreign"
	"github.com/sambacha/jgo/internal/interp"
)

// Result is the outcome of feeding one unit of source to a Session.
type Result struct {
	// Text is the rendered display of the produced value, empty when the
	// session is still buffering a multi-line construct.
	Text string
	// Suspended reports that Feed needs more lines before it can produce
	// a Result.Text (an open if./for./while./try. block or a {{ }} body).
	Suspended bool
}

// Session is one running interpreter instance: its own variable
// environment, foreign-call policy, and a stable ID for hosts that need
// to correlate a suspended multi-line continuation across calls.
type Session struct {
	id  uuid.UUID
	cfg config.Config
	s   *interp.Session
}

// New starts a Session using the default configuration: foreign file and
// parameter-store access enabled, six-digit float precision.
func New() *Session {
	return NewWithConfig(config.Default())
}

// NewWithConfig starts a Session using cfg, e.g. loaded via
// config.Load(".jgorc.yaml").
func NewWithConfig(cfg config.Config) *Session {
	d := foreign.New(foreign.Policy{
		AllowFileIO:     cfg.Foreign.AllowFileIO,
		AllowParamStore: cfg.Foreign.AllowParamStore,
	}, "")
	return &Session{
		id:  uuid.New(),
		cfg: cfg,
		s:   interp.NewWithForeignAndSeed(d, cfg.RandomSeed),
	}
}

// ID returns the session's stable identifier, stable for the session's
// lifetime, so a host can correlate a Suspended result with the call that
// eventually completes it.
func (s *Session) ID() string { return s.id.String() }

// Feed evaluates one line of source. While a control block or a {{ }}
// direct definition is open, it buffers the line and reports Suspended;
// call Feed again with the next line.
func (s *Session) Feed(line string) (Result, error) {
	r, err := s.s.Feed(line)
	if err != nil {
		return Result{}, err
	}
	if r.Suspended {
		return Result{Suspended: true}, nil
	}
	return Result{Text: display.RenderPrecision(r.Value.Noun, s.cfg.PrintPrecision)}, nil
}
