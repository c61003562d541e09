package handlers

import (
	"os"
	"time"

	"github.com/MatBureau/devops-health/internal/system"
)

// Handler serves the welcome and health endpoints. It holds no per-request
// state; everything it reads comes from the injected clock, environment and
// metrics reader.
type Handler struct {
	reader system.Reader
	now    func() time.Time
	lookup func(string) (string, bool)
	envVar string
}

type Option func(*Handler)

func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithEnv replaces os.LookupEnv.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(h *Handler) { h.lookup = lookup }
}

// WithEnvVar names the variable reported as the deployment environment.
func WithEnvVar(name string) Option {
	return func(h *Handler) { h.envVar = name }
}

func New(reader system.Reader, opts ...Option) *Handler {
	h := &Handler{
		reader: reader,
		now:    time.Now,
		lookup: os.LookupEnv,
		envVar: "FLASK_ENV",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) timestamp() string {
	return h.now().Format(TimestampFormat)
}

func (h *Handler) environment() string {
	if v, ok := h.lookup(h.envVar); ok {
		return v
	}
	return DefaultEnvironment
}
