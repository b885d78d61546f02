package container

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
)

// Option configures a Container at construction time.
type Option func(*core)

// WithLogger traces registrations and successful builds at debug level.
// Failed resolutions are returned to the caller, never logged.
func WithLogger(log logrus.FieldLogger) Option {
	return func(co *core) {
		if log != nil {
			co.log = log
		}
	}
}

// WithMaxDepth bounds the resolution stack. Zero or less means unbounded.
func WithMaxDepth(depth int) Option {
	return func(co *core) { co.maxDepth = depth }
}

// WithMetrics registers resolution counters and a build timer in r.
//
//	container.make              every resolve, nested ones included
//	container.cache_hit         shared instances served from the cache
//	container.build             values built by a factory or recipe
//	container.build_time        factory / recipe constructor latency
//	container.errors.<kind>     failed top-level Make calls
func WithMetrics(r metrics.Registry) Option {
	return func(co *core) {
		if r != nil {
			co.metrics = newResolutionMetrics(r)
		}
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newContainerID() string { return uuid.NewString() }

func (co *core) trace(msg, abstract string, fields map[string]any) {
	entry := co.log.WithField("container", co.id).WithField("abstract", abstract)
	if len(fields) > 0 {
		entry = entry.WithFields(logrus.Fields(fields))
	}
	entry.Debug(msg)
}

// ── Metrics ───────────────────────────────────────────────────────────────────

// resolutionMetrics is nil when WithMetrics was not given; every method is
// safe on a nil receiver.
type resolutionMetrics struct {
	makes     metrics.Counter
	hits      metrics.Counter
	builds    metrics.Counter
	buildTime metrics.Timer
	failures  map[error]metrics.Counter
	factory   metrics.Counter
}

var failureKinds = map[error]string{
	ErrClassNotFound:      "class_not_found",
	ErrBindingResolution:  "binding_resolution",
	ErrCircularDependency: "circular_dependency",
	ErrDepthExceeded:      "depth_exceeded",
}

func newResolutionMetrics(r metrics.Registry) *resolutionMetrics {
	m := &resolutionMetrics{
		makes:     metrics.GetOrRegisterCounter("container.make", r),
		hits:      metrics.GetOrRegisterCounter("container.cache_hit", r),
		builds:    metrics.GetOrRegisterCounter("container.build", r),
		buildTime: metrics.GetOrRegisterTimer("container.build_time", r),
		failures:  make(map[error]metrics.Counter, len(failureKinds)),
		factory:   metrics.GetOrRegisterCounter("container.errors.factory", r),
	}
	for sentinel, kind := range failureKinds {
		m.failures[sentinel] = metrics.GetOrRegisterCounter("container.errors."+kind, r)
	}
	return m
}

func (m *resolutionMetrics) made() {
	if m != nil {
		m.makes.Inc(1)
	}
}

func (m *resolutionMetrics) hit() {
	if m != nil {
		m.hits.Inc(1)
	}
}

func (m *resolutionMetrics) built() {
	if m != nil {
		m.builds.Inc(1)
	}
}

// timeBuild starts a build timer; call the returned func when done.
func (m *resolutionMetrics) timeBuild() func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	return func() { m.buildTime.UpdateSince(start) }
}

// failed counts err under its kind; errors from user factories count as "factory".
func (m *resolutionMetrics) failed(err error) {
	if m == nil {
		return
	}
	for sentinel := range failureKinds {
		if errors.Is(err, sentinel) {
			m.failures[sentinel].Inc(1)
			return
		}
	}
	m.factory.Inc(1)
}
