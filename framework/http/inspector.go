package http

import (
	"net/http"
	"sort"

	"github.com/rcrowley/go-metrics"

	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/routing"
)

// BindingInfo describes one registered abstract as reported by the Inspector.
type BindingInfo struct {
	Abstract string   `json:"abstract"`
	Concrete string   `json:"concrete,omitempty"`
	Factory  bool     `json:"factory"`
	Shared   bool     `json:"shared"`
	Instance bool     `json:"instance"`
	Resolved bool     `json:"resolved"`
	Aliases  []string `json:"aliases,omitempty"`
}

// Inspector exposes the container's registry over HTTP, read-only.
//
//	GET /_container/bindings            every binding and instance
//	GET /_container/bindings/{abstract} one entry, aliases are followed
//	GET /_container/metrics             resolution counters and timers
type Inspector struct {
	c        *container.Container
	registry metrics.Registry
}

// NewInspector returns an Inspector over c. registry may be nil, in which
// case the metrics endpoint answers 404.
func NewInspector(c *container.Container, registry metrics.Registry) *Inspector {
	return &Inspector{c: c, registry: registry}
}

// Routes mounts the inspector endpoints under /_container.
func (i *Inspector) Routes(r *routing.Router) {
	r.Prefix("/_container", func(r *routing.Router) {
		r.Get("/bindings", i.Bindings)
		r.Get("/bindings/*", i.Binding)
		r.Get("/metrics", i.Metrics)
	})
}

// Bindings lists every registered abstract, sorted.
func (i *Inspector) Bindings(w http.ResponseWriter, _ *http.Request) {
	aliases := i.aliasesByTarget()
	names := i.c.Bindings()
	out := make([]BindingInfo, 0, len(names))
	for _, name := range names {
		out = append(out, i.describe(name, aliases))
	}
	NewResponse(w).Success(out)
}

// Binding describes a single abstract, following aliases to the canonical id.
// The abstract is the rest of the path so package-qualified type keys work.
func (i *Inspector) Binding(w http.ResponseWriter, r *http.Request) {
	name := routing.Param(r, "*")
	res := NewResponse(w)
	key := i.c.Canonical(name)
	if !i.c.Bound(key) {
		res.NotFound("No binding for [" + name + "].")
		return
	}
	res.Success(i.describe(key, i.aliasesByTarget()))
}

// Metrics writes the metrics registry as JSON.
func (i *Inspector) Metrics(w http.ResponseWriter, _ *http.Request) {
	if i.registry == nil {
		NewResponse(w).NotFound("Metrics are disabled.")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	metrics.WriteJSONOnce(i.registry, w)
}

func (i *Inspector) describe(key string, aliases map[string][]string) BindingInfo {
	info := BindingInfo{
		Abstract: key,
		Shared:   i.c.IsShared(key),
		Resolved: i.c.Resolved(key),
		Aliases:  aliases[key],
	}
	if b, ok := i.c.Binding(key); ok {
		info.Concrete = b.Concrete
		info.Factory = b.Factory != nil
	}
	_, info.Instance = i.c.CachedInstance(key)
	return info
}

// aliasesByTarget inverts the alias table, resolving every alias to the
// canonical id it ends at.
func (i *Inspector) aliasesByTarget() map[string][]string {
	out := make(map[string][]string)
	for alias := range i.c.Aliases() {
		key := i.c.Canonical(alias)
		out[key] = append(out[key], alias)
	}
	for _, list := range out {
		sort.Strings(list)
	}
	return out
}
