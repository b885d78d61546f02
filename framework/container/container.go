package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory is a function that builds a concrete value from the container.
// The container it receives is scoped to the current resolution, so nested
// Make calls take part in cycle detection.
//
// Always resolve dependencies through that argument. A Make on a container
// captured from the enclosing scope starts a fresh resolution stack: a cycle
// closed that way is invisible to cycle detection and to WithMaxDepth, and
// recurses until the goroutine stack overflows.
//
//	c.Singleton("a", func(c *container.Container) (any, error) { return c.Make("b") }) // right
//	c.Singleton("a", func(_ *container.Container) (any, error) { return root.Make("b") }) // wrong
type Factory func(c *Container) (any, error)

// Binding is a registry entry: how to build an abstract and whether the
// result is shared.
type Binding struct {
	Abstract string

	// Concrete is the type name to auto-construct when Factory is nil.
	// It equals Abstract for "auto-construct the identifier itself".
	Concrete string
	Factory  Factory
	Shared   bool
}

// Extender wraps an already-resolved instance with decorator logic.
type Extender func(instance any, c *Container) (any, error)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container — mirrors Laravel's Illuminate\Container\Container.
//
// It supports:
//   - Bind / Singleton / Instance / Alias
//   - Make / MakeWith / Resolve (generic)
//   - Define (explicit constructor recipes replacing reflection autowiring)
//   - Tags, Extend, contextual binding
//   - Rebinding / Resolving / AfterResolving callbacks
//   - Deferred loaders (lazy service providers)
//
// A Container returned by New is safe for concurrent use. Factories receive a
// resolution-scoped view that shares every registration with its parent but
// owns the resolution stack of the Make call that created it.
type Container struct {
	core  *core
	stack *resolutionStack
}

// core is the state shared by a container and all of its resolution views.
type core struct {
	mu sync.RWMutex

	// abstract → binding
	bindings map[string]Binding

	// abstract → resolved shared instance
	instances map[string]any

	// alias → abstract (one hop; canonical() follows the chain)
	aliases map[string]string

	// type name → constructor recipe
	types map[string]Recipe

	// abstract → extender funcs
	extenders map[string][]Extender

	// tag → []abstract
	tags map[string][]string

	// contextual: when[concrete][abstract or $param] = factory
	contextual map[string]map[string]Factory

	// abstracts built at least once
	resolved map[string]bool

	// abstract → lazy loader, run before first resolution
	deferred map[string]*deferredLoader
	loaders  loaderLock

	reboundCallbacks   map[string][]func(c *Container, instance any)
	resolvingCallbacks map[string][]func(instance any, c *Container)
	afterResolving     []func(abstract string, instance any)

	id       string
	maxDepth int
	log      logrus.FieldLogger
	metrics  *resolutionMetrics
}

type deferredLoader struct {
	load   func(c *Container) error
	covers []string

	// guarded by core.loaders
	state loaderState
	err   error
}

type loaderState int

const (
	loaderPending loaderState = iota
	loaderRunning
	loaderDone
)

// loaderLock serializes deferred loaders across the container. The
// resolution stack holding it may take it again, so a loader can resolve
// abstracts owned by other deferred loaders without waiting on itself.
type loaderLock struct {
	mu    sync.Mutex
	guard sync.Mutex
	owner *resolutionStack
}

func (l *loaderLock) acquire(s *resolutionStack) (release func()) {
	l.guard.Lock()
	held := l.owner == s
	l.guard.Unlock()
	if held {
		return func() {}
	}

	l.mu.Lock()
	l.guard.Lock()
	l.owner = s
	l.guard.Unlock()
	return func() {
		l.guard.Lock()
		l.owner = nil
		l.guard.Unlock()
		l.mu.Unlock()
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	co := &core{
		bindings:           make(map[string]Binding),
		instances:          make(map[string]any),
		aliases:            make(map[string]string),
		types:              make(map[string]Recipe),
		extenders:          make(map[string][]Extender),
		tags:               make(map[string][]string),
		contextual:         make(map[string]map[string]Factory),
		resolved:           make(map[string]bool),
		deferred:           make(map[string]*deferredLoader),
		reboundCallbacks:   make(map[string][]func(*Container, any)),
		resolvingCallbacks: make(map[string][]func(any, *Container)),
		id:                 newContainerID(),
		log:                discardLogger(),
	}
	for _, opt := range opts {
		opt(co)
	}

	c := &Container{core: co}
	// Bind the container to itself — like Laravel's $app->instance()
	c.Instance("container", c)
	return c
}

// ID returns the identifier used to tag this container's log lines.
func (c *Container) ID() string { return c.core.id }

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient (new instance each Make) binding.
//
// concrete is nil (auto-construct abstract itself), a type name, a Factory or
// a func(*Container) any.
//
//	// Laravel: $app->bind(UserRepository::class, fn($app) => new EloquentUserRepository($app))
//	c.Bind("UserRepository", func(c *container.Container) (any, error) {
//	    db, err := container.Resolve[*sql.DB](c, "db")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return &EloquentUserRepository{DB: db}, nil
//	})
func (c *Container) Bind(abstract string, concrete any) {
	c.BindShared(abstract, concrete, false)
}

// Singleton registers a binding whose result is cached after first resolution.
//
//	// Laravel: $app->singleton(Cache::class, fn($app) => new RedisCache($app))
//	c.Singleton("cache", "RedisCache")
func (c *Container) Singleton(abstract string, concrete any) {
	c.BindShared(abstract, concrete, true)
}

// BindShared stores or overwrites the binding for abstract. A cached instance
// for abstract is discarded, and abstract stops being an alias.
func (c *Container) BindShared(abstract string, concrete any, shared bool) {
	b := newBinding(abstract, concrete, shared)

	co := c.core
	co.mu.Lock()
	delete(co.instances, abstract)
	delete(co.aliases, abstract)
	co.bindings[abstract] = b
	wasResolved := co.resolved[abstract]
	co.mu.Unlock()

	co.trace("bound", abstract, map[string]any{"concrete": b.Concrete, "shared": shared})

	if wasResolved {
		c.rebound(abstract)
	}
}

// Instance registers a pre-built value as a shared instance and returns it.
// An existing binding for abstract is kept but not consulted while the
// instance is cached.
//
//	// Laravel: $app->instance(Config::class, $config)
//	c.Instance("config", myConfig)
func (c *Container) Instance(abstract string, instance any) any {
	co := c.core
	co.mu.Lock()
	_, wasAlias := co.aliases[abstract]
	delete(co.aliases, abstract)
	isBound := wasAlias || co.boundLocked(abstract)
	co.instances[abstract] = instance
	co.mu.Unlock()

	co.trace("instance", abstract, map[string]any{"type": fmt.Sprintf("%T", instance)})

	if isBound {
		c.rebound(abstract)
	}
	return instance
}

func newBinding(abstract string, concrete any, shared bool) Binding {
	b := Binding{Abstract: abstract, Concrete: abstract, Shared: shared}
	switch v := concrete.(type) {
	case nil:
	case string:
		if v != "" {
			b.Concrete = v
		}
	case Factory:
		b.Factory = v
	case func(*Container) (any, error):
		b.Factory = v
	case func(*Container) any:
		b.Factory = func(c *Container) (any, error) { return v(c), nil }
	default:
		panic(fmt.Sprintf("container: unsupported concrete %T for [%s]", concrete, abstract))
	}
	if b.Factory != nil {
		b.Concrete = ""
	}
	return b
}

// Alias registers an alternative name for an abstract.
//
// It fails with a LogicError when the alias would point at itself directly or
// through existing aliases, or when alias already owns a binding or instance.
//
//	// Laravel: $app->alias(Cache::class, 'cache')
//	c.Alias("cache", "cacheManager")
func (c *Container) Alias(abstract, alias string) error {
	co := c.core
	co.mu.Lock()
	defer co.mu.Unlock()

	if abstract == alias {
		return &LogicError{Alias: alias, Reason: "is aliased to itself", Chain: []string{alias, alias}}
	}
	if _, ok := co.bindings[alias]; ok {
		return &LogicError{Alias: alias, Reason: "is already bound and cannot become an alias"}
	}
	if _, ok := co.instances[alias]; ok {
		return &LogicError{Alias: alias, Reason: "is already bound and cannot become an alias"}
	}

	chain := []string{alias, abstract}
	for name := abstract; ; {
		next, ok := co.aliases[name]
		if !ok {
			break
		}
		chain = append(chain, next)
		if next == alias {
			return &LogicError{Alias: alias, Reason: "would create an alias cycle", Chain: chain}
		}
		name = next
	}

	co.aliases[alias] = abstract
	co.log.WithField("container", co.id).WithField("alias", alias).Debugf("aliased to %s", abstract)
	return nil
}

// Canonical follows alias edges until a non-aliased name is reached.
func (c *Container) Canonical(name string) string {
	c.core.mu.RLock()
	defer c.core.mu.RUnlock()
	return c.core.canonical(name)
}

// canonical must hold mu (read or write). Alias rejects cycles, so the loop
// terminates after at most len(aliases) hops.
func (co *core) canonical(name string) string {
	for {
		target, ok := co.aliases[name]
		if !ok {
			return name
		}
		name = target
	}
}

// ── Contextual / Deferred ─────────────────────────────────────────────────────

// When starts a contextual binding chain for one or more concretes.
//
//	// Laravel: $app->when(PhotoController::class)->needs(Filesystem::class)->give(fn() => new S3)
//	c.When("PhotoController").Needs("Filesystem").Give(func(c *container.Container) (any, error) {
//	    return filesystem.NewS3(...), nil
//	})
func (c *Container) When(concretes ...string) *ContextualBuilder {
	return &ContextualBuilder{container: c, concretes: concretes}
}

func (co *core) addContextual(concrete, needs string, f Factory) {
	co.mu.Lock()
	defer co.mu.Unlock()
	if _, ok := co.contextual[concrete]; !ok {
		co.contextual[concrete] = make(map[string]Factory)
	}
	co.contextual[concrete][needs] = f
}

// contextualFor returns the contextual factory for (concrete, abstract),
// falling back to the canonical key when it differs.
func (co *core) contextualFor(concrete, abstract, key string) (Factory, bool) {
	if concrete == "" {
		return nil, false
	}
	co.mu.RLock()
	defer co.mu.RUnlock()
	m, ok := co.contextual[concrete]
	if !ok {
		return nil, false
	}
	if f, ok := m[abstract]; ok {
		return f, true
	}
	if key != "" && key != abstract {
		f, ok := m[key]
		return f, ok
	}
	return nil, false
}

// Defer registers a loader that runs once, right before the first resolution
// of any of abstracts. Used for deferred service providers. The loader
// receives the resolution-scoped container, so it may resolve the abstracts
// it has just registered, including ones owned by other deferred loaders.
//
// Loaders run one at a time. A loader must resolve through the container it
// is given: a Make on a container captured from outside starts a new
// resolution and blocks until the running loader returns, which never happens.
func (c *Container) Defer(abstracts []string, loader func(c *Container) error) {
	d := &deferredLoader{load: loader, covers: abstracts}
	co := c.core
	co.mu.Lock()
	defer co.mu.Unlock()
	for _, abs := range abstracts {
		co.deferred[abs] = d
	}
}

// loadDeferred runs the loader registered for name, if any. Concurrent
// resolutions wait until the loader chain in flight has finished.
func (c *Container) loadDeferred(name string) error {
	co := c.core
	co.mu.RLock()
	d, ok := co.deferred[name]
	co.mu.RUnlock()
	if !ok {
		return nil
	}

	release := co.loaders.acquire(c.stack)
	defer release()

	switch d.state {
	case loaderRunning:
		// re-entered from the loader itself
		return nil
	case loaderDone:
		return d.err
	}

	d.state = loaderRunning
	d.err = d.load(c)
	d.state = loaderDone
	if d.err != nil {
		return d.err
	}

	co.mu.Lock()
	for _, abs := range d.covers {
		if co.deferred[abs] == d {
			delete(co.deferred, abs)
		}
	}
	co.mu.Unlock()
	co.trace("deferred loaded", name, nil)
	return nil
}

// ── Extend / Tags ─────────────────────────────────────────────────────────────

// Extend decorates every future resolution of an abstract.
//
// A shared instance that is already cached is never replaced, so extending it
// fails with a LogicError; register extenders during bootstrap.
//
//	// Laravel: $app->extend(Logger::class, fn($logger, $app) => new TimestampLogger($logger))
//	c.Extend("logger", func(instance any, c *container.Container) (any, error) {
//	    return logging.NewTimestampWrapper(instance.(*Logger)), nil
//	})
func (c *Container) Extend(abstract string, fn Extender) error {
	co := c.core
	co.mu.Lock()
	defer co.mu.Unlock()
	key := co.canonical(abstract)
	if _, ok := co.instances[key]; ok {
		return &LogicError{Alias: key, Reason: "is already resolved as a shared instance and cannot be extended"}
	}
	co.extenders[key] = append(co.extenders[key], fn)
	return nil
}

func (c *Container) applyExtenders(key string, instance any) (any, error) {
	c.core.mu.RLock()
	exts := c.core.extenders[key]
	c.core.mu.RUnlock()

	var err error
	for _, ext := range exts {
		if instance, err = ext(instance, c); err != nil {
			return nil, wrapBuildError(err, key)
		}
	}
	return instance, nil
}

// Tag associates multiple abstracts under one or more named groups.
//
//	// Laravel: $app->tag([CpuReport::class, MemoryReport::class], 'reports')
//	c.Tag([]string{"CpuReport", "MemoryReport"}, "reports")
func (c *Container) Tag(abstracts []string, tags ...string) {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	for _, tag := range tags {
		c.core.tags[tag] = append(c.core.tags[tag], abstracts...)
	}
}

// Tagged resolves all abstracts registered under a tag, in tagging order.
//
//	// Laravel: $app->tagged('reports')
//	reports, err := c.Tagged("reports")
func (c *Container) Tagged(tag string) ([]any, error) {
	c.core.mu.RLock()
	abstracts := append([]string(nil), c.core.tags[tag]...)
	c.core.mu.RUnlock()

	result := make([]any, 0, len(abstracts))
	for _, abs := range abstracts {
		inst, err := c.Make(abs)
		if err != nil {
			return nil, err
		}
		result = append(result, inst)
	}
	return result, nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract from the container.
//
//	// Laravel: $app->make(UserRepository::class)
//	repo, err := c.Make("UserRepository")
func (c *Container) Make(abstract string) (any, error) {
	return c.MakeWith(abstract, nil)
}

// MakeWith resolves an abstract, overriding recipe parameters by name for
// the type built directly. Results built with overrides are never cached.
//
//	// Laravel: $app->makeWith(Greeter::class, ['greeting' => 'hello'])
//	g, err := c.MakeWith("Greeter", map[string]any{"greeting": "hello"})
func (c *Container) MakeWith(abstract string, params map[string]any) (any, error) {
	if c.stack != nil && !c.stack.done.Load() {
		return c.resolve(abstract, params)
	}

	view := &Container{core: c.core, stack: newResolutionStack()}
	defer view.stack.done.Store(true)

	inst, err := view.resolve(abstract, params)
	if err != nil {
		c.core.metrics.failed(err)
	}
	return inst, err
}

// MustMake is like Make but panics on error.
func (c *Container) MustMake(abstract string) any {
	inst, err := c.Make(abstract)
	if err != nil {
		panic(err)
	}
	return inst
}

// resolve is the recursive resolver shared by Make and recipe parameters.
// Every id pushed here is popped on return, success or failure.
func (c *Container) resolve(abstract string, params map[string]any) (any, error) {
	co := c.core
	co.metrics.made()

	if err := c.loadDeferred(abstract); err != nil {
		return nil, err
	}
	co.mu.RLock()
	key := co.canonical(abstract)
	co.mu.RUnlock()
	if key != abstract {
		if err := c.loadDeferred(key); err != nil {
			return nil, err
		}
	}

	ctxFactory, hasContextual := co.contextualFor(c.stack.top(), abstract, key)
	needsContextualBuild := hasContextual || len(params) > 0

	if !needsContextualBuild {
		if inst, ok := co.cachedInstance(key); ok {
			co.metrics.hit()
			return inst, nil
		}
	}

	if err := c.stack.push(key, co.maxDepth); err != nil {
		return nil, err
	}
	defer c.stack.pop()

	b, bound := co.binding(key)

	var (
		obj any
		err error
	)
	switch {
	case hasContextual:
		obj, err = c.runFactory(key, ctxFactory)
	case bound && b.Factory != nil:
		obj, err = c.runFactory(key, b.Factory)
	case bound && b.Concrete != key:
		// interface → implementation: resolve the concrete as its own abstract
		obj, err = c.resolve(b.Concrete, params)
	default:
		obj, err = c.build(key, params)
	}
	if err != nil {
		return nil, err
	}

	if obj, err = c.applyExtenders(key, obj); err != nil {
		return nil, err
	}

	if bound && b.Shared && !needsContextualBuild {
		obj = co.storeShared(key, obj)
	}

	co.mu.Lock()
	co.resolved[key] = true
	co.mu.Unlock()

	co.metrics.built()
	co.trace("resolved", key, map[string]any{"depth": c.stack.depth(), "shared": b.Shared})
	c.fireResolving(key, obj)
	return obj, nil
}

// runFactory executes a factory with the resolution-scoped container.
func (c *Container) runFactory(key string, f Factory) (any, error) {
	done := c.core.metrics.timeBuild()
	obj, err := f(c)
	done()
	if err != nil {
		return nil, wrapBuildError(err, key)
	}
	return obj, nil
}

// wrapBuildError adds the abstract to errors coming from user code. Container
// diagnostics already name their abstract and pass through untouched.
func wrapBuildError(err error, abstract string) error {
	if isResolutionError(err) {
		return err
	}
	return errors.Wrapf(err, "container: building [%s]", abstract)
}

// knows reports whether id can be resolved here: registered, defined, or
// contextually bound for the type currently being built.
func (c *Container) knows(id string) bool {
	if c.Has(id) {
		return true
	}
	_, ok := c.core.contextualFor(c.stack.top(), id, c.Canonical(id))
	return ok
}

func (co *core) binding(key string) (Binding, bool) {
	co.mu.RLock()
	defer co.mu.RUnlock()
	b, ok := co.bindings[key]
	return b, ok
}

func (co *core) cachedInstance(key string) (any, bool) {
	co.mu.RLock()
	defer co.mu.RUnlock()
	inst, ok := co.instances[key]
	return inst, ok
}

// storeShared caches obj unless another resolution stored first, in which
// case the winner is returned so every caller sees one instance.
func (co *core) storeShared(key string, obj any) any {
	co.mu.Lock()
	defer co.mu.Unlock()
	if existing, ok := co.instances[key]; ok {
		return existing
	}
	co.instances[key] = obj
	return obj
}

// ── Lookup ────────────────────────────────────────────────────────────────────

// Has reports whether abstract can be resolved: a binding, a cached
// instance, a deferred loader or a defined type exists for its canonical id.
func (c *Container) Has(abstract string) bool {
	co := c.core
	co.mu.RLock()
	defer co.mu.RUnlock()
	key := co.canonical(abstract)
	if co.boundLocked(key) {
		return true
	}
	_, defined := co.types[key]
	return defined
}

// Bound returns true if an abstract has been registered (binding, instance,
// alias or deferred loader).
//
//	// Laravel: $app->bound(UserRepository::class)
func (c *Container) Bound(abstract string) bool {
	co := c.core
	co.mu.RLock()
	defer co.mu.RUnlock()
	if _, ok := co.aliases[abstract]; ok {
		return true
	}
	return co.boundLocked(abstract)
}

func (co *core) boundLocked(key string) bool {
	if _, ok := co.bindings[key]; ok {
		return true
	}
	if _, ok := co.instances[key]; ok {
		return true
	}
	_, ok := co.deferred[key]
	return ok
}

// HasBinding reports whether a binding is registered for the canonical id.
func (c *Container) HasBinding(abstract string) bool {
	_, ok := c.Binding(abstract)
	return ok
}

// Binding returns the binding registered for the canonical id.
func (c *Container) Binding(abstract string) (Binding, bool) {
	c.core.mu.RLock()
	defer c.core.mu.RUnlock()
	b, ok := c.core.bindings[c.core.canonical(abstract)]
	return b, ok
}

// CachedInstance returns the shared instance cached for the canonical id.
func (c *Container) CachedInstance(abstract string) (any, bool) {
	c.core.mu.RLock()
	defer c.core.mu.RUnlock()
	inst, ok := c.core.instances[c.core.canonical(abstract)]
	return inst, ok
}

// Resolved returns true if the abstract has been resolved at least once.
//
//	// Laravel: $app->resolved(Cache::class)
func (c *Container) Resolved(abstract string) bool {
	c.core.mu.RLock()
	defer c.core.mu.RUnlock()
	key := c.core.canonical(abstract)
	if c.core.resolved[key] {
		return true
	}
	_, ok := c.core.instances[key]
	return ok
}

// IsShared reports whether abstract resolves to a single shared instance.
//
//	// Laravel: $app->isShared(Cache::class)
func (c *Container) IsShared(abstract string) bool {
	c.core.mu.RLock()
	defer c.core.mu.RUnlock()
	key := c.core.canonical(abstract)
	if _, ok := c.core.instances[key]; ok {
		return true
	}
	return c.core.bindings[key].Shared
}

// IsAlias reports whether name is registered as an alias.
func (c *Container) IsAlias(name string) bool {
	c.core.mu.RLock()
	defer c.core.mu.RUnlock()
	_, ok := c.core.aliases[name]
	return ok
}

// Bindings returns all registered abstract keys, sorted.
func (c *Container) Bindings() []string {
	c.core.mu.RLock()
	defer c.core.mu.RUnlock()
	out := make([]string, 0, len(c.core.bindings)+len(c.core.instances))
	for k := range c.core.bindings {
		out = append(out, k)
	}
	for k := range c.core.instances {
		if _, already := c.core.bindings[k]; !already {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Aliases returns a copy of the alias table (alias → target).
func (c *Container) Aliases() map[string]string {
	c.core.mu.RLock()
	defer c.core.mu.RUnlock()
	out := make(map[string]string, len(c.core.aliases))
	for k, v := range c.core.aliases {
		out[k] = v
	}
	return out
}

// Types returns all defined type names, sorted.
func (c *Container) Types() []string {
	c.core.mu.RLock()
	defer c.core.mu.RUnlock()
	out := make([]string, 0, len(c.core.types))
	for k := range c.core.types {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// Rebinding registers a callback fired whenever an already-resolved abstract
// is re-bound or receives a new instance.
//
//	// Laravel: $app->rebinding(UserRepository::class, fn($app, $repo) => ...)
func (c *Container) Rebinding(abstract string, cb func(c *Container, instance any)) {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	key := c.core.canonical(abstract)
	c.core.reboundCallbacks[key] = append(c.core.reboundCallbacks[key], cb)
}

// Resolving registers a callback fired after each build of abstract.
//
//	// Laravel: $app->resolving(Cache::class, fn($cache, $app) => ...)
func (c *Container) Resolving(abstract string, cb func(instance any, c *Container)) {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	key := c.core.canonical(abstract)
	c.core.resolvingCallbacks[key] = append(c.core.resolvingCallbacks[key], cb)
}

// AfterResolving registers a callback fired after any abstract is built.
//
//	// Laravel: $app->afterResolving(fn($object, $app) => ...)
func (c *Container) AfterResolving(cb func(abstract string, instance any)) {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	c.core.afterResolving = append(c.core.afterResolving, cb)
}

// rebound re-resolves abstract for its rebinding listeners. There is no
// caller to hand a failure to, so it is logged instead.
func (c *Container) rebound(abstract string) {
	co := c.core
	co.mu.RLock()
	cbs := co.reboundCallbacks[co.canonical(abstract)]
	co.mu.RUnlock()
	if len(cbs) == 0 {
		return
	}

	inst, err := c.Make(abstract)
	if err != nil {
		co.log.WithField("container", co.id).WithField("abstract", abstract).
			WithError(err).Warn("rebinding skipped")
		return
	}
	for _, cb := range cbs {
		cb(c, inst)
	}
}

func (c *Container) fireResolving(key string, instance any) {
	c.core.mu.RLock()
	cbs := c.core.resolvingCallbacks[key]
	after := c.core.afterResolving
	c.core.mu.RUnlock()

	for _, cb := range cbs {
		cb(instance, c)
	}
	for _, cb := range after {
		cb(key, instance)
	}
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a stable
// abstract key when working with interfaces.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "main.UserRepository"
//	c.Singleton(key, factory)
//	repo, err := container.Resolve[UserRepository](c, key)
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Make and type-asserts the result.
//
//	// Instead of: raw, err := c.Make("db"); db := raw.(*sql.DB)
//	// Write:      db, err := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](c *Container, abstract string) (T, error) {
	var zero T
	instance, err := c.Make(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, errors.Errorf("container: Resolve[%s]: [%s] resolved to %T",
			reflect.TypeOf((*T)(nil)).Elem(), abstract, instance)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, abstract string) T {
	typed, err := Resolve[T](c, abstract)
	if err != nil {
		panic(err)
	}
	return typed
}
