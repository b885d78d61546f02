//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks github.com/km-arc/go-ioc/framework/container ServiceProvider

// Package container provides a Laravel-compatible IoC (Inversion of Control)
// container and Service Provider system for Go.
//
// # Overview
//
// The container manages the instantiation and lifecycle of your application's
// dependencies. It supports transient bindings, singletons, pre-built instances,
// aliases, tags, contextual bindings, extension (decoration) and automatic
// construction of defined types.
//
// It mirrors the public API of Laravel's Illuminate\Container\Container as
// closely as Go's type system allows. Because Go has no runtime constructor
// reflection, auto-wiring works from explicit recipes registered with Define.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot()        — safe to resolve everything after this
//  4. Serve requests
//
// Registrations are expected during bootstrap. Make is safe for concurrent
// use; every top-level Make gets its own resolution stack.
//
// # Bindings
//
//	// Transient — new instance every Make()
//	// Laravel: $app->bind(Foo::class, fn($app) => new Foo)
//	c.Bind("Foo", func(c *container.Container) any { return &Foo{} })
//
//	// Singleton — created once, reused
//	// Laravel: $app->singleton(Cache::class, fn($app) => new RedisCache)
//	c.Singleton("cache", func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[*Config](c, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return cache.NewRedis(cfg), nil
//	})
//
//	// Interface → implementation
//	// Laravel: $app->bind(Cache::class, RedisCache::class)
//	c.Bind("cache", "RedisCache")
//
//	// Pre-built value
//	// Laravel: $app->instance(Config::class, $config)
//	c.Instance("config", myConfig)
//
//	// Alias
//	// Laravel: $app->alias(Cache::class, 'cache')
//	err := c.Alias("cache", "cacheManager")
//
// # Defined types (auto-wiring)
//
//	// Laravel: class Greeter { function __construct(Database $db, string $greeting = 'hi') }
//	c.Define("Greeter", container.Recipe{
//	    Params: []container.Param{container.Dep("db", "db"), container.Optional("greeting", "hi")},
//	    New: func(args container.Args) (any, error) {
//	        return &Greeter{DB: args[0].(*DB), Greeting: args.String(1)}, nil
//	    },
//	})
//	g, err := c.Make("Greeter") // no binding needed
//
// # Resolving
//
//	// Untyped
//	// Laravel: $app->make(Cache::class)
//	raw, err := c.Make("cache")
//
//	// Generic (preferred — no type assertion required)
//	cache, err := container.Resolve[*RedisCache](c, "cache")
//
//	// Parameter overrides
//	// Laravel: $app->makeWith(Greeter::class, ['greeting' => 'hello'])
//	g, err := c.MakeWith("Greeter", map[string]any{"greeting": "hello"})
//
// # Errors
//
// Make fails with exactly one of ErrClassNotFound, ErrBindingResolution,
// ErrCircularDependency or ErrDepthExceeded (match with errors.Is, inspect
// with errors.As on the typed errors), or with a factory's own error wrapped
// with the abstract being built. Alias fails with ErrLogic.
//
// # Contextual Binding
//
//	// Laravel: $app->when(PhotoController::class)
//	//              ->needs(Filesystem::class)
//	//              ->give(fn() => new S3Filesystem)
//	c.When("PhotoController").
//	    Needs("Filesystem").
//	    Give("S3Filesystem")
//
//	c.When("PhotoController").Needs("$storagePath").GiveValue("/tmp/photos")
//
// # Tags
//
//	// Laravel: $app->tag([CpuReport::class, MemReport::class], 'reports')
//	c.Tag([]string{"CpuReport", "MemReport"}, "reports")
//	reports, err := c.Tagged("reports")  // []any
//
// # Extend / Decorate
//
//	// Laravel: $app->extend(Logger::class, fn($logger, $app) => new TimestampLogger($logger))
//	err := c.Extend("logger", func(instance any, c *container.Container) (any, error) {
//	    return &TimestampLogger{Inner: instance.(*Logger)}, nil
//	})
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    app.Singleton("mailer", "SMTPMailer")
//	    return nil
//	}
//
//	registry := container.NewProviderRegistry(c)
//	if err := registry.Register(&AppServiceProvider{}); err != nil { ... }
//	if err := registry.Boot(); err != nil { ... }
//
// # Deferred Providers
//
//	type HeavyProvider struct{ container.BaseProvider }
//
//	func (p *HeavyProvider) IsDeferred() bool     { return true }
//	func (p *HeavyProvider) Provides() []string   { return []string{"heavy"} }
//	func (p *HeavyProvider) Register(app *container.Container) error {
//	    app.Singleton("heavy", func(c *container.Container) any {
//	        return heavySetup() // only called on first app.Make("heavy")
//	    })
//	    return nil
//	}
package container
