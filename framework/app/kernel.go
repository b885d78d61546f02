package app

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	gohttp "github.com/km-arc/go-ioc/framework/http"
	"github.com/km-arc/go-ioc/framework/logging"
	"github.com/km-arc/go-ioc/framework/providers"
	"github.com/km-arc/go-ioc/framework/routing"
)

// Version of the framework.
const Version = "0.1.0"

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Bind(), app.Singleton(), app.Register() directly —
// exactly like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	cfg      *config.Config
	log      *logrus.Logger
	registry metrics.Registry
	inspect  sync.Once
}

// New loads configuration and creates the application with the framework
// core providers registered (config, log, metrics, router).
//
// The container itself is tuned from config.Container: CONTAINER_MAX_DEPTH
// bounds resolution, CONTAINER_METRICS enables counters, CONTAINER_TRACE
// turns on debug traces.
func New(envFiles ...string) (*Application, error) {
	return NewWithConfig(config.Load(envFiles...))
}

// NewWithConfig is New with an already loaded configuration.
func NewWithConfig(cfg *config.Config) (*Application, error) {
	log := logging.New(cfg.Log)
	if cfg.Container.Trace {
		log.SetLevel(logrus.DebugLevel)
	}

	opts := []container.Option{
		container.WithLogger(log),
		container.WithMaxDepth(cfg.Container.MaxDepth),
	}
	var registry metrics.Registry
	if cfg.Container.Metrics {
		registry = metrics.NewRegistry()
		opts = append(opts, container.WithMetrics(registry))
	}

	c := container.New(opts...)
	app := &Application{
		Container: c,
		Providers: container.NewProviderRegistry(c),
		cfg:       cfg,
		log:       log,
		registry:  registry,
	}
	c.Instance("app", app)

	core := []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LogServiceProvider{Logger: log},
		&providers.RoutingServiceProvider{},
	}
	if registry != nil {
		core = append(core, &providers.MetricsServiceProvider{Registry: registry})
	}
	for _, p := range core {
		if err := app.Register(p); err != nil {
			return nil, errors.Wrapf(err, "registering %T", p)
		}
	}
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config returns the configuration the application was created with.
func (a *Application) Config() *config.Config { return a.cfg }

// Log returns the application logger.
func (a *Application) Log() *logrus.Logger { return a.log }

// Metrics returns the container metrics registry, nil when disabled.
func (a *Application) Metrics() metrics.Registry { return a.registry }

// Router resolves *routing.Router from the container.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container, providers.Router)
}

// Handler boots the application if needed and returns the router with the
// container inspector mounted in debug mode.
func (a *Application) Handler() (http.Handler, error) {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return nil, errors.Wrap(err, "booting providers")
		}
	}
	router, err := a.Router()
	if err != nil {
		return nil, err
	}
	if a.IsDebug() {
		a.inspect.Do(func() {
			gohttp.NewInspector(a.Container, a.registry).Routes(router)
		})
	}
	return router, nil
}

// Run boots the application (if needed) and serves HTTP on APP_PORT until
// ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	handler, err := a.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: ":" + a.cfg.App.Port, Handler: handler}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	a.log.WithFields(logrus.Fields{
		"app":  a.cfg.App.Name,
		"addr": srv.Addr,
		"env":  a.cfg.App.Env,
	}).Info("server started")

	select {
	case err := <-errc:
		return errors.Wrap(err, "server error")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.cfg.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.cfg.App.Debug }
