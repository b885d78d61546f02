package providers

import (
	"github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/logging"
	"github.com/km-arc/go-ioc/framework/routing"
)

// Abstract keys bound by the framework providers.
const (
	Config  = "config"
	Log     = "log"
	Metrics = "metrics"
	Router  = "router"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the application configuration as "config".
// When Config is nil it is loaded from EnvFiles on first resolution.
//
// Bound abstracts:
//   - "config"          → *config.Config
//   - "configuration"   → alias of "config"
//   - TypeKey(*config.Config) → alias of "config"
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
	Config   *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	if p.Config != nil {
		app.Instance(Config, p.Config)
	} else {
		envFiles := p.EnvFiles
		app.Singleton(Config, func(c *container.Container) any {
			return config.Load(envFiles...)
		})
	}
	if err := app.Alias(Config, "configuration"); err != nil {
		return err
	}
	return app.Alias(Config, container.TypeKey((*config.Config)(nil)))
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider binds the application logger.
//
// Bound abstracts:
//   - "log"     → *logrus.Logger built from config.Log, or Logger if set
//   - "logger"  → alias of "log"
//
// Laravel equivalent:
//
//	// Illuminate\Log\LogServiceProvider
//	$app->singleton('log', fn($app) => new LogManager($app));
type LogServiceProvider struct {
	container.BaseProvider
	Logger *logrus.Logger
}

func (p *LogServiceProvider) Register(app *container.Container) error {
	if p.Logger != nil {
		app.Instance(Log, p.Logger)
	} else {
		app.Singleton(Log, func(c *container.Container) (any, error) {
			cfg, err := container.Resolve[*config.Config](c, Config)
			if err != nil {
				return nil, err
			}
			return logging.New(cfg.Log), nil
		})
	}
	return app.Alias(Log, "logger")
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider binds the metrics registry the container reports to.
//
// Bound abstracts:
//   - "metrics" → metrics.Registry (Registry if set, else a fresh one)
type MetricsServiceProvider struct {
	container.BaseProvider
	Registry metrics.Registry
}

func (p *MetricsServiceProvider) Register(app *container.Container) error {
	registry := p.Registry
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	app.Instance(Metrics, registry)
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router. Routes are added by
// later providers in Boot, once "router" can be resolved.
//
// Bound abstracts:
//   - "router"  → *routing.Router, access-logged through "log" when bound
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	app.Singleton(Router, func(c *container.Container) (any, error) {
		if !c.Has(Log) {
			return routing.New(), nil
		}
		log, err := container.Resolve[logrus.FieldLogger](c, Log)
		if err != nil {
			return nil, err
		}
		return routing.New(routing.WithLogger(log)), nil
	})
	return nil
}
