package container_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/container/mocks"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     bool
}

func (p *eagerProvider) Register(app *container.Container) error {
	p.registerCalled = true
	app.Singleton("eager-svc", func(c *container.Container) any { return "eager" })
	return nil
}

func (p *eagerProvider) Boot(app *container.Container) error {
	p.bootCalled = true
	return nil
}

// deferredProvider is lazy — only registered when "deferred-svc" is first resolved.
type deferredProvider struct {
	container.BaseProvider
	registerCalled int
	bootCalled     bool
}

func (p *deferredProvider) Register(app *container.Container) error {
	p.registerCalled++
	app.Singleton("deferred-svc", func(c *container.Container) any { return "deferred-value" })
	return app.Alias("deferred-svc", "deferred")
}

func (p *deferredProvider) Boot(app *container.Container) error {
	p.bootCalled = true
	return nil
}

func (p *deferredProvider) IsDeferred() bool   { return true }
func (p *deferredProvider) Provides() []string { return []string{"deferred-svc"} }

// multiProvider registers multiple abstracts.
type multiProvider struct {
	container.BaseProvider
}

func (p *multiProvider) Register(app *container.Container) error {
	app.Singleton("alpha", func(c *container.Container) any { return "α" })
	app.Singleton("beta", func(c *container.Container) any { return "β" })
	return nil
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_EagerProvider_RegisterCalled(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	if err := reg.Register(p); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !p.registerCalled {
		t.Error("Register() should be called immediately for eager providers")
	}
}

func TestRegistry_EagerProvider_BootCalledAfterBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	_ = reg.Register(p)

	if p.bootCalled {
		t.Error("Boot() should NOT be called before registry.Boot()")
	}

	if err := reg.Boot(); err != nil {
		t.Fatalf("Boot: %v", err)
	}

	if !p.bootCalled {
		t.Error("Boot() should be called after registry.Boot()")
	}
}

func TestRegistry_EagerProvider_ServiceResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(&eagerProvider{})
	_ = reg.Boot()

	got := c.MustMake("eager-svc").(string)
	if got != "eager" {
		t.Errorf("eager-svc: got %q, want 'eager'", got)
	}
}

func TestRegistry_Boot_IdempotentCallsAreIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := mocks.NewMockServiceProvider(ctrl)
	p.EXPECT().IsDeferred().Return(false)
	p.EXPECT().Register(c).Return(nil)
	p.EXPECT().Boot(c).Return(nil).Times(1)

	_ = reg.Register(p)
	_ = reg.Boot()
	_ = reg.Boot() // second call should be no-op

	if !reg.Booted() {
		t.Error("Booted() should be true after Boot()")
	}
}

func TestRegistry_Booted_FalseBeforeBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	if reg.Booted() {
		t.Error("Booted() should be false before Boot()")
	}
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := mocks.NewMockServiceProvider(ctrl)
	p.EXPECT().IsDeferred().Return(false).Times(1)
	p.EXPECT().Register(gomock.Any()).Return(nil).Times(1)

	_ = reg.Register(p)
	_ = reg.Register(p) // second register of same instance

	if len(reg.Providers()) != 1 {
		t.Errorf("Providers(): got %d, want 1", len(reg.Providers()))
	}
}

func TestRegistry_RegisterError_Propagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := container.New()
	reg := container.NewProviderRegistry(c)
	boom := errors.New("missing APP_KEY")

	p := mocks.NewMockServiceProvider(ctrl)
	p.EXPECT().IsDeferred().Return(false)
	p.EXPECT().Register(c).Return(boom)

	if err := reg.Register(p); !errors.Is(err, boom) {
		t.Errorf("Register: got %v, want %v", err, boom)
	}
	if len(reg.Providers()) != 0 {
		t.Error("a provider that failed to register must not be booted later")
	}
}

func TestRegistry_BootError_StopsBooting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := container.New()
	reg := container.NewProviderRegistry(c)
	boom := errors.New("boot failed")

	first := mocks.NewMockServiceProvider(ctrl)
	first.EXPECT().IsDeferred().Return(false)
	first.EXPECT().Register(c).Return(nil)
	first.EXPECT().Boot(c).Return(boom)

	second := mocks.NewMockServiceProvider(ctrl)
	second.EXPECT().IsDeferred().Return(false)
	second.EXPECT().Register(c).Return(nil)
	second.EXPECT().Boot(gomock.Any()).Times(0)

	_ = reg.Register(first)
	_ = reg.Register(second)

	if err := reg.Boot(); !errors.Is(err, boom) {
		t.Errorf("Boot: got %v, want %v", err, boom)
	}
}

// ── Deferred providers ────────────────────────────────────────────────────────

func TestRegistry_DeferredProvider_NotRegisteredEagerly(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	_ = reg.Register(p)
	_ = reg.Boot()

	// Provider.Register should NOT have been called yet
	if p.registerCalled != 0 {
		t.Error("deferred provider Register() should not be called until Make()")
	}
	if !c.Has("deferred-svc") {
		t.Error("deferred abstracts should be reported by Has()")
	}
	if got := reg.Deferred(); len(got) != 1 || got[0] != "deferred-svc" {
		t.Errorf("Deferred(): got %v", got)
	}
}

func TestRegistry_DeferredProvider_RegisteredOnFirstMake(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	_ = reg.Register(p)
	_ = reg.Boot()

	// Trigger lazy load
	got := c.MustMake("deferred-svc").(string)
	if got != "deferred-value" {
		t.Errorf("deferred-svc: got %q, want 'deferred-value'", got)
	}
	if !p.bootCalled {
		t.Error("deferred provider loaded after Boot() should be booted")
	}

	// alias registered by the provider now works, provider loaded once
	if c.MustMake("deferred").(string) != "deferred-value" {
		t.Error("alias from deferred provider should resolve")
	}
	if p.registerCalled != 1 {
		t.Errorf("Register() calls: got %d, want 1", p.registerCalled)
	}
	if len(reg.Deferred()) != 0 {
		t.Error("Deferred() should be empty once loaded")
	}
}

// numberedProvider is a deferred provider for a single "svc<N>" abstract.
type numberedProvider struct {
	container.BaseProvider
	abstract string
	booted   *atomic.Int32
}

func (p *numberedProvider) Register(app *container.Container) error {
	abstract := p.abstract
	app.Singleton(abstract, func(c *container.Container) any { return abstract })
	return nil
}

func (p *numberedProvider) Boot(app *container.Container) error {
	p.booted.Add(1)
	return nil
}

func (p *numberedProvider) IsDeferred() bool   { return true }
func (p *numberedProvider) Provides() []string { return []string{p.abstract} }

func TestRegistry_DeferredProviders_ConcurrentFirstMake(t *testing.T) {
	const n = 200

	c := container.New()
	reg := container.NewProviderRegistry(c)
	var booted atomic.Int32
	for i := 0; i < n; i++ {
		require.NoError(t, reg.Register(&numberedProvider{abstract: fmt.Sprintf("svc%d", i), booted: &booted}))
	}
	require.NoError(t, reg.Boot())
	require.Len(t, reg.Deferred(), n)

	start := make(chan struct{})
	errs := make(chan error, 2*n)
	var wg sync.WaitGroup
	for i := 0; i < 2*n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			abstract := fmt.Sprintf("svc%d", i%n)
			got, err := c.Make(abstract)
			if err == nil && got != abstract {
				err = fmt.Errorf("%s resolved to %v", abstract, got)
			}
			errs <- err
			// readers racing with the loaders
			_ = reg.Deferred()
			_ = reg.Booted()
		}(i)
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Empty(t, reg.Deferred())
	assert.EqualValues(t, n, booted.Load(), "every deferred provider boots exactly once")
}

// ── Multiple providers ────────────────────────────────────────────────────────

func TestRegistry_MultipleProviders_AllServicesResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(&multiProvider{})
	_ = reg.Register(&eagerProvider{})
	_ = reg.Boot()

	if got := c.MustMake("alpha").(string); got != "α" {
		t.Errorf("alpha: got %q, want 'α'", got)
	}
	if got := c.MustMake("beta").(string); got != "β" {
		t.Errorf("beta: got %q, want 'β'", got)
	}
	if got := c.MustMake("eager-svc").(string); got != "eager" {
		t.Errorf("eager-svc: got %q, want 'eager'", got)
	}
}

// ── Providers list ────────────────────────────────────────────────────────────

func TestRegistry_Providers_ReturnsEagerOnes(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(&eagerProvider{})
	_ = reg.Register(&deferredProvider{}) // deferred — not in Providers()

	if len(reg.Providers()) != 1 {
		t.Errorf("Providers(): got %d, want 1 (eager only)", len(reg.Providers()))
	}
}

// ── BaseProvider defaults ─────────────────────────────────────────────────────

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	c := container.New()

	if err := p.Boot(c); err != nil {
		t.Errorf("BaseProvider.Boot() should return nil, got %v", err)
	}

	if p.IsDeferred() {
		t.Error("BaseProvider.IsDeferred() should be false")
	}
	if len(p.Provides()) != 0 {
		t.Error("BaseProvider.Provides() should return empty slice")
	}
}

// ── Boot after registration (late provider) ───────────────────────────────────

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Boot() // boot before registering

	p := &eagerProvider{}
	_ = reg.Register(p) // register after boot

	if !p.bootCalled {
		t.Error("provider registered after Boot() should be booted immediately")
	}
}
