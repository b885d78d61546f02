package routing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-ioc/framework/container"
)

// Router wraps chi.Router with Laravel-style helpers.
type Router struct {
	mux chi.Router
	log logrus.FieldLogger
}

// Option configures a Router built by New.
type Option func(*Router)

// WithLogger writes one access-log line per request and reports handlers
// that could not be resolved from the container.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Router) { r.log = log }
}

// New creates a Router with sane defaults (RequestID, RealIP, Recoverer).
func New(opts ...Option) *Router {
	r := &Router{mux: chi.NewRouter()}
	for _, opt := range opts {
		opt(r)
	}
	r.mux.Use(middleware.RequestID)
	r.mux.Use(middleware.RealIP)
	if r.log != nil {
		r.mux.Use(AccessLog(r.log))
	}
	r.mux.Use(middleware.Recoverer)
	return r
}

// ── HTTP verbs ───────────────────────────────────────────────────────────────

func (r *Router) Get(pattern string, h http.HandlerFunc)    { r.mux.Get(pattern, h) }
func (r *Router) Post(pattern string, h http.HandlerFunc)   { r.mux.Post(pattern, h) }
func (r *Router) Put(pattern string, h http.HandlerFunc)    { r.mux.Put(pattern, h) }
func (r *Router) Patch(pattern string, h http.HandlerFunc)  { r.mux.Patch(pattern, h) }
func (r *Router) Delete(pattern string, h http.HandlerFunc) { r.mux.Delete(pattern, h) }

// Mount attaches another handler under pattern.
func (r *Router) Mount(pattern string, h http.Handler) { r.mux.Mount(pattern, h) }

// ── Groups & Prefixes ────────────────────────────────────────────────────────

// Group creates an inline group — Laravel: Route::group([], fn)
func (r *Router) Group(fn func(r *Router)) {
	r.mux.Group(func(mx chi.Router) {
		fn(&Router{mux: mx, log: r.log})
	})
}

// Prefix creates a sub-router with a URL prefix — Laravel: Route::prefix('/api')
func (r *Router) Prefix(pattern string, fn func(r *Router)) {
	r.mux.Route(pattern, func(mx chi.Router) {
		fn(&Router{mux: mx, log: r.log})
	})
}

// ── Middleware ───────────────────────────────────────────────────────────────

// Middleware adds one or more middleware to the router.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// ── Container-resolved routes ────────────────────────────────────────────────

// Resolved routes every method on pattern to the http.Handler bound under
// abstract, resolved from c on each request. Transient bindings give every
// request a fresh controller; singletons are built once on first hit.
//
//	// Laravel: Route::any('/photos', PhotoController::class)
//	c.Bind("PhotoController", func(c *container.Container) any { return &PhotoController{} })
//	router.Resolved("/photos", c, "PhotoController")
func (r *Router) Resolved(pattern string, c *container.Container, abstract string) {
	r.mux.Handle(pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h, err := container.Resolve[http.Handler](c, abstract)
		if err != nil {
			if r.log != nil {
				r.log.WithError(err).WithField("abstract", abstract).Error("route handler not resolvable")
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		h.ServeHTTP(w, req)
	}))
}

// ── Named / Resource routes ──────────────────────────────────────────────────

// Resource registers standard RESTful routes for a resource controller.
//
//	GET    /photos           → c.Index
//	POST   /photos           → c.Store
//	GET    /photos/{id}      → c.Show
//	PUT    /photos/{id}      → c.Update
//	DELETE /photos/{id}      → c.Destroy
type ResourceController interface {
	Index(w http.ResponseWriter, r *http.Request)
	Store(w http.ResponseWriter, r *http.Request)
	Show(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Destroy(w http.ResponseWriter, r *http.Request)
}

func (r *Router) Resource(pattern string, c ResourceController) {
	r.mux.Get(pattern, c.Index)
	r.mux.Post(pattern, c.Store)
	r.mux.Get(pattern+"/{id}", c.Show)
	r.mux.Put(pattern+"/{id}", c.Update)
	r.mux.Patch(pattern+"/{id}", c.Update)
	r.mux.Delete(pattern+"/{id}", c.Destroy)
}

// ── Params ───────────────────────────────────────────────────────────────────

// Param extracts a URL param — equivalent to $request->route('id')
func Param(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// ── Serve ────────────────────────────────────────────────────────────────────

// ServeHTTP implements http.Handler so Router can be passed to http.ListenAndServe.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler returns the underlying http.Handler (for testing etc.).
func (r *Router) Handler() http.Handler {
	return r.mux
}
