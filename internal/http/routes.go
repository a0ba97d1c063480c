package httpx

import (
	"bytes"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	carcare "github.com/carcarepro/carcare-ui"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth  AuthServiceInterface
	Admin AdminDirectoryService
	Maint MaintenanceDashboardService

	CookieDomain string
	CookieName   string
	BaseURL      string // externally visible origin, for OAuth callbacks
	IsDev        bool   // serve templates and assets from disk for hot reloading
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	renderer := setupRenderer(services)

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		T:            renderer,
		CookieDomain: services.CookieDomain,
		CookieName:   services.CookieName,
		BaseURL:      services.BaseURL,
		Logger:       services.Logger,
	}
	uiHandlers := &UIHandlers{
		T:      renderer,
		Admin:  services.Admin,
		Maint:  services.Maint,
		IsDev:  services.IsDev,
		Logger: services.Logger,
	}

	registerAuthRoutes(mux, authHandlers)
	registerUIRoutes(mux, uiHandlers, services)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	mux.Handle("GET /static/", staticWithFallback(services.IsDev))

	handler := &notFoundHandler{mux: mux, uiHandlers: uiHandlers}
	return BrowserDetection()(handler)
}

// setupRenderer builds the template renderer. In dev mode templates and
// the asset manifest load from disk; in production they come from the
// embedded filesystems.
func setupRenderer(services RouterServices) *TemplateRenderer {
	var (
		templateFS fs.FS
		resolver   *AssetResolver
		err        error
	)

	diskManifestPath := filepath.Join("frontend", "static", "manifest.json")

	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
		resolver, err = NewAssetResolverFromDisk(diskManifestPath)
		if err != nil {
			log.Printf("failed to load asset manifest %s: %v; falling back to logical asset names",
				diskManifestPath, err)
		}
	} else {
		templateFS, err = fs.Sub(carcare.TemplateFS, "frontend/templates")
		if err != nil {
			log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
			templateFS = os.DirFS(TemplatePathFromRoot)
		}
		resolver = setupProdResolver(diskManifestPath)
	}

	if resolver == nil {
		resolver = &AssetResolver{}
	}

	tr, rendererErr := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Resolver:   resolver,
		Logger:     services.Logger,
	})
	if rendererErr != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", rendererErr))
		} else {
			log.Printf("ERROR: failed to create template renderer: %v", rendererErr)
		}
		return nil
	}
	return tr
}

func setupProdResolver(diskManifestPath string) *AssetResolver {
	staticSub, err := fs.Sub(carcare.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		return tryDiskManifest(diskManifestPath)
	}

	resolver, err := NewAssetResolverFromFS(staticSub, "manifest.json")
	if err != nil {
		log.Printf("failed to load asset manifest from embedded FS: %v", err)
		return tryDiskManifest(diskManifestPath)
	}
	return resolver
}

func tryDiskManifest(diskManifestPath string) *AssetResolver {
	resolver, err := NewAssetResolverFromDisk(diskManifestPath)
	if err != nil {
		log.Printf("failed to load asset manifest %s: %v; falling back to logical asset names",
			diskManifestPath, err)
	}
	return resolver
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.LoginSubmit)
	mux.HandleFunc("GET /auth/google", h.GoogleLogin)
	mux.HandleFunc("GET /auth/google/callback", h.GoogleCallback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

// registerUIRoutes wires the session-guarded dashboard pages.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, services RouterServices) {
	guard := GuardConfig{Auth: services.Auth, CookieName: services.CookieName}
	wrap := RequireSession(guard)

	csrf := CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})
	adminGuard := RequireAdmin(guard)
	wrapAdmin := func(hh http.Handler) http.Handler {
		return adminGuard(csrf(hh))
	}

	mux.Handle("GET /{$}", wrap(http.HandlerFunc(h.Maintenance)))
	mux.Handle("GET /dashboard", wrap(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /maintenance/status", wrap(http.HandlerFunc(h.MaintenanceStatusFragment)))

	mux.Handle("GET /admin", wrapAdmin(http.HandlerFunc(h.AdminPage)))
	mux.Handle("GET /admin/users", wrapAdmin(http.HandlerFunc(h.AdminUsersFragment)))
	mux.Handle("POST /admin/users", wrapAdmin(http.HandlerFunc(h.AdminUserCreate)))
	mux.Handle("POST /admin/users/{email}/edit", wrapAdmin(http.HandlerFunc(h.AdminUserEdit)))
	mux.Handle("POST /admin/users/{email}/delete", wrapAdmin(http.HandlerFunc(h.AdminUserDelete)))
	mux.Handle("POST /admin/email-config/test", wrapAdmin(http.HandlerFunc(h.AdminEmailConfigTest)))
	mux.Handle("POST /admin/email-config/send-test", wrapAdmin(http.HandlerFunc(h.AdminSendTestEmail)))
	mux.Handle("POST /admin/settings", wrapAdmin(http.HandlerFunc(h.AdminSettingsSave)))
	mux.Handle("GET /admin/logs", wrapAdmin(http.HandlerFunc(h.AdminLogsFragment)))
}

// staticWithFallback serves /static/* assets.
// Dev mode serves from disk for hot reloading; production serves the
// embedded FS.
func staticWithFallback(isDev bool) http.Handler {
	if isDev {
		mfs := multiFS{
			http.Dir("frontend/static"),
			http.Dir("frontend/public"),
		}
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(mfs)))
	}

	staticSub, err := fs.Sub(carcare.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
}

// multiFS provides fallback filesystem lookup for dev mode.
type multiFS []http.FileSystem

func (m multiFS) Open(name string) (http.File, error) {
	for _, fsys := range m {
		f, err := fsys.Open(name)
		if err == nil {
			return f, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, os.ErrNotExist
}

// staticWithCacheHeaders adds cache headers: content-hashed assets cache
// for a year, everything else not at all.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	hashedFilePattern := regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hashedFilePattern.MatchString(r.URL.Path) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps the ServeMux to provide a custom 404 page.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	h.mux.ServeHTTP(cw, r)

	if cw.status == http.StatusNotFound {
		// Missing static assets keep the default file server response.
		if strings.HasPrefix(r.URL.Path, "/static/") {
			cw.flushTo(w)
			return
		}
		if h.uiHandlers != nil {
			h.uiHandlers.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}

	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		log.Printf("failed to write captured response: %v", err)
	}
}
