package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"diamondadmin/internal/auth"
	"diamondadmin/internal/handlers"
	"diamondadmin/internal/httpx"
)

// Deps carries the wired handlers. DB is nil when the memory store is
// active; /healthz then skips the database ping.
type Deps struct {
	Products  *handlers.ProductHandler
	Customers *handlers.CustomerHandler
	Dashboard *handlers.DashboardHandler
	Auth      *handlers.AuthHandler
	DB        *gorm.DB
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(d Deps) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if d.DB != nil {
			if err := d.DB.Exec("SELECT 1").Error; err != nil {
				httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", nil)
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Auth endpoints stay open; everything below requires a session
	// cookie or a bearer token.
	d.Auth.Register(mux)

	protect := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	mux.Handle("/dashboard", protect(d.Dashboard.Stats))

	// Product endpoints. List/Create via /products. Update/Delete via
	// /products/update & /products/delete for simplicity.
	mux.Handle("/products", protect(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Products.List(w, r)
		case http.MethodPost:
			d.Products.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))
	mux.Handle("/products/update", protect(d.Products.Update))
	mux.Handle("/products/delete", protect(d.Products.Delete))

	// Customer endpoints mirror the product surface plus password reset.
	mux.Handle("/customers", protect(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Customers.List(w, r)
		case http.MethodPost:
			d.Customers.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))
	mux.Handle("/customers/update", protect(d.Customers.Update))
	mux.Handle("/customers/delete", protect(d.Customers.Delete))
	mux.Handle("/customers/reset-password", protect(d.Customers.ResetPassword))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("Diamond Admin API")); werr != nil {
			_ = werr
		}
	})
	//revive:enable:unused-parameter

	return withRecover(withMetrics(withLogging(mux)))
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
