package server

import (
	"backoffice/internal/handlers"
	"backoffice/internal/httpx"
	"backoffice/internal/services"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Product endpoints. List/Create via /products; the rest via flat
	// action paths for simplicity.
	ph := handlers.NewProductHandler(services.NewProductService(db))
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.HandleFunc("/products/get", onlyMethod(http.MethodGet, ph.Get))
	mux.HandleFunc("/products/update", onlyMethod(http.MethodPost, ph.Update))
	mux.HandleFunc("/products/delete", onlyMethod(http.MethodPost, ph.Delete))

	// Purchase order endpoints
	poh := handlers.NewPurchaseOrderHandler(services.NewPurchaseOrderService(db))
	mux.HandleFunc("/purchase-orders", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			poh.List(w, r)
		case http.MethodPost:
			poh.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.HandleFunc("/purchase-orders/get", onlyMethod(http.MethodGet, poh.Get))
	mux.HandleFunc("/purchase-orders/update", onlyMethod(http.MethodPost, poh.Update))
	mux.HandleFunc("/purchase-orders/delete", onlyMethod(http.MethodPost, poh.Delete))
	mux.HandleFunc("/purchase-orders/total", onlyMethod(http.MethodGet, poh.Total))
	mux.HandleFunc("/purchase-orders/items", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			poh.AddItem(w, r)
		case http.MethodDelete:
			poh.RemoveItem(w, r)
		default:
			methodNotAllowed(w, "POST,DELETE")
		}
	})

	// Invoice endpoints
	ih := handlers.NewInvoiceHandler(services.NewInvoiceService(db))
	mux.HandleFunc("/invoices", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ih.List(w, r)
		case http.MethodPost:
			ih.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.HandleFunc("/invoices/get", onlyMethod(http.MethodGet, ih.Get))
	mux.HandleFunc("/invoices/update", onlyMethod(http.MethodPost, ih.Update))
	mux.HandleFunc("/invoices/delete", onlyMethod(http.MethodPost, ih.Delete))
	mux.HandleFunc("/invoices/total", onlyMethod(http.MethodGet, ih.Total))
	mux.HandleFunc("/invoices/mark-paid", onlyMethod(http.MethodPost, ih.MarkPaid))
	mux.HandleFunc("/invoices/overdue", onlyMethod(http.MethodGet, ih.Overdue))
	mux.HandleFunc("/invoices/export", onlyMethod(http.MethodGet, ih.Export))
	mux.HandleFunc("/invoices/print", onlyMethod(http.MethodGet, ih.Print))
	mux.HandleFunc("/invoices/items", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			ih.AddItem(w, r)
		case http.MethodDelete:
			ih.RemoveItem(w, r)
		default:
			methodNotAllowed(w, "POST,DELETE")
		}
	})

	return withRecover(withLogging(mux))
}

func onlyMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			methodNotAllowed(w, method)
			return
		}
		next(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}

// withLogging tags each request with an id and logs method, path and
// duration.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s rid=%s", r.Method, r.URL.Path, time.Since(start), reqID)
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic recovered: %v", rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
