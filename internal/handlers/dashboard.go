package handlers

import (
	"net/http"

	"diamondadmin/internal/httpx"
	"diamondadmin/internal/models"
	"diamondadmin/internal/store"
)

type DashboardHandler struct {
	Products  store.ProductStore
	Customers store.CustomerStore
}

func NewDashboardHandler(p store.ProductStore, c store.CustomerStore) *DashboardHandler {
	return &DashboardHandler{Products: p, Customers: c}
}

// Stats summarizes the current inventory and accounts. Inventory value
// counts available stock only; sold-out diamonds are no longer assets.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	products, err := h.Products.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}
	customers, err := h.Customers.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}

	var available, soldOut int
	var value float64
	for _, p := range products {
		switch p.StockStatus {
		case models.StockAvailable:
			available++
			value += p.TotalPrice
		case models.StockSoldOut:
			soldOut++
		}
	}
	var active int
	for _, c := range customers {
		if c.Status == models.CustomerActive {
			active++
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"totalProducts":     len(products),
		"availableProducts": available,
		"soldOutProducts":   soldOut,
		"totalCustomers":    len(customers),
		"activeCustomers":   active,
		"inventoryValue":    value,
	})
}
