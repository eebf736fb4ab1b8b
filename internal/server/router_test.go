package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"diamondadmin/internal/config"
	"diamondadmin/internal/handlers"
	"diamondadmin/internal/store"
)

func testHandler() http.Handler {
	products := store.NewMemoryProducts(0)
	customers := store.NewMemoryCustomers(0)
	return New(Deps{
		Products:  handlers.NewProductHandler(products),
		Customers: handlers.NewCustomerHandler(customers),
		Dashboard: handlers.NewDashboardHandler(products, customers),
		Auth:      handlers.NewAuthHandler(config.Config{AdminUsername: "admin", AdminPassword: "admin"}),
	})
}

func login(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d body = %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestHealth(t *testing.T) {
	h := testHandler()
	for _, path := range []string{"/health", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestMetricsExposed(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	h := testHandler()
	paths := []string{"/dashboard", "/products", "/customers"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "unauthorized") {
			t.Errorf("%s body = %s", path, rec.Body.String())
		}
	}
}

func TestLoginThenListProducts(t *testing.T) {
	h := testHandler()
	cookie := login(t, h)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Total != 7 {
		t.Fatalf("total = %d, want 7", out.Total)
	}
}

func TestDashboardStats(t *testing.T) {
	h := testHandler()
	cookie := login(t, h)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var out struct {
		TotalProducts     int     `json:"totalProducts"`
		AvailableProducts int     `json:"availableProducts"`
		SoldOutProducts   int     `json:"soldOutProducts"`
		TotalCustomers    int     `json:"totalCustomers"`
		ActiveCustomers   int     `json:"activeCustomers"`
		InventoryValue    float64 `json:"inventoryValue"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.TotalProducts != 7 || out.AvailableProducts != 5 || out.SoldOutProducts != 2 {
		t.Fatalf("products: %+v", out)
	}
	if out.TotalCustomers != 5 || out.ActiveCustomers != 4 {
		t.Fatalf("customers: %+v", out)
	}
	// Sum of the available fixtures' total prices.
	if out.InventoryValue != 21250+11160+8700+8820+5760 {
		t.Fatalf("inventoryValue = %v", out.InventoryValue)
	}
}

func TestMethodNotAllowedOnCollection(t *testing.T) {
	h := testHandler()
	cookie := login(t, h)

	req := httptest.NewRequest(http.MethodDelete, "/products", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if rec.Header().Get("Allow") != "GET,POST" {
		t.Fatalf("Allow = %s", rec.Header().Get("Allow"))
	}
}

func TestUnknownPath(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRootInfo(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Diamond Admin API") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestCustomerResetPasswordFlow(t *testing.T) {
	h := testHandler()
	cookie := login(t, h)

	req := httptest.NewRequest(http.MethodPost, "/customers/reset-password?id=1", strings.NewReader(`{"method":"email"}`))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "lastPasswordReset") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
