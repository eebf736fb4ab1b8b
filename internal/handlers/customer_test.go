package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"diamondadmin/internal/models"
	"diamondadmin/internal/store"
	"diamondadmin/internal/validation"
)

type customerListResponse struct {
	Items      []models.Customer `json:"items"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

func listCustomers(t *testing.T, h *CustomerHandler, rawQuery string) customerListResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/customers?"+rawQuery, nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var out customerListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestCustomerListDefaultSort(t *testing.T) {
	h := NewCustomerHandler(store.NewMemoryCustomers(0))
	out := listCustomers(t, h, "")
	if out.Total != 5 {
		t.Fatalf("total = %d, want 5", out.Total)
	}
	// Alphabetical by name: David, Emily, John, Michael, Sarah.
	if out.Items[0].Name != "David Wilson" || out.Items[4].Name != "Sarah Johnson" {
		t.Fatalf("order = %s..%s", out.Items[0].Name, out.Items[4].Name)
	}
}

func TestCustomerListSearch(t *testing.T) {
	h := NewCustomerHandler(store.NewMemoryCustomers(0))
	// Matches name, email or username.
	out := listCustomers(t, h, "q=sarah.j")
	if out.Total != 1 || out.Items[0].Username != "sarahj" {
		t.Fatalf("got %+v", out)
	}
	out = listCustomers(t, h, "q=davi")
	if out.Total != 2 {
		t.Fatalf("davi total = %d, want 2", out.Total)
	}
}

func TestCustomerListSortByDate(t *testing.T) {
	h := NewCustomerHandler(store.NewMemoryCustomers(0))
	out := listCustomers(t, h, "sort=dateJoined&dir=desc")
	if out.Items[0].DateJoined != "2024-03-01" {
		t.Fatalf("newest first, got %s", out.Items[0].DateJoined)
	}
	if out.Items[4].DateJoined != "2024-01-15" {
		t.Fatalf("oldest last, got %s", out.Items[4].DateJoined)
	}
}

func TestCustomerCreate(t *testing.T) {
	h := NewCustomerHandler(store.NewMemoryCustomers(0))
	body := `{"name":"Jane Doe","email":"jane@email.com","username":"janedoe",
		"password":"Passw0rd","confirmPassword":"Passw0rd"}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var created models.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.DateJoined != models.Today() {
		t.Fatalf("created = %+v", created)
	}
	if created.Status != models.CustomerActive {
		t.Fatalf("status = %s, want default Active", created.Status)
	}
	if created.LastLogin != nil {
		t.Fatalf("lastLogin = %v, want nil for a fresh account", created.LastLogin)
	}
	if strings.Contains(rec.Body.String(), "Passw0rd") {
		t.Fatal("password leaked into the response")
	}
}

func TestCustomerCreateValidation(t *testing.T) {
	h := NewCustomerHandler(store.NewMemoryCustomers(0))
	body := `{"name":"J","email":"not-an-email","username":"ab","password":"weak","confirmPassword":"other"}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"name":            "too_short",
		"email":           "invalid_email",
		"username":        "too_short",
		"password":        "password_too_short",
		"confirmPassword": "password_mismatch",
	}
	for field, code := range want {
		if resp.Details[field] != code {
			t.Errorf("%s code = %q, want %q", field, resp.Details[field], code)
		}
	}
}

func TestCustomerUpdate(t *testing.T) {
	h := NewCustomerHandler(store.NewMemoryCustomers(0))
	body := `{"status":"Inactive","email":"john.new@email.com"}`
	req := httptest.NewRequest(http.MethodPost, "/customers/update?id=1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var updated models.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.CustomerInactive || updated.Email != "john.new@email.com" {
		t.Fatalf("updated = %+v", updated)
	}
	// Untouched fields survive the patch.
	if updated.Name != "John Smith" || updated.DateJoined != "2024-01-15" {
		t.Fatalf("patch clobbered fields: %+v", updated)
	}
}

func TestCustomerDelete(t *testing.T) {
	h := NewCustomerHandler(store.NewMemoryCustomers(0))
	req := httptest.NewRequest(http.MethodPost, "/customers/delete?id=2", nil)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if out := listCustomers(t, h, ""); out.Total != 4 {
		t.Fatalf("total = %d, want 4", out.Total)
	}
	req = httptest.NewRequest(http.MethodPost, "/customers/delete?id=2", nil)
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestCustomerResetPasswordByEmail(t *testing.T) {
	h := NewCustomerHandler(store.NewMemoryCustomers(0))
	req := httptest.NewRequest(http.MethodPost, "/customers/reset-password?id=1", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.ResetPassword(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Customer          models.Customer `json:"customer"`
		GeneratedPassword string          `json:"generatedPassword"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Customer.LastPasswordReset == nil || *resp.Customer.LastPasswordReset != models.Today() {
		t.Fatalf("lastPasswordReset = %v", resp.Customer.LastPasswordReset)
	}
	if resp.GeneratedPassword != "" {
		t.Fatal("email method must not generate a password")
	}
}

func TestCustomerResetPasswordManual(t *testing.T) {
	h := NewCustomerHandler(store.NewMemoryCustomers(0))
	body := `{"method":"manual","newPassword":"NewPassw0rd"}`
	req := httptest.NewRequest(http.MethodPost, "/customers/reset-password?id=1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ResetPassword(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "NewPassw0rd") {
		t.Fatal("manual password leaked into the response")
	}
}

func TestCustomerResetPasswordManualWeak(t *testing.T) {
	h := NewCustomerHandler(store.NewMemoryCustomers(0))
	body := `{"method":"manual","newPassword":"weak"}`
	req := httptest.NewRequest(http.MethodPost, "/customers/reset-password?id=1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ResetPassword(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "password_too_short") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestCustomerResetPasswordGenerate(t *testing.T) {
	h := NewCustomerHandler(store.NewMemoryCustomers(0))
	body := `{"method":"manual","generate":true}`
	req := httptest.NewRequest(http.MethodPost, "/customers/reset-password?id=1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ResetPassword(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		GeneratedPassword string `json:"generatedPassword"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.GeneratedPassword) != 12 {
		t.Fatalf("generated length = %d, want 12", len(resp.GeneratedPassword))
	}
	if !validation.PasswordOK(resp.GeneratedPassword) {
		t.Fatalf("generated password %q fails the policy", resp.GeneratedPassword)
	}
}

func TestCustomerResetPasswordInvalidMethod(t *testing.T) {
	h := NewCustomerHandler(store.NewMemoryCustomers(0))
	body := `{"method":"carrier-pigeon"}`
	req := httptest.NewRequest(http.MethodPost, "/customers/reset-password?id=1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ResetPassword(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_option") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestGeneratePassword(t *testing.T) {
	for i := 0; i < 20; i++ {
		p := generatePassword(12)
		if len(p) != 12 {
			t.Fatalf("length = %d", len(p))
		}
		if !validation.PasswordOK(p) {
			t.Fatalf("%q fails the policy", p)
		}
		for _, c := range p {
			if !strings.ContainsRune(passwordCharset, c) {
				t.Fatalf("character %q outside charset", c)
			}
		}
	}
}
