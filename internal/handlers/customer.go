package handlers

import (
	"crypto/rand"
	"encoding/json"
	"log"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"diamondadmin/internal/httpx"
	"diamondadmin/internal/listview"
	"diamondadmin/internal/models"
	"diamondadmin/internal/query"
	"diamondadmin/internal/store"
	"diamondadmin/internal/validation"
)

type CustomerHandler struct {
	Store store.CustomerStore
}

func NewCustomerHandler(s store.CustomerStore) *CustomerHandler { return &CustomerHandler{Store: s} }

// List searches across name, email and username and sorts by any column.
// The customer screen carries no exact-match filters.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	st := listview.NewState("name", query.Asc, defaultPageSize)
	q := r.URL.Query()
	if v := q.Get("q"); v != "" {
		st.SetSearch(v)
	}
	if v := q.Get("sort"); v != "" {
		st.SetSort(v, sortDir(q.Get("dir"), query.Asc))
	} else if v := q.Get("dir"); v != "" {
		st.SetSort(st.SortKey, sortDir(v, query.Asc))
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 && n <= maxPageSize {
		st.PageSize = n
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		st.SetPage(n)
	}

	all, err := h.Store.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	view := query.Run(all, customerQuery(st))
	items, totalPages := query.Paginate(view, st.PageSize, st.Page)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":       items,
		"total":       len(view),
		"total_pages": totalPages,
		"page":        st.Page,
		"limit":       st.PageSize,
	})
}

func customerQuery(st listview.State) query.Options[models.Customer] {
	return query.Options[models.Customer]{
		Search: st.Search,
		SearchFields: func(c models.Customer) []string {
			return []string{c.Name, c.Email, c.Username}
		},
		Less: customerLess(st.SortKey),
		Dir:  st.Dir,
	}
}

func customerLess(key string) func(a, b models.Customer) bool {
	switch key {
	case "email":
		return func(a, b models.Customer) bool { return a.Email < b.Email }
	case "username":
		return func(a, b models.Customer) bool { return a.Username < b.Username }
	case "status":
		return func(a, b models.Customer) bool { return a.Status < b.Status }
	case "dateJoined":
		return func(a, b models.Customer) bool { return parseDate(a.DateJoined).Before(parseDate(b.DateJoined)) }
	case "lastLogin":
		// Accounts that never logged in sort before everything else.
		return func(a, b models.Customer) bool { return parseDatePtr(a.LastLogin).Before(parseDatePtr(b.LastLogin)) }
	default: // name
		return func(a, b models.Customer) bool { return a.Name < b.Name }
	}
}

func parseDatePtr(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	return parseDate(*s)
}

type customerInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Status          string `json:"status"`
}

func (in *customerInput) validate(withPassword bool) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if _, bad := v["name"]; !bad {
		validation.MinLen("name", in.Name, 2, v)
	}
	validation.Email("email", in.Email, v)
	validation.Username("username", in.Username, v)
	if withPassword {
		validation.Password("password", in.Password, v)
		validation.PasswordsMatch("confirmPassword", in.Password, in.ConfirmPassword, v)
	}
	if in.Status == "" {
		in.Status = models.CustomerActive
	}
	validation.OneOf("status", in.Status, models.CustomerStatusOptions, v)
	return v
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in customerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := in.validate(true); !v.Empty() {
		httpx.JSONViolations(w, v)
		return
	}
	// The hash exists only for the duration of the call; customer
	// records never carry credentials.
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "customer_create_failed", nil)
		return
	}
	c := models.Customer{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Username:   strings.TrimSpace(in.Username),
		Status:     in.Status,
		DateJoined: models.Today(),
	}
	var dlg listview.Dialog[models.Customer]
	dlg.Open(listview.Add, nil)
	var created models.Customer
	err = dlg.Run(func() error {
		var opErr error
		created, opErr = h.Store.Create(r.Context(), c, string(hash))
		return opErr
	}, nil)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "customer_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Update edits name, email, username and status. DateJoined and the
// login/reset timestamps are immutable from this path.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := requestID(r)
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	existing, err := h.Store.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "customer_update_failed")
		return
	}
	var body struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Username *string `json:"username"`
		Status   *string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	in := customerInput{
		Name:     existing.Name,
		Email:    existing.Email,
		Username: existing.Username,
		Status:   existing.Status,
	}
	if body.Name != nil {
		in.Name = *body.Name
	}
	if body.Email != nil {
		in.Email = *body.Email
	}
	if body.Username != nil {
		in.Username = *body.Username
	}
	if body.Status != nil {
		in.Status = *body.Status
	}
	if v := in.validate(false); !v.Empty() {
		httpx.JSONViolations(w, v)
		return
	}
	updated := existing
	updated.Name = strings.TrimSpace(in.Name)
	updated.Email = strings.TrimSpace(in.Email)
	updated.Username = strings.TrimSpace(in.Username)
	updated.Status = in.Status

	var dlg listview.Dialog[models.Customer]
	dlg.Open(listview.Edit, &existing)
	err = dlg.Run(func() error {
		var opErr error
		updated, opErr = h.Store.Update(r.Context(), updated)
		return opErr
	}, nil)
	if err != nil {
		respondStoreError(w, err, "customer_update_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := requestID(r)
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	target, err := h.Store.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "customer_delete_failed")
		return
	}
	if reason := r.FormValue("reason"); reason != "" {
		log.Printf("deleting customer %s: %s", id, reason)
	}
	var dlg listview.Dialog[models.Customer]
	dlg.Open(listview.Delete, &target)
	err = dlg.Run(func() error { return h.Store.Delete(r.Context(), id) }, nil)
	if err != nil {
		respondStoreError(w, err, "customer_delete_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// ResetPassword supports two methods: "email" records a reset without
// touching credentials, "manual" sets a new policy-checked password,
// optionally generated server-side. Either way the only field that
// changes on the record is lastPasswordReset.
func (h *CustomerHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := requestID(r)
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var body struct {
		Method      string `json:"method"`
		NewPassword string `json:"newPassword"`
		Generate    bool   `json:"generate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if body.Method == "" {
		body.Method = string(store.ResetByEmail)
	}
	v := validation.Violations{}
	validation.OneOf("method", body.Method, store.ResetMethodOptions, v)
	if !v.Empty() {
		httpx.JSONViolations(w, v)
		return
	}

	var hash, generated string
	if body.Method == string(store.ResetManual) {
		if body.Generate && body.NewPassword == "" {
			generated = generatePassword(12)
			body.NewPassword = generated
		}
		validation.Password("newPassword", body.NewPassword, v)
		if !v.Empty() {
			httpx.JSONViolations(w, v)
			return
		}
		b, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "password_reset_failed", nil)
			return
		}
		hash = string(b)
	}

	target, err := h.Store.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "password_reset_failed")
		return
	}
	var dlg listview.Dialog[models.Customer]
	dlg.Open(listview.ResetPassword, &target)
	var updated models.Customer
	err = dlg.Run(func() error {
		var opErr error
		updated, opErr = h.Store.ResetPassword(r.Context(), id, store.ResetMethod(body.Method), hash)
		return opErr
	}, nil)
	if err != nil {
		respondStoreError(w, err, "password_reset_failed")
		return
	}
	resp := map[string]any{"customer": updated}
	if generated != "" {
		resp["generatedPassword"] = generated
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Charset matches the in-browser generator; composition is retried until
// the result passes the password policy.
const passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

func generatePassword(n int) string {
	buf := make([]byte, n)
	for {
		for i := range buf {
			k, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
			if err != nil {
				panic(err) // crypto/rand failure is unrecoverable
			}
			buf[i] = passwordCharset[k.Int64()]
		}
		if validation.PasswordOK(string(buf)) {
			return string(buf)
		}
	}
}
