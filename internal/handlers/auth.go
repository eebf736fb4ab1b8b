package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"diamondadmin/internal/auth"
	"diamondadmin/internal/config"
	"diamondadmin/internal/httpx"
	"diamondadmin/internal/store"
)

// AuthHandler checks the single admin credential. The mock dashboard has
// exactly one principal; the password is bcrypt-hashed once at startup
// so the comparison path matches a real backend's.
type AuthHandler struct {
	cfg          config.Config
	passwordHash []byte
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		// only reachable with an absurdly long password
		panic(err)
	}
	return &AuthHandler{cfg: cfg, passwordHash: hash}
}

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var username, password string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		username, password = body.Username, body.Password
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		username, password = r.FormValue("username"), r.FormValue("password")
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_credentials", nil)
		return
	}
	// Login shares the simulated-latency knob with the stores.
	if err := store.Wait(r.Context(), h.cfg.MockLatency); err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "request_cancelled", nil)
		return
	}
	if username != h.cfg.AdminUsername || bcrypt.CompareHashAndPassword(h.passwordHash, []byte(password)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", map[string]string{"message": "Invalid username or password"})
		return
	}
	auth.CreateSession(w, username)
	token, err := auth.GenerateToken(username)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "token_generation_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"username": username, "token": token})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
