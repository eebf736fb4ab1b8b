package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"diamondadmin/internal/httpx"
	"diamondadmin/internal/listview"
	"diamondadmin/internal/models"
	"diamondadmin/internal/query"
	"diamondadmin/internal/store"
	"diamondadmin/internal/validation"
)

const (
	defaultPageSize = 10
	maxPageSize     = 200

	// Shown when a product is created without an explicit image URL.
	defaultProductImage = "https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=150&h=150&fit=crop&crop=center"
)

type ProductHandler struct {
	Store store.ProductStore
}

func NewProductHandler(s store.ProductStore) *ProductHandler { return &ProductHandler{Store: s} }

// List derives the filtered/sorted/paginated inventory view. Every query
// param feeds a state transition, so the page-resets-on-filter-change
// rule applies before the explicit page param is read.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	st := listview.NewState("dateAdded", query.Desc, defaultPageSize)
	q := r.URL.Query()
	if v := q.Get("q"); v != "" {
		st.SetSearch(v)
	}
	st.SetFilter("shape", q.Get("shape"))
	st.SetFilter("color", q.Get("color"))
	st.SetFilter("clarity", q.Get("clarity"))
	st.SetFilter("cut", q.Get("cut"))
	st.SetFilter("stockStatus", q.Get("status"))
	if q.Get("min_price") != "" || q.Get("max_price") != "" {
		minV, _ := strconv.ParseFloat(q.Get("min_price"), 64)
		maxV := float64(listview.DefaultMaxPrice)
		if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil && v > 0 {
			maxV = v
		}
		st.SetPriceRange(minV, maxV)
	}
	if v := q.Get("sort"); v != "" {
		st.SetSort(v, sortDir(q.Get("dir"), query.Desc))
	} else if v := q.Get("dir"); v != "" {
		st.SetSort(st.SortKey, sortDir(v, query.Desc))
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 && n <= maxPageSize {
		st.PageSize = n
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		st.SetPage(n)
	}

	all, err := h.Store.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	view := query.Run(all, productQuery(st))
	items, totalPages := query.Paginate(view, st.PageSize, st.Page)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":       items,
		"total":       len(view),
		"total_pages": totalPages,
		"page":        st.Page,
		"limit":       st.PageSize,
	})
}

func productQuery(st listview.State) query.Options[models.Product] {
	getters := map[string]func(models.Product) string{
		"shape":       func(p models.Product) string { return p.Shape },
		"color":       func(p models.Product) string { return p.Color },
		"clarity":     func(p models.Product) string { return p.Clarity },
		"cut":         func(p models.Product) string { return p.Cut },
		"stockStatus": func(p models.Product) string { return p.StockStatus },
	}
	var filters []query.Predicate[models.Product]
	for field, want := range st.Exact {
		if get, ok := getters[field]; ok {
			filters = append(filters, query.Exact(get, want))
		}
	}
	filters = append(filters, query.Range(func(p models.Product) float64 { return p.TotalPrice }, st.Price.Min, st.Price.Max))
	return query.Options[models.Product]{
		Search: st.Search,
		SearchFields: func(p models.Product) []string {
			return []string{p.Shape, p.Color, p.Clarity, p.Certification}
		},
		Filters: filters,
		Less:    productLess(st.SortKey),
		Dir:     st.Dir,
	}
}

func productLess(key string) func(a, b models.Product) bool {
	switch key {
	case "caratWeight":
		return func(a, b models.Product) bool { return a.CaratWeight < b.CaratWeight }
	case "totalPrice":
		return func(a, b models.Product) bool { return a.TotalPrice < b.TotalPrice }
	default: // dateAdded
		return func(a, b models.Product) bool { return parseDate(a.DateAdded).Before(parseDate(b.DateAdded)) }
	}
}

func parseDate(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func sortDir(v string, def query.Direction) query.Direction {
	switch v {
	case "asc":
		return query.Asc
	case "desc":
		return query.Desc
	default:
		return def
	}
}

type productInput struct {
	Shape         string  `json:"shape"`
	CaratWeight   float64 `json:"caratWeight"`
	Color         string  `json:"color"`
	Clarity       string  `json:"clarity"`
	Cut           string  `json:"cut"`
	Certification string  `json:"certification"`
	PriceType     string  `json:"priceType"`
	PricePerCarat float64 `json:"pricePerCarat"`
	TotalPrice    float64 `json:"totalPrice"`
	StockStatus   string  `json:"stockStatus"`
	Image         string  `json:"image"`
}

// validate applies the add/edit form rules. Only the price field the
// active mode designates as user-edited is required; its counterpart is
// derived afterwards.
func (in *productInput) validate() validation.Violations {
	v := validation.Violations{}
	requireOneOf("shape", in.Shape, models.ShapeOptions, v)
	validation.PositiveFloat("caratWeight", in.CaratWeight, v)
	requireOneOf("color", in.Color, models.ColorOptions, v)
	requireOneOf("clarity", in.Clarity, models.ClarityOptions, v)
	requireOneOf("cut", in.Cut, models.CutOptions, v)
	requireOneOf("certification", in.Certification, models.CertificationOptions, v)
	if in.PriceType == "" {
		in.PriceType = string(models.PricePerCarat)
	}
	validation.OneOf("priceType", in.PriceType, models.PriceModeOptions, v)
	if in.PriceType == string(models.PriceTotal) {
		validation.PositiveFloat("totalPrice", in.TotalPrice, v)
	} else {
		validation.PositiveFloat("pricePerCarat", in.PricePerCarat, v)
	}
	if in.StockStatus == "" {
		in.StockStatus = models.StockAvailable
	}
	validation.OneOf("stockStatus", in.StockStatus, models.StockStatusOptions, v)
	return v
}

func requireOneOf(field, value string, options []string, v validation.Violations) {
	validation.Required(field, value, v)
	if _, bad := v[field]; bad {
		return
	}
	validation.OneOf(field, value, options, v)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := in.validate(); !v.Empty() {
		httpx.JSONViolations(w, v)
		return
	}
	perCarat, total := models.DerivePricing(models.PriceMode(in.PriceType), in.CaratWeight, in.PricePerCarat, in.TotalPrice)
	if in.Image == "" {
		in.Image = defaultProductImage
	}
	p := models.Product{
		ID:            uuid.NewString(),
		Shape:         in.Shape,
		CaratWeight:   in.CaratWeight,
		Color:         in.Color,
		Clarity:       in.Clarity,
		Cut:           in.Cut,
		Certification: in.Certification,
		PricePerCarat: perCarat,
		TotalPrice:    total,
		StockStatus:   in.StockStatus,
		Image:         in.Image,
		DateAdded:     models.Today(),
	}
	var dlg listview.Dialog[models.Product]
	dlg.Open(listview.Add, nil)
	var created models.Product
	err := dlg.Run(func() error {
		var opErr error
		created, opErr = h.Store.Create(r.Context(), p)
		return opErr
	}, nil)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "product_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Update edits everything but id and dateAdded; pricing is re-derived
// from the submitted mode after the patch is applied.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
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
		respondStoreError(w, err, "product_update_failed")
		return
	}
	var body struct {
		Shape         *string  `json:"shape"`
		CaratWeight   *float64 `json:"caratWeight"`
		Color         *string  `json:"color"`
		Clarity       *string  `json:"clarity"`
		Cut           *string  `json:"cut"`
		Certification *string  `json:"certification"`
		PriceType     *string  `json:"priceType"`
		PricePerCarat *float64 `json:"pricePerCarat"`
		TotalPrice    *float64 `json:"totalPrice"`
		StockStatus   *string  `json:"stockStatus"`
		Image         *string  `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	in := productInput{
		Shape:         existing.Shape,
		CaratWeight:   existing.CaratWeight,
		Color:         existing.Color,
		Clarity:       existing.Clarity,
		Cut:           existing.Cut,
		Certification: existing.Certification,
		PricePerCarat: existing.PricePerCarat,
		TotalPrice:    existing.TotalPrice,
		StockStatus:   existing.StockStatus,
		Image:         existing.Image,
	}
	if body.Shape != nil {
		in.Shape = *body.Shape
	}
	if body.CaratWeight != nil {
		in.CaratWeight = *body.CaratWeight
	}
	if body.Color != nil {
		in.Color = *body.Color
	}
	if body.Clarity != nil {
		in.Clarity = *body.Clarity
	}
	if body.Cut != nil {
		in.Cut = *body.Cut
	}
	if body.Certification != nil {
		in.Certification = *body.Certification
	}
	if body.PriceType != nil {
		in.PriceType = *body.PriceType
	}
	if body.PricePerCarat != nil {
		in.PricePerCarat = *body.PricePerCarat
	}
	if body.TotalPrice != nil {
		in.TotalPrice = *body.TotalPrice
	}
	if body.StockStatus != nil {
		in.StockStatus = *body.StockStatus
	}
	if body.Image != nil && *body.Image != "" {
		in.Image = *body.Image
	}
	if v := in.validate(); !v.Empty() {
		httpx.JSONViolations(w, v)
		return
	}
	perCarat, total := models.DerivePricing(models.PriceMode(in.PriceType), in.CaratWeight, in.PricePerCarat, in.TotalPrice)

	updated := existing
	updated.Shape = in.Shape
	updated.CaratWeight = in.CaratWeight
	updated.Color = in.Color
	updated.Clarity = in.Clarity
	updated.Cut = in.Cut
	updated.Certification = in.Certification
	updated.PricePerCarat = perCarat
	updated.TotalPrice = total
	updated.StockStatus = in.StockStatus
	updated.Image = in.Image

	var dlg listview.Dialog[models.Product]
	dlg.Open(listview.Edit, &existing)
	err = dlg.Run(func() error {
		var opErr error
		updated, opErr = h.Store.Update(r.Context(), updated)
		return opErr
	}, nil)
	if err != nil {
		respondStoreError(w, err, "product_update_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		respondStoreError(w, err, "product_delete_failed")
		return
	}
	if reason := r.FormValue("reason"); reason != "" {
		log.Printf("deleting product %s: %s", id, reason)
	}
	var dlg listview.Dialog[models.Product]
	dlg.Open(listview.Delete, &target)
	err = dlg.Run(func() error { return h.Store.Delete(r.Context(), id) }, nil)
	if err != nil {
		respondStoreError(w, err, "product_delete_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func requestID(r *http.Request) string {
	if id := r.URL.Query().Get("id"); id != "" {
		return id
	}
	return r.FormValue("id")
}

func respondStoreError(w http.ResponseWriter, err error, code string) {
	if errors.Is(err, store.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, code, nil)
}
