package httphandler

import (
	"log/slog"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/niksmo/shopcart/internal/core/port"
)

type AdminHandler struct {
	admin    port.Admin
	validate *validatorv10.Validate
}

func RegisterAdmin(
	mux *http.ServeMux, admin port.Admin, v *validatorv10.Validate,
) {
	h := AdminHandler{admin, v}
	mux.HandleFunc("POST /v1/admin/products", h.AddProduct)
	mux.HandleFunc("PUT /v1/admin/products/{productID}/price", h.SetPrice)
	mux.HandleFunc("PUT /v1/admin/products/{productID}/stock", h.SetStock)
	mux.HandleFunc("PUT /v1/admin/products/{productID}/discounts", h.SetDiscounts)
	mux.HandleFunc("GET /v1/admin/coupons", h.ListCoupons)
	mux.HandleFunc("POST /v1/admin/coupons", h.AddCoupon)
	mux.HandleFunc("DELETE /v1/admin/coupons/{code}", h.RemoveCoupon)
}

func (h AdminHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.AddProduct"

	var req NewProductRequest
	if err := decodeAndValidate(w, r, h.validate, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	p, err := h.admin.AddProduct(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, op, err)
		return
	}

	slog.Info("product added", "op", op, "productID", p.ID)
	writeJSON(w, http.StatusCreated, fromDomainProduct(p))
}

func (h AdminHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.SetPrice"

	var req PriceRequest
	if err := decodeAndValidate(w, r, h.validate, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	p, err := h.admin.SetProductPrice(r.Context(), r.PathValue("productID"), *req.Price)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainProduct(p))
}

func (h AdminHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.SetStock"

	var req StockRequest
	if err := decodeAndValidate(w, r, h.validate, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	p, err := h.admin.SetProductStock(r.Context(), r.PathValue("productID"), *req.Stock)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainProduct(p))
}

// SetDiscounts replaces the discount tiers with the JSON array in the body.
func (h AdminHandler) SetDiscounts(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.SetDiscounts"

	var req discountsRequest
	if err := decode(w, r, &req.Discounts); err != nil {
		writeBadRequest(w, err)
		return
	}
	if err := validate(h.validate, req); err != nil {
		writeBadRequest(w, err)
		return
	}

	p, err := h.admin.SetProductDiscounts(
		r.Context(), r.PathValue("productID"), toDomainDiscounts(req.Discounts),
	)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainProduct(p))
}

func (h AdminHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.ListCoupons"

	cs, err := h.admin.Coupons(r.Context())
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainCoupons(cs))
}

func (h AdminHandler) AddCoupon(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.AddCoupon"

	var req Coupon
	if err := decodeAndValidate(w, r, h.validate, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	cs, err := h.admin.AddCoupon(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, fromDomainCoupons(cs))
}

func (h AdminHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.RemoveCoupon"

	cs, err := h.admin.RemoveCoupon(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainCoupons(cs))
}
