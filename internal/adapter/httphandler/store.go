package httphandler

import (
	"log/slog"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/niksmo/shopcart/internal/core/port"
)

type StoreHandler struct {
	store    port.StoreFront
	validate *validatorv10.Validate
}

func RegisterStore(
	mux *http.ServeMux, store port.StoreFront, v *validatorv10.Validate,
) {
	h := StoreHandler{store, v}
	mux.HandleFunc("POST /v1/carts", h.CreateCart)
	mux.HandleFunc("GET /v1/carts/{cartID}", h.GetCart)
	mux.HandleFunc("POST /v1/carts/{cartID}/items", h.AddItem)
	mux.HandleFunc("PATCH /v1/carts/{cartID}/items/{productID}", h.UpdateQuantity)
	mux.HandleFunc("DELETE /v1/carts/{cartID}/items/{productID}", h.RemoveItem)
	mux.HandleFunc("PUT /v1/carts/{cartID}/coupon", h.ApplyCoupon)
	mux.HandleFunc("DELETE /v1/carts/{cartID}/coupon", h.DetachCoupon)
	mux.HandleFunc("GET /v1/products", h.ListProducts)
}

func (h StoreHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.CreateCart"

	id, err := h.store.CreateCart(r.Context())
	if err != nil {
		writeError(w, op, err)
		return
	}

	slog.Info("cart created", "op", op, "cartID", id)
	writeJSON(w, http.StatusCreated, CreatedCart{ID: id})
}

func (h StoreHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.GetCart"

	view, err := h.store.Cart(r.Context(), r.PathValue("cartID"))
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainCart(view))
}

func (h StoreHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.AddItem"

	var req AddItemRequest
	if err := decodeAndValidate(w, r, h.validate, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	view, err := h.store.AddToCart(r.Context(), r.PathValue("cartID"), req.ProductID)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainCart(view))
}

func (h StoreHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.UpdateQuantity"

	var req QuantityRequest
	if err := decodeAndValidate(w, r, h.validate, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	view, err := h.store.UpdateQuantity(
		r.Context(), r.PathValue("cartID"), r.PathValue("productID"), *req.Quantity,
	)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainCart(view))
}

func (h StoreHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.RemoveItem"

	view, err := h.store.RemoveFromCart(
		r.Context(), r.PathValue("cartID"), r.PathValue("productID"),
	)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainCart(view))
}

func (h StoreHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.ApplyCoupon"

	var req CouponCodeRequest
	if err := decodeAndValidate(w, r, h.validate, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	view, err := h.store.ApplyCoupon(r.Context(), r.PathValue("cartID"), req.Code)
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainCart(view))
}

func (h StoreHandler) DetachCoupon(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.DetachCoupon"

	view, err := h.store.DetachCoupon(r.Context(), r.PathValue("cartID"))
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainCart(view))
}

// ListProducts returns the catalog, narrowed by the optional q search
// parameter.
func (h StoreHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "StoreHandler.ListProducts"

	ps, err := h.store.Products(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainProducts(ps))
}
