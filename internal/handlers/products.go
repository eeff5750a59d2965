package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"PANTRY-TRACKER/internal/dto"
	"PANTRY-TRACKER/internal/middleware"
	"PANTRY-TRACKER/internal/models"
	"PANTRY-TRACKER/internal/repository"
	"PANTRY-TRACKER/internal/session"
	"PANTRY-TRACKER/internal/views"
)

// ProductHandler handles the pantry CRUD surface
type ProductHandler struct {
	products repository.ProductRepository
	sessions *session.Manager
	views    *views.Renderer
	log      *slog.Logger
}

// NewProductHandler creates a new ProductHandler instance
func NewProductHandler(products repository.ProductRepository, sessions *session.Manager, renderer *views.Renderer, log *slog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		sessions: sessions,
		views:    renderer,
		log:      log,
	}
}

// List renders the caller's products, name ascending. Anonymous callers see
// an empty pantry.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if user, ok := session.UserFromContext(r.Context()); ok {
		var err error
		products, err = h.products.ListByOwner(r.Context(), user.ID)
		if err != nil {
			h.log.Error("list products", "user_id", user.ID, "err", err)
			h.views.Error(w, r, http.StatusInternalServerError, "")
			return
		}
	}
	h.views.Render(w, r, http.StatusOK, "products", products)
}

// RanOut renders the caller's products whose quantity is zero.
func (h *ProductHandler) RanOut(w http.ResponseWriter, r *http.Request) {
	user, ok := session.UserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	products, err := h.products.ListRanOutByOwner(r.Context(), user.ID)
	if err != nil {
		h.log.Error("list ran-out products", "user_id", user.ID, "err", err)
		h.views.Error(w, r, http.StatusInternalServerError, "")
		return
	}
	h.views.Render(w, r, http.StatusOK, "ranout", products)
}

// Create inserts a new product owned by the caller and redirects home.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := session.UserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	form, err := dto.ParseProductForm(r)
	if err != nil {
		h.sessions.FlashError(r.Context(), err.Error())
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	_, err = h.products.Create(r.Context(), &models.Product{
		UserID:   user.ID,
		Name:     form.Name,
		Category: form.Category,
		Qty:      form.Qty,
	})
	if err != nil {
		h.log.Error("create product", "user_id", user.ID, "err", err)
		h.views.Error(w, r, http.StatusInternalServerError, "")
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Delete removes the addressed product. Ownership was already verified by
// the gate, which also guarantees the product existed when the request
// started; a row that vanished in between is treated as already deleted.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	product, ok := middleware.ProductFromContext(r.Context())
	if !ok {
		h.views.Error(w, r, http.StatusNotFound, "Page Not Found")
		return
	}

	if err := h.products.Delete(r.Context(), product.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.log.Error("delete product", "product_id", product.ID, "err", err)
		h.views.Error(w, r, http.StatusInternalServerError, "")
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Increment adds one to the addressed product's quantity.
func (h *ProductHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.products.Increment)
}

// Decrement subtracts one from the addressed product's quantity, stopping
// at zero.
func (h *ProductHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.products.Decrement)
}

func (h *ProductHandler) adjust(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64) error) {
	product, ok := middleware.ProductFromContext(r.Context())
	if !ok {
		h.views.Error(w, r, http.StatusNotFound, "Page Not Found")
		return
	}

	if err := op(r.Context(), product.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.views.Error(w, r, http.StatusNotFound, "Page Not Found")
			return
		}
		h.log.Error("adjust product quantity", "product_id", product.ID, "err", err)
		h.views.Error(w, r, http.StatusInternalServerError, "")
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
