package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/bluecup/backend-pos/internal/catalog"
	"github.com/bluecup/backend-pos/internal/common"
	"github.com/bluecup/backend-pos/internal/customer"
	"github.com/bluecup/backend-pos/internal/obs"
	"github.com/bluecup/backend-pos/internal/order"
)

// Handler exposes the register session endpoints.
type Handler struct {
	Manager  *Manager
	Validate *validator.Validate
}

// NewHandler constructs a Handler with a ready validator.
func NewHandler(manager *Manager) *Handler {
	return &Handler{Manager: manager, Validate: validator.New()}
}

type openSessionRequest struct {
	CustomerID string `json:"customerId" validate:"required"`
}

type addItemRequest struct {
	ProductID string   `json:"productId" validate:"required"`
	Quantity  int      `json:"quantity"`
	Options   []string `json:"options"`
}

type updateItemRequest struct {
	Quantity *int      `json:"quantity"`
	Options  *[]string `json:"options"`
}

// Open handles POST /api/v1/sessions.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if !h.decode(w, r, &req) {
		return
	}
	view, err := h.Manager.Open(req.CustomerID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if obs.SessionsOpenedTotal != nil {
		obs.SessionsOpenedTotal.Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": view})
}

// Get handles GET /api/v1/sessions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.Manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// AddItem handles POST /api/v1/sessions/{id}/items. Quantity bounds are
// enforced by the order engine so validation failures carry the engine's
// error codes.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	view, ref, err := h.Manager.AddItem(chi.URLParam(r, "id"), req.ProductID, req.Quantity, req.Options)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if obs.ItemsAddedTotal != nil {
		obs.ItemsAddedTotal.WithLabelValues(req.ProductID).Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": view, "itemRef": ref})
}

// UpdateItem handles PATCH /api/v1/sessions/{id}/items/{itemRef}.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Quantity == nil && req.Options == nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "quantity or options must be provided", nil)
		return
	}
	view, err := h.Manager.UpdateItem(chi.URLParam(r, "id"), chi.URLParam(r, "itemRef"), req.Quantity, req.Options)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// RemoveItem handles DELETE /api/v1/sessions/{id}/items/{itemRef}.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.Manager.RemoveItem(chi.URLParam(r, "id"), chi.URLParam(r, "itemRef"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// Cancel handles DELETE /api/v1/sessions/{id}.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.Manager.Cancel(chi.URLParam(r, "id")); err != nil {
		writeEngineError(w, err)
		return
	}
	if obs.OrdersCancelledTotal != nil {
		obs.OrdersCancelledTotal.Inc()
	}
	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /api/v1/sessions/{id}/checkout.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	rendered, snapshot, err := h.Manager.Checkout(chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if obs.OrdersCompletedTotal != nil {
		obs.OrdersCompletedTotal.Inc()
	}
	if obs.OrderTotalCents != nil {
		obs.OrderTotalCents.Observe(float64(snapshot.Totals.Total))
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"receipt": rendered,
			"text":    rendered.Text(),
			"order":   snapshot,
		},
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_JSON", "request body is not valid JSON", nil)
		return false
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(dst); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
			return false
		}
	}
	return true
}

func writeEngineError(w http.ResponseWriter, err error) {
	common.WriteError(w, engineError(err))
}

// engineError wraps engine sentinels into transport errors carrying the
// code and status the register UI keys on.
func engineError(err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, order.ErrItemNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, catalog.ErrOptionNotFound),
		errors.Is(err, customer.ErrCustomerNotFound):
		return common.NewAppError("NOT_FOUND", err.Error(), http.StatusNotFound, err)
	case errors.Is(err, order.ErrInvalidQuantity):
		return common.NewAppError("INVALID_QUANTITY", err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, order.ErrInvalidOption):
		return common.NewAppError("INVALID_OPTION", err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, order.ErrDuplicateOption):
		return common.NewAppError("DUPLICATE_OPTION", err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, order.ErrInvalidPricing):
		return common.NewAppError("INVALID_PRICING", err.Error(), http.StatusUnprocessableEntity, err)
	case errors.Is(err, ErrEmptyOrder):
		return common.NewAppError("EMPTY_ORDER", err.Error(), http.StatusConflict, err)
	default:
		return err
	}
}
