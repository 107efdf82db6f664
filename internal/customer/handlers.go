package customer

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bluecup/backend-pos/internal/common"
)

// Handler exposes the customer list endpoints for the register UI.
type Handler struct {
	Directory *Directory
}

// List handles GET /api/v1/customers with optional pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Directory == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "customer directory not configured", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 50)
	all := h.Directory.List()
	start := (page - 1) * perPage
	if start > len(all) {
		start = len(all)
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data":       all[start:end],
		"pagination": common.Pagination{Page: page, PerPage: perPage, TotalItems: len(all)},
	})
}

// Detail handles GET /api/v1/customers/{id}.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	if h.Directory == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "customer directory not configured", nil)
		return
	}
	c, err := h.Directory.Find(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "customer not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "lookup failed", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}
