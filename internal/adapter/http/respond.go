package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError is the single place where domain errors become HTTP status
// codes and user-facing messages.
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
	case errors.Is(err, domain.ErrInvalidProductData),
		errors.Is(err, domain.ErrEmptyRejectionReason),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrCategoryNotFound):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "you are not allowed to perform this action"})
	default:
		log.Error("respondError: unexpected error", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func respondProduct(w http.ResponseWriter, status int, message string, product *domain.Product) {
	writeJSON(w, status, map[string]interface{}{
		"message": message,
		"product": toProductDTO(product),
	})
}
