package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/domain"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/usecase"
	"github.com/go-chi/chi/v5"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("product-service/http-handler")

const maxUploadMemory = 32 << 20 // 32 MiB

type ProductHandler struct {
	products   *usecase.ProductUsecase
	moderation *usecase.ModerationUsecase
	logger     *logger.Logger
}

func NewProductHandler(products *usecase.ProductUsecase, moderation *usecase.ModerationUsecase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		products:   products,
		moderation: moderation,
		logger:     log,
	}
}

func (h *ProductHandler) actor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "user authentication required"})
		return domain.Actor{}, false
	}
	return actor, true
}

// ---- Queries ----

func (h *ProductHandler) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.GetAll(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTOs(products))
}

func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(product))
}

func (h *ProductHandler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.GetByCategory(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTOs(products))
}

func (h *ProductHandler) GetMyProducts(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	products, err := h.products.GetByOwner(r.Context(), actor)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTOs(products))
}

func (h *ProductHandler) GetMyApprovedProducts(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	products, err := h.products.GetApprovedByOwner(r.Context(), actor)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTOs(products))
}

func (h *ProductHandler) GetApprovedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.GetPublic(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTOs(products))
}

func (h *ProductHandler) GetAvailableProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.GetAvailable(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTOs(products))
}

func (h *ProductHandler) GetPendingProducts(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	products, err := h.products.GetPending(r.Context(), actor)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTOs(products))
}

func (h *ProductHandler) GetPublicProductDetail(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetActiveByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(product))
}

func (h *ProductHandler) GetProductSales(w http.ResponseWriter, r *http.Request) {
	report, err := h.products.GetSales(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, r.URL.Query().Get("query"))
}

func (h *ProductHandler) SearchProductsByPath(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, chi.URLParam(r, "query"))
}

func (h *ProductHandler) search(w http.ResponseWriter, r *http.Request, query string) {
	products, err := h.products.Search(r.Context(), query)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTOs(products))
}

// ---- Mutations ----

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	ctx, span := tracer.Start(r.Context(), "ProductHandler.CreateProduct", oteltrace.WithAttributes(
		attribute.String("actor_id", actor.UserID),
	))
	defer span.End()

	input, images, err := parseProductForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	product, err := h.products.Create(ctx, actor, input, images)
	if err != nil {
		span.RecordError(err)
		respondError(w, h.logger, err)
		return
	}

	respondProduct(w, http.StatusCreated, "Your product has been saved as pending and will be reviewed by our moderators. You will be notified once it is approved.", product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	input, images, err := parseProductForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	product, err := h.products.Update(r.Context(), actor, chi.URLParam(r, "id"), input, images)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondProduct(w, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var body struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		CategoryID  *string  `json:"categoryId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	patch := usecase.ProductPatch{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Stock:       body.Stock,
		CategoryID:  body.CategoryID,
	}
	product, err := h.products.Patch(r.Context(), actor, chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondProduct(w, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if err := h.products.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// ---- Moderation ----

func (h *ProductHandler) ApproveProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	ctx, span := tracer.Start(r.Context(), "ProductHandler.ApproveProduct", oteltrace.WithAttributes(
		attribute.String("actor_id", actor.UserID),
		attribute.String("product_id", id),
	))
	defer span.End()

	product, err := h.moderation.Approve(ctx, actor, id)
	if err != nil {
		span.RecordError(err)
		respondError(w, h.logger, err)
		return
	}
	respondProduct(w, http.StatusOK, "Product approved successfully", product)
}

func (h *ProductHandler) RejectProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	id := chi.URLParam(r, "id")
	ctx, span := tracer.Start(r.Context(), "ProductHandler.RejectProduct", oteltrace.WithAttributes(
		attribute.String("actor_id", actor.UserID),
		attribute.String("product_id", id),
	))
	defer span.End()

	product, err := h.moderation.Reject(ctx, actor, id, body.Reason)
	if err != nil {
		span.RecordError(err)
		respondError(w, h.logger, err)
		return
	}
	respondProduct(w, http.StatusOK, "Product rejected successfully", product)
}

func (h *ProductHandler) EnableProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	product, err := h.moderation.Enable(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondProduct(w, http.StatusOK, "Product enabled successfully", product)
}

func (h *ProductHandler) DisableProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	product, err := h.moderation.Disable(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondProduct(w, http.StatusOK, "Product disabled successfully", product)
}

// parseProductForm binds the multipart create/update form. Image files are
// carried under the "image" field, in upload order.
func parseProductForm(r *http.Request) (usecase.ProductInput, []usecase.ImageUpload, error) {
	var input usecase.ProductInput

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return input, nil, err
	}

	input.Name = r.FormValue("name")
	input.Description = r.FormValue("description")
	input.CategoryID = r.FormValue("categoryId")

	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return input, nil, errInvalidFormValue("price")
		}
		input.Price = price
	}
	if raw := r.FormValue("stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return input, nil, errInvalidFormValue("stock")
		}
		input.Stock = stock
	}

	var images []usecase.ImageUpload
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["image"] {
			file, err := header.Open()
			if err != nil {
				return input, nil, err
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return input, nil, err
			}
			images = append(images, usecase.ImageUpload{FileName: header.Filename, Data: data})
		}
	}

	return input, images, nil
}

type formValueError string

func (e formValueError) Error() string {
	return "invalid value for field " + string(e)
}

func errInvalidFormValue(field string) error {
	return formValueError(field)
}
