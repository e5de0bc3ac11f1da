package http

import (
	"github.com/Abdurahmanit/GroupProject/product-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/domain"
	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the product routes. Public routes stay outside the auth
// group; everything else goes through JWTAuth plus a role gate.
func NewRouter(h *ProductHandler, jwtSecret string, log *logger.Logger) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.Tracing())
	mux.Use(middleware.Logging(log))

	mux.Route("/products", func(r chi.Router) {
		// Public routes: only moderated products are reachable here.
		r.Get("/approved", h.GetApprovedProducts)
		r.Get("/available", h.GetAvailableProducts)
		r.Get("/detail/{id}", h.GetPublicProductDetail)
		r.Get("/search", h.SearchProducts)
		r.Get("/search/{query}", h.SearchProductsByPath)
		r.Get("/{id}/sales", h.GetProductSales)

		r.Group(func(auth chi.Router) {
			auth.Use(middleware.JWTAuth(jwtSecret, log))

			auth.Group(func(any chi.Router) {
				any.Use(middleware.RequireRoles(log, domain.RoleAdmin, domain.RoleSeller, domain.RoleUser))
				any.Get("/", h.GetAllProducts)
				any.Get("/{id}", h.GetProductByID)
				any.Get("/category/{categoryId}", h.GetProductsByCategory)
			})

			auth.Group(func(own chi.Router) {
				own.Use(middleware.RequireRoles(log, domain.RoleSeller, domain.RoleUser))
				own.Get("/my-products", h.GetMyProducts)
				own.Get("/my-approved", h.GetMyApprovedProducts)
			})

			auth.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireRoles(log, domain.RoleAdmin))
				admin.Get("/pending", h.GetPendingProducts)
				admin.Post("/approve/{id}", h.ApproveProduct)
				admin.Post("/reject/{id}", h.RejectProduct)
			})

			auth.Group(func(seller chi.Router) {
				seller.Use(middleware.RequireRoles(log, domain.RoleAdmin, domain.RoleSeller))
				seller.Post("/", h.CreateProduct)
				seller.Put("/{id}", h.UpdateProduct)
				seller.Patch("/{id}", h.PatchProduct)
				seller.Delete("/{id}", h.DeleteProduct)
				seller.Post("/{id}/enable", h.EnableProduct)
				seller.Post("/{id}/disable", h.DisableProduct)
			})
		})
	})

	return mux
}
