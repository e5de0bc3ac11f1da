package usecase

import (
	"context"
	"errors"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/domain"
)

// Notifier tells a seller about the outcome of moderation. Delivery is
// best-effort and never fails the transition.
type Notifier interface {
	SendProductApprovedEmail(to, productName string) error
	SendProductRejectedEmail(to, productName, reason string) error
}

// ModerationUsecase owns the product status state machine: admin-only
// approve/reject out of PENDING, owner-or-admin enable/disable afterwards.
type ModerationUsecase struct {
	repo      domain.ProductRepository
	sellers   domain.SellerRepository
	cache     ProductCache
	publisher EventPublisher
	notifier  Notifier
	logger    *logger.Logger
}

func NewModerationUsecase(
	repo domain.ProductRepository,
	sellers domain.SellerRepository,
	cache ProductCache,
	publisher EventPublisher,
	notifier Notifier,
	log *logger.Logger,
) *ModerationUsecase {
	return &ModerationUsecase{
		repo:      repo,
		sellers:   sellers,
		cache:     cache,
		publisher: publisher,
		notifier:  notifier,
		logger:    log,
	}
}

func (uc *ModerationUsecase) Approve(ctx context.Context, actor domain.Actor, id string) (*domain.Product, error) {
	uc.logger.Info("ModerationUsecase.Approve: approving product", "product_id", id, "actor_id", actor.UserID)

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Approve(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		uc.logger.Error("ModerationUsecase.Approve: failed to persist product", "product_id", id, "error", err.Error())
		return nil, err
	}

	uc.invalidate(ctx, id)
	uc.publish(ctx, "product.approved", product)
	uc.notifySeller(ctx, product, "")
	return product, nil
}

func (uc *ModerationUsecase) Reject(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Product, error) {
	uc.logger.Info("ModerationUsecase.Reject: rejecting product", "product_id", id, "actor_id", actor.UserID)

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Reject(reason); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		uc.logger.Error("ModerationUsecase.Reject: failed to persist product", "product_id", id, "error", err.Error())
		return nil, err
	}

	uc.invalidate(ctx, id)
	uc.publish(ctx, "product.rejected", product)
	uc.notifySeller(ctx, product, reason)
	return product, nil
}

func (uc *ModerationUsecase) Enable(ctx context.Context, actor domain.Actor, id string) (*domain.Product, error) {
	return uc.toggle(ctx, actor, id, true)
}

func (uc *ModerationUsecase) Disable(ctx context.Context, actor domain.Actor, id string) (*domain.Product, error) {
	return uc.toggle(ctx, actor, id, false)
}

func (uc *ModerationUsecase) toggle(ctx context.Context, actor domain.Actor, id string, enable bool) (*domain.Product, error) {
	uc.logger.Info("ModerationUsecase: toggling product availability",
		"product_id", id, "actor_id", actor.UserID, "enable", enable)

	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(product.OwnerID) {
		uc.logger.Warn("ModerationUsecase: availability toggle forbidden",
			"product_id", id, "owner_id", product.OwnerID, "actor_id", actor.UserID)
		return nil, domain.ErrForbidden
	}

	if enable {
		err = product.Enable()
	} else {
		err = product.Disable()
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, product); err != nil {
		uc.logger.Error("ModerationUsecase: failed to persist availability", "product_id", id, "error", err.Error())
		return nil, err
	}

	uc.invalidate(ctx, id)
	if enable {
		uc.publish(ctx, "product.enabled", product)
	} else {
		uc.publish(ctx, "product.disabled", product)
	}
	return product, nil
}

func (uc *ModerationUsecase) load(ctx context.Context, id string) (*domain.Product, error) {
	product, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		uc.logger.Error("ModerationUsecase: failed to load product", "product_id", id, "error", err.Error())
		return nil, err
	}
	return product, nil
}

func (uc *ModerationUsecase) invalidate(ctx context.Context, id string) {
	if err := uc.cache.DeleteProduct(ctx, id); err != nil {
		uc.logger.Warn("ModerationUsecase: cache invalidation failed", "product_id", id, "error", err.Error())
	}
}

func (uc *ModerationUsecase) publish(ctx context.Context, subject string, product *domain.Product) {
	event := productEvent{
		ProductID: product.ID,
		OwnerID:   product.OwnerID,
		Status:    string(product.Status),
	}
	if err := uc.publisher.Publish(ctx, subject, event); err != nil {
		uc.logger.Warn("ModerationUsecase: event publish failed", "subject", subject, "product_id", product.ID, "error", err.Error())
	}
}

func (uc *ModerationUsecase) notifySeller(ctx context.Context, product *domain.Product, reason string) {
	seller, err := uc.sellers.FindByUserID(ctx, product.OwnerID)
	if err != nil {
		uc.logger.Warn("ModerationUsecase: seller lookup failed, skipping notification",
			"product_id", product.ID, "owner_id", product.OwnerID, "error", err.Error())
		return
	}

	if product.Status == domain.StatusRejected {
		err = uc.notifier.SendProductRejectedEmail(seller.Email, product.Name, reason)
	} else {
		err = uc.notifier.SendProductApprovedEmail(seller.Email, product.Name)
	}
	if err != nil {
		uc.logger.Warn("ModerationUsecase: seller notification failed",
			"product_id", product.ID, "seller_email", seller.Email, "error", err.Error())
	}
}
