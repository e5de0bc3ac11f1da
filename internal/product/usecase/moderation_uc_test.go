package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/product-service/internal/product/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type moderationFixture struct {
	repo      *mockProductRepo
	sellers   *mockSellerRepo
	cache     *mockCache
	publisher *mockPublisher
	notifier  *mockNotifier
	uc        *ModerationUsecase
}

func newModerationFixture() *moderationFixture {
	f := &moderationFixture{
		repo:      new(mockProductRepo),
		sellers:   new(mockSellerRepo),
		cache:     new(mockCache),
		publisher: new(mockPublisher),
		notifier:  new(mockNotifier),
	}
	f.uc = NewModerationUsecase(f.repo, f.sellers, f.cache, f.publisher, f.notifier, logger.NewNop())
	return f
}

func testSeller() *domain.Seller {
	return &domain.Seller{
		ID:     "s-1",
		UserID: "seller-1",
		Email:  "seller@example.com",
	}
}

var admin = domain.Actor{UserID: "admin-1", Roles: []string{domain.RoleAdmin}}

func TestModerationUsecase_Approve(t *testing.T) {
	f := newModerationFixture()

	f.repo.On("FindByID", mock.Anything, "prod-1").Return(storedProduct(domain.StatusPending), nil)
	f.repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	f.cache.On("DeleteProduct", mock.Anything, "prod-1").Return(nil)
	f.publisher.On("Publish", mock.Anything, "product.approved", mock.Anything).Return(nil)
	f.sellers.On("FindByUserID", mock.Anything, "seller-1").Return(testSeller(), nil)
	f.notifier.On("SendProductApprovedEmail", "seller@example.com", "Mechanical keyboard").Return(nil)

	product, err := f.uc.Approve(context.Background(), admin, "prod-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, product.Status)
	assert.Empty(t, product.RejectionReason)
	f.notifier.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestModerationUsecase_Approve_NonAdmin(t *testing.T) {
	f := newModerationFixture()
	seller := domain.Actor{UserID: "seller-1", Roles: []string{domain.RoleSeller}}

	_, err := f.uc.Approve(context.Background(), seller, "prod-1")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestModerationUsecase_Approve_Idempotent(t *testing.T) {
	f := newModerationFixture()

	f.repo.On("FindByID", mock.Anything, "prod-1").Return(storedProduct(domain.StatusApproved), nil)
	f.repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	f.cache.On("DeleteProduct", mock.Anything, "prod-1").Return(nil)
	f.publisher.On("Publish", mock.Anything, "product.approved", mock.Anything).Return(nil)
	f.sellers.On("FindByUserID", mock.Anything, "seller-1").Return(testSeller(), nil)
	f.notifier.On("SendProductApprovedEmail", "seller@example.com", "Mechanical keyboard").Return(nil)

	product, err := f.uc.Approve(context.Background(), admin, "prod-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, product.Status)
}

func TestModerationUsecase_Approve_RejectedProduct(t *testing.T) {
	f := newModerationFixture()

	f.repo.On("FindByID", mock.Anything, "prod-1").Return(storedProduct(domain.StatusRejected), nil)

	_, err := f.uc.Approve(context.Background(), admin, "prod-1")

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestModerationUsecase_Reject(t *testing.T) {
	f := newModerationFixture()

	f.repo.On("FindByID", mock.Anything, "prod-1").Return(storedProduct(domain.StatusPending), nil)
	f.repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	f.cache.On("DeleteProduct", mock.Anything, "prod-1").Return(nil)
	f.publisher.On("Publish", mock.Anything, "product.rejected", mock.Anything).Return(nil)
	f.sellers.On("FindByUserID", mock.Anything, "seller-1").Return(testSeller(), nil)
	f.notifier.On("SendProductRejectedEmail", "seller@example.com", "Mechanical keyboard", "blurry photos").Return(nil)

	product, err := f.uc.Reject(context.Background(), admin, "prod-1", "blurry photos")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, product.Status)
	assert.Equal(t, "blurry photos", product.RejectionReason)
	f.notifier.AssertExpectations(t)
}

func TestModerationUsecase_Reject_EmptyReason(t *testing.T) {
	f := newModerationFixture()

	f.repo.On("FindByID", mock.Anything, "prod-1").Return(storedProduct(domain.StatusPending), nil)

	_, err := f.uc.Reject(context.Background(), admin, "prod-1", "  ")

	assert.ErrorIs(t, err, domain.ErrEmptyRejectionReason)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "SendProductRejectedEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestModerationUsecase_Reject_ApprovedProduct(t *testing.T) {
	f := newModerationFixture()

	f.repo.On("FindByID", mock.Anything, "prod-1").Return(storedProduct(domain.StatusApproved), nil)

	_, err := f.uc.Reject(context.Background(), admin, "prod-1", "too late")

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestModerationUsecase_Enable(t *testing.T) {
	f := newModerationFixture()
	owner := domain.Actor{UserID: "seller-1", Roles: []string{domain.RoleSeller}}

	f.repo.On("FindByID", mock.Anything, "prod-1").Return(storedProduct(domain.StatusDisabled), nil)
	f.repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	f.cache.On("DeleteProduct", mock.Anything, "prod-1").Return(nil)
	f.publisher.On("Publish", mock.Anything, "product.enabled", mock.Anything).Return(nil)

	product, err := f.uc.Enable(context.Background(), owner, "prod-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusEnabled, product.Status)
}

func TestModerationUsecase_Disable(t *testing.T) {
	f := newModerationFixture()
	owner := domain.Actor{UserID: "seller-1", Roles: []string{domain.RoleSeller}}

	f.repo.On("FindByID", mock.Anything, "prod-1").Return(storedProduct(domain.StatusEnabled), nil)
	f.repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	f.cache.On("DeleteProduct", mock.Anything, "prod-1").Return(nil)
	f.publisher.On("Publish", mock.Anything, "product.disabled", mock.Anything).Return(nil)

	product, err := f.uc.Disable(context.Background(), owner, "prod-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDisabled, product.Status)
}

func TestModerationUsecase_Enable_PendingProduct(t *testing.T) {
	f := newModerationFixture()
	owner := domain.Actor{UserID: "seller-1", Roles: []string{domain.RoleSeller}}

	f.repo.On("FindByID", mock.Anything, "prod-1").Return(storedProduct(domain.StatusPending), nil)

	_, err := f.uc.Enable(context.Background(), owner, "prod-1")

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestModerationUsecase_Toggle_ForbiddenForNonOwner(t *testing.T) {
	f := newModerationFixture()
	other := domain.Actor{UserID: "seller-2", Roles: []string{domain.RoleSeller}}

	f.repo.On("FindByID", mock.Anything, "prod-1").Return(storedProduct(domain.StatusApproved), nil)

	_, err := f.uc.Disable(context.Background(), other, "prod-1")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestModerationUsecase_Approve_NotificationFailureDoesNotFail(t *testing.T) {
	f := newModerationFixture()

	f.repo.On("FindByID", mock.Anything, "prod-1").Return(storedProduct(domain.StatusPending), nil)
	f.repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	f.cache.On("DeleteProduct", mock.Anything, "prod-1").Return(nil)
	f.publisher.On("Publish", mock.Anything, "product.approved", mock.Anything).Return(nil)
	f.sellers.On("FindByUserID", mock.Anything, "seller-1").Return(testSeller(), nil)
	f.notifier.On("SendProductApprovedEmail", "seller@example.com", "Mechanical keyboard").Return(errors.New("smtp timeout"))

	product, err := f.uc.Approve(context.Background(), admin, "prod-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, product.Status)
}

func TestModerationUsecase_Approve_UnknownSellerSkipsNotification(t *testing.T) {
	f := newModerationFixture()

	f.repo.On("FindByID", mock.Anything, "prod-1").Return(storedProduct(domain.StatusPending), nil)
	f.repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	f.cache.On("DeleteProduct", mock.Anything, "prod-1").Return(nil)
	f.publisher.On("Publish", mock.Anything, "product.approved", mock.Anything).Return(nil)
	f.sellers.On("FindByUserID", mock.Anything, "seller-1").Return(nil, domain.ErrSellerNotFound)

	_, err := f.uc.Approve(context.Background(), admin, "prod-1")

	require.NoError(t, err)
	f.notifier.AssertNotCalled(t, "SendProductApprovedEmail", mock.Anything, mock.Anything)
}
