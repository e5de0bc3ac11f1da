package domain

import "errors"

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrSellerNotFound       = errors.New("seller not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrForbidden            = errors.New("user not authorized to perform this action")
	ErrInvalidProductData   = errors.New("invalid product data")
	ErrEmptyRejectionReason = errors.New("rejection reason is required")
	ErrInvalidTransition    = errors.New("invalid product status transition")
	ErrImageUpload          = errors.New("image upload failed")
)
