package repository

import "errors"

// 조회 실패 시 사용하는 공통 에러. 동적 식별자는 %w 래핑으로 덧붙입니다.
var (
	ErrEmptyIDList = errors.New("ID list cannot be empty.")

	ErrMemberNotFound    = errors.New("Not found member")
	ErrMemberNotVerified = errors.New("Not verified member")

	ErrProductNotFound       = errors.New("Not found product")
	ErrProductNotSelling     = errors.New("Not selling product")
	ErrOptionDetailsNotFound = errors.New("Not found option details")
	ErrOptionItemNotFound    = errors.New("Not found option item")

	ErrCartNotFound      = errors.New("Not found cart")
	ErrCartItemNotFound  = errors.New("Not found cart item")
	ErrCartItemsNotFound = errors.New("Not found cart items")

	ErrOrderNotFound      = errors.New("Not found order")
	ErrOrderItemsNotFound = errors.New("Not found order items")

	ErrPaymentNotFound = errors.New("Not found payment")

	ErrDeliveryNotFound        = errors.New("Not found delivery")
	ErrDefaultDeliveryNotFound = errors.New("Not found default delivery")
	ErrDeliveryMemoNotFound    = errors.New("Not found delivery memo")
	ErrNotOwnDelivery          = errors.New("Not a delivery for the logged in user")
	ErrNotOwnDeliveryMemo      = errors.New("Not a delivery memo for the logged in user")
	ErrRecentMemoNotFound      = errors.New("Not a recent delivery memo for the logged in user")
)
