package portone

import "errors"

var (
	// ErrInvalidRequest is returned when the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrPaymentNotFound is returned when the payment does not exist at the gateway
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrPaymentFailed is returned when the gateway rejects the request
	ErrPaymentFailed = errors.New("payment request failed")

	// ErrNetworkError is returned when there's a network communication error
	ErrNetworkError = errors.New("network error")

	// ErrUnauthorized is returned when the API secret is invalid
	ErrUnauthorized = errors.New("unauthorized: invalid API secret")
)
