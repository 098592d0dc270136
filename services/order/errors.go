package order

import "errors"

var (
	ErrInvalidOrder    = errors.New("invalid order")
	ErrRoomUnavailable = errors.New("room no longer available for the selected dates")
	ErrDuplicateOrder  = errors.New("order already submitted")
	ErrPaymentFailed   = errors.New("payment failed")
	ErrRefundFailed    = errors.New("refund failed")
	ErrNotRefundable   = errors.New("order cannot be refunded")
)
