package models

import "time"

// OrderRoom is one priced line of an order.
type OrderRoom struct {
	RoomTypeID        int64   `bson:"room_type_id" json:"room_type_id"`
	RoomTypeName      string  `bson:"room_type_name" json:"room_type_name"`
	RoomPricePerNight float64 `bson:"room_price_per_night" json:"room_price_per_night"`
	Quantity          int     `bson:"quantity" json:"quantity"`
}

// Order is a confirmed stay.
type Order struct {
	ID              string      `bson:"id" json:"id"`
	UserID          string      `bson:"user_id" json:"user_id"`
	HotelID         int64       `bson:"hotel_id" json:"hotel_id"`
	CheckInDate     string      `bson:"check_in_date" json:"check_in_date"`
	CheckOutDate    string      `bson:"check_out_date" json:"check_out_date"`
	Nights          int         `bson:"nights" json:"nights"`
	AdultCount      int         `bson:"adult_count" json:"adult_count"`
	ChildCount      int         `bson:"child_count" json:"child_count"`
	GuestName       string      `bson:"guest_name" json:"guest_name"`
	GuestPhone      string      `bson:"guest_phone" json:"guest_phone"`
	TotalAmount     float64     `bson:"total_amount" json:"total_amount"`
	PaidAmount      float64     `bson:"paid_amount" json:"paid_amount"`
	PaymentRef      string      `bson:"payment_ref,omitempty" json:"payment_ref,omitempty"`
	SpecialRequests string      `bson:"special_requests,omitempty" json:"special_requests,omitempty"`
	Status          string      `bson:"status" json:"status"`
	Rooms           []OrderRoom `bson:"rooms" json:"rooms"`
	CreatedAt       time.Time   `bson:"created_at" json:"created_at"`
	RefundRef       string      `bson:"refund_ref,omitempty" json:"refund_ref,omitempty"`
	Deleted         bool        `bson:"deleted,omitempty" json:"-"` // hidden from the guest's order list
}

const (
	OrderStatusPaid     = "paid"
	OrderStatusRefunded = "refunded"
)

// OrderLineInput is a room type and count chosen at checkout.
type OrderLineInput struct {
	RoomTypeID int64 `json:"room_type_id" binding:"required"`
	Count      int   `json:"count" binding:"required,min=1"`
}

// PlaceOrderInput is the checkout request body.
type PlaceOrderInput struct {
	IdempotencyKey  string           `json:"idempotency_key"`
	UserID          string           `json:"user_id" binding:"required"`
	HotelID         int64            `json:"hotel_id" binding:"required"`
	CheckIn         string           `json:"check_in" binding:"required"`
	CheckOut        string           `json:"check_out" binding:"required"`
	Adults          int              `json:"adults" binding:"required,min=1"`
	Children        int              `json:"children"`
	GuestName       string           `json:"guest_name" binding:"required"`
	GuestPhone      string           `json:"guest_phone" binding:"required"`
	SpecialRequests string           `json:"special_requests"`
	PaymentMethod   string           `json:"payment_method"` // card token for the live gateway
	Rooms           []OrderLineInput `json:"rooms" binding:"required,min=1,dive"`
}

// InventoryIncrement moves the booked count of one room type on one date.
type InventoryIncrement struct {
	RoomTypeID int64  `json:"room_type_id"`
	Date       string `json:"date"`
	Delta      int    `json:"delta"`
}

// InventoryLedgerPayload is an async batch of booked-count changes, queued when
// an inline release could not be written.
type InventoryLedgerPayload struct {
	OrderID string               `json:"order_id"`
	Attempt int                  `json:"attempt,omitempty"` // >0 for follow-ups carrying only failed lines
	Lines   []InventoryIncrement `json:"lines"`
}
