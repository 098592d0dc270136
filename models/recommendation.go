package models

import "time"

// RecommendationRequest describes a party looking for rooms at one hotel.
type RecommendationRequest struct {
	HotelID  int64
	Rooms    int // requested room count
	Adults   int
	Children int
	CheckIn  time.Time
	CheckOut time.Time // exclusive
	Nights   int       // zero means derive from the dates
}

// TotalGuests is the number of people that must be housed.
func (r RecommendationRequest) TotalGuests() int {
	return r.Adults + r.Children
}

// RoomAllocation is one room type and how many units of it were chosen.
type RoomAllocation struct {
	Room  AvailableRoom `json:"room"`
	Count int           `json:"count"`
}

// RecommendationResult is the room combination offered to the guest.
type RecommendationResult struct {
	Rooms          []RoomAllocation `json:"rooms"`
	TotalPrice     float64          `json:"total_price"`
	IsFallback     bool             `json:"is_fallback"`
	FallbackReason string           `json:"fallback_reason,omitempty"`
}

// RoomCount sums the units across all allocations.
func (r *RecommendationResult) RoomCount() int {
	n := 0
	for _, a := range r.Rooms {
		n += a.Count
	}
	return n
}

// Capacity is the number of guests the allocation can house.
func (r *RecommendationResult) Capacity() int {
	n := 0
	for _, a := range r.Rooms {
		n += a.Room.MaxGuests * a.Count
	}
	return n
}
