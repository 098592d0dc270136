package models

// BedInfo is one line of a room type's bed configuration.
type BedInfo struct {
	Type  string `bson:"type" json:"type"`   // e.g. "king", "twin"
	Count int    `bson:"count" json:"count"` // number of beds of this type
}

// RoomType is a bookable category of room at a hotel.
type RoomType struct {
	ID          int64     `bson:"id" json:"id"`
	HotelID     int64     `bson:"hotel_id" json:"hotel_id"`
	Name        string    `bson:"name" json:"name"`
	Price       float64   `bson:"price" json:"price"`           // nightly price
	MaxGuests   int       `bson:"max_guests" json:"max_guests"` // occupants per unit
	Description string    `bson:"description" json:"description"`
	Size        float64   `bson:"size" json:"size"` // floor area in square metres
	Beds        []BedInfo `bson:"beds" json:"beds"`
	Images      []string  `bson:"images" json:"images"`
	Facilities  []string  `bson:"facilities" json:"facilities"`
	// Quantity is the static unit count set by the merchant. Availability is
	// always derived from daily records, never from this field.
	Quantity int `bson:"quantity" json:"quantity"`
}

// AvailableRoom is a RoomType with the number of units free for every night
// of a requested stay.
type AvailableRoom struct {
	RoomType
	AvailableCount int `json:"available_count"`
}
