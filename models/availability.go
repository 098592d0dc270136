package models

// DailyAvailability is the inventory snapshot of one room type on one date.
type DailyAvailability struct {
	RoomTypeID  int64  `bson:"room_type_id" json:"room_type_id"`
	Date        string `bson:"date" json:"date"` // "YYYY-MM-DD"
	TotalCount  int    `bson:"total_count" json:"total_count"`
	BookedCount int    `bson:"booked_count" json:"booked_count"`
}

// Available returns the free units on this date, clamped at zero.
func (d DailyAvailability) Available() int {
	if n := d.TotalCount - d.BookedCount; n > 0 {
		return n
	}
	return 0
}
