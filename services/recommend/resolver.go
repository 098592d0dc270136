package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	inventoryRepo "hotelbook/database/repository/inventory"
	"hotelbook/models"
	"hotelbook/utils"

	"golang.org/x/sync/errgroup"
)

// Snapshot is the inventory of one hotel for one stay, read once per call.
type Snapshot struct {
	RoomTypes    []models.RoomType
	Availability map[int64]int // room type ID -> units free on every night
}

// Resolver reads room types and daily availability for a stay.
type Resolver struct {
	Repo inventoryRepo.InventoryRepository
}

func NewResolver(repo inventoryRepo.InventoryRepository) *Resolver {
	return &Resolver{Repo: repo}
}

// Resolve fetches the hotel's room types and the availability rows of the
// stay concurrently and reduces the rows to a per-type minimum.
func (r *Resolver) Resolve(ctx context.Context, hotelID int64, checkIn, checkOut time.Time, bookableOnly bool) (*Snapshot, error) {
	var (
		roomTypes []models.RoomType
		records   []models.DailyAvailability
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rts, err := r.Repo.GetRoomTypes(gctx, hotelID, bookableOnly)
		if err != nil {
			return fmt.Errorf("room types for hotel %d: %w", hotelID, err)
		}
		roomTypes = rts
		return nil
	})
	g.Go(func() error {
		rows, err := r.Repo.GetAvailability(gctx, inventoryRepo.AvailabilityFilter{
			HotelID: hotelID,
			From:    utils.FormatDate(checkIn),
			To:      utils.FormatDate(checkOut),
		})
		if err != nil {
			return fmt.Errorf("availability for hotel %d: %w", hotelID, err)
		}
		records = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInventoryLookup, err)
	}

	return &Snapshot{
		RoomTypes:    roomTypes,
		Availability: ResolveAvailability(records, utils.StayDates(checkIn, checkOut)),
	}, nil
}

// ResolveAvailability returns, per room type present in records, the minimum
// of (total - booked) over every date in dates. A date without a record counts
// as zero free units; duplicate rows for one date keep the smaller value.
func ResolveAvailability(records []models.DailyAvailability, dates []string) map[int64]int {
	perDay := make(map[int64]map[string]int)
	for _, rec := range records {
		days, ok := perDay[rec.RoomTypeID]
		if !ok {
			days = make(map[string]int)
			perDay[rec.RoomTypeID] = days
		}
		n := rec.Available()
		if prev, seen := days[rec.Date]; !seen || n < prev {
			days[rec.Date] = n
		}
	}

	result := make(map[int64]int, len(perDay))
	for id, days := range perDay {
		lowest := 0
		for i, d := range dates {
			n := days[d] // missing date -> 0
			if i == 0 || n < lowest {
				lowest = n
			}
		}
		result[id] = lowest
	}
	return result
}

// MergeAvailability attaches the resolved count to every room type, keeping
// sold-out types. Types without records resolve to zero.
func MergeAvailability(roomTypes []models.RoomType, avail map[int64]int) []models.AvailableRoom {
	rooms := make([]models.AvailableRoom, 0, len(roomTypes))
	for _, rt := range roomTypes {
		rooms = append(rooms, models.AvailableRoom{RoomType: rt, AvailableCount: avail[rt.ID]})
	}
	return rooms
}

// BuildCandidates keeps the room types that can host someone for the whole
// stay, cheapest first.
func BuildCandidates(roomTypes []models.RoomType, avail map[int64]int) []models.AvailableRoom {
	var candidates []models.AvailableRoom
	for _, room := range MergeAvailability(roomTypes, avail) {
		if room.AvailableCount <= 0 || room.MaxGuests <= 0 {
			continue
		}
		candidates = append(candidates, room)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Price < candidates[j].Price
	})
	return candidates
}
