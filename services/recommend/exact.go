package recommend

import "hotelbook/models"

// partial is one branch of the exact-fit search. Branches never share a
// selection slice, so a snapshot stays valid after its siblings run.
type partial struct {
	index        int
	roomsLeft    int
	capacityLeft int
	selection    []models.RoomAllocation
	price        float64
}

type exactSearch struct {
	rooms  []models.AvailableRoom
	nights int
	best   *models.RecommendationResult
}

// findCheapestCombination returns the cheapest selection of exactly
// targetRooms units that houses totalGuests, or nil. rooms must be sorted by
// ascending price; ties keep the first combination found.
func findCheapestCombination(rooms []models.AvailableRoom, targetRooms, totalGuests, nights int) *models.RecommendationResult {
	s := &exactSearch{rooms: rooms, nights: nights}
	s.dfs(partial{roomsLeft: targetRooms, capacityLeft: totalGuests})
	return s.best
}

func (s *exactSearch) dfs(p partial) {
	// Adding rooms never lowers the price.
	if s.best != nil && p.price >= s.best.TotalPrice {
		return
	}

	if p.roomsLeft == 0 {
		if p.capacityLeft <= 0 {
			s.best = &models.RecommendationResult{
				Rooms:      p.selection,
				TotalPrice: p.price,
			}
		}
		return
	}

	if p.index >= len(s.rooms) {
		return
	}
	if s.maxCapacity(p.index, p.roomsLeft) < p.capacityLeft {
		return
	}

	room := s.rooms[p.index]
	for count := min(room.AvailableCount, p.roomsLeft); count >= 0; count-- {
		next := partial{
			index:        p.index + 1,
			roomsLeft:    p.roomsLeft - count,
			capacityLeft: p.capacityLeft - room.MaxGuests*count,
			selection:    p.selection,
			price:        p.price + room.Price*float64(count)*float64(s.nights),
		}
		if count > 0 {
			next.selection = withAllocation(p.selection, room, count)
		}
		s.dfs(next)
	}
}

// maxCapacity is an upper bound on the guests the rooms from index on could
// still house with roomsLeft units.
func (s *exactSearch) maxCapacity(index, roomsLeft int) int {
	total := 0
	for _, r := range s.rooms[index:] {
		total += r.MaxGuests * min(r.AvailableCount, roomsLeft)
	}
	return total
}

func withAllocation(sel []models.RoomAllocation, room models.AvailableRoom, count int) []models.RoomAllocation {
	out := make([]models.RoomAllocation, len(sel), len(sel)+1)
	copy(out, sel)
	return append(out, models.RoomAllocation{Room: room, Count: count})
}
