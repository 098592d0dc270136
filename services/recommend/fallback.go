package recommend

import (
	"fmt"
	"sort"
	"strings"

	"hotelbook/models"
)

// findFallbackByValue ignores the requested room count and fills rooms in
// order of price per guest until everyone is housed. It is a single greedy
// pass, not an optimum. Returns nil when inventory cannot house the party.
func findFallbackByValue(rooms []models.AvailableRoom, totalGuests, nights int) *models.RecommendationResult {
	sorted := make([]models.AvailableRoom, len(rooms))
	copy(sorted, rooms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return perGuestPrice(sorted[i]) < perGuestPrice(sorted[j])
	})

	remaining := totalGuests
	result := &models.RecommendationResult{}
	for _, room := range sorted {
		if remaining <= 0 {
			break
		}
		if room.MaxGuests <= 0 {
			continue
		}
		needed := min(ceilDiv(remaining, room.MaxGuests), room.AvailableCount)
		if needed <= 0 {
			continue
		}
		result.Rooms = append(result.Rooms, models.RoomAllocation{Room: room, Count: needed})
		result.TotalPrice += room.Price * float64(needed) * float64(nights)
		remaining -= room.MaxGuests * needed
	}

	if remaining > 0 {
		return nil
	}
	return result
}

func perGuestPrice(r models.AvailableRoom) float64 {
	return r.Price / float64(r.MaxGuests)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// fallbackReason tells the guest why the offer differs from the room count they asked for.
func fallbackReason(requestedRooms int, result *models.RecommendationResult) string {
	parts := make([]string, 0, len(result.Rooms))
	for _, a := range result.Rooms {
		parts = append(parts, fmt.Sprintf("%s x%d", a.Room.Name, a.Count))
	}
	return fmt.Sprintf("当前库存无法凑出 %d 间满足人数的组合，为您推荐 %d 间：%s",
		requestedRooms, result.RoomCount(), strings.Join(parts, " + "))
}
