package inventoryRepo

import (
	"context"
	"fmt"
	"testing"

	"hotelbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func seedInventory(t *testing.T, db *gorm.DB) {
	roomTypes := []RoomTypeRecord{
		NewRoomTypeRecord(models.RoomType{ID: 1, HotelID: 10, Name: "大床房", Price: 300, MaxGuests: 2,
			Beds: []models.BedInfo{{Type: "king", Count: 1}}, Facilities: []string{"wifi"}}),
		NewRoomTypeRecord(models.RoomType{ID: 2, HotelID: 10, Name: "储物间", Price: 10, MaxGuests: 0}),
		NewRoomTypeRecord(models.RoomType{ID: 3, HotelID: 20, Name: "家庭房", Price: 500, MaxGuests: 4}),
	}
	require.NoError(t, db.Create(&roomTypes).Error)

	avail := []AvailabilityRecord{
		{RoomTypeID: 1, Date: "2025-03-01", TotalCount: 5, BookedCount: 1},
		{RoomTypeID: 1, Date: "2025-03-02", TotalCount: 5, BookedCount: 4},
		{RoomTypeID: 1, Date: "2025-03-03", TotalCount: 5, BookedCount: 0},
		{RoomTypeID: 2, Date: "2025-03-01", TotalCount: 1, BookedCount: 0},
		{RoomTypeID: 3, Date: "2025-03-01", TotalCount: 2, BookedCount: 0},
	}
	require.NoError(t, db.Create(&avail).Error)
}

func TestGormInventoryRepo_GetRoomTypes(t *testing.T) {
	db := setupTestDB(t)
	seedInventory(t, db)
	repo := NewGormInventoryRepo(db)

	all, err := repo.GetRoomTypes(context.Background(), 10, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "大床房", all[0].Name)
	assert.Equal(t, []models.BedInfo{{Type: "king", Count: 1}}, all[0].Beds)
	assert.Equal(t, []string{"wifi"}, all[0].Facilities)

	bookable, err := repo.GetRoomTypes(context.Background(), 10, true)
	require.NoError(t, err)
	require.Len(t, bookable, 1)
	assert.Equal(t, int64(1), bookable[0].ID)
}

func TestGormInventoryRepo_GetAvailability(t *testing.T) {
	db := setupTestDB(t)
	seedInventory(t, db)
	repo := NewGormInventoryRepo(db)

	t.Run("by hotel over a half-open range", func(t *testing.T) {
		rows, err := repo.GetAvailability(context.Background(), AvailabilityFilter{
			HotelID: 10, From: "2025-03-01", To: "2025-03-03",
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []models.DailyAvailability{
			{RoomTypeID: 1, Date: "2025-03-01", TotalCount: 5, BookedCount: 1},
			{RoomTypeID: 1, Date: "2025-03-02", TotalCount: 5, BookedCount: 4},
			{RoomTypeID: 2, Date: "2025-03-01", TotalCount: 1, BookedCount: 0},
		}, rows)
	})

	t.Run("by room types", func(t *testing.T) {
		rows, err := repo.GetAvailability(context.Background(), AvailabilityFilter{
			RoomTypeIDs: []int64{3}, From: "2025-03-01", To: "2025-03-02",
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(3), rows[0].RoomTypeID)
	})

	t.Run("empty filter is rejected", func(t *testing.T) {
		_, err := repo.GetAvailability(context.Background(), AvailabilityFilter{From: "2025-03-01"})
		assert.Error(t, err)
	})
}

func TestGormInventoryRepo_IncrementBooked(t *testing.T) {
	db := setupTestDB(t)
	seedInventory(t, db)
	repo := NewGormInventoryRepo(db)

	require.NoError(t, repo.IncrementBooked(context.Background(), 1, "2025-03-03", 2))

	var rec AvailabilityRecord
	require.NoError(t, db.Where("room_type_id = ? AND date = ?", 1, "2025-03-03").First(&rec).Error)
	assert.Equal(t, 2, rec.BookedCount)

	err := repo.IncrementBooked(context.Background(), 1, "2030-01-01", 1)
	assert.ErrorIs(t, err, ErrAvailabilityNotFound)
}

func bookedCount(t *testing.T, db *gorm.DB, roomTypeID int64, date string) int {
	var rec AvailabilityRecord
	require.NoError(t, db.Where("room_type_id = ? AND date = ?", roomTypeID, date).First(&rec).Error)
	return rec.BookedCount
}

func TestGormInventoryRepo_AdjustBooked(t *testing.T) {
	db := setupTestDB(t)
	seedInventory(t, db)
	repo := NewGormInventoryRepo(db)
	ctx := context.Background()

	t.Run("reserves every night", func(t *testing.T) {
		err := repo.AdjustBooked(ctx, []models.InventoryIncrement{
			{RoomTypeID: 1, Date: "2025-03-01", Delta: 1},
			{RoomTypeID: 1, Date: "2025-03-02", Delta: 1},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, bookedCount(t, db, 1, "2025-03-01"))
		assert.Equal(t, 5, bookedCount(t, db, 1, "2025-03-02"))
	})

	t.Run("sold out night rolls back the batch", func(t *testing.T) {
		err := repo.AdjustBooked(ctx, []models.InventoryIncrement{
			{RoomTypeID: 1, Date: "2025-03-01", Delta: 1},
			{RoomTypeID: 1, Date: "2025-03-02", Delta: 1},
		})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 2, bookedCount(t, db, 1, "2025-03-01"))
		assert.Equal(t, 5, bookedCount(t, db, 1, "2025-03-02"))
	})

	t.Run("missing night counts as sold out", func(t *testing.T) {
		err := repo.AdjustBooked(ctx, []models.InventoryIncrement{{RoomTypeID: 1, Date: "2030-01-01", Delta: 1}})
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("release frees rooms", func(t *testing.T) {
		err := repo.AdjustBooked(ctx, []models.InventoryIncrement{
			{RoomTypeID: 1, Date: "2025-03-01", Delta: -1},
			{RoomTypeID: 1, Date: "2025-03-02", Delta: -1},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, bookedCount(t, db, 1, "2025-03-01"))
		assert.Equal(t, 4, bookedCount(t, db, 1, "2025-03-02"))
	})

	t.Run("release cannot go below zero", func(t *testing.T) {
		err := repo.AdjustBooked(ctx, []models.InventoryIncrement{{RoomTypeID: 1, Date: "2025-03-03", Delta: -1}})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 0, bookedCount(t, db, 1, "2025-03-03"))
	})
}
