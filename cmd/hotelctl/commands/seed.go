package commands

import (
	"context"
	"fmt"
	"time"

	hotelRepo "hotelbook/database/repository/hotel"
	inventoryRepo "hotelbook/database/repository/inventory"
	"hotelbook/models"
	"hotelbook/utils"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// demoRoom is a room type of the demo hotel and its nightly stock.
type demoRoom struct {
	roomType models.RoomType
	stock    int
}

var demoRooms = []demoRoom{
	{models.RoomType{Name: "大床房", Price: 399, MaxGuests: 2, Size: 28, Beds: []models.BedInfo{{Type: "king", Count: 1}}, Quantity: 5}, 5},
	{models.RoomType{Name: "双床房", Price: 459, MaxGuests: 2, Size: 32, Beds: []models.BedInfo{{Type: "twin", Count: 2}}, Quantity: 5}, 5},
	{models.RoomType{Name: "家庭房", Price: 699, MaxGuests: 4, Size: 45, Beds: []models.BedInfo{{Type: "king", Count: 1}, {Type: "single", Count: 2}}, Quantity: 2}, 2},
}

// SeedDemo inserts one active hotel with three room types and stock for days
// nights starting at start. Running it again tops up missing rows only.
func SeedDemo(ctx context.Context, db *gorm.DB, start time.Time, days int) (int64, error) {
	var hotelID int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		score := 4.7
		hotel := hotelRepo.NewHotelRecord(models.Hotel{
			NameZh:     "外滩示例酒店",
			NameEn:     "Bund Demo Hotel",
			Address:    "上海市黄浦区中山东一路 1 号",
			StarRating: 5,
			Status:     "active",
			Region:     "上海",
			Tags:       []string{"江景", "亲子"},
		}, &score)
		if err := tx.Where(hotelRepo.HotelRecord{NameZh: hotel.NameZh}).FirstOrCreate(&hotel).Error; err != nil {
			return fmt.Errorf("seed hotel: %w", err)
		}
		hotelID = hotel.ID

		for _, demo := range demoRooms {
			rt := demo.roomType
			rt.HotelID = hotel.ID
			rec := inventoryRepo.NewRoomTypeRecord(rt)
			if err := tx.Where(inventoryRepo.RoomTypeRecord{HotelID: hotel.ID, Name: rt.Name}).FirstOrCreate(&rec).Error; err != nil {
				return fmt.Errorf("seed room type %s: %w", rt.Name, err)
			}

			rows := make([]inventoryRepo.AvailabilityRecord, 0, days)
			for i := 0; i < days; i++ {
				rows = append(rows, inventoryRepo.AvailabilityRecord{
					RoomTypeID: rec.ID,
					Date:       utils.FormatDate(start.AddDate(0, 0, i)),
					TotalCount: demo.stock,
				})
			}
			if len(rows) == 0 {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
				return fmt.Errorf("seed availability for %s: %w", rt.Name, err)
			}
		}
		return nil
	})
	return hotelID, err
}

func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo hotel with room types and daily stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			from, _ := cmd.Flags().GetString("from")

			start := time.Now().UTC()
			if from != "" {
				var err error
				if start, err = utils.ParseDate(from); err != nil {
					return err
				}
			}

			db, err := getDB(cmd)
			if err != nil {
				return err
			}
			hotelID, err := SeedDemo(cmd.Context(), db, start, days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded hotel %d with %d nights of stock from %s\n", hotelID, days, utils.FormatDate(start))
			return nil
		},
	}
	cmd.Flags().Int("days", 30, "number of nights of stock to create")
	cmd.Flags().String("from", "", "first night, YYYY-MM-DD (default today)")
	return cmd
}
