package commands

import (
	"encoding/json"
	"fmt"

	inventoryRepo "hotelbook/database/repository/inventory"
	"hotelbook/models"
	"hotelbook/services/recommend"
	"hotelbook/utils"

	"github.com/spf13/cobra"
)

func RecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print the room recommendation for a stay",
		RunE: func(cmd *cobra.Command, args []string) error {
			hotelID, _ := cmd.Flags().GetInt64("hotel")
			rooms, _ := cmd.Flags().GetInt("rooms")
			adults, _ := cmd.Flags().GetInt("adults")
			children, _ := cmd.Flags().GetInt("children")
			checkIn, _ := cmd.Flags().GetString("check-in")
			checkOut, _ := cmd.Flags().GetString("check-out")

			in, out, err := utils.ParseStay(checkIn, checkOut)
			if err != nil {
				return err
			}
			db, err := getDB(cmd)
			if err != nil {
				return err
			}

			svc := recommend.NewRecommendationService(inventoryRepo.NewGormInventoryRepo(db), nil, nil)
			result, err := svc.Recommend(cmd.Context(), models.RecommendationRequest{
				HotelID:  hotelID,
				Rooms:    rooms,
				Adults:   adults,
				Children: children,
				CheckIn:  in,
				CheckOut: out,
			})
			if err != nil {
				return err
			}
			if result == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No room combination can house this party.")
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().Int64("hotel", 0, "hotel id")
	cmd.Flags().Int("rooms", 1, "number of rooms")
	cmd.Flags().Int("adults", 1, "number of adults")
	cmd.Flags().Int("children", 0, "number of children")
	cmd.Flags().String("check-in", "", "check-in date, YYYY-MM-DD")
	cmd.Flags().String("check-out", "", "check-out date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("hotel")
	_ = cmd.MarkFlagRequired("check-in")
	_ = cmd.MarkFlagRequired("check-out")
	return cmd
}
