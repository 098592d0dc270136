package commands

import (
	"fmt"

	hotelRepo "hotelbook/database/repository/hotel"
	inventoryRepo "hotelbook/database/repository/inventory"
	orderRepo "hotelbook/database/repository/order"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// Migrate creates or updates every relational table the API reads.
func Migrate(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"hotels", hotelRepo.AutoMigrate},
		{"inventory", inventoryRepo.AutoMigrate},
		{"orders", orderRepo.AutoMigrate},
	}
	for _, step := range steps {
		if err := step.run(db); err != nil {
			return fmt.Errorf("failed to migrate %s: %v", step.name, err)
		}
	}
	return nil
}

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the hotel, inventory and order tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := getDB(cmd)
			if err != nil {
				return err
			}
			if err := Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
}
