package commands

import (
	"fmt"

	"hotelbook/config"
	"hotelbook/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewRootCmd builds hotelctl. --driver and --dsn override the configured SQL connection.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hotelctl",
		Short:         "Hotel booking maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("driver", "", "sql driver: postgres or sqlite (default SQL_DRIVER)")
	root.PersistentFlags().String("dsn", "", "database DSN (default DATABASE_DSN)")

	root.AddCommand(
		MigrateCmd(),
		SeedCmd(),
		RecommendCmd(),
	)
	return root
}

func getDB(cmd *cobra.Command) (*gorm.DB, error) {
	driver, _ := cmd.Flags().GetString("driver")
	dsn, _ := cmd.Flags().GetString("dsn")
	if driver == "" {
		driver = config.AppConfig.SQLDriver
	}
	if dsn == "" {
		dsn = config.AppConfig.DatabaseDSN
	}
	return getDBFor(driver, dsn)
}

func getDBFor(driver, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN not set in environment or --dsn flag")
	}
	return database.OpenSQL(driver, dsn)
}
