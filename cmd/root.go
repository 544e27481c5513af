package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"woosync.GO/config"
	settingsRepo "woosync.GO/model/repository/settings"
	syncService "woosync.GO/service/sync"
)

var rootCmd = &cobra.Command{
	Use:   "woosync",
	Short: "WooSync - pull remote catalog data into the local store",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newSyncClient opens the DB and builds a client from the stored config.
func newSyncClient() (*syncService.Client, *gorm.DB, error) {
	db, err := config.NewDB()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := settingsRepo.NewSettingsRepository(db).LoadSyncConfig()
	if err != nil {
		return nil, nil, err
	}
	return syncService.NewClient(cfg), db, nil
}
