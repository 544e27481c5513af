package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"woosync.GO/config"
	settingsRepo "woosync.GO/model/repository/settings"
	syncService "woosync.GO/service/sync"
)

var configureCfg syncService.Config

var configureCmd = &cobra.Command{
	Use:   "sync:configure",
	Short: "Store the remote base URL, credentials and endpoint overrides",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		repo := settingsRepo.NewSettingsRepository(db)
		if err := repo.SaveSyncConfig(configureCfg); err != nil {
			fmt.Printf("Save failed: %v\n", err)
			return
		}
		saved, _ := repo.LoadSyncConfig()
		fmt.Printf("Saved. Configured: %v (base %s)\n", saved.Complete(), saved.BaseURL)
	},
}

func init() {
	configureCmd.Flags().StringVar(&configureCfg.BaseURL, "base-url", "", "Remote site base URL (required)")
	configureCmd.MarkFlagRequired("base-url")
	configureCmd.Flags().StringVar(&configureCfg.ConsumerKey, "consumer-key", "", "REST consumer key (required)")
	configureCmd.MarkFlagRequired("consumer-key")
	configureCmd.Flags().StringVar(&configureCfg.ConsumerSecret, "consumer-secret", "", "REST consumer secret (required)")
	configureCmd.MarkFlagRequired("consumer-secret")
	configureCmd.Flags().StringVar(&configureCfg.HealthEndpoint, "health-endpoint", "", "Health endpoint override")
	configureCmd.Flags().StringVar(&configureCfg.ProductsEndpoint, "products-endpoint", "", "Products endpoint override")
	configureCmd.Flags().StringVar(&configureCfg.CategoriesEndpoint, "categories-endpoint", "", "Categories endpoint override")
	rootCmd.AddCommand(configureCmd)
}
