package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"woosync.GO/config"
	cronService "woosync.GO/cron"
)

var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "Run the scheduled sync jobs in the foreground",
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()
		c := cronService.StartCron()
		for name, j := range cronService.Jobs {
			fmt.Printf("Registered job %s (%s)\n", name, j.Schedule)
		}
		defer c.Stop()
		select {} // run until killed
	},
}

func init() {
	rootCmd.AddCommand(cronCmd)
}
