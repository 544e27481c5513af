package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var diagnoseCmd = &cobra.Command{
	Use:   "sync:diagnose",
	Short: "Probe the remote health endpoint with the stored credentials",
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newSyncClient()
		if err != nil {
			fmt.Printf("Setup failed: %v\n", err)
			return
		}
		errs := client.Diagnose()
		if errs.Empty() {
			fmt.Println("Connection OK.")
			return
		}
		fmt.Println("Connection failed:")
		for _, code := range errs.Strings() {
			fmt.Printf("  - %s\n", code)
		}
	},
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
}
