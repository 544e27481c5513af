package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "sync:categories",
	Short: "List the remote's non-empty product categories",
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newSyncClient()
		if err != nil {
			fmt.Printf("Setup failed: %v\n", err)
			return
		}
		cats, errs := client.ListCategories()
		if !errs.Empty() {
			fmt.Printf("Listing failed: %v\n", errs.Strings())
			return
		}
		for _, c := range cats {
			fmt.Printf("%6d  %-40s %5d products\n", c.ID, c.Name, c.Count)
		}
		fmt.Printf("%d categories.\n", len(cats))
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
