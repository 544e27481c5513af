package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var productsCategory uint64

var productsCmd = &cobra.Command{
	Use:   "sync:products",
	Short: "List remote products, optionally filtered by remote category id",
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newSyncClient()
		if err != nil {
			fmt.Printf("Setup failed: %v\n", err)
			return
		}
		rows, errs := client.ListProducts(productsCategory)
		if !errs.Empty() {
			fmt.Printf("Listing failed: %v\n", errs.Strings())
			return
		}
		for _, p := range rows {
			fmt.Printf("%8d  %-40s %-16s %s\n", p.ID, p.Name, p.SKU, p.Status)
		}
		fmt.Printf("%d products.\n", len(rows))
	},
}

func init() {
	productsCmd.Flags().Uint64Var(&productsCategory, "category", 0, "Remote category id filter")
	rootCmd.AddCommand(productsCmd)
}
