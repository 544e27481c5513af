package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"woosync.GO/config"
	catalogRepo "woosync.GO/model/repository/catalog"
	"woosync.GO/service/search"
	syncService "woosync.GO/service/sync"
)

var (
	transferIDs      string
	transferCategory uint
)

var transferCmd = &cobra.Command{
	Use:   "sync:transfer",
	Short: "Reconcile remote products into the local catalog by external id",
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()

		ids := parseIDList(transferIDs)
		if len(ids) == 0 {
			fmt.Println("No valid ids given (use --ids 501,502,503).")
			return
		}

		client, db, err := newSyncClient()
		if err != nil {
			fmt.Printf("Setup failed: %v\n", err)
			return
		}

		products := catalogRepo.NewProductRepository(db)
		if !products.HasCatalogSchema() {
			fmt.Printf("Catalog schema missing (%s), run db:migrate first.\n", syncService.ErrCatalogEngineMissing)
			return
		}

		config.LoadAppConfig()
		reconciler := syncService.NewReconciler(
			client,
			products,
			catalogRepo.NewCategoryRepository(db),
			syncService.NewImagePipeline(catalogRepo.NewAttachmentRepository(db, config.AppConfig.MediaDir)),
		).WithIndexer(search.GetIndexer())

		var categoryID *uint
		if transferCategory > 0 {
			categoryID = &transferCategory
		}
		res := reconciler.Reconcile(ids, categoryID)

		for remoteID, reasons := range res.ImageErrors {
			for _, reason := range reasons {
				fmt.Printf("  [warn] remote %d: %s\n", remoteID, reason)
			}
		}

		fmt.Printf(`
=== Transfer Report ===
Requested:  %d
Imported:   %d
Updated:    %d
Errors:     %v
Result:     %s
Total time: %s
=======================
`, len(ids), res.Imported, res.Updated, res.Errors.Strings(),
			map[bool]string{true: "OK", false: "FAILED"}[res.Success],
			time.Since(start).Round(time.Millisecond))
	},
}

func parseIDList(raw string) []uint64 {
	var ids []uint64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseUint(part, 10, 64); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func init() {
	transferCmd.Flags().StringVar(&transferIDs, "ids", "", "Comma-separated remote product ids (required)")
	transferCmd.MarkFlagRequired("ids")
	transferCmd.Flags().UintVar(&transferCategory, "category", 0, "Local category id to assign")
	rootCmd.AddCommand(transferCmd)
}
