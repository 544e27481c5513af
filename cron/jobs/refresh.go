package jobs

import (
	"log"

	"woosync.GO/config"
	catalogRepo "woosync.GO/model/repository/catalog"
	settingsRepo "woosync.GO/model/repository/settings"
	"woosync.GO/service/search"
	syncService "woosync.GO/service/sync"
)

// RefreshJob re-reconciles every mapped external id so local copies track
// the remote. Scheduled, sequential, same per-id error policy as a manual
// transfer; category assignments are left as they are.
func RefreshJob(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("syncrefresh: database connection failed: %v", err)
		return
	}

	cfg, err := settingsRepo.NewSettingsRepository(db).LoadSyncConfig()
	if err != nil {
		log.Printf("syncrefresh: load config: %v", err)
		return
	}
	if !cfg.Complete() {
		log.Println("syncrefresh: sync not configured, skipping")
		return
	}

	products := catalogRepo.NewProductRepository(db)
	ids, err := products.AllRemoteIDs()
	if err != nil {
		log.Printf("syncrefresh: list mapped ids: %v", err)
		return
	}
	if len(ids) == 0 {
		log.Println("syncrefresh: nothing mapped yet")
		return
	}

	mediaDir := "media/catalog"
	if config.AppConfig != nil && config.AppConfig.MediaDir != "" {
		mediaDir = config.AppConfig.MediaDir
	}

	reconciler := syncService.NewReconciler(
		syncService.NewClient(cfg),
		products,
		catalogRepo.NewCategoryRepository(db),
		syncService.NewImagePipeline(catalogRepo.NewAttachmentRepository(db, mediaDir)),
	).WithIndexer(search.GetIndexer())

	res := reconciler.Reconcile(ids, nil)
	log.Printf("syncrefresh: %d ids, imported=%d updated=%d ok=%v errors=%v",
		len(ids), res.Imported, res.Updated, res.Success, res.Errors.Strings())
	for remoteID, reasons := range res.ImageErrors {
		log.Printf("syncrefresh: remote product %d image failures: %v", remoteID, reasons)
	}
}
