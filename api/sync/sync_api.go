package sync

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"woosync.GO/config"
	"woosync.GO/core/cache"
	catalogRepo "woosync.GO/model/repository/catalog"
	settingsRepo "woosync.GO/model/repository/settings"
	"woosync.GO/service/search"
	syncService "woosync.GO/service/sync"
)

const (
	categoriesCacheKey = "sync:categories"
	categoriesCacheTTL = 120 // seconds
)

// RegisterSyncRoutes mounts the sync command surface on the authenticated
// /api group. Every operation returns {ok, errors} plus payload; errors
// are taxonomy codes only, localized by the caller.
func RegisterSyncRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/sync")

	// POST /api/sync/diagnose - probe the remote health endpoint
	g.POST("/diagnose", func(c echo.Context) error {
		client, err := newClient(db)
		if err != nil {
			return configFailure(c, err)
		}
		errs := client.Diagnose()
		return c.JSON(http.StatusOK, echo.Map{
			"ok":     errs.Empty(),
			"errors": errs.Strings(),
		})
	})

	// GET /api/sync/categories - remote non-empty categories, cached
	g.GET("/categories", func(c echo.Context) error {
		if cats, ok := cachedCategories(); ok {
			return c.JSON(http.StatusOK, echo.Map{"ok": true, "errors": []string{}, "categories": cats})
		}

		client, err := newClient(db)
		if err != nil {
			return configFailure(c, err)
		}
		cats, errs := client.ListCategories()
		if !errs.Empty() {
			return c.JSON(http.StatusOK, echo.Map{"ok": false, "errors": errs.Strings()})
		}
		storeCategories(cats)
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "errors": []string{}, "categories": cats})
	})

	// GET /api/sync/products?category= - remote product listing rows
	g.GET("/products", func(c echo.Context) error {
		var remoteCategoryID uint64
		if raw := c.QueryParam("category"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "category must be a positive integer"})
			}
			remoteCategoryID = id
		}

		client, err := newClient(db)
		if err != nil {
			return configFailure(c, err)
		}
		rows, errs := client.ListProducts(remoteCategoryID)
		if !errs.Empty() {
			return c.JSON(http.StatusOK, echo.Map{"ok": false, "errors": errs.Strings()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"ok":       true,
			"errors":   []string{},
			"count":    len(rows),
			"products": rows,
		})
	})

	// POST /api/sync/transfer - reconcile selected remote ids locally
	g.POST("/transfer", func(c echo.Context) error {
		start := time.Now()

		var body struct {
			IDs        []uint64 `json:"ids"`
			CategoryID *uint    `json:"category_id"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.IDs) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids array is required and must not be empty"})
		}

		products := catalogRepo.NewProductRepository(db)
		if !products.HasCatalogSchema() {
			return c.JSON(http.StatusOK, echo.Map{
				"ok":     false,
				"errors": []string{string(syncService.ErrCatalogEngineMissing)},
			})
		}

		client, err := newClient(db)
		if err != nil {
			return configFailure(c, err)
		}

		reconciler := syncService.NewReconciler(
			client,
			products,
			catalogRepo.NewCategoryRepository(db),
			syncService.NewImagePipeline(catalogRepo.NewAttachmentRepository(db, mediaDir())),
		).WithIndexer(search.GetIndexer())

		res := reconciler.Reconcile(body.IDs, body.CategoryID)
		for remoteID, reasons := range res.ImageErrors {
			// Tracked per product, not surfaced in the result payload.
			log.Printf("sync: remote product %d image failures: %v", remoteID, reasons)
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"ok":                  res.Success,
			"imported":            res.Imported,
			"updated":             res.Updated,
			"errors":              res.Errors.Strings(),
			"request_duration_ms": duration,
		})
	})
}

// configFailure maps a settings-load error to the taxonomy. The cause
// goes to the log; the caller only ever sees codes.
func configFailure(c echo.Context, err error) error {
	log.Printf("sync: load config: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"ok":     false,
		"errors": []string{string(syncService.ErrTransferFailure)},
	})
}

func newClient(db *gorm.DB) (*syncService.Client, error) {
	cfg, err := settingsRepo.NewSettingsRepository(db).LoadSyncConfig()
	if err != nil {
		return nil, err
	}
	return syncService.NewClient(cfg), nil
}

func mediaDir() string {
	if config.AppConfig != nil && config.AppConfig.MediaDir != "" {
		return config.AppConfig.MediaDir
	}
	return "media/catalog"
}

func cachedCategories() ([]syncService.RemoteCategory, bool) {
	if config.RedisClient != nil {
		raw, err := config.RedisClient.Get(config.RedisCtx(), categoriesCacheKey).Bytes()
		if err == nil {
			var cats []syncService.RemoteCategory
			if json.Unmarshal(raw, &cats) == nil {
				return cats, true
			}
		}
		return nil, false
	}

	if v, ok := cache.GetInstance().Get(categoriesCacheKey); ok {
		if cats, ok := v.([]syncService.RemoteCategory); ok {
			return cats, true
		}
	}
	return nil, false
}

func storeCategories(cats []syncService.RemoteCategory) {
	if config.RedisClient != nil {
		if raw, err := json.Marshal(cats); err == nil {
			config.RedisClient.Set(config.RedisCtx(), categoriesCacheKey, raw, categoriesCacheTTL*time.Second)
		}
		return
	}
	cache.GetInstance().Set(categoriesCacheKey, cats, categoriesCacheTTL)
}
