package settings

import (
	"errors"

	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"woosync.GO/model/entity"
	syncService "woosync.GO/service/sync"
)

// Setting keys for the sync configuration; key names match the
// mapstructure tags on sync.Config.
const (
	KeyBaseURL            = "base_url"
	KeyConsumerKey        = "consumer_key"
	KeyConsumerSecret     = "consumer_secret"
	KeyHealthEndpoint     = "health_endpoint"
	KeyProductsEndpoint   = "products_endpoint"
	KeyCategoriesEndpoint = "categories_endpoint"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(key string) (string, error) {
	var s entity.Setting
	err := r.db.Where("key_name = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.Value, nil
}

func (r *SettingsRepository) Set(key, value string) error {
	s := entity.Setting{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&s).Error
}

func (r *SettingsRepository) All() (map[string]string, error) {
	var rows []entity.Setting
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[s.Key] = s.Value
	}
	return out, nil
}

// LoadSyncConfig decodes the settings rows into a normalized sync.Config.
// The config is loaded once per run and passed in explicitly from here on.
func (r *SettingsRepository) LoadSyncConfig() (syncService.Config, error) {
	var cfg syncService.Config

	m, err := r.All()
	if err != nil {
		return cfg, err
	}
	if err := mapstructure.Decode(m, &cfg); err != nil {
		return cfg, err
	}
	cfg.Normalize()
	return cfg, nil
}

// SaveSyncConfig persists every sync.Config field.
func (r *SettingsRepository) SaveSyncConfig(cfg syncService.Config) error {
	cfg.Normalize()
	pairs := map[string]string{
		KeyBaseURL:            cfg.BaseURL,
		KeyConsumerKey:        cfg.ConsumerKey,
		KeyConsumerSecret:     cfg.ConsumerSecret,
		KeyHealthEndpoint:     cfg.HealthEndpoint,
		KeyProductsEndpoint:   cfg.ProductsEndpoint,
		KeyCategoriesEndpoint: cfg.CategoriesEndpoint,
	}
	for k, v := range pairs {
		if err := r.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}
