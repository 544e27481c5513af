package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogEntity "woosync.GO/model/entity/catalog"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) FindByID(id uint) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByRemoteID resolves a product through the external-id mapping.
// Returns (nil, nil) when no mapping exists or the mapped product row is
// gone; a stale link reads as unmapped so the next run re-creates cleanly.
func (r *ProductRepository) FindByRemoteID(remoteID uint64) (*catalogEntity.Product, error) {
	var link catalogEntity.ProductRemoteLink
	err := r.db.Where("remote_id = ?", remoteID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p catalogEntity.Product
	err = r.db.First(&p, link.ProductID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Save(p *catalogEntity.Product) error {
	return r.db.Save(p).Error
}

// LinkRemoteID records (or refreshes) the external-id mapping. The upsert
// on remote_id's unique index keeps concurrent runs from ending up with
// two mappings for the same remote id.
func (r *ProductRepository) LinkRemoteID(productID uint, remoteID uint64) error {
	link := catalogEntity.ProductRemoteLink{ProductID: productID, RemoteID: remoteID}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "remote_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"product_id"}),
	}).Create(&link).Error
}

// AllRemoteIDs lists every mapped external id, for refresh runs.
func (r *ProductRepository) AllRemoteIDs() ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&catalogEntity.ProductRemoteLink{}).
		Order("remote_id asc").
		Pluck("remote_id", &ids).Error
	return ids, err
}

// EnsureUniqueSlug appends -2, -3, ... to candidate until no other product
// carries it.
func (r *ProductRepository) EnsureUniqueSlug(candidate string, productID uint) (string, error) {
	if candidate == "" {
		candidate = "product"
	}
	slug := candidate
	for n := 2; ; n++ {
		var count int64
		err := r.db.Model(&catalogEntity.Product{}).
			Where("slug = ? AND id <> ?", slug, productID).
			Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", candidate, n)
	}
}

// HasCatalogSchema reports whether the catalog tables exist; the sync
// surface refuses transfers without them.
func (r *ProductRepository) HasCatalogSchema() bool {
	m := r.db.Migrator()
	return m.HasTable(&catalogEntity.Product{}) &&
		m.HasTable(&catalogEntity.ProductRemoteLink{}) &&
		m.HasTable(&catalogEntity.Attachment{})
}
