package catalog

import (
	"gorm.io/gorm"

	catalogEntity "woosync.GO/model/entity/catalog"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(c *catalogEntity.Category) error {
	return r.db.Create(c).Error
}

func (r *CategoryRepository) FindByID(id uint) (*catalogEntity.Category, error) {
	var c catalogEntity.Category
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&catalogEntity.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
