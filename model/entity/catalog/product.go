package catalog

import (
	"time"

	"gorm.io/datatypes"
)

// Product represents catalog_product table
type Product struct {
	ID               uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name             string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug             string         `gorm:"column:slug;type:varchar(255);index" json:"slug"`
	SKU              string         `gorm:"column:sku;type:varchar(64);index" json:"sku"`
	Description      string         `gorm:"column:description;type:text" json:"description,omitempty"`
	ShortDescription string         `gorm:"column:short_description;type:text" json:"short_description,omitempty"`
	Status           string         `gorm:"column:status;type:varchar(16);not null;default:draft" json:"status"`
	CategoryID       *uint          `gorm:"column:category_id;index" json:"category_id,omitempty"`
	FeaturedImageID  *uint          `gorm:"column:featured_image_id" json:"featured_image_id,omitempty"`
	GalleryImageIDs  datatypes.JSON `gorm:"column:gallery_image_ids" json:"gallery_image_ids,omitempty"`
	Attributes       datatypes.JSON `gorm:"column:attributes" json:"attributes,omitempty"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "catalog_product"
}

// ProductAttribute is the shape stored in Product.Attributes.
// Custom (non-taxonomy) attributes only; position preserves remote order.
type ProductAttribute struct {
	Name      string   `json:"name"`
	Options   []string `json:"options"`
	Position  int      `json:"position"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
}
