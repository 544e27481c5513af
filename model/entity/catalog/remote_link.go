package catalog

import "time"

// ProductRemoteLink represents catalog_product_remote_link table.
// Maps a remote product id to the local product created from it; a remote
// id maps to at most one local product. The unique index keeps two
// concurrent runs from recording two mappings for the same remote id.
type ProductRemoteLink struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"column:product_id;index;not null" json:"product_id"`
	RemoteID  uint64    `gorm:"column:remote_id;uniqueIndex;not null" json:"remote_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProductRemoteLink) TableName() string {
	return "catalog_product_remote_link"
}
