package catalog

import "time"

// Attachment represents catalog_attachment table.
// A managed media file owned by the product that references it.
type Attachment struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"column:product_id;index;not null" json:"product_id"`
	FileName  string    `gorm:"column:file_name;type:varchar(255);not null" json:"file_name"`
	FilePath  string    `gorm:"column:file_path;type:varchar(512);not null" json:"file_path"`
	ThumbPath string    `gorm:"column:thumb_path;type:varchar(512)" json:"thumb_path,omitempty"`
	MimeType  string    `gorm:"column:mime_type;type:varchar(64)" json:"mime_type,omitempty"`
	Alt       string    `gorm:"column:alt;type:varchar(255)" json:"alt,omitempty"`
	SizeBytes int64     `gorm:"column:size_bytes;not null;default:0" json:"size_bytes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Attachment) TableName() string {
	return "catalog_attachment"
}
