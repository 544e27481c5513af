package entity

import "time"

// Setting represents core_setting table (key-value configuration store)
type Setting struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"column:key_name;type:varchar(128);not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"column:value;type:text" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "core_setting"
}
