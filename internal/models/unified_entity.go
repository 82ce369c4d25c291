package models

import (
	"time"

	"gorm.io/datatypes"
)

// UnifiedEntity 把所有实体类型合并到同一张表，EntityType 标识具体类型
// 不同类型使用不同的字段子集，额外属性放在 Attributes
type UnifiedEntity struct {
	EntityBase
	EntityType  EntityType        `gorm:"size:50;not null;index" json:"entity_type"`
	Name        string            `gorm:"size:255" json:"name"`
	Title       string            `gorm:"size:255" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	AboutEvent  string            `gorm:"type:text" json:"about_event"`
	Content     string            `gorm:"type:text" json:"content"`
	Type        string            `gorm:"size:50" json:"type"`
	DateTime    *time.Time        `json:"date_time"`
	Location    string            `gorm:"size:255" json:"location"`
	Organizer   string            `gorm:"size:255" json:"organizer"`
	Category    string            `gorm:"size:100;index" json:"category"`
	Contact     string            `gorm:"size:255" json:"contact"`
	Website     string            `gorm:"size:255" json:"website"`
	Attributes  datatypes.JSONMap `json:"attributes,omitempty"`
}

// Kind 多态表中统一记为 unified_entity，具体类型见 EntityType 字段
func (*UnifiedEntity) Kind() EntityType { return EntityTypeUnified }

