package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating 评分，(entity_type, entity_id, user_id) 唯一
type Rating struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EntityType EntityType `gorm:"size:50;not null;uniqueIndex:idx_rating_entity_user" json:"entity_type"`
	EntityID   string     `gorm:"size:36;not null;uniqueIndex:idx_rating_entity_user;index" json:"entity_id"`
	UserID     string     `gorm:"size:36;not null;uniqueIndex:idx_rating_entity_user" json:"user_id"`
	Rating     int        `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Review     string     `gorm:"type:text" json:"review,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Like 点赞 - 用户点赞实体
type Like struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EntityType EntityType `gorm:"size:50;not null;uniqueIndex:idx_like_entity_user" json:"entity_type"`
	EntityID   string     `gorm:"size:36;not null;uniqueIndex:idx_like_entity_user;index" json:"entity_id"`
	UserID     string     `gorm:"size:36;not null;uniqueIndex:idx_like_entity_user" json:"user_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Bookmark 收藏模型 - 用户收藏实体
type Bookmark struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EntityType EntityType `gorm:"size:50;not null;uniqueIndex:idx_bookmark_entity_user" json:"entity_type"`
	EntityID   string     `gorm:"size:36;not null;uniqueIndex:idx_bookmark_entity_user;index" json:"entity_id"`
	UserID     string     `gorm:"size:36;not null;uniqueIndex:idx_bookmark_entity_user;index" json:"user_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Picture 实体图片，对象本身存放在对象存储
type Picture struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	EntityType  EntityType `gorm:"size:50;not null;index:idx_picture_entity" json:"entity_type"`
	EntityID    string     `gorm:"size:36;not null;index:idx_picture_entity" json:"entity_id"`
	UserID      string     `gorm:"size:36;not null" json:"user_id"`
	ObjectKey   string     `gorm:"size:255;not null" json:"-"`
	URL         string     `gorm:"size:512;not null" json:"url"`
	ContentType string     `gorm:"size:100" json:"content_type"`
	Size        int64      `json:"size"`
	IsCover     bool       `gorm:"default:false" json:"is_cover"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (p *Picture) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
