package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntityType 实体类型标签，同时用于多态表 (ratings/likes/bookmarks/pictures/relationships)
type EntityType string

const (
	EntityTypeOrganization         EntityType = "organization"
	EntityTypeStartup              EntityType = "startup"
	EntityTypeEvent                EntityType = "event"
	EntityTypeNewsArticle          EntityType = "news_article"
	EntityTypeCoWorkingSpace       EntityType = "co_working_space"
	EntityTypeTrainingOrganization EntityType = "training_organization"
	EntityTypeUnified              EntityType = "unified_entity"
)

// Status 审核状态
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusPublished Status = "published" // news articles use this instead of approved
	StatusRejected  Status = "rejected"
)

// Entity 所有目录实体的公共能力
type Entity interface {
	Kind() EntityType
	Base() *EntityBase
}

// EntityBase 各实体表共有的字段
type EntityBase struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserID        string    `gorm:"size:36;not null;index" json:"user_id"`
	Status        Status    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AdminComment  string    `gorm:"type:text" json:"admin_comment,omitempty"`
	AverageRating float64   `gorm:"not null;default:0" json:"average_rating"`
	TotalRatings  int       `gorm:"not null;default:0" json:"total_ratings"`
	RatingsCount  int       `gorm:"not null;default:0" json:"ratings_count"`
	Pictures      []Picture `gorm:"-" json:"pictures,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (b *EntityBase) Base() *EntityBase {
	return b
}

// BeforeCreate 生成 UUID 主键
func (b *EntityBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// AggregateColumns 评分聚合列，只能由评分流程修改
var AggregateColumns = []string{"average_rating", "total_ratings", "ratings_count"}

// ProtectedColumns 所有者编辑时不可覆盖的列
var ProtectedColumns = append([]string{"id", "user_id", "status", "admin_comment", "created_at"}, AggregateColumns...)

// DirectoryTypes 具体的目录实体类型，不含 unified_entity
var DirectoryTypes = []EntityType{
	EntityTypeOrganization,
	EntityTypeStartup,
	EntityTypeEvent,
	EntityTypeNewsArticle,
	EntityTypeCoWorkingSpace,
	EntityTypeTrainingOrganization,
}

// ParseEntityType 校验类型标签，unified_entity 也是合法的多态类型
func ParseEntityType(s string) (EntityType, bool) {
	t := EntityType(s)
	if t == EntityTypeUnified {
		return t, true
	}
	for _, known := range DirectoryTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}
