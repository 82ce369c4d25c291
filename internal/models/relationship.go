package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultRelationshipType = "same_organization"

// EntityRelationship 实体之间的有向边，两端用 (id, type) 弱引用
// 不做唯一约束，同一对实体之间可以存在多条边
type EntityRelationship struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	PrimaryEntityID   string     `gorm:"size:36;not null;index:idx_rel_primary" json:"primary_entity_id"`
	PrimaryEntityType EntityType `gorm:"size:50;not null;index:idx_rel_primary" json:"primary_entity_type"`
	RelatedEntityID   string     `gorm:"size:36;not null;index:idx_rel_related" json:"related_entity_id"`
	RelatedEntityType EntityType `gorm:"size:50;not null;index:idx_rel_related" json:"related_entity_type"`
	RelationshipType  string     `gorm:"size:100;not null;default:'same_organization'" json:"relationship_type"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (r *EntityRelationship) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.RelationshipType == "" {
		r.RelationshipType = DefaultRelationshipType
	}
	return nil
}
