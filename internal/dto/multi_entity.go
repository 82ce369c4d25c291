package dto

import "encoding/json"

// EntitySpec 批量创建中的一项，data 按 entityType 解码成对应的 Create*Request
type EntitySpec struct {
	EntityType string          `json:"entityType" binding:"required"`
	Data       json.RawMessage `json:"data" binding:"required"`
}

// CustomRelationship 调用方指定的边，始终指向第一个新建实体
type CustomRelationship struct {
	PrimaryEntityID  string `json:"primaryEntityId" binding:"required"`
	EntityType       string `json:"entityType" binding:"required"`
	RelationshipType string `json:"relationshipType"`
}

type MultiEntityRequest struct {
	Entities            []EntitySpec         `json:"entities" binding:"required,min=1,dive"`
	CreateRelationships *bool                `json:"createRelationships"`
	CustomRelationships []CustomRelationship `json:"customRelationships" binding:"dive"`
}

// ShouldLink 未传 createRelationships 时默认建立两两关系
func (r *MultiEntityRequest) ShouldLink() bool {
	return r.CreateRelationships == nil || *r.CreateRelationships
}

type CreatedEntity struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type MultiEntityResponse struct {
	Entities      []CreatedEntity `json:"entities"`
	Relationships interface{}     `json:"relationships"`
	Message       string          `json:"message"`
}

type CreateRelationshipRequest struct {
	PrimaryEntityID   string `json:"primary_entity_id" binding:"required"`
	PrimaryEntityType string `json:"primary_entity_type" binding:"required"`
	RelatedEntityID   string `json:"related_entity_id" binding:"required"`
	RelatedEntityType string `json:"related_entity_type" binding:"required"`
	RelationshipType  string `json:"relationship_type" binding:"max=100"`
}
