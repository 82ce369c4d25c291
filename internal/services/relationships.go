package services

import (
	"context"

	"ecohub/internal/dto"
	"ecohub/internal/models"

	"gorm.io/gorm"
)

// RelationshipService 实体之间的关系边，不校验两端是否存在，也不去重
type RelationshipService struct {
	db *gorm.DB
}

func NewRelationshipService(db *gorm.DB) *RelationshipService {
	return &RelationshipService{db: db}
}

func (s *RelationshipService) Create(ctx context.Context, req dto.CreateRelationshipRequest) (*models.EntityRelationship, error) {
	primaryType, ok := models.ParseEntityType(req.PrimaryEntityType)
	if !ok {
		return nil, BadRequest("unsupported entity type: %s", req.PrimaryEntityType)
	}
	relatedType, ok := models.ParseEntityType(req.RelatedEntityType)
	if !ok {
		return nil, BadRequest("unsupported entity type: %s", req.RelatedEntityType)
	}
	return s.createTx(s.db.WithContext(ctx), req.PrimaryEntityID, primaryType, req.RelatedEntityID, relatedType, req.RelationshipType)
}

// createTx relationshipType 为空时使用 same_organization
func (s *RelationshipService) createTx(tx *gorm.DB, primaryID string, primaryType models.EntityType, relatedID string, relatedType models.EntityType, relationshipType string) (*models.EntityRelationship, error) {
	rel := &models.EntityRelationship{
		PrimaryEntityID:   primaryID,
		PrimaryEntityType: primaryType,
		RelatedEntityID:   relatedID,
		RelatedEntityType: relatedType,
		RelationshipType:  relationshipType,
	}
	if err := tx.Create(rel).Error; err != nil {
		return nil, classify(err, "relationship")
	}
	return rel, nil
}

func (s *RelationshipService) Get(ctx context.Context, id string) (*models.EntityRelationship, error) {
	var rel models.EntityRelationship
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&rel).Error; err != nil {
		return nil, classify(err, "relationship")
	}
	return &rel, nil
}

// GetRelated 实体作为任意一端的全部关系
func (s *RelationshipService) GetRelated(ctx context.Context, entityID string, entityType models.EntityType) ([]models.EntityRelationship, error) {
	rels := make([]models.EntityRelationship, 0)
	err := s.db.WithContext(ctx).
		Where("(primary_entity_id = ? AND primary_entity_type = ?) OR (related_entity_id = ? AND related_entity_type = ?)",
			entityID, entityType, entityID, entityType).
		Order("created_at ASC").
		Find(&rels).Error
	if err != nil {
		return nil, classify(err, "relationship")
	}
	return rels, nil
}

// Delete 幂等，不存在的 id 不报错
func (s *RelationshipService) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.EntityRelationship{}).Error; err != nil {
		return classify(err, "relationship")
	}
	return nil
}

// DeleteAllForEntity 在一个事务内删除实体作为两端的全部关系
func (s *RelationshipService) DeleteAllForEntity(ctx context.Context, entityID string, entityType models.EntityType) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteAllTx(tx, entityID, entityType)
	})
}

func (s *RelationshipService) deleteAllTx(tx *gorm.DB, entityID string, entityType models.EntityType) error {
	err := tx.Where("primary_entity_id = ? AND primary_entity_type = ?", entityID, entityType).
		Delete(&models.EntityRelationship{}).Error
	if err != nil {
		return classify(err, "relationship")
	}
	err = tx.Where("related_entity_id = ? AND related_entity_type = ?", entityID, entityType).
		Delete(&models.EntityRelationship{}).Error
	if err != nil {
		return classify(err, "relationship")
	}
	return nil
}
