package services

import (
	"context"
	"errors"
	"time"

	"ecohub/internal/dto"
	"ecohub/internal/models"
	"ecohub/internal/validation"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// UnifiedService 统一实体表，在通用服务之上按 entity_type 查询
type UnifiedService struct {
	*EntityService[models.UnifiedEntity, *models.UnifiedEntity]
}

func NewUnifiedService(d Deps, relationships *RelationshipService) *UnifiedService {
	return &UnifiedService{
		EntityService: NewEntityService[models.UnifiedEntity](UnifiedEntityKind, d, relationships),
	}
}

func (s *UnifiedService) FindByType(ctx context.Context, entityType string) ([]models.UnifiedEntity, error) {
	t, ok := models.ParseEntityType(entityType)
	if !ok || t == models.EntityTypeUnified {
		return nil, BadRequest("unsupported entity type: %s", entityType)
	}
	return s.list(ctx, dto.ListFilter{}, func(db *gorm.DB) *gorm.DB {
		return db.Where("entity_type = ?", t)
	})
}

type eventRequirements struct {
	Title      string     `json:"title" binding:"required"`
	AboutEvent string     `json:"about_event" binding:"required"`
	Type       string     `json:"type" binding:"required"`
	DateTime   *time.Time `json:"date_time" binding:"required"`
	Location   string     `json:"location" binding:"required"`
	Organizer  string     `json:"organizer" binding:"required"`
	Category   string     `json:"category" binding:"required"`
}

// organizationRequirements 同时适用于 startup 与 training_organization
type organizationRequirements struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Category    string `json:"category" binding:"required"`
}

type newsArticleRequirements struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"required"`
}

type coWorkingSpaceRequirements struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Contact     string `json:"contact" binding:"required"`
}

// validateUnified 按 entity_type 检查必填字段，报告第一个缺失的字段
func validateUnified(entity models.Entity) error {
	u, ok := entity.(*models.UnifiedEntity)
	if !ok {
		return Internal(errors.New("unexpected entity"), "failed to validate unified entity")
	}

	var req interface{}
	switch u.EntityType {
	case models.EntityTypeEvent:
		req = &eventRequirements{}
	case models.EntityTypeStartup, models.EntityTypeOrganization, models.EntityTypeTrainingOrganization:
		req = &organizationRequirements{}
	case models.EntityTypeNewsArticle:
		req = &newsArticleRequirements{}
	case models.EntityTypeCoWorkingSpace:
		req = &coWorkingSpaceRequirements{}
	default:
		return BadRequest("unsupported entity type: %s", u.EntityType)
	}

	if err := copier.Copy(req, u); err != nil {
		return Internal(err, "failed to validate unified entity")
	}
	err := validation.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return BadRequest("%s is required for %s entities", verrs[0].Field, u.EntityType)
	}
	return BadRequest("%v", err)
}
