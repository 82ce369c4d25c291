package services

import (
	"context"
	"encoding/json"
	"fmt"

	"ecohub/internal/dto"
	"ecohub/internal/logger"
	"ecohub/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// entityCreator 批量创建时每种类型的创建入口
type entityCreator interface {
	Kind() Kind
	CreateFromPayload(tx *gorm.DB, raw json.RawMessage, user *models.User) (models.Entity, error)
}

// MultiEntityService 在一个事务内批量创建实体并两两建立关系
type MultiEntityService struct {
	db            *gorm.DB
	creators      map[models.EntityType]entityCreator
	relationships *RelationshipService
}

func NewMultiEntityService(db *gorm.DB, relationships *RelationshipService, creators ...entityCreator) *MultiEntityService {
	m := make(map[models.EntityType]entityCreator, len(creators))
	for _, c := range creators {
		m[c.Kind().Type] = c
	}
	return &MultiEntityService{db: db, creators: m, relationships: relationships}
}

// Create 任何一步失败都会回滚整批，错误保留内部错误的分类
// 自定义关系始终指向第一个新建实体
func (s *MultiEntityService) Create(ctx context.Context, req *dto.MultiEntityRequest, user *models.User) (*dto.MultiEntityResponse, error) {
	if len(req.Entities) == 0 {
		return nil, Wrap(BadRequest("entities must contain at least one item"), "failed to create multi-entity")
	}

	var (
		created []models.Entity
		rels    []models.EntityRelationship
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, rels = nil, nil

		for i, spec := range req.Entities {
			creator, ok := s.creators[models.EntityType(spec.EntityType)]
			if !ok {
				return BadRequest("unsupported entity type at index %d: %s", i, spec.EntityType)
			}
			entity, err := creator.CreateFromPayload(tx, spec.Data, user)
			if err != nil {
				return err
			}
			created = append(created, entity)
		}

		if req.ShouldLink() && len(created) >= 2 {
			for i := 0; i < len(created); i++ {
				for j := i + 1; j < len(created); j++ {
					rel, err := s.relationships.createTx(tx,
						created[i].Base().ID, created[i].Kind(),
						created[j].Base().ID, created[j].Kind(),
						models.DefaultRelationshipType)
					if err != nil {
						return err
					}
					rels = append(rels, *rel)
				}
			}
		}

		first := created[0]
		for _, custom := range req.CustomRelationships {
			primaryType, ok := models.ParseEntityType(custom.EntityType)
			if !ok {
				return BadRequest("unsupported entity type: %s", custom.EntityType)
			}
			rel, err := s.relationships.createTx(tx,
				custom.PrimaryEntityID, primaryType,
				first.Base().ID, first.Kind(),
				custom.RelationshipType)
			if err != nil {
				return err
			}
			rels = append(rels, *rel)
		}
		return nil
	})
	if err != nil {
		logger.Warn("Multi-entity creation rolled back", zap.Int("entities", len(req.Entities)), zap.Error(err))
		return nil, Wrap(err, "failed to create multi-entity")
	}

	resp := &dto.MultiEntityResponse{
		Entities:      make([]dto.CreatedEntity, 0, len(created)),
		Relationships: rels,
		Message:       fmt.Sprintf("Successfully created %d entities with %d relationships", len(created), len(rels)),
	}
	if rels == nil {
		resp.Relationships = []models.EntityRelationship{}
	}
	for _, e := range created {
		resp.Entities = append(resp.Entities, dto.CreatedEntity{Type: string(e.Kind()), Data: e})
	}
	return resp, nil
}
