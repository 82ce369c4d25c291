package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ecohub/internal/dto"
	"ecohub/internal/logger"
	"ecohub/internal/metrics"
	"ecohub/internal/models"
	"ecohub/internal/storage"
	"ecohub/internal/utils"
	"ecohub/internal/validation"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EntityService 一种目录实体的增删改查、互动与图片管理
// T 为模型结构体，PT 为其指针类型
type EntityService[T any, PT interface {
	*T
	models.Entity
}] struct {
	db            *gorm.DB
	kind          Kind
	storage       storage.ObjectStorage
	cache         *utils.Cache
	relationships *RelationshipService
	maxUpload     int64
}

func NewEntityService[T any, PT interface {
	*T
	models.Entity
}](kind Kind, d Deps, relationships *RelationshipService) *EntityService[T, PT] {
	return &EntityService[T, PT]{
		db:            d.DB,
		kind:          kind,
		storage:       d.Storage,
		cache:         d.Cache,
		relationships: relationships,
		maxUpload:     d.MaxUpload,
	}
}

func (s *EntityService[T, PT]) Kind() Kind {
	return s.kind
}

// Create 从已校验的 Create*Request 创建实体，状态固定为 pending
func (s *EntityService[T, PT]) Create(ctx context.Context, req interface{}, user *models.User) (PT, error) {
	return s.createTx(s.db.WithContext(ctx), req, user)
}

// CreateFromPayload 批量创建时使用：解码并校验原始 JSON 后在给定事务内创建
func (s *EntityService[T, PT]) CreateFromPayload(tx *gorm.DB, raw json.RawMessage, user *models.User) (models.Entity, error) {
	req := s.kind.NewCreateRequest()
	if err := json.Unmarshal(raw, req); err != nil {
		return nil, BadRequest("invalid %s payload: %v", s.kind.Type, err)
	}
	if err := validation.Struct(req); err != nil {
		return nil, BadRequest("invalid %s payload: %v", s.kind.Type, err)
	}
	return s.createTx(tx, req, user)
}

func (s *EntityService[T, PT]) createTx(tx *gorm.DB, req interface{}, user *models.User) (PT, error) {
	entity := PT(new(T))
	if err := copier.Copy(entity, req); err != nil {
		return nil, Internal(err, "failed to map %s request", s.kind.noun())
	}

	base := entity.Base()
	*base = models.EntityBase{UserID: user.ID, Status: models.StatusPending}

	if s.kind.Validate != nil {
		if err := s.kind.Validate(entity); err != nil {
			return nil, err
		}
	}
	if err := tx.Create(entity).Error; err != nil {
		return nil, classify(err, s.kind.noun())
	}
	metrics.RecordEntityCreated(string(s.kind.Type))
	return entity, nil
}

// likeEscaper 搜索词中的通配符按字面匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FindAll 列表，search 对搜索列做大小写不敏感的子串匹配，按创建时间倒序
func (s *EntityService[T, PT]) FindAll(ctx context.Context, filter dto.ListFilter) ([]T, error) {
	return s.list(ctx, filter)
}

func (s *EntityService[T, PT]) list(ctx context.Context, filter dto.ListFilter, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	query := s.db.WithContext(ctx).Model(PT(new(T))).Scopes(scopes...)

	if search := strings.TrimSpace(filter.Search); search != "" && len(s.kind.SearchColumns) > 0 {
		like := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		conds := make([]string, len(s.kind.SearchColumns))
		args := make([]interface{}, len(s.kind.SearchColumns))
		for i, col := range s.kind.SearchColumns {
			conds[i] = "LOWER(" + col + ") LIKE ? ESCAPE '\\'"
			args[i] = like
		}
		query = query.Where(strings.Join(conds, " OR "), args...)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	list := make([]T, 0)
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, classify(err, s.kind.noun())
	}
	return list, nil
}

// FindByID 带图片
func (s *EntityService[T, PT]) FindByID(ctx context.Context, id string) (PT, error) {
	entity := PT(new(T))
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(entity).Error; err != nil {
		return nil, classify(err, s.kind.noun())
	}
	pictures, err := s.ListPictures(ctx, id)
	if err != nil {
		return nil, err
	}
	entity.Base().Pictures = pictures
	return entity, nil
}

// FindByOwner 用户自己提交的实体
func (s *EntityService[T, PT]) FindByOwner(ctx context.Context, userID string) ([]T, error) {
	list := make([]T, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, classify(err, s.kind.noun())
	}
	return list, nil
}

// Update 只有所有者可以修改，未提供的字段保持不变，状态与评分聚合不可修改
func (s *EntityService[T, PT]) Update(ctx context.Context, id string, req interface{}, user *models.User) (PT, error) {
	var updated PT
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entity := PT(new(T))
		if err := tx.Where("id = ? AND user_id = ?", id, user.ID).First(entity).Error; err != nil {
			return classify(err, s.kind.noun())
		}
		if err := copier.CopyWithOption(entity, req, copier.Option{IgnoreEmpty: true}); err != nil {
			return Internal(err, "failed to map %s request", s.kind.noun())
		}
		if s.kind.Validate != nil {
			if err := s.kind.Validate(entity); err != nil {
				return err
			}
		}
		if err := tx.Omit(models.ProtectedColumns...).Save(entity).Error; err != nil {
			return classify(err, s.kind.noun())
		}
		updated = entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, updated.Base().ID)
}

// UpdateStatus 管理员审核，状态必须属于该类型允许的集合
func (s *EntityService[T, PT]) UpdateStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (PT, error) {
	status := models.Status(req.Status)
	if !s.kind.allows(status) {
		return nil, BadRequest("invalid status %q for %s, allowed: %s", req.Status, s.kind.noun(), s.kind.statusList())
	}

	res := s.db.WithContext(ctx).Model(PT(new(T))).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"admin_comment": req.AdminComment,
		})
	if res.Error != nil {
		return nil, classify(res.Error, s.kind.noun())
	}
	if res.RowsAffected == 0 {
		return nil, NotFound("%s not found", s.kind.noun())
	}
	return s.FindByID(ctx, id)
}

// Delete 所有者或管理员删除，同时清理评分、点赞、收藏、图片与关系
func (s *EntityService[T, PT]) Delete(ctx context.Context, id string, user *models.User) (string, error) {
	var keys []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("id = ?", id)
		if !user.IsAdmin() {
			query = query.Where("user_id = ?", user.ID)
		}
		res := query.Delete(PT(new(T)))
		if res.Error != nil {
			return classify(res.Error, s.kind.noun())
		}
		if res.RowsAffected == 0 {
			return NotFound("%s not found", s.kind.noun())
		}

		var err error
		keys, err = s.purgeChildren(tx, id)
		return err
	})
	if err != nil {
		return "", err
	}

	s.invalidate(id)
	s.removeObjects(context.WithoutCancel(ctx), keys)
	return fmt.Sprintf("%s deleted successfully", s.kind.Label), nil
}

// purgeChildren 删除实体的附属数据，返回需要从对象存储移除的 key
func (s *EntityService[T, PT]) purgeChildren(tx *gorm.DB, id string) ([]string, error) {
	where := "entity_type = ? AND entity_id = ?"
	t := s.kind.Type

	var pictures []models.Picture
	if err := tx.Where(where, t, id).Find(&pictures).Error; err != nil {
		return nil, classify(err, "picture")
	}

	for _, m := range []interface{}{&models.Rating{}, &models.Like{}, &models.Bookmark{}, &models.Picture{}} {
		if err := tx.Where(where, t, id).Delete(m).Error; err != nil {
			return nil, Internal(err, "failed to clean up %s", s.kind.noun())
		}
	}
	if err := s.relationships.deleteAllTx(tx, id, t); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(pictures))
	for _, p := range pictures {
		keys = append(keys, p.ObjectKey)
	}
	return keys, nil
}

// purgeOwner 删除用户拥有的全部实体及其附属数据
func (s *EntityService[T, PT]) purgeOwner(tx *gorm.DB, userID string) ([]string, error) {
	var ids []string
	if err := tx.Model(PT(new(T))).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return nil, classify(err, s.kind.noun())
	}

	var keys []string
	for _, id := range ids {
		k, err := s.purgeChildren(tx, id)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k...)
		s.invalidate(id)
	}
	if len(ids) > 0 {
		if err := tx.Where("user_id = ?", userID).Delete(PT(new(T))).Error; err != nil {
			return nil, classify(err, s.kind.noun())
		}
	}
	return keys, nil
}

// ownedEntity 所有者或管理员可见的实体，否则视为不存在
func (s *EntityService[T, PT]) ownedEntity(tx *gorm.DB, id string, user *models.User) (PT, error) {
	entity := PT(new(T))
	query := tx.Where("id = ?", id)
	if !user.IsAdmin() {
		query = query.Where("user_id = ?", user.ID)
	}
	if err := query.First(entity).Error; err != nil {
		return nil, classify(err, s.kind.noun())
	}
	return entity, nil
}

func (s *EntityService[T, PT]) ensureExists(tx *gorm.DB, id string) error {
	var count int64
	if err := tx.Model(PT(new(T))).Where("id = ?", id).Count(&count).Error; err != nil {
		return classify(err, s.kind.noun())
	}
	if count == 0 {
		return NotFound("%s not found", s.kind.noun())
	}
	return nil
}

func (s *EntityService[T, PT]) removeObjects(ctx context.Context, keys []string) {
	if s.storage == nil {
		return
	}
	for _, key := range keys {
		if err := s.storage.Remove(ctx, key); err != nil {
			metrics.RecordStorageError("remove")
			logger.Warn("Failed to remove object", zap.String("key", key), zap.Error(err))
		}
	}
}

