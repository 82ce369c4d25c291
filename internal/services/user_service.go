package services

import (
	"context"

	"ecohub/internal/logger"
	"ecohub/internal/models"
	"ecohub/internal/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ownerStore 用户级联删除与"我的实体"需要的能力
type ownerStore interface {
	Kind() Kind
	purgeOwner(tx *gorm.DB, userID string) ([]string, error)
	ownedBy(ctx context.Context, userID string) (interface{}, error)
}

func (s *EntityService[T, PT]) ownedBy(ctx context.Context, userID string) (interface{}, error) {
	return s.FindByOwner(ctx, userID)
}

type UserService struct {
	db      *gorm.DB
	stores  []ownerStore
	storage storage.ObjectStorage
}

func NewUserService(db *gorm.DB, objects storage.ObjectStorage, stores ...ownerStore) *UserService {
	return &UserService{db: db, stores: stores, storage: objects}
}

func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, classify(err, "user")
	}
	return &user, nil
}

// Entities 用户提交的全部实体，按类型分组
func (s *UserService) Entities(ctx context.Context, userID string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(s.stores))
	for _, store := range s.stores {
		list, err := store.ownedBy(ctx, userID)
		if err != nil {
			return nil, err
		}
		out[string(store.Kind().Type)] = list
	}
	return out, nil
}

// Bookmarks 用户收藏
func (s *UserService) Bookmarks(ctx context.Context, userID string) ([]models.Bookmark, error) {
	bookmarks := make([]models.Bookmark, 0)
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&bookmarks).Error
	if err != nil {
		return nil, classify(err, "bookmark")
	}
	return bookmarks, nil
}

// Delete 本人或管理员删除用户，级联删除其实体及附属数据和收藏
// 用户对他人实体的评分与点赞保留，聚合值不回退
func (s *UserService) Delete(ctx context.Context, id string, actor *models.User) (string, error) {
	if actor.ID != id && !actor.IsAdmin() {
		return "", Forbidden("you can only delete your own account")
	}

	var keys []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keys = nil
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return classify(err, "user")
		}
		for _, store := range s.stores {
			k, err := store.purgeOwner(tx, id)
			if err != nil {
				return err
			}
			keys = append(keys, k...)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Bookmark{}).Error; err != nil {
			return classify(err, "bookmark")
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return "", classify(err, "user")
	}

	if s.storage != nil {
		bg := context.WithoutCancel(ctx)
		for _, key := range keys {
			if err := s.storage.Remove(bg, key); err != nil {
				logger.Warn("Failed to remove object", zap.String("key", key), zap.Error(err))
			}
		}
	}
	logger.Info("User deleted", zap.String("user_id", id), zap.String("actor", actor.ID))
	return "User deleted successfully", nil
}

// SetRole 管理员修改角色
func (s *UserService) SetRole(ctx context.Context, id, role string) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, BadRequest("invalid role: %s", role)
	}
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return nil, classify(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return nil, NotFound("user not found")
	}
	return s.FindByID(ctx, id)
}
