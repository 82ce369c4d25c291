package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"ecohub/internal/dto"
	"ecohub/internal/logger"
	"ecohub/internal/metrics"
	"ecohub/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errStorageDisabled = errors.New("object storage disabled")

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// ListPictures 封面在前，其余按上传时间
func (s *EntityService[T, PT]) ListPictures(ctx context.Context, id string) ([]models.Picture, error) {
	pictures := make([]models.Picture, 0)
	err := s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", s.kind.Type, id).
		Order("is_cover DESC, created_at ASC").
		Find(&pictures).Error
	if err != nil {
		return nil, classify(err, "picture")
	}
	return pictures, nil
}

// SetCoverPicture 上传新封面并替换旧封面
// 事务失败时删除刚上传的对象，成功后再删除旧对象
func (s *EntityService[T, PT]) SetCoverPicture(ctx context.Context, id string, file *dto.FileUpload, user *models.User) (*models.Picture, error) {
	return s.storePicture(ctx, id, file, user, true)
}

// AddPicture 追加图库图片
func (s *EntityService[T, PT]) AddPicture(ctx context.Context, id string, file *dto.FileUpload, user *models.User) (*models.Picture, error) {
	return s.storePicture(ctx, id, file, user, false)
}

func (s *EntityService[T, PT]) storePicture(ctx context.Context, id string, file *dto.FileUpload, user *models.User, cover bool) (*models.Picture, error) {
	if _, err := s.ownedEntity(s.db.WithContext(ctx), id, user); err != nil {
		return nil, err
	}
	if err := s.checkUpload(file); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s/%s%s", s.kind.Type, id, uuid.NewString(), strings.ToLower(filepath.Ext(file.Filename)))
	url, err := s.storage.Put(ctx, key, file.Reader, file.Size, file.ContentType)
	if err != nil {
		metrics.RecordStorageError("put")
		return nil, Internal(err, "failed to upload picture")
	}

	picture := &models.Picture{
		EntityType:  s.kind.Type,
		EntityID:    id,
		UserID:      user.ID,
		ObjectKey:   key,
		URL:         url,
		ContentType: file.ContentType,
		Size:        file.Size,
		IsCover:     cover,
	}

	var replaced []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		replaced = nil
		if cover {
			var old []models.Picture
			if err := tx.Where("entity_type = ? AND entity_id = ? AND is_cover = ?", s.kind.Type, id, true).Find(&old).Error; err != nil {
				return err
			}
			ids := make([]string, 0, len(old))
			for _, p := range old {
				ids = append(ids, p.ID)
				replaced = append(replaced, p.ObjectKey)
			}
			if len(ids) > 0 {
				if err := tx.Where("id IN ?", ids).Delete(&models.Picture{}).Error; err != nil {
					return err
				}
			}
		}
		return tx.Create(picture).Error
	})
	if err != nil {
		s.removeObjects(context.WithoutCancel(ctx), []string{key})
		return nil, classify(err, "picture")
	}

	s.removeObjects(context.WithoutCancel(ctx), replaced)
	logger.Debug("Picture stored",
		zap.String("entity_type", string(s.kind.Type)),
		zap.String("entity_id", id),
		zap.Bool("cover", cover))
	return picture, nil
}

// RemovePicture 所有者或管理员删除单张图片
func (s *EntityService[T, PT]) RemovePicture(ctx context.Context, id, pictureID string, user *models.User) error {
	db := s.db.WithContext(ctx)
	if _, err := s.ownedEntity(db, id, user); err != nil {
		return err
	}

	var picture models.Picture
	err := db.Where("id = ? AND entity_type = ? AND entity_id = ?", pictureID, s.kind.Type, id).First(&picture).Error
	if err != nil {
		return classify(err, "picture")
	}
	if err := db.Delete(&picture).Error; err != nil {
		return classify(err, "picture")
	}

	s.removeObjects(context.WithoutCancel(ctx), []string{picture.ObjectKey})
	return nil
}

func (s *EntityService[T, PT]) checkUpload(file *dto.FileUpload) error {
	if s.storage == nil {
		return Internal(errStorageDisabled, "picture storage is not configured")
	}
	if file == nil || file.Reader == nil {
		return BadRequest("file is required")
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return BadRequest("only image uploads are allowed")
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); !allowedImageExts[ext] {
		return BadRequest("unsupported image extension %q", ext)
	}
	if s.maxUpload > 0 && file.Size > s.maxUpload {
		return BadRequest("file exceeds the %d byte limit", s.maxUpload)
	}
	return nil
}
