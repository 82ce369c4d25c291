package services

import (
	"context"
	"errors"
	"fmt"

	"ecohub/internal/dto"
	"ecohub/internal/metrics"
	"ecohub/internal/models"

	"gorm.io/gorm"
)

// RatingsSummary 评分列表与按明细重新计算的平均分
type RatingsSummary struct {
	Ratings       []models.Rating `json:"ratings"`
	AverageRating float64         `json:"average_rating"`
	RatingsCount  int             `json:"ratings_count"`
}

// InteractionResult 点赞/收藏操作后的状态
type InteractionResult struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// Rate 每个用户对同一实体只能评分一次，评分行与聚合列在同一事务内更新
func (s *EntityService[T, PT]) Rate(ctx context.Context, id string, req dto.RateRequest, user *models.User) (PT, error) {
	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, BadRequest("rating must be between %d and %d", MinRating, MaxRating)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureExists(tx, id); err != nil {
			return err
		}

		rating := models.Rating{
			EntityType: s.kind.Type,
			EntityID:   id,
			UserID:     user.ID,
			Rating:     req.Rating,
			Review:     req.Review,
		}
		if err := tx.Create(&rating).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return Conflict("you have already rated this %s", s.kind.noun())
			}
			return classify(err, "rating")
		}

		// 右侧表达式读取的都是更新前的值
		return tx.Model(PT(new(T))).Where("id = ?", id).Updates(map[string]interface{}{
			"total_ratings":  gorm.Expr("total_ratings + ?", req.Rating),
			"ratings_count":  gorm.Expr("ratings_count + 1"),
			"average_rating": gorm.Expr("(total_ratings + ?) * 1.0 / (ratings_count + 1)", req.Rating),
		}).Error
	})
	if err != nil {
		return nil, classify(err, s.kind.noun())
	}

	s.invalidate(id)
	metrics.RecordRating(string(s.kind.Type))
	return s.FindByID(ctx, id)
}

// Ratings 评分明细，平均分由明细重新计算，结果进入 LRU 缓存
func (s *EntityService[T, PT]) Ratings(ctx context.Context, id string) (*RatingsSummary, error) {
	key := s.ratingsKey(id)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key).(*RatingsSummary); ok {
			return cached, nil
		}
	}

	db := s.db.WithContext(ctx)
	if err := s.ensureExists(db, id); err != nil {
		return nil, err
	}

	ratings := make([]models.Rating, 0)
	err := db.Where("entity_type = ? AND entity_id = ?", s.kind.Type, id).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, classify(err, "rating")
	}

	summary := &RatingsSummary{Ratings: ratings, RatingsCount: len(ratings)}
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Rating
		}
		summary.AverageRating = float64(sum) / float64(len(ratings))
	}

	if s.cache != nil {
		s.cache.Set(key, summary)
	}
	return summary, nil
}

func (s *EntityService[T, PT]) Like(ctx context.Context, id string, user *models.User) (*InteractionResult, error) {
	return s.addInteraction(ctx, id, &models.Like{EntityType: s.kind.Type, EntityID: id, UserID: user.ID}, &models.Like{}, "liked")
}

func (s *EntityService[T, PT]) Unlike(ctx context.Context, id string, user *models.User) (*InteractionResult, error) {
	return s.removeInteraction(ctx, id, user, &models.Like{}, "like")
}

func (s *EntityService[T, PT]) Bookmark(ctx context.Context, id string, user *models.User) (*InteractionResult, error) {
	return s.addInteraction(ctx, id, &models.Bookmark{EntityType: s.kind.Type, EntityID: id, UserID: user.ID}, &models.Bookmark{}, "bookmarked")
}

func (s *EntityService[T, PT]) Unbookmark(ctx context.Context, id string, user *models.User) (*InteractionResult, error) {
	return s.removeInteraction(ctx, id, user, &models.Bookmark{}, "bookmark")
}

func (s *EntityService[T, PT]) addInteraction(ctx context.Context, id string, row, model interface{}, verb string) (*InteractionResult, error) {
	db := s.db.WithContext(ctx)
	if err := s.ensureExists(db, id); err != nil {
		return nil, err
	}
	if err := db.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("you have already %s this %s", verb, s.kind.noun())
		}
		return nil, classify(err, s.kind.noun())
	}
	return s.interactionResult(db, id, model, true)
}

func (s *EntityService[T, PT]) removeInteraction(ctx context.Context, id string, user *models.User, model interface{}, what string) (*InteractionResult, error) {
	db := s.db.WithContext(ctx)
	res := db.Where("entity_type = ? AND entity_id = ? AND user_id = ?", s.kind.Type, id, user.ID).Delete(model)
	if res.Error != nil {
		return nil, classify(res.Error, what)
	}
	if res.RowsAffected == 0 {
		return nil, NotFound("%s not found", what)
	}
	return s.interactionResult(db, id, model, false)
}

// interactionResult model 必须是零值，否则 gorm 会附加主键条件
func (s *EntityService[T, PT]) interactionResult(db *gorm.DB, id string, model interface{}, active bool) (*InteractionResult, error) {
	var count int64
	err := db.Model(model).
		Where("entity_type = ? AND entity_id = ?", s.kind.Type, id).
		Count(&count).Error
	if err != nil {
		return nil, classify(err, s.kind.noun())
	}
	return &InteractionResult{Active: active, Count: count}, nil
}

func (s *EntityService[T, PT]) ratingsKey(id string) string {
	return fmt.Sprintf("ratings:%s:%s", s.kind.Type, id)
}

func (s *EntityService[T, PT]) invalidate(id string) {
	if s.cache != nil {
		s.cache.Delete(s.ratingsKey(id))
	}
}
