package services

import (
	"context"
	"errors"
	"strings"

	"ecohub/internal/auth"
	"ecohub/internal/config"
	"ecohub/internal/dto"
	"ecohub/internal/logger"
	"ecohub/internal/models"
	"ecohub/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	db       *gorm.DB
	tokens   *auth.TokenManager
	denylist auth.Denylist
}

func NewAuthService(db *gorm.DB, tokens *auth.TokenManager, denylist auth.Denylist) *AuthService {
	if denylist == nil {
		denylist = auth.NewMemoryDenylist()
	}
	return &AuthService{db: db, tokens: tokens, denylist: denylist}
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if len(req.Password) < 6 {
		return nil, BadRequest("password must be at least 6 characters")
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, classify(err, "user")
	}
	if count > 0 {
		return nil, Conflict("username already taken")
	}
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, classify(err, "user")
	}
	if count > 0 {
		return nil, Conflict("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, Internal(err, "failed to hash password")
	}
	user := &models.User{Username: username, Email: email, Password: hash, Role: models.RoleUser}
	if err := db.Create(user).Error; err != nil {
		return nil, classify(err, "user")
	}
	logger.Info("User registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login identifier 可以是用户名或邮箱
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, classify(err, "user")
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, Unauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(&user)
	if err != nil {
		return nil, Internal(err, "failed to issue token")
	}
	return &dto.TokenResponse{Token: token, ExpiresAt: expiresAt.Unix(), User: &user}, nil
}

// Authenticate 校验令牌、黑名单并加载用户
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, nil, Unauthorized("invalid or expired token")
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, Internal(err, "failed to check token")
	}
	if revoked {
		return nil, nil, Unauthorized("token has been revoked")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", claims.Subject).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, Unauthorized("user no longer exists")
		}
		return nil, nil, classify(err, "user")
	}
	return &user, claims, nil
}

// Logout 令牌 jti 写入黑名单直到过期
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return Internal(err, "failed to revoke token")
	}
	return nil
}

// SeedAdmin 按配置创建初始管理员，已存在则提升为管理员
func (s *AuthService) SeedAdmin(ctx context.Context, cfg *config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}
	db := s.db.WithContext(ctx)
	email := strings.ToLower(cfg.Email)

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if user.Role != models.RoleAdmin {
			return db.Model(&user).Update("role", models.RoleAdmin).Error
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	user = models.User{Username: cfg.Username, Email: email, Password: hash, Role: models.RoleAdmin}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	logger.Info("Admin user seeded", zap.String("username", user.Username))
	return nil
}
