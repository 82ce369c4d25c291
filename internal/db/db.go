package db

import (
	"fmt"
	"strings"

	"ecohub/internal/config"
	"ecohub/internal/logger"
	"ecohub/internal/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

// Open 连接数据库并执行迁移
// DSN 以 sqlite: 开头时使用内嵌 SQLite（本地开发与测试），否则使用 Postgres
func Open(cfg *config.DatabaseConfig, log gormlogger.Interface) (*gorm.DB, error) {
	if log == nil {
		log = gormlogger.Discard
	}

	var dialector gorm.Dialector
	isSQLite := strings.HasPrefix(cfg.DSN, sqlitePrefix)
	if isSQLite {
		dialector = sqlite.Open(strings.TrimPrefix(cfg.DSN, sqlitePrefix))
	} else {
		dialector = postgres.Open(cfg.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         log,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if isSQLite {
		// 内存库每个连接都是独立的数据库
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	logger.Info("Database ready", zap.Bool("sqlite", isSQLite))
	return db, nil
}

// Migrate 自动迁移全部模型
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Startup{},
		&models.Event{},
		&models.NewsArticle{},
		&models.CoWorkingSpace{},
		&models.TrainingOrganization{},
		&models.UnifiedEntity{},
		&models.EntityRelationship{},
		// 多态互动表
		&models.Rating{},
		&models.Like{},
		&models.Bookmark{},
		&models.Picture{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// OpenMemory 测试用内存 SQLite
func OpenMemory() (*gorm.DB, error) {
	return Open(&config.DatabaseConfig{DSN: sqlitePrefix + ":memory:"}, nil)
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
