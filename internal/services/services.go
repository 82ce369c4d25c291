package services

import (
	"ecohub/internal/auth"
	"ecohub/internal/models"
	"ecohub/internal/storage"
	"ecohub/internal/utils"

	"gorm.io/gorm"
)

// Deps 服务层的外部依赖，Storage 与 Cache 可以为 nil
type Deps struct {
	DB        *gorm.DB
	Storage   storage.ObjectStorage
	Cache     *utils.Cache
	Tokens    *auth.TokenManager
	Denylist  auth.Denylist
	MaxUpload int64
}

type (
	OrganizationService         = EntityService[models.Organization, *models.Organization]
	StartupService              = EntityService[models.Startup, *models.Startup]
	EventService                = EntityService[models.Event, *models.Event]
	NewsArticleService          = EntityService[models.NewsArticle, *models.NewsArticle]
	CoWorkingSpaceService       = EntityService[models.CoWorkingSpace, *models.CoWorkingSpace]
	TrainingOrganizationService = EntityService[models.TrainingOrganization, *models.TrainingOrganization]
)

// Services 全部服务
type Services struct {
	Organizations         *OrganizationService
	Startups              *StartupService
	Events                *EventService
	NewsArticles          *NewsArticleService
	CoWorkingSpaces       *CoWorkingSpaceService
	TrainingOrganizations *TrainingOrganizationService
	Unified               *UnifiedService
	Relationships         *RelationshipService
	MultiEntity           *MultiEntityService
	Users                 *UserService
	Auth                  *AuthService
}

func New(d Deps) *Services {
	rels := NewRelationshipService(d.DB)
	s := &Services{
		Organizations:         NewEntityService[models.Organization](OrganizationKind, d, rels),
		Startups:              NewEntityService[models.Startup](StartupKind, d, rels),
		Events:                NewEntityService[models.Event](EventKind, d, rels),
		NewsArticles:          NewEntityService[models.NewsArticle](NewsArticleKind, d, rels),
		CoWorkingSpaces:       NewEntityService[models.CoWorkingSpace](CoWorkingSpaceKind, d, rels),
		TrainingOrganizations: NewEntityService[models.TrainingOrganization](TrainingOrganizationKind, d, rels),
		Unified:               NewUnifiedService(d, rels),
		Relationships:         rels,
		Auth:                  NewAuthService(d.DB, d.Tokens, d.Denylist),
	}

	s.MultiEntity = NewMultiEntityService(d.DB, rels,
		s.Organizations, s.Startups, s.Events, s.NewsArticles,
		s.CoWorkingSpaces, s.TrainingOrganizations, s.Unified,
	)
	s.Users = NewUserService(d.DB, d.Storage,
		s.Organizations, s.Startups, s.Events, s.NewsArticles,
		s.CoWorkingSpaces, s.TrainingOrganizations, s.Unified,
	)
	return s
}
