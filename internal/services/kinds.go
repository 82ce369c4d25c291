package services

import (
	"strings"

	"ecohub/internal/dto"
	"ecohub/internal/models"
)

// Kind 描述一种实体：类型标签、展示名、搜索列、允许的审核状态以及请求结构
type Kind struct {
	Type          models.EntityType
	Label         string
	SearchColumns []string
	Statuses      []models.Status

	NewCreateRequest func() interface{}
	NewUpdateRequest func() interface{}

	// Validate 可选，在创建和更新落库前调用
	Validate func(models.Entity) error
}

func (k Kind) allows(status models.Status) bool {
	for _, s := range k.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

func (k Kind) statusList() string {
	parts := make([]string, len(k.Statuses))
	for i, s := range k.Statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func (k Kind) noun() string {
	return strings.ToLower(k.Label)
}

var moderationStatuses = []models.Status{models.StatusPending, models.StatusApproved, models.StatusRejected}

var (
	OrganizationKind = Kind{
		Type:             models.EntityTypeOrganization,
		Label:            "Organization",
		SearchColumns:    []string{"name", "description", "location", "category"},
		Statuses:         moderationStatuses,
		NewCreateRequest: func() interface{} { return &dto.CreateOrganizationRequest{} },
		NewUpdateRequest: func() interface{} { return &dto.UpdateOrganizationRequest{} },
	}

	StartupKind = Kind{
		Type:             models.EntityTypeStartup,
		Label:            "Startup",
		SearchColumns:    []string{"name", "description", "location", "category", "stage"},
		Statuses:         moderationStatuses,
		NewCreateRequest: func() interface{} { return &dto.CreateStartupRequest{} },
		NewUpdateRequest: func() interface{} { return &dto.UpdateStartupRequest{} },
	}

	EventKind = Kind{
		Type:             models.EntityTypeEvent,
		Label:            "Event",
		SearchColumns:    []string{"title", "about_event", "type", "location", "organizer", "category"},
		Statuses:         moderationStatuses,
		NewCreateRequest: func() interface{} { return &dto.CreateEventRequest{} },
		NewUpdateRequest: func() interface{} { return &dto.UpdateEventRequest{} },
	}

	// NewsArticleKind 新闻审核通过的状态是 published
	NewsArticleKind = Kind{
		Type:             models.EntityTypeNewsArticle,
		Label:            "News article",
		SearchColumns:    []string{"title", "summary", "content", "category", "author"},
		Statuses:         []models.Status{models.StatusPending, models.StatusPublished, models.StatusRejected},
		NewCreateRequest: func() interface{} { return &dto.CreateNewsArticleRequest{} },
		NewUpdateRequest: func() interface{} { return &dto.UpdateNewsArticleRequest{} },
	}

	CoWorkingSpaceKind = Kind{
		Type:             models.EntityTypeCoWorkingSpace,
		Label:            "Co-working space",
		SearchColumns:    []string{"name", "description", "location", "amenities"},
		Statuses:         moderationStatuses,
		NewCreateRequest: func() interface{} { return &dto.CreateCoWorkingSpaceRequest{} },
		NewUpdateRequest: func() interface{} { return &dto.UpdateCoWorkingSpaceRequest{} },
	}

	TrainingOrganizationKind = Kind{
		Type:             models.EntityTypeTrainingOrganization,
		Label:            "Training organization",
		SearchColumns:    []string{"name", "description", "location", "category", "programs"},
		Statuses:         moderationStatuses,
		NewCreateRequest: func() interface{} { return &dto.CreateTrainingOrganizationRequest{} },
		NewUpdateRequest: func() interface{} { return &dto.UpdateTrainingOrganizationRequest{} },
	}

	// UnifiedEntityKind 统一表可能存放新闻，因此 approved 与 published 都允许
	UnifiedEntityKind = Kind{
		Type:          models.EntityTypeUnified,
		Label:         "Unified entity",
		SearchColumns: []string{"name", "title", "description", "content", "location", "category"},
		Statuses: []models.Status{
			models.StatusPending, models.StatusApproved, models.StatusPublished, models.StatusRejected,
		},
		NewCreateRequest: func() interface{} { return &dto.CreateUnifiedEntityRequest{} },
		NewUpdateRequest: func() interface{} { return &dto.UpdateUnifiedEntityRequest{} },
		Validate:         validateUnified,
	}
)
