// Package dto 请求与响应结构，binding 标签同时供 gin 与 validation 包使用
package dto

import (
	"io"
	"time"
)

type CreateOrganizationRequest struct {
	Name         string                 `json:"name" binding:"required,max=255"`
	Description  string                 `json:"description"`
	Location     string                 `json:"location" binding:"max=255"`
	Category     string                 `json:"category" binding:"max=100"`
	ContactEmail string                 `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string                 `json:"contact_phone" binding:"max=50"`
	Website      string                 `json:"website" binding:"omitempty,url"`
	SocialLinks  map[string]interface{} `json:"social_links"`
}

type UpdateOrganizationRequest struct {
	Name         *string                `json:"name" binding:"omitempty,min=1,max=255"`
	Description  *string                `json:"description"`
	Location     *string                `json:"location" binding:"omitempty,max=255"`
	Category     *string                `json:"category" binding:"omitempty,max=100"`
	ContactEmail *string                `json:"contact_email" binding:"omitempty,email"`
	ContactPhone *string                `json:"contact_phone" binding:"omitempty,max=50"`
	Website      *string                `json:"website" binding:"omitempty,url"`
	SocialLinks  map[string]interface{} `json:"social_links"`
}

type CreateStartupRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Description  string `json:"description"`
	Location     string `json:"location" binding:"max=255"`
	Category     string `json:"category" binding:"max=100"`
	Stage        string `json:"stage" binding:"max=50"`
	FoundedYear  int    `json:"founded_year" binding:"omitempty,min=1800,max=3000"`
	TeamSize     int    `json:"team_size" binding:"min=0"`
	Website      string `json:"website" binding:"omitempty,url"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone" binding:"max=50"`
}

type UpdateStartupRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description  *string `json:"description"`
	Location     *string `json:"location" binding:"omitempty,max=255"`
	Category     *string `json:"category" binding:"omitempty,max=100"`
	Stage        *string `json:"stage" binding:"omitempty,max=50"`
	FoundedYear  *int    `json:"founded_year" binding:"omitempty,min=1800,max=3000"`
	TeamSize     *int    `json:"team_size" binding:"omitempty,min=0"`
	Website      *string `json:"website" binding:"omitempty,url"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=50"`
}

type CreateEventRequest struct {
	Title            string    `json:"title" binding:"required,max=255"`
	AboutEvent       string    `json:"about_event"`
	Type             string    `json:"type" binding:"max=50"`
	DateTime         time.Time `json:"date_time" binding:"required"`
	Location         string    `json:"location" binding:"max=255"`
	Organizer        string    `json:"organizer" binding:"max=255"`
	Category         string    `json:"category" binding:"max=100"`
	RegistrationLink string    `json:"registration_link" binding:"omitempty,url"`
	Price            float64   `json:"price" binding:"min=0"`
}

type UpdateEventRequest struct {
	Title            *string    `json:"title" binding:"omitempty,min=1,max=255"`
	AboutEvent       *string    `json:"about_event"`
	Type             *string    `json:"type" binding:"omitempty,max=50"`
	DateTime         *time.Time `json:"date_time"`
	Location         *string    `json:"location" binding:"omitempty,max=255"`
	Organizer        *string    `json:"organizer" binding:"omitempty,max=255"`
	Category         *string    `json:"category" binding:"omitempty,max=100"`
	RegistrationLink *string    `json:"registration_link" binding:"omitempty,url"`
	Price            *float64   `json:"price" binding:"omitempty,min=0"`
}

type CreateNewsArticleRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content" binding:"required"`
	Category    string     `json:"category" binding:"max=100"`
	Author      string     `json:"author" binding:"max=255"`
	SourceURL   string     `json:"source_url" binding:"omitempty,url"`
	PublishedAt *time.Time `json:"published_at"`
}

type UpdateNewsArticleRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Summary     *string    `json:"summary"`
	Content     *string    `json:"content" binding:"omitempty,min=1"`
	Category    *string    `json:"category" binding:"omitempty,max=100"`
	Author      *string    `json:"author" binding:"omitempty,max=255"`
	SourceURL   *string    `json:"source_url" binding:"omitempty,url"`
	PublishedAt *time.Time `json:"published_at"`
}

type CreateCoWorkingSpaceRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description string  `json:"description"`
	Location    string  `json:"location" binding:"max=255"`
	Contact     string  `json:"contact" binding:"max=255"`
	Amenities   string  `json:"amenities"`
	Capacity    int     `json:"capacity" binding:"min=0"`
	PricePerDay float64 `json:"price_per_day" binding:"min=0"`
	Website     string  `json:"website" binding:"omitempty,url"`
}

type UpdateCoWorkingSpaceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string  `json:"description"`
	Location    *string  `json:"location" binding:"omitempty,max=255"`
	Contact     *string  `json:"contact" binding:"omitempty,max=255"`
	Amenities   *string  `json:"amenities"`
	Capacity    *int     `json:"capacity" binding:"omitempty,min=0"`
	PricePerDay *float64 `json:"price_per_day" binding:"omitempty,min=0"`
	Website     *string  `json:"website" binding:"omitempty,url"`
}

type CreateTrainingOrganizationRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Description  string `json:"description"`
	Location     string `json:"location" binding:"max=255"`
	Category     string `json:"category" binding:"max=100"`
	Programs     string `json:"programs"`
	Website      string `json:"website" binding:"omitempty,url"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone" binding:"max=50"`
}

type UpdateTrainingOrganizationRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description  *string `json:"description"`
	Location     *string `json:"location" binding:"omitempty,max=255"`
	Category     *string `json:"category" binding:"omitempty,max=100"`
	Programs     *string `json:"programs"`
	Website      *string `json:"website" binding:"omitempty,url"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=50"`
}

// CreateUnifiedEntityRequest 类型相关的必填字段在 service 层按 entity_type 校验
type CreateUnifiedEntityRequest struct {
	EntityType  string                 `json:"entity_type" binding:"required"`
	Name        string                 `json:"name" binding:"max=255"`
	Title       string                 `json:"title" binding:"max=255"`
	Description string                 `json:"description"`
	AboutEvent  string                 `json:"about_event"`
	Content     string                 `json:"content"`
	Type        string                 `json:"type" binding:"max=50"`
	DateTime    *time.Time             `json:"date_time"`
	Location    string                 `json:"location" binding:"max=255"`
	Organizer   string                 `json:"organizer" binding:"max=255"`
	Category    string                 `json:"category" binding:"max=100"`
	Contact     string                 `json:"contact" binding:"max=255"`
	Website     string                 `json:"website" binding:"omitempty,url"`
	Attributes  map[string]interface{} `json:"attributes"`
}

// UpdateUnifiedEntityRequest entity_type 创建后不可修改
type UpdateUnifiedEntityRequest struct {
	Name        *string                `json:"name" binding:"omitempty,max=255"`
	Title       *string                `json:"title" binding:"omitempty,max=255"`
	Description *string                `json:"description"`
	AboutEvent  *string                `json:"about_event"`
	Content     *string                `json:"content"`
	Type        *string                `json:"type" binding:"omitempty,max=50"`
	DateTime    *time.Time             `json:"date_time"`
	Location    *string                `json:"location" binding:"omitempty,max=255"`
	Organizer   *string                `json:"organizer" binding:"omitempty,max=255"`
	Category    *string                `json:"category" binding:"omitempty,max=100"`
	Contact     *string                `json:"contact" binding:"omitempty,max=255"`
	Website     *string                `json:"website" binding:"omitempty,url"`
	Attributes  map[string]interface{} `json:"attributes"`
}

// StatusUpdateRequest 管理员审核
type StatusUpdateRequest struct {
	Status       string `json:"status" binding:"required"`
	AdminComment string `json:"admin_comment"`
}

// ListFilter 列表查询参数
type ListFilter struct {
	Search string `form:"search"`
	Status string `form:"status"`
}

// RateRequest 范围在 service 层检查，保证越界时返回 400 且不落库
type RateRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review" binding:"max=2000"`
}

// FileUpload 上传文件的抽象，handler 从 multipart 构造
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}
