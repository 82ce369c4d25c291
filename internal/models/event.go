package models

import (
	"time"

	"ecohub/internal/utils"

	"gorm.io/gorm"
)

type Event struct {
	EntityBase
	Title            string    `gorm:"size:255;not null" json:"title"`
	AboutEvent       string    `gorm:"type:text" json:"about_event"`
	Type             string    `gorm:"size:50" json:"type"` // conference, meetup, workshop...
	DateTime         time.Time `gorm:"index" json:"date_time"`
	Location         string    `gorm:"size:255" json:"location"`
	Organizer        string    `gorm:"size:255" json:"organizer"`
	Category         string    `gorm:"size:100;index" json:"category"`
	RegistrationLink string    `gorm:"size:255" json:"registration_link"`
	Price            float64   `json:"price"`
}

func (*Event) Kind() EntityType { return EntityTypeEvent }

// NewsArticle Content 为 Markdown，ContentHTML 在读取时渲染
type NewsArticle struct {
	EntityBase
	Title       string     `gorm:"size:255;not null" json:"title"`
	Summary     string     `gorm:"type:text" json:"summary"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Category    string     `gorm:"size:100;index" json:"category"`
	Author      string     `gorm:"size:255" json:"author"`
	SourceURL   string     `gorm:"size:255" json:"source_url"`
	PublishedAt *time.Time `json:"published_at"`

	ContentHTML string `gorm:"-" json:"content_html"`
}

func (*NewsArticle) Kind() EntityType { return EntityTypeNewsArticle }

func (n *NewsArticle) AfterFind(tx *gorm.DB) error {
	n.ContentHTML = string(utils.RenderMarkdown(n.Content))
	return nil
}

func (n *NewsArticle) AfterSave(tx *gorm.DB) error {
	n.ContentHTML = string(utils.RenderMarkdown(n.Content))
	return nil
}

type CoWorkingSpace struct {
	EntityBase
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Location    string  `gorm:"size:255" json:"location"`
	Contact     string  `gorm:"size:255" json:"contact"`
	Amenities   string  `gorm:"type:text" json:"amenities"`
	Capacity    int     `json:"capacity"`
	PricePerDay float64 `json:"price_per_day"`
	Website     string  `gorm:"size:255" json:"website"`
}

func (*CoWorkingSpace) Kind() EntityType { return EntityTypeCoWorkingSpace }

