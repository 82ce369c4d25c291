package models

import (
	"gorm.io/datatypes"
)

type Organization struct {
	EntityBase
	Name         string            `gorm:"size:255;not null" json:"name"`
	Description  string            `gorm:"type:text" json:"description"`
	Location     string            `gorm:"size:255" json:"location"`
	Category     string            `gorm:"size:100;index" json:"category"`
	ContactEmail string            `gorm:"size:255" json:"contact_email"`
	ContactPhone string            `gorm:"size:50" json:"contact_phone"`
	Website      string            `gorm:"size:255" json:"website"`
	SocialLinks  datatypes.JSONMap `json:"social_links,omitempty"`
}

func (*Organization) Kind() EntityType { return EntityTypeOrganization }

type Startup struct {
	EntityBase
	Name         string `gorm:"size:255;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	Location     string `gorm:"size:255" json:"location"`
	Category     string `gorm:"size:100;index" json:"category"`
	Stage        string `gorm:"size:50" json:"stage"` // idea, mvp, seed, growth...
	FoundedYear  int    `json:"founded_year"`
	TeamSize     int    `json:"team_size"`
	Website      string `gorm:"size:255" json:"website"`
	ContactEmail string `gorm:"size:255" json:"contact_email"`
	ContactPhone string `gorm:"size:50" json:"contact_phone"`
}

func (*Startup) Kind() EntityType { return EntityTypeStartup }

// TrainingOrganization 培训机构
type TrainingOrganization struct {
	EntityBase
	Name         string `gorm:"size:255;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	Location     string `gorm:"size:255" json:"location"`
	Category     string `gorm:"size:100;index" json:"category"`
	Programs     string `gorm:"type:text" json:"programs"`
	Website      string `gorm:"size:255" json:"website"`
	ContactEmail string `gorm:"size:255" json:"contact_email"`
	ContactPhone string `gorm:"size:50" json:"contact_phone"`
}

func (*TrainingOrganization) Kind() EntityType { return EntityTypeTrainingOrganization }

