package model

import (
	"time"
)

type CourseMode string

const (
	ModeOnline  CourseMode = "online"
	ModeOffline CourseMode = "offline"
)

// swagger:model Course
type Course struct {
	UUIDBase
	Title         string         `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Description   string         `gorm:"type:text;not null" json:"description" validate:"required"`
	Price         float64        `gorm:"type:decimal(6,2);not null" json:"price" validate:"gte=0,lte=9999.99"`
	DiscountPrice float64        `gorm:"type:decimal(6,2);not null" json:"discount_price" validate:"gte=0,lte=9999.99"`
	Image         string         `gorm:"size:100;not null" json:"image" validate:"required,max=100"`
	AuthorID      string         `gorm:"type:varchar(36);index;not null" json:"author_id" validate:"required"`
	Author        *User          `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author,omitempty" validate:"-"`
	Published     bool           `gorm:"default:false" json:"published"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;<-:create" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	Mode          CourseMode     `gorm:"size:10;not null;default:'online'" json:"mode" validate:"required,oneof=online offline"`
	Duration      *time.Duration `json:"duration,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeOnline
	}
}

func (c Course) String() string {
	return c.Title
}

// Topic 课程章节，Order 可重复，相同时按 ID 排序
type Topic struct {
	UUIDBase
	CourseID    string  `gorm:"type:varchar(36);index;not null" json:"course_id" validate:"required"`
	Course      *Course `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty" validate:"-"`
	Title       string  `gorm:"size:100;not null" json:"title" validate:"required,max=100"`
	Description string  `gorm:"type:text;not null" json:"description" validate:"required"`
	Order       int     `gorm:"column:order;not null;default:0" json:"order" validate:"gte=0"`
}

func (Topic) TableName() string {
	return "topics"
}

func (t Topic) String() string {
	return t.Title
}
