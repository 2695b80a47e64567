package model

import (
	"time"
)

const DefaultAssignmentDuration = 7 * 24 * time.Hour

type Assignment struct {
	UUIDBase
	CourseID    string        `gorm:"type:varchar(36);index;not null" json:"course_id" validate:"required"`
	Course      *Course       `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty" validate:"-"`
	Title       string        `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Description string        `gorm:"type:text;not null" json:"description" validate:"required"`
	File        string        `gorm:"size:100" json:"file" validate:"max=100"`
	Duration    time.Duration `gorm:"not null" json:"duration" validate:"gt=0"`
	CreatedAt   time.Time     `gorm:"autoCreateTime;<-:create" json:"created_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) ApplyDefaults() {
	if a.Duration == 0 {
		a.Duration = DefaultAssignmentDuration
	}
}

func (a Assignment) String() string {
	return a.Title
}
