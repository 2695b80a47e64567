package model

import (
	"fmt"
	"time"
)

// EnrollCourse 学生选课记录，Progress 预期在 0-100 之间
type EnrollCourse struct {
	UUIDBase
	StudentID  string         `gorm:"type:varchar(36);index;not null" json:"student_id" validate:"required"`
	Student    *User          `gorm:"foreignKey:StudentID;constraint:OnDelete:RESTRICT" json:"student,omitempty" validate:"-"`
	CourseID   string         `gorm:"type:varchar(36);index;not null" json:"course_id" validate:"required"`
	Course     *Course        `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty" validate:"-"`
	EnrollDate time.Time      `gorm:"autoCreateTime;<-:create" json:"enroll_date"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	Progress   int            `gorm:"not null;default:0" json:"progress" validate:"gte=0"`
	Duration   *time.Duration `json:"duration,omitempty"`
	Active     bool           `gorm:"default:true" json:"active"`
}

func (EnrollCourse) TableName() string {
	return "enroll_courses"
}

// String 需要预加载 Student 和 Course
func (e EnrollCourse) String() string {
	var email, title string
	if e.Student != nil {
		email = e.Student.Email
	}
	if e.Course != nil {
		title = e.Course.Title
	}
	return fmt.Sprintf("%s-%s", email, title)
}
