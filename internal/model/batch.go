package model

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type Batch struct {
	UUIDBase
	CourseID  string          `gorm:"type:varchar(36);index;not null" json:"course_id" validate:"required"`
	Course    *Course         `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty" validate:"-"`
	Name      string          `gorm:"size:200;not null" json:"name" validate:"required,max=200"`
	TeacherID string          `gorm:"type:varchar(36);index;not null" json:"teacher_id" validate:"required"`
	Teacher   *User           `gorm:"foreignKey:TeacherID;constraint:OnDelete:RESTRICT" json:"teacher,omitempty" validate:"-"`
	StartDate datatypes.Date  `gorm:"not null" json:"start_date" validate:"required"`
	EndDate   *datatypes.Date `json:"end_date,omitempty"`
	BatchTime *datatypes.Time `json:"batch_time,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime;<-:create" json:"created_at"`
}

func (Batch) TableName() string {
	return "batches"
}

func (b Batch) String() string {
	return b.Name
}

type BatchEnrollStatus string

const (
	EnrollActive   BatchEnrollStatus = "active"
	EnrollComplete BatchEnrollStatus = "complete"
	EnrollLeft     BatchEnrollStatus = "left"
)

type BatchEnroll struct {
	UUIDBase
	StudentID string            `gorm:"type:varchar(36);index;not null" json:"student_id" validate:"required"`
	Student   *User             `gorm:"foreignKey:StudentID;constraint:OnDelete:RESTRICT" json:"student,omitempty" validate:"-"`
	BatchID   string            `gorm:"type:varchar(36);index;not null" json:"batch_id" validate:"required"`
	Batch     *Batch            `gorm:"constraint:OnDelete:CASCADE" json:"batch,omitempty" validate:"-"`
	JoinBatch time.Time         `gorm:"column:join_batch;autoCreateTime;<-:create" json:"join_batch"`
	Status    BatchEnrollStatus `gorm:"size:20;not null;default:'active'" json:"status" validate:"required,oneof=active complete left"`
}

func (BatchEnroll) TableName() string {
	return "batch_enrolls"
}

func (e *BatchEnroll) ApplyDefaults() {
	if e.Status == "" {
		e.Status = EnrollActive
	}
}

// String 需要预加载 Batch 和 Student
func (e BatchEnroll) String() string {
	var batchName, email string
	if e.Batch != nil {
		batchName = e.Batch.Name
	}
	if e.Student != nil {
		email = e.Student.Email
	}
	return fmt.Sprintf("%s-%s", batchName, email)
}
