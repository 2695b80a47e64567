package repository

import (
	"context"

	"syntex_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollCourseRepository struct {
	store[model.EnrollCourse]
}

func NewEnrollCourseRepository(db *gorm.DB) *EnrollCourseRepository {
	return &EnrollCourseRepository{store: newStore[model.EnrollCourse](db, "enroll_course")}
}

func (r *EnrollCourseRepository) FindByStudentAndCourse(ctx context.Context, studentID, courseID string) (*model.EnrollCourse, error) {
	var enroll model.EnrollCourse
	err := r.DB.WithContext(ctx).Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enroll).Error
	if err != nil {
		return nil, translate(r.entity, studentID+"/"+courseID, err)
	}
	return &enroll, nil
}

func (r *EnrollCourseRepository) ListByCourse(ctx context.Context, courseID string) ([]model.EnrollCourse, error) {
	var enrolls []model.EnrollCourse
	err := r.DB.WithContext(ctx).Preload("Student").Where("course_id = ?", courseID).Order("enroll_date ASC").Find(&enrolls).Error
	return enrolls, translate(r.entity, "", err)
}

func (r *EnrollCourseRepository) ListByStudent(ctx context.Context, studentID string, activeOnly bool) ([]model.EnrollCourse, error) {
	var enrolls []model.EnrollCourse
	q := r.DB.WithContext(ctx).Preload("Student").Preload("Course").Where("student_id = ?", studentID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("enroll_date ASC").Find(&enrolls).Error
	return enrolls, translate(r.entity, "", err)
}

func (r *EnrollCourseRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, done := begin(ctx, r.entity, "delete", id)
	defer func() { done(err) }()

	return translateDelete(r.entity, id, deleteByID[model.EnrollCourse](r.DB.WithContext(ctx), id))
}
