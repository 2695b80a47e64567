package repository

import (
	"context"

	"syntex_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	store[model.Assignment]
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{store: newStore[model.Assignment](db, "assignment")}
}

func (r *AssignmentRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.WithContext(ctx).Where("course_id = ?", courseID).Order("created_at ASC, id ASC").Find(&assignments).Error
	return assignments, translate(r.entity, "", err)
}

func (r *AssignmentRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, done := begin(ctx, r.entity, "delete", id)
	defer func() { done(err) }()

	return translateDelete(r.entity, id, deleteByID[model.Assignment](r.DB.WithContext(ctx), id))
}
