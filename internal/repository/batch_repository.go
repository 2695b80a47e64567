package repository

import (
	"context"

	"syntex_backend/internal/model"

	"gorm.io/gorm"
)

type BatchRepository struct {
	store[model.Batch]
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{store: newStore[model.Batch](db, "batch")}
}

func (r *BatchRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.DB.WithContext(ctx).Where("course_id = ?", courseID).Order("start_date ASC").Find(&batches).Error
	return batches, translate(r.entity, "", err)
}

func (r *BatchRepository) ListByTeacher(ctx context.Context, teacherID string) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.DB.WithContext(ctx).Where("teacher_id = ?", teacherID).Order("start_date ASC").Find(&batches).Error
	return batches, translate(r.entity, "", err)
}

// ReassignTeacher 把 fromUserID 负责的班级转给 toUserID
func (r *BatchRepository) ReassignTeacher(ctx context.Context, fromUserID, toUserID string) (_ int64, err error) {
	ctx, done := begin(ctx, r.entity, "reassign_teacher", fromUserID)
	defer func() { done(err) }()

	var moved int64
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist[model.User](tx, toUserID); err != nil {
			return translate("user", toUserID, err)
		}
		res := tx.Model(&model.Batch{}).Where("teacher_id = ?", fromUserID).Update("teacher_id", toUserID)
		moved = res.RowsAffected
		return res.Error
	})
	return moved, translate(r.entity, fromUserID, err)
}

// Delete 级联删除班级学员
func (r *BatchRepository) Delete(ctx context.Context, id string) (_ map[string]int64, err error) {
	ctx, done := begin(ctx, r.entity, "delete", id)
	defer func() { done(err) }()

	var removed map[string]int64
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist[model.Batch](tx, id); err != nil {
			return err
		}
		var err error
		removed, err = runCascade(tx, []cascadeStep{
			{table: "batch_enrolls", model: &model.BatchEnroll{}, query: "batch_id = ?", args: []interface{}{id}},
		})
		if err != nil {
			return err
		}
		return deleteByID[model.Batch](tx, id)
	})
	if err != nil {
		return nil, translateDelete(r.entity, id, err)
	}
	recordCascade(r.entity, removed)
	return removed, nil
}

type BatchEnrollRepository struct {
	store[model.BatchEnroll]
}

func NewBatchEnrollRepository(db *gorm.DB) *BatchEnrollRepository {
	return &BatchEnrollRepository{store: newStore[model.BatchEnroll](db, "batch_enroll")}
}

// FindWithRelations 预加载 Batch 和 Student，String() 需要二者
func (r *BatchEnrollRepository) FindWithRelations(ctx context.Context, id string) (*model.BatchEnroll, error) {
	return r.FindByID(ctx, id, "Batch", "Student")
}

func (r *BatchEnrollRepository) FindByStudentAndBatch(ctx context.Context, studentID, batchID string) (*model.BatchEnroll, error) {
	var enroll model.BatchEnroll
	err := r.DB.WithContext(ctx).Where("student_id = ? AND batch_id = ?", studentID, batchID).First(&enroll).Error
	if err != nil {
		return nil, translate(r.entity, studentID+"/"+batchID, err)
	}
	return &enroll, nil
}

func (r *BatchEnrollRepository) ListByBatch(ctx context.Context, batchID string) ([]model.BatchEnroll, error) {
	var enrolls []model.BatchEnroll
	err := r.DB.WithContext(ctx).Preload("Student").Where("batch_id = ?", batchID).Order("join_batch ASC").Find(&enrolls).Error
	return enrolls, translate(r.entity, "", err)
}

func (r *BatchEnrollRepository) ListByStudent(ctx context.Context, studentID string) ([]model.BatchEnroll, error) {
	var enrolls []model.BatchEnroll
	err := r.DB.WithContext(ctx).Preload("Batch").Where("student_id = ?", studentID).Order("join_batch ASC").Find(&enrolls).Error
	return enrolls, translate(r.entity, "", err)
}

func (r *BatchEnrollRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, done := begin(ctx, r.entity, "delete", id)
	defer func() { done(err) }()

	return translateDelete(r.entity, id, deleteByID[model.BatchEnroll](r.DB.WithContext(ctx), id))
}
