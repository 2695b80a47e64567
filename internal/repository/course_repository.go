package repository

import (
	"context"

	"syntex_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// byDisplayOrder order 相同时按 id 排序
var byDisplayOrder = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "order"}},
	{Column: clause.Column{Name: "id"}},
}}

type CourseRepository struct {
	store[model.Course]
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{store: newStore[model.Course](db, "course")}
}

func (r *CourseRepository) ListByAuthor(ctx context.Context, authorID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).Where("author_id = ?", authorID).Order("created_at DESC").Find(&courses).Error
	return courses, translate(r.entity, "", err)
}

func (r *CourseRepository) ListPublished(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).Where("published = ?", true).Order("created_at DESC").Find(&courses).Error
	return courses, translate(r.entity, "", err)
}

// ReassignAuthor 把 fromUserID 名下的课程转给 toUserID，返回转移数量
func (r *CourseRepository) ReassignAuthor(ctx context.Context, fromUserID, toUserID string) (_ int64, err error) {
	ctx, done := begin(ctx, r.entity, "reassign_author", fromUserID)
	defer func() { done(err) }()

	var moved int64
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist[model.User](tx, toUserID); err != nil {
			return translate("user", toUserID, err)
		}
		res := tx.Model(&model.Course{}).Where("author_id = ?", fromUserID).Update("author_id", toUserID)
		moved = res.RowsAffected
		return res.Error
	})
	return moved, translate(r.entity, fromUserID, err)
}

func courseCascade(tx *gorm.DB, id string) []cascadeStep {
	topics := tx.Model(&model.Topic{}).Select("id").Where("course_id = ?", id)
	batches := tx.Model(&model.Batch{}).Select("id").Where("course_id = ?", id)
	return []cascadeStep{
		{table: "contents", model: &model.Content{}, query: "topic_id IN (?)", args: []interface{}{topics}},
		{table: "topics", model: &model.Topic{}, query: "course_id = ?", args: []interface{}{id}},
		{table: "batch_enrolls", model: &model.BatchEnroll{}, query: "batch_id IN (?)", args: []interface{}{batches}},
		{table: "batches", model: &model.Batch{}, query: "course_id = ?", args: []interface{}{id}},
		{table: "enroll_courses", model: &model.EnrollCourse{}, query: "course_id = ?", args: []interface{}{id}},
		{table: "assignments", model: &model.Assignment{}, query: "course_id = ?", args: []interface{}{id}},
		{table: "payments", model: &model.Payment{}, query: "course_id = ?", args: []interface{}{id}},
	}
}

// Delete 级联删除章节、内容、班级、班级学员、选课记录、作业以及关联支付
func (r *CourseRepository) Delete(ctx context.Context, id string) (_ map[string]int64, err error) {
	ctx, done := begin(ctx, r.entity, "delete", id)
	defer func() { done(err) }()

	var removed map[string]int64
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist[model.Course](tx, id); err != nil {
			return err
		}
		var err error
		if removed, err = runCascade(tx, courseCascade(tx, id)); err != nil {
			return err
		}
		return deleteByID[model.Course](tx, id)
	})
	if err != nil {
		return nil, translateDelete(r.entity, id, err)
	}
	recordCascade(r.entity, removed)
	return removed, nil
}
