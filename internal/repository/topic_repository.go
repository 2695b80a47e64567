package repository

import (
	"context"

	"syntex_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	store[model.Topic]
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{store: newStore[model.Topic](db, "topic")}
}

func (r *TopicRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.WithContext(ctx).Where("course_id = ?", courseID).Order(byDisplayOrder).Find(&topics).Error
	return topics, translate(r.entity, "", err)
}

// Delete 级联删除章节下的全部内容
func (r *TopicRepository) Delete(ctx context.Context, id string) (_ map[string]int64, err error) {
	ctx, done := begin(ctx, r.entity, "delete", id)
	defer func() { done(err) }()

	var removed map[string]int64
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist[model.Topic](tx, id); err != nil {
			return err
		}
		var err error
		removed, err = runCascade(tx, []cascadeStep{
			{table: "contents", model: &model.Content{}, query: "topic_id = ?", args: []interface{}{id}},
		})
		if err != nil {
			return err
		}
		return deleteByID[model.Topic](tx, id)
	})
	if err != nil {
		return nil, translateDelete(r.entity, id, err)
	}
	recordCascade(r.entity, removed)
	return removed, nil
}

type ContentRepository struct {
	store[model.Content]
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{store: newStore[model.Content](db, "content")}
}

func (r *ContentRepository) ListByTopic(ctx context.Context, topicID string) ([]model.Content, error) {
	var contents []model.Content
	err := r.DB.WithContext(ctx).Where("topic_id = ?", topicID).Order(byDisplayOrder).Find(&contents).Error
	return contents, translate(r.entity, "", err)
}

// ListByTopics 一次取出多个章节的内容，按章节分组
func (r *ContentRepository) ListByTopics(ctx context.Context, topicIDs []string) (map[string][]model.Content, error) {
	grouped := make(map[string][]model.Content, len(topicIDs))
	if len(topicIDs) == 0 {
		return grouped, nil
	}

	var contents []model.Content
	if err := r.DB.WithContext(ctx).Where("topic_id IN ?", topicIDs).Order(byDisplayOrder).Find(&contents).Error; err != nil {
		return nil, translate(r.entity, "", err)
	}
	for _, c := range contents {
		grouped[c.TopicID] = append(grouped[c.TopicID], c)
	}
	return grouped, nil
}

func (r *ContentRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, done := begin(ctx, r.entity, "delete", id)
	defer func() { done(err) }()

	return translateDelete(r.entity, id, deleteByID[model.Content](r.DB.WithContext(ctx), id))
}
