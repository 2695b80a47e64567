package service

import (
	"context"

	"syntex_backend/internal/model"
	"syntex_backend/internal/repository"
	"syntex_backend/internal/util"
	"syntex_backend/pkg/logger"

	"go.uber.org/zap"
)

var payloadFields = []string{"text", "video", "file"}

// TopicOutline 章节及其按顺序排列的内容
type TopicOutline struct {
	Topic    model.Topic
	Contents []model.Content
}

type CourseOutline struct {
	Course model.Course
	Topics []TopicOutline
}

type CourseService struct {
	CourseRepo  *repository.CourseRepository
	TopicRepo   *repository.TopicRepository
	ContentRepo *repository.ContentRepository
	BatchRepo   *repository.BatchRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	topicRepo *repository.TopicRepository,
	contentRepo *repository.ContentRepository,
	batchRepo *repository.BatchRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:  courseRepo,
		TopicRepo:   topicRepo,
		ContentRepo: contentRepo,
		BatchRepo:   batchRepo,
	}
}

func (s *CourseService) CreateCourse(ctx context.Context, course *model.Course) error {
	return s.CourseRepo.Create(ctx, course)
}

func (s *CourseService) AddTopic(ctx context.Context, topic *model.Topic) error {
	return s.TopicRepo.Create(ctx, topic)
}

// AddContent 只允许填写与 content_type 对应的载荷字段
func (s *CourseService) AddContent(ctx context.Context, content *model.Content) error {
	if err := CheckContentPayload(content); err != nil {
		return err
	}
	return s.ContentRepo.Create(ctx, content)
}

func (s *CourseService) UpdateContent(ctx context.Context, content *model.Content) error {
	if err := CheckContentPayload(content); err != nil {
		return err
	}
	return s.ContentRepo.Update(ctx, content)
}

// CheckContentPayload 要求恰好填写 content_type 对应的字段
func CheckContentPayload(c *model.Content) error {
	want := c.ContentType.PayloadField()
	if want == "" {
		return util.NewValidationError("content", nil,
			util.FieldError{Field: "content_type", Error: "content_type must be one of [text video blog file]"})
	}

	payloads := c.Payloads()
	var fields []util.FieldError
	for _, name := range payloadFields {
		switch {
		case name == want && payloads[name] == "":
			fields = append(fields, util.FieldError{Field: name, Error: "required for " + string(c.ContentType) + " content"})
		case name != want && payloads[name] != "":
			fields = append(fields, util.FieldError{Field: name, Error: "must be empty for " + string(c.ContentType) + " content"})
		}
	}
	if len(fields) > 0 {
		return util.NewValidationError("content", util.ErrContentPayload, fields...)
	}
	return nil
}

// Outline 返回课程的章节和内容，均按 order、id 排序
func (s *CourseService) Outline(ctx context.Context, courseID string) (*CourseOutline, error) {
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	topics, err := s.TopicRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, t.ID)
	}
	contents, err := s.ContentRepo.ListByTopics(ctx, ids)
	if err != nil {
		return nil, err
	}

	outline := &CourseOutline{Course: *course, Topics: make([]TopicOutline, 0, len(topics))}
	for _, t := range topics {
		outline.Topics = append(outline.Topics, TopicOutline{Topic: t, Contents: contents[t.ID]})
	}
	return outline, nil
}

// TransferOwnership 把课程作者和班级老师从 fromUserID 转给 toUserID
func (s *CourseService) TransferOwnership(ctx context.Context, fromUserID, toUserID string) (courses, batches int64, err error) {
	if courses, err = s.CourseRepo.ReassignAuthor(ctx, fromUserID, toUserID); err != nil {
		return 0, 0, err
	}
	if batches, err = s.BatchRepo.ReassignTeacher(ctx, fromUserID, toUserID); err != nil {
		return courses, 0, err
	}
	logger.Log.Info("课程归属已转移",
		zap.String("from", fromUserID),
		zap.String("to", toUserID),
		zap.Int64("courses", courses),
		zap.Int64("batches", batches))
	return courses, batches, nil
}

// DeleteCourse 级联删除，返回各表删除行数
func (s *CourseService) DeleteCourse(ctx context.Context, courseID string) (map[string]int64, error) {
	removed, err := s.CourseRepo.Delete(ctx, courseID)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("课程已删除", zap.String("id", courseID), zap.Any("removed", removed))
	return removed, nil
}
