package service

import (
	"context"

	"syntex_backend/internal/model"
	"syntex_backend/internal/repository"
	"syntex_backend/internal/util"
)

const maxProgress = 100

type EnrollmentService struct {
	BatchEnrollRepo *repository.BatchEnrollRepository
	EnrollRepo      *repository.EnrollCourseRepository
}

func NewEnrollmentService(batchEnrollRepo *repository.BatchEnrollRepository, enrollRepo *repository.EnrollCourseRepository) *EnrollmentService {
	return &EnrollmentService{
		BatchEnrollRepo: batchEnrollRepo,
		EnrollRepo:      enrollRepo,
	}
}

// JoinBatch 学生已在班级中时恢复为 active，否则新建记录
func (s *EnrollmentService) JoinBatch(ctx context.Context, studentID, batchID string) (*model.BatchEnroll, error) {
	existing, err := s.BatchEnrollRepo.FindByStudentAndBatch(ctx, studentID, batchID)
	switch {
	case err == nil:
		if existing.Status != model.EnrollActive {
			existing.Status = model.EnrollActive
			if err := s.BatchEnrollRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	case !util.IsNotFound(err):
		return nil, err
	}

	enroll := &model.BatchEnroll{StudentID: studentID, BatchID: batchID}
	if err := s.BatchEnrollRepo.Create(ctx, enroll); err != nil {
		return nil, err
	}
	return enroll, nil
}

func (s *EnrollmentService) SetBatchStatus(ctx context.Context, enrollID string, status model.BatchEnrollStatus) (*model.BatchEnroll, error) {
	enroll, err := s.BatchEnrollRepo.FindByID(ctx, enrollID)
	if err != nil {
		return nil, err
	}
	enroll.Status = status
	if err := s.BatchEnrollRepo.Update(ctx, enroll); err != nil {
		return nil, err
	}
	return enroll, nil
}

// EnrollInCourse 同一学生同一课程只保留一条记录，重复调用会重新激活
func (s *EnrollmentService) EnrollInCourse(ctx context.Context, studentID, courseID string) (*model.EnrollCourse, error) {
	existing, err := s.EnrollRepo.FindByStudentAndCourse(ctx, studentID, courseID)
	switch {
	case err == nil:
		if !existing.Active {
			existing.Active = true
			if err := s.EnrollRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	case !util.IsNotFound(err):
		return nil, err
	}

	enroll := &model.EnrollCourse{StudentID: studentID, CourseID: courseID}
	if err := s.EnrollRepo.Create(ctx, enroll); err != nil {
		return nil, err
	}
	return enroll, nil
}

func (s *EnrollmentService) UpdateProgress(ctx context.Context, enrollID string, progress int) (*model.EnrollCourse, error) {
	if progress < 0 || progress > maxProgress {
		return nil, util.NewValidationError("enroll_course", util.ErrProgressRange,
			util.FieldError{Field: "progress", Error: util.ErrProgressRange.Error()})
	}
	enroll, err := s.EnrollRepo.FindByID(ctx, enrollID)
	if err != nil {
		return nil, err
	}
	enroll.Progress = progress
	if err := s.EnrollRepo.Update(ctx, enroll); err != nil {
		return nil, err
	}
	return enroll, nil
}

func (s *EnrollmentService) Deactivate(ctx context.Context, enrollID string) error {
	enroll, err := s.EnrollRepo.FindByID(ctx, enrollID)
	if err != nil {
		return err
	}
	if !enroll.Active {
		return nil
	}
	enroll.Active = false
	return s.EnrollRepo.Update(ctx, enroll)
}
