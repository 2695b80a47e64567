package service

import (
	"context"

	"syntex_backend/internal/model"
	"syntex_backend/internal/repository"
	"syntex_backend/internal/util"
)

// RewardService 积分只通过追加流水变化
type RewardService struct {
	PointsRepo *repository.RewardPointsRepository
}

func NewRewardService(pointsRepo *repository.RewardPointsRepository) *RewardService {
	return &RewardService{PointsRepo: pointsRepo}
}

func (s *RewardService) Earn(ctx context.Context, userID string, points int, reason string) (*model.RewardPoints, error) {
	entry := &model.RewardPoints{
		UserID:          userID,
		TransactionType: model.TransactionEarn,
		Points:          points,
		Reason:          reason,
	}
	if err := s.PointsRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Spend 余额不足时拒绝。余额检查与写入不在同一事务，并发扣减可能透支
func (s *RewardService) Spend(ctx context.Context, userID string, points int, reason string) (*model.RewardPoints, error) {
	balance, err := s.PointsRepo.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if int64(points) > balance {
		return nil, util.NewValidationError("reward_points", util.ErrNotEnoughPoints,
			util.FieldError{Field: "points", Error: util.ErrNotEnoughPoints.Error()})
	}

	entry := &model.RewardPoints{
		UserID:          userID,
		TransactionType: model.TransactionSpend,
		Points:          points,
		Reason:          reason,
	}
	if err := s.PointsRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *RewardService) Balance(ctx context.Context, userID string) (int64, error) {
	return s.PointsRepo.Balance(ctx, userID)
}

func (s *RewardService) History(ctx context.Context, userID string) ([]model.RewardPoints, error) {
	return s.PointsRepo.ListByUser(ctx, userID)
}
