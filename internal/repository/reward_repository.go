package repository

import (
	"context"

	"syntex_backend/internal/model"

	"gorm.io/gorm"
)

// RewardPointsRepository 积分流水只追加，不提供更新和删除
type RewardPointsRepository struct {
	s store[model.RewardPoints]
}

func NewRewardPointsRepository(db *gorm.DB) *RewardPointsRepository {
	return &RewardPointsRepository{s: newStore[model.RewardPoints](db, "reward_points")}
}

func (r *RewardPointsRepository) Append(ctx context.Context, entry *model.RewardPoints) error {
	return r.s.Create(ctx, entry)
}

func (r *RewardPointsRepository) FindByID(ctx context.Context, id string) (*model.RewardPoints, error) {
	return r.s.FindByID(ctx, id, "User")
}

func (r *RewardPointsRepository) ListByUser(ctx context.Context, userID string) ([]model.RewardPoints, error) {
	var entries []model.RewardPoints
	err := r.s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&entries).Error
	return entries, translate(r.s.entity, "", err)
}

// Balance 返回 earn 总和减去 spend 总和
func (r *RewardPointsRepository) Balance(ctx context.Context, userID string) (_ int64, err error) {
	ctx, done := begin(ctx, r.s.entity, "balance", userID)
	defer func() { done(err) }()

	var totals []struct {
		TransactionType model.TransactionType
		Total           int64
	}
	err = r.s.DB.WithContext(ctx).Model(&model.RewardPoints{}).
		Select("transaction_type, SUM(points) AS total").
		Where("user_id = ?", userID).
		Group("transaction_type").
		Scan(&totals).Error
	if err != nil {
		return 0, translate(r.s.entity, userID, err)
	}

	var balance int64
	for _, t := range totals {
		switch t.TransactionType {
		case model.TransactionEarn:
			balance += t.Total
		case model.TransactionSpend:
			balance -= t.Total
		}
	}
	return balance, nil
}
