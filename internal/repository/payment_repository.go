package repository

import (
	"context"

	"syntex_backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	store[model.Payment]
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{store: newStore[model.Payment](db, "payment")}
}

// FindByOrderID 网关回调只带 order_id
func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) (_ *model.Payment, err error) {
	ctx, done := begin(ctx, r.entity, "get_by_order", orderID)
	defer func() { done(err) }()

	var payment model.Payment
	if err = r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at DESC").First(&payment).Error; err != nil {
		return nil, translate(r.entity, orderID, err)
	}
	return &payment, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.DB.WithContext(ctx).
		Preload("Course").
		Preload("Subscription").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, translate(r.entity, "", err)
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, done := begin(ctx, r.entity, "delete", id)
	defer func() { done(err) }()

	return translateDelete(r.entity, id, deleteByID[model.Payment](r.DB.WithContext(ctx), id))
}

type SubscriptionRepository struct {
	store[model.Subscription]
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{store: newStore[model.Subscription](db, "subscription")}
}

// Delete 级联删除引用该套餐的支付记录
func (r *SubscriptionRepository) Delete(ctx context.Context, id string) (_ map[string]int64, err error) {
	ctx, done := begin(ctx, r.entity, "delete", id)
	defer func() { done(err) }()

	var removed map[string]int64
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist[model.Subscription](tx, id); err != nil {
			return err
		}
		var err error
		removed, err = runCascade(tx, []cascadeStep{
			{table: "payments", model: &model.Payment{}, query: "subscription_id = ?", args: []interface{}{id}},
		})
		if err != nil {
			return err
		}
		return deleteByID[model.Subscription](tx, id)
	})
	if err != nil {
		return nil, translateDelete(r.entity, id, err)
	}
	recordCascade(r.entity, removed)
	return removed, nil
}
