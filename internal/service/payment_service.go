package service

import (
	"context"

	"syntex_backend/internal/model"
	"syntex_backend/internal/repository"
	"syntex_backend/internal/util"
	"syntex_backend/pkg/logger"

	"go.uber.org/zap"
)

// PaymentTarget 支付对象，只能是课程或套餐之一
type PaymentTarget interface {
	apply(p *model.Payment)
}

type CourseTarget struct {
	CourseID string
}

func (t CourseTarget) apply(p *model.Payment) {
	id := t.CourseID
	p.CourseID = &id
}

type SubscriptionTarget struct {
	SubscriptionID string
}

func (t SubscriptionTarget) apply(p *model.Payment) {
	id := t.SubscriptionID
	p.SubscriptionID = &id
}

// GatewayResult 支付网关回调携带的字段，签名校验不在这里做
type GatewayResult struct {
	OrderID   string
	PaymentID string
	Signature string
	Status    model.PaymentStatus
}

// 允许的状态流转：pending -> success/failed，success -> refunded
var paymentTransitions = map[model.PaymentStatus][]model.PaymentStatus{
	model.PaymentPending: {model.PaymentSuccess, model.PaymentFailed},
	model.PaymentSuccess: {model.PaymentRefunded},
}

func canTransition(from, to model.PaymentStatus) bool {
	if from == to {
		return true
	}
	for _, s := range paymentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type PaymentService struct {
	PaymentRepo      *repository.PaymentRepository
	SubscriptionRepo *repository.SubscriptionRepository
}

func NewPaymentService(paymentRepo *repository.PaymentRepository, subscriptionRepo *repository.SubscriptionRepository) *PaymentService {
	return &PaymentService{
		PaymentRepo:      paymentRepo,
		SubscriptionRepo: subscriptionRepo,
	}
}

// Subscribe 按套餐定价表创建订阅
func (s *PaymentService) Subscribe(ctx context.Context, plan model.SubscriptionPlan) (*model.Subscription, error) {
	sub := &model.Subscription{Plan: plan}
	if err := s.SubscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// CreateOrder 新建 pending 状态的订单
func (s *PaymentService) CreateOrder(ctx context.Context, userID string, target PaymentTarget, orderID string) (*model.Payment, error) {
	if target == nil {
		return nil, util.NewValidationError("payment", util.ErrPaymentTarget,
			util.FieldError{Field: "target", Error: util.ErrPaymentTarget.Error()})
	}

	payment := &model.Payment{UserID: userID, OrderID: orderID, Status: model.PaymentPending}
	target.apply(payment)
	if err := s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	logger.Log.Info("订单已创建",
		zap.String("order_id", orderID),
		zap.String("user_id", userID))
	return payment, nil
}

// RecordResult 写入网关回调结果
func (s *PaymentService) RecordResult(ctx context.Context, res GatewayResult) (*model.Payment, error) {
	payment, err := s.PaymentRepo.FindByOrderID(ctx, res.OrderID)
	if err != nil {
		return nil, err
	}
	if !canTransition(payment.Status, res.Status) {
		return nil, util.NewValidationError("payment", util.ErrPaymentState,
			util.FieldError{Field: "status", Error: string(payment.Status) + " -> " + string(res.Status) + " is not allowed"})
	}

	if res.PaymentID != "" {
		payment.PaymentID = &res.PaymentID
	}
	if res.Signature != "" {
		payment.Signature = &res.Signature
	}
	payment.Status = res.Status
	if err := s.PaymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	logger.Log.Info("支付结果已记录",
		zap.String("order_id", payment.OrderID),
		zap.String("status", string(payment.Status)))
	return payment, nil
}

func (s *PaymentService) ListByUser(ctx context.Context, userID string) ([]model.Payment, error) {
	return s.PaymentRepo.ListByUser(ctx, userID)
}
