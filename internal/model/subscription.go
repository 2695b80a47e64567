package model

import (
	"fmt"
	"time"

	"syntex_backend/internal/util"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SubscriptionPlan string

const (
	PlanBasic    SubscriptionPlan = "basic"
	PlanStandard SubscriptionPlan = "standard"
	PlanPremium  SubscriptionPlan = "premium"
)

const day = 24 * time.Hour

type PlanTerms struct {
	Price    float64
	Duration time.Duration
}

// PricingFor 套餐定价表
func PricingFor(plan SubscriptionPlan) (PlanTerms, error) {
	switch plan {
	case PlanBasic:
		return PlanTerms{Price: 900.00, Duration: 30 * day}, nil
	case PlanStandard:
		return PlanTerms{Price: 2499.00, Duration: 90 * day}, nil
	case PlanPremium:
		return PlanTerms{Price: 5199.00, Duration: 180 * day}, nil
	}
	return PlanTerms{}, errors.Wrapf(util.ErrUnknownPlan, "plan %q", plan)
}

// Subscription 的 Price 和 Duration 完全由 Plan 决定，调用方传入的值会被覆盖
type Subscription struct {
	UUIDBase
	Plan     SubscriptionPlan `gorm:"size:15;not null" json:"plan" validate:"required,oneof=basic standard premium"`
	Price    float64          `gorm:"type:decimal(6,2);not null" json:"price"`
	Duration time.Duration    `gorm:"not null" json:"duration"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) DerivePricing() error {
	terms, err := PricingFor(s.Plan)
	if err != nil {
		return err
	}
	s.Price = terms.Price
	s.Duration = terms.Duration
	return nil
}

// BeforeSave 每次写库前重新计算价格，未知套餐直接拒绝写入
func (s *Subscription) BeforeSave(tx *gorm.DB) error {
	return s.DerivePricing()
}

func (s Subscription) String() string {
	return fmt.Sprintf("%s - ₹%.2f", s.Plan, s.Price)
}
