package model

import (
	"errors"
	"testing"
	"time"

	"syntex_backend/internal/util"
)

func TestPricingFor(t *testing.T) {
	tests := []struct {
		plan     SubscriptionPlan
		price    float64
		duration time.Duration
	}{
		{plan: PlanBasic, price: 900.00, duration: 30 * 24 * time.Hour},
		{plan: PlanStandard, price: 2499.00, duration: 90 * 24 * time.Hour},
		{plan: PlanPremium, price: 5199.00, duration: 180 * 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			terms, err := PricingFor(tt.plan)
			if err != nil {
				t.Fatalf("PricingFor: %v", err)
			}
			if terms.Price != tt.price || terms.Duration != tt.duration {
				t.Fatalf("terms: want=%v/%v got=%v/%v", tt.price, tt.duration, terms.Price, terms.Duration)
			}
		})
	}
}

func TestDerivePricingOverridesCallerValues(t *testing.T) {
	sub := Subscription{Plan: PlanStandard, Price: 1, Duration: time.Hour}
	if err := sub.DerivePricing(); err != nil {
		t.Fatalf("DerivePricing: %v", err)
	}
	if sub.Price != 2499.00 {
		t.Fatalf("price: want=2499.00 got=%v", sub.Price)
	}
	if sub.Duration != 90*24*time.Hour {
		t.Fatalf("duration: want=%v got=%v", 90*24*time.Hour, sub.Duration)
	}
}

func TestDerivePricingUnknownPlan(t *testing.T) {
	sub := Subscription{Plan: "gold", Price: 10}
	err := sub.BeforeSave(nil)
	if !errors.Is(err, util.ErrUnknownPlan) {
		t.Fatalf("BeforeSave: want ErrUnknownPlan got %v", err)
	}
	if sub.Price != 10 {
		t.Fatalf("price changed for unknown plan: %v", sub.Price)
	}
}

func TestSubscriptionString(t *testing.T) {
	sub := Subscription{Plan: PlanBasic}
	_ = sub.DerivePricing()
	if got := sub.String(); got != "basic - ₹900.00" {
		t.Fatalf("String: want=%q got=%q", "basic - ₹900.00", got)
	}
}
