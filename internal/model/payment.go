package model

import (
	"fmt"
	"time"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentSuccess  PaymentStatus = "success"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment 支付网关订单。CourseID 与 SubscriptionID 至多设置一个；
// PaymentID、Signature 由网关回调写入。
type Payment struct {
	UUIDBase
	UserID         string        `gorm:"type:varchar(36);index;not null" json:"user_id" validate:"required"`
	User           *User         `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty" validate:"-"`
	CourseID       *string       `gorm:"type:varchar(36);index" json:"course_id" validate:"omitempty,excluded_with=SubscriptionID"`
	Course         *Course       `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty" validate:"-"`
	SubscriptionID *string       `gorm:"type:varchar(36);index" json:"subscription_id"`
	Subscription   *Subscription `gorm:"constraint:OnDelete:CASCADE" json:"subscription,omitempty" validate:"-"`
	OrderID        string        `gorm:"size:100;not null;index" json:"order_id" validate:"required,max=100"`
	PaymentID      *string       `gorm:"size:100" json:"payment_id" validate:"omitempty,max=100"`
	Signature      *string       `gorm:"size:100" json:"signature" validate:"omitempty,max=100"`
	Status         PaymentStatus `gorm:"size:15;not null;default:'pending'" json:"status" validate:"required,oneof=pending success failed refunded"`
	CreatedAt      time.Time     `gorm:"autoCreateTime;<-:create" json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) ApplyDefaults() {
	if p.Status == "" {
		p.Status = PaymentPending
	}
}

func (p Payment) String() string {
	return fmt.Sprintf("%s-%s", p.OrderID, p.Status)
}
