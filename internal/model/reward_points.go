package model

import (
	"fmt"
	"time"
)

type TransactionType string

const (
	TransactionEarn  TransactionType = "earn"
	TransactionSpend TransactionType = "spend"
)

// RewardPoints 积分流水，只追加不修改
type RewardPoints struct {
	UUIDBase
	UserID          string          `gorm:"type:varchar(36);index;not null" json:"user_id" validate:"required"`
	User            *User           `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty" validate:"-"`
	TransactionType TransactionType `gorm:"size:10;not null;default:'spend'" json:"transaction_type" validate:"required,oneof=earn spend"`
	Points          int             `gorm:"not null" json:"points" validate:"gte=0"`
	Reason          string          `gorm:"size:200" json:"reason" validate:"max=200"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;<-:create" json:"created_at"`
}

// 沿用旧库表名
func (RewardPoints) TableName() string {
	return "rewart_points"
}

func (r *RewardPoints) ApplyDefaults() {
	if r.TransactionType == "" {
		r.TransactionType = TransactionSpend
	}
}

func (r RewardPoints) String() string {
	var email string
	if r.User != nil {
		email = r.User.Email
	}
	return fmt.Sprintf("%s-%d", email, r.Points)
}
