package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDBase 所有实体共用的主键，创建时生成 UUID
type UUIDBase struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`
}

func (b *UUIDBase) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = GenerateUUID()
	}
	return
}

func (b UUIDBase) PrimaryKey() string {
	return b.ID
}

func GenerateUUID() string {
	return uuid.New().String()
}

// Defaulter 在校验和写库之前填充字段默认值
type Defaulter interface {
	ApplyDefaults()
}

// All 返回所有需要迁移的实体，顺序满足外键依赖
func All() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&Topic{},
		&Content{},
		&Batch{},
		&BatchEnroll{},
		&EnrollCourse{},
		&RewardPoints{},
		&Subscription{},
		&Payment{},
		&Assignment{},
	}
}
