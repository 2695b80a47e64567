package model

import (
	"time"

	"gorm.io/datatypes"
)

// User 以 email 作为登录标识，没有 username
type User struct {
	UUIDBase
	Email         string          `gorm:"size:254;uniqueIndex:idx_users_email;not null" json:"email" validate:"required,email,max=254"`
	Password      string          `gorm:"size:128;not null" json:"-"`
	Name          string          `gorm:"size:200" json:"name" validate:"max=200"`
	ProfilePic    string          `gorm:"size:100" json:"profile_pic" validate:"max=100"`
	MobileNo      string          `gorm:"size:10" json:"mobile_no" validate:"max=10"`
	DOB           *datatypes.Date `json:"dob"`
	Qualification string          `gorm:"size:200" json:"qualification" validate:"max=200"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	IsStaff       bool            `gorm:"default:false" json:"is_staff"`
	IsSuperuser   bool            `gorm:"default:false" json:"is_superuser"`
	LastLogin     *time.Time      `json:"last_login"`
	DateJoined    time.Time       `gorm:"autoCreateTime;<-:create" json:"date_joined"`
}

func (User) TableName() string {
	return "users"
}

func (u User) String() string {
	return u.Email
}
