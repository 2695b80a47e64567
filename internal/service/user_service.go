package service

import (
	"context"
	"time"

	"syntex_backend/internal/model"
	"syntex_backend/internal/repository"
	"syntex_backend/internal/util"
	"syntex_backend/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// RegisterInput 对应后台新增用户表单：email + 两次密码
type RegisterInput struct {
	Email     string
	Password1 string
	Password2 string
}

// ProfileUpdate 只更新非 nil 字段
type ProfileUpdate struct {
	Name          *string
	ProfilePic    *string
	MobileNo      *string
	DOB           *datatypes.Date
	Qualification *string
	IsActive      *bool
	IsStaff       *bool
	IsSuperuser   *bool
}

// UserService 处理用户相关的业务逻辑
type UserService struct {
	UserRepo   *repository.UserRepository
	bcryptCost int
}

func NewUserService(userRepo *repository.UserRepository, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		UserRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

func (s *UserService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hashed), nil
}

// Register 新建普通用户，两次密码必须一致
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Password1 == "" {
		return nil, util.NewValidationError("user", nil, util.FieldError{Field: "password1", Error: "this field is required"})
	}
	if in.Password1 != in.Password2 {
		return nil, util.NewValidationError("user", util.ErrPasswordMismatch,
			util.FieldError{Field: "password2", Error: util.ErrPasswordMismatch.Error()})
	}
	return s.create(ctx, &model.User{Email: in.Email}, in.Password1)
}

// CreateSuperuser 新建拥有全部后台权限的用户
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*model.User, error) {
	if password == "" {
		return nil, util.NewValidationError("user", nil, util.FieldError{Field: "password", Error: "this field is required"})
	}
	return s.create(ctx, &model.User{Email: email, IsStaff: true, IsSuperuser: true}, password)
}

func (s *UserService) create(ctx context.Context, user *model.User, password string) (*model.User, error) {
	hashed, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Log.Info("用户已创建",
		zap.String("id", user.ID),
		zap.String("email", user.Email),
		zap.Bool("superuser", user.IsSuperuser))
	return user, nil
}

// Authenticate 校验 email 与密码，成功后刷新 last_login
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.UserRepo.FindByEmail(ctx, email)
	if util.IsNotFound(err) {
		return nil, util.ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidLogin
	}
	if !user.IsActive {
		return nil, util.ErrUserInactive
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetPassword(ctx context.Context, userID, password string) error {
	if password == "" {
		return util.NewValidationError("user", nil, util.FieldError{Field: "password", Error: "this field is required"})
	}
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Password, err = s.hash(password); err != nil {
		return err
	}
	return s.UserRepo.Update(ctx, user)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.ProfilePic != nil {
		user.ProfilePic = *in.ProfilePic
	}
	if in.MobileNo != nil {
		user.MobileNo = *in.MobileNo
	}
	if in.DOB != nil {
		user.DOB = in.DOB
	}
	if in.Qualification != nil {
		user.Qualification = *in.Qualification
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.IsStaff != nil {
		user.IsStaff = *in.IsStaff
	}
	if in.IsSuperuser != nil {
		user.IsSuperuser = *in.IsSuperuser
	}

	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List 按 email 排序返回全部用户
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.UserRepo.ListOrdered(ctx)
}

// Delete 用户仍有课程、班级等引用时返回 ReferentialIntegrityError，需先 TransferOwnership
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.UserRepo.Delete(ctx, userID); err != nil {
		return err
	}
	logger.Log.Info("用户已删除", zap.String("id", userID))
	return nil
}
