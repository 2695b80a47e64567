package repository

import (
	"context"
	"strings"

	"syntex_backend/internal/model"
	"syntex_backend/internal/util"

	"gorm.io/gorm"
)

// 指向 users 的外键全部是 restrict
var userReferences = []restrictRef{
	{table: "courses", model: &model.Course{}, column: "author_id"},
	{table: "batches", model: &model.Batch{}, column: "teacher_id"},
	{table: "batch_enrolls", model: &model.BatchEnroll{}, column: "student_id"},
	{table: "enroll_courses", model: &model.EnrollCourse{}, column: "student_id"},
	{table: "rewart_points", model: &model.RewardPoints{}, column: "user_id"},
	{table: "payments", model: &model.Payment{}, column: "user_id"},
}

type UserRepository struct {
	store[model.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	r := &UserRepository{store: newStore[model.User](db, "user")}
	r.beforeWrite = checkEmailUnique
	r.onDuplicate = func(*model.User) error { return emailTaken() }
	return r
}

// NormalizeEmail 去掉首尾空白并将域名部分转为小写
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func emailTaken() error {
	return util.NewValidationError("user", util.ErrEmailRegistered,
		util.FieldError{Field: "email", Error: util.ErrEmailRegistered.Error()})
}

func checkEmailUnique(tx *gorm.DB, u *model.User) error {
	u.Email = NormalizeEmail(u.Email)

	var n int64
	q := tx.Model(&model.User{}).Where("LOWER(email) = LOWER(?)", u.Email)
	if u.ID != "" {
		q = q.Where("id <> ?", u.ID)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return emailTaken()
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (_ *model.User, err error) {
	email = NormalizeEmail(email)
	ctx, done := begin(ctx, r.entity, "get_by_email", email)
	defer func() { done(err) }()

	var user model.User
	if err = r.DB.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, translate(r.entity, email, err)
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("LOWER(email) = LOWER(?)", NormalizeEmail(email)).
		Count(&n).Error
	return n > 0, err
}

// ListOrdered 按 email 排序，管理后台列表使用
func (r *UserRepository) ListOrdered(ctx context.Context) (_ []model.User, err error) {
	ctx, done := begin(ctx, r.entity, "list", "")
	defer func() { done(err) }()

	var users []model.User
	if err = r.DB.WithContext(ctx).Order("email ASC").Find(&users).Error; err != nil {
		return nil, translate(r.entity, "", err)
	}
	return users, nil
}

// Delete 不级联：用户仍被课程、班级、选课、积分或支付引用时拒绝删除
func (r *UserRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, done := begin(ctx, r.entity, "delete", id)
	defer func() { done(err) }()

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist[model.User](tx, id); err != nil {
			return err
		}
		blockers, err := countReferences(tx, userReferences, id)
		if err != nil {
			return err
		}
		if len(blockers) > 0 {
			return &util.ReferentialIntegrityError{Entity: r.entity, ID: id, Blockers: blockers}
		}
		return deleteByID[model.User](tx, id)
	})
	return translateDelete(r.entity, id, err)
}
