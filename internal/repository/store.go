package repository

import (
	"context"
	"time"

	"syntex_backend/internal/model"
	"syntex_backend/internal/util"
	"syntex_backend/pkg/logger"
	"syntex_backend/pkg/monitoring"
	"syntex_backend/pkg/tracing"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type identified interface {
	PrimaryKey() string
}

// store 提供单表的通用增查改，删除由各仓储自己实现 cascade/restrict
type store[T any] struct {
	DB     *gorm.DB
	entity string
	// beforeWrite 在同一事务内、写库之前执行，用于唯一性等需要查库的校验
	beforeWrite func(tx *gorm.DB, m *T) error
	// onDuplicate 唯一索引冲突时返回的错误
	onDuplicate func(m *T) error
}

func newStore[T any](db *gorm.DB, entity string) store[T] {
	return store[T]{DB: db, entity: entity}
}

// begin 开启 span 并返回结束回调，结束时记录指标
func begin(ctx context.Context, entity, op string, id string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, entity+"."+op,
		attribute.String("entity", entity),
		attribute.String("id", id),
	)
	return ctx, func(err error) {
		outcome := outcomeOf(err)
		monitoring.Observe(entity, op, outcome, start)
		switch outcome {
		case monitoring.OutcomeError:
			logger.Log.Error("store operation failed",
				zap.String("entity", entity), zap.String("operation", op), zap.String("id", id), zap.Error(err))
		case monitoring.OutcomeBlocked:
			logger.Log.Warn("delete blocked by references",
				zap.String("entity", entity), zap.String("id", id), zap.Error(err))
		}
		tracing.End(span, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return monitoring.OutcomeOK
	case util.IsValidation(err):
		return monitoring.OutcomeInvalid
	case util.IsNotFound(err):
		return monitoring.OutcomeMissing
	case util.IsReferentialIntegrity(err):
		return monitoring.OutcomeBlocked
	}
	return monitoring.OutcomeError
}

// translate 把 gorm 错误映射为分层错误类型
func translate(entity, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case util.IsNotFound(err), util.IsValidation(err), util.IsReferentialIntegrity(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &util.NotFoundError{Entity: entity, ID: id}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return util.NewValidationError(entity, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return util.NewValidationError(entity, err, util.FieldError{Field: "reference", Error: "referenced record does not exist"})
	}
	return errors.Wrapf(err, "%s %s", entity, id)
}

// translateDelete 数据库层面的外键拒绝也视为 restrict
func translateDelete(entity, id string, err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &util.ReferentialIntegrityError{Entity: entity, ID: id}
	}
	return translate(entity, id, err)
}

func (s *store[T]) prepare(m *T) error {
	if d, ok := any(m).(model.Defaulter); ok {
		d.ApplyDefaults()
	}
	return util.ValidateStruct(s.entity, m)
}

func (s *store[T]) writeErr(m *T, id string, err error) error {
	if s.onDuplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return s.onDuplicate(m)
	}
	return translate(s.entity, id, err)
}

func (s *store[T]) Create(ctx context.Context, m *T) (err error) {
	ctx, done := begin(ctx, s.entity, "create", "")
	defer func() { done(err) }()

	if err = s.prepare(m); err != nil {
		return err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.beforeWrite != nil {
			if err := s.beforeWrite(tx, m); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Create(m).Error
	})
	return s.writeErr(m, "", err)
}

func (s *store[T]) FindByID(ctx context.Context, id string, preloads ...string) (_ *T, err error) {
	ctx, done := begin(ctx, s.entity, "get", id)
	defer func() { done(err) }()

	var m T
	q := s.DB.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err = q.First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(s.entity, id, err)
	}
	return &m, nil
}

// Filter 的 query/args 与 gorm Where 相同，query 为 nil 时返回全部
func (s *store[T]) Filter(ctx context.Context, query interface{}, args ...interface{}) (_ []T, err error) {
	ctx, done := begin(ctx, s.entity, "filter", "")
	defer func() { done(err) }()

	var out []T
	q := s.DB.WithContext(ctx)
	if query != nil {
		q = q.Where(query, args...)
	}
	if err = q.Find(&out).Error; err != nil {
		return nil, translate(s.entity, "", err)
	}
	return out, nil
}

// Update 覆盖写入全部可更新字段，记录不存在时返回 NotFoundError 而不是插入
func (s *store[T]) Update(ctx context.Context, m *T) (err error) {
	id := any(m).(identified).PrimaryKey()
	ctx, done := begin(ctx, s.entity, "update", id)
	defer func() { done(err) }()

	if id == "" {
		return &util.NotFoundError{Entity: s.entity}
	}
	if err = s.prepare(m); err != nil {
		return err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist[T](tx, id); err != nil {
			return err
		}
		if s.beforeWrite != nil {
			if err := s.beforeWrite(tx, m); err != nil {
				return err
			}
		}
		return tx.Model(m).Select("*").Omit(clause.Associations).Updates(m).Error
	})
	return s.writeErr(m, id, err)
}

// deleteByID 删除单行，调用方负责先处理依赖行
func deleteByID[T any](tx *gorm.DB, id string) error {
	res := tx.Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func mustExist[T any](tx *gorm.DB, id string) error {
	var n int64
	if err := tx.Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
