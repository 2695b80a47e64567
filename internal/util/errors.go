package util

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound             = errors.New("record not found")
	ErrValidation           = errors.New("validation failed")
	ErrReferentialIntegrity = errors.New("referenced by other records")

	ErrEmailRegistered  = errors.New("a user with this email already exists")
	ErrPasswordMismatch = errors.New("the two password fields didn't match")
	ErrInvalidLogin     = errors.New("invalid email or password")
	ErrUserInactive     = errors.New("user account is disabled")
	ErrUnknownPlan      = errors.New("unknown subscription plan")
	ErrContentPayload   = errors.New("content payload does not match content type")
	ErrPaymentTarget    = errors.New("payment must reference exactly one of course or subscription")
	ErrProgressRange    = errors.New("progress must be between 0 and 100")
	ErrNotEnoughPoints  = errors.New("not enough reward points")
	ErrPaymentState     = errors.New("payment status transition not allowed")
)

// FieldError 描述单个字段的校验失败
type FieldError struct {
	Field string
	Error string
}

// ValidationError: 必填缺失、枚举越界、唯一约束冲突
type ValidationError struct {
	Entity string
	Err    error
	Fields []FieldError
}

func NewValidationError(entity string, err error, fields ...FieldError) error {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Entity: entity, Err: err, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %v", e.Entity, e.Err)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Entity, e.Err, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// HasField 判断某个字段是否校验失败
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ReferentialIntegrityError 由 restrict 类型的外键阻止删除时返回
type ReferentialIntegrityError struct {
	Entity   string
	ID       string
	Blockers map[string]int64
}

func (e *ReferentialIntegrityError) Error() string {
	if len(e.Blockers) == 0 {
		return fmt.Sprintf("%s %s is %v", e.Entity, e.ID, ErrReferentialIntegrity)
	}
	tables := make([]string, 0, len(e.Blockers))
	for table := range e.Blockers {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		parts = append(parts, fmt.Sprintf("%s=%d", table, e.Blockers[table]))
	}
	return fmt.Sprintf("%s %s is %v (%s)", e.Entity, e.ID, ErrReferentialIntegrity, strings.Join(parts, ", "))
}

func (e *ReferentialIntegrityError) Is(target error) bool { return target == ErrReferentialIntegrity }

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsReferentialIntegrity(err error) bool { return errors.Is(err, ErrReferentialIntegrity) }
