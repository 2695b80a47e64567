package repository

import (
	"syntex_backend/pkg/monitoring"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// cascadeStep 删除 model 对应表中满足 query 的行，步骤按子到父的顺序执行
type cascadeStep struct {
	table string
	model interface{}
	query string
	args  []interface{}
}

func runCascade(tx *gorm.DB, steps []cascadeStep) (map[string]int64, error) {
	removed := make(map[string]int64, len(steps))
	for _, step := range steps {
		res := tx.Where(step.query, step.args...).Delete(step.model)
		if res.Error != nil {
			return nil, errors.Wrapf(res.Error, "cascade delete %s", step.table)
		}
		removed[step.table] += res.RowsAffected
	}
	return removed, nil
}

// recordCascade 事务提交后再计数
func recordCascade(entity string, removed map[string]int64) {
	for table, n := range removed {
		monitoring.CascadeDeleted.WithLabelValues(entity, table).Add(float64(n))
	}
}

// restrictRef 指向被删除行且不允许级联的外键
type restrictRef struct {
	table  string
	model  interface{}
	column string
}

func countReferences(tx *gorm.DB, refs []restrictRef, id string) (map[string]int64, error) {
	blockers := make(map[string]int64)
	for _, ref := range refs {
		var n int64
		if err := tx.Model(ref.model).Where(ref.column+" = ?", id).Count(&n).Error; err != nil {
			return nil, errors.Wrapf(err, "count %s references", ref.table)
		}
		if n > 0 {
			blockers[ref.table] = n
		}
	}
	return blockers, nil
}
