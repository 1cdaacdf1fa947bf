package lifecycle

import (
	"fmt"

	"gorm.io/gorm"

	pkgErrors "taskup/pkg/errors"
)

// FlagStore 软删除标志存取。
// 统一屏蔽各实体 IsDeleted/IsActive 的极性差异, 上层只关心"存活/非存活"。
type FlagStore struct {
	db *gorm.DB
}

// NewFlagStore 创建FlagStore
func NewFlagStore(db *gorm.DB) *FlagStore {
	return &FlagStore{db: db}
}

// WithTx 返回绑定到指定事务的FlagStore
func (s *FlagStore) WithTx(tx *gorm.DB) *FlagStore {
	return &FlagStore{db: tx}
}

// IsActive 查询实体存活状态, 行不存在时返回 ErrRecordNotFound
func (s *FlagStore) IsActive(kind Kind, id string) (bool, error) {
	d, ok := Describe(kind)
	if !ok {
		return false, pkgErrors.Wrap(pkgErrors.CodeInternalError, fmt.Sprintf("未注册的实体类型: %s", kind), nil)
	}

	var flag bool
	err := s.db.Table(d.Table).
		Select(d.FlagColumn).
		Where("id = ?", id).
		Take(&flag).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, pkgErrors.ErrRecordNotFound
		}
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询实体状态失败", err)
	}

	return flag == d.ActiveValue, nil
}

// MarkInactive 幂等翻转存活标志。
// 已非存活时不视为错误, 第二次调用与第一次产生相同的终态。
func (s *FlagStore) MarkInactive(kind Kind, id string) error {
	active, err := s.IsActive(kind, id)
	if err != nil {
		return err
	}
	if !active {
		return nil
	}

	d, _ := Describe(kind)
	err = s.db.Table(d.Table).
		Where("id = ?", id).
		Update(d.FlagColumn, d.InactiveValue()).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新实体状态失败", err)
	}
	return nil
}

// activeScope 给查询追加存活过滤, 读路径默认排除非存活行
func activeScope(db *gorm.DB, d Descriptor) *gorm.DB {
	return db.Where(fmt.Sprintf("%s = ?", d.FlagColumn), d.ActiveValue)
}
