package repository

import (
	"context"

	"gorm.io/gorm"

	"SignMeUp/internal/model"
)

// PlacementRepository 布局行的持久化接口。
type PlacementRepository interface {
	List(ctx context.Context) ([]model.StepPlacement, error)
	// ReplaceAll 在单个事务里整体替换布局：先清空再写入规范行，
	// 读端不可能观察到新旧混杂的中间态。
	ReplaceAll(ctx context.Context, rows []model.StepPlacement) error
}

type placementRepository struct{ db *gorm.DB }

func NewPlacementRepository(db *gorm.DB) PlacementRepository {
	return &placementRepository{db: db}
}

func (r *placementRepository) List(ctx context.Context) ([]model.StepPlacement, error) {
	var rows []model.StepPlacement
	err := r.db.WithContext(ctx).
		Order("page_number ASC, component ASC").
		Find(&rows).Error
	return rows, err
}

func (r *placementRepository) ReplaceAll(ctx context.Context, rows []model.StepPlacement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// component 上有唯一索引，软删除残留会挡住重建，必须物理清空
		if err := tx.Unscoped().Where("1 = 1").Delete(&model.StepPlacement{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
