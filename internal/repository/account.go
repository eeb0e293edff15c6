package repository

import (
	"context"

	"gorm.io/gorm"

	"SignMeUp/internal/model"
)

// AccountRepository 账号表的持久化接口。
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	Create(ctx context.Context, account *model.Account) error
	Update(ctx context.Context, account *model.Account) error
	List(ctx context.Context) ([]model.Account, error)
}

type accountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *accountRepository) List(ctx context.Context) ([]model.Account, error) {
	var rows []model.Account
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}
