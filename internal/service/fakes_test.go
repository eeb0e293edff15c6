package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"SignMeUp/internal/model"
	"SignMeUp/pkg/logger"
)

func initTestLogger(t *testing.T) {
	t.Helper()
	logger.Init()
}

// fakePlacementRepo 内存版布局仓库。
type fakePlacementRepo struct {
	rows    []model.StepPlacement
	listErr error
}

func (f *fakePlacementRepo) List(ctx context.Context) ([]model.StepPlacement, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakePlacementRepo) ReplaceAll(ctx context.Context, rows []model.StepPlacement) error {
	f.rows = rows
	return nil
}

// fakeAccountRepo 内存版账号仓库，按 email 索引。
type fakeAccountRepo struct {
	byEmail map[string]*model.Account
	nextPK  int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: make(map[string]*model.Account)}
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *model.Account) error {
	f.nextPK++
	account.ID = f.nextPK
	copied := *account
	f.byEmail[account.Email] = &copied
	return nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, account *model.Account) error {
	copied := *account
	f.byEmail[account.Email] = &copied
	return nil
}

func (f *fakeAccountRepo) List(ctx context.Context) ([]model.Account, error) {
	out := make([]model.Account, 0, len(f.byEmail))
	for _, a := range f.byEmail {
		out = append(out, *a)
	}
	return out, nil
}
