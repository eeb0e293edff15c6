package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"SignMeUp/internal/model/dto"
	"SignMeUp/internal/repository"
	"SignMeUp/storage/database"
	"SignMeUp/utils"
)

var (
	accountService *AccountService
	accountOnce    sync.Once
)

func Account() *AccountService {
	accountOnce.Do(func() {
		accountService = NewAccountService(
			repository.NewAccountRepository(database.DB()),
		)
	})
	return accountService
}

// NewAccountService 测试可以注入假仓库。
func NewAccountService(accounts repository.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

type AccountService struct {
	accounts repository.AccountRepository
}

// ListAccounts 只读投影：一行一个账号，地址拍平，birth_date 为 YYYY-MM-DD 或空串。
func (s *AccountService) ListAccounts(ctx context.Context) (*dto.AccountListData, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	rows := make([]dto.AccountRow, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, dto.AccountRow{
			ID:          strconv.FormatInt(a.PublicID, 10),
			Email:       a.Email,
			About:       a.About,
			Street:      a.Street,
			City:        a.City,
			State:       a.State,
			Zip:         a.Zip,
			BirthDate:   utils.FormatDate(a.Birth),
			OnboardStep: a.OnboardStep,
		})
	}

	return &dto.AccountListData{Accounts: rows}, nil
}
