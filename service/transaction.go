package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kardio/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateTransactionInput 手工录入交易
type CreateTransactionInput struct {
	MerchantName string
	Amount       decimal.Decimal
	Currency     string
	Description  string
	OccurredAt   time.Time
	CategoryID   *string
}

// TransactionFilter 交易列表筛选
type TransactionFilter struct {
	CategoryID string
	Page       int
	PageSize   int
}

// TransactionPage 分页结果
type TransactionPage struct {
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
	List     []models.Transaction `json:"list"`
}

// TransactionService 用户交易
type TransactionService struct {
	db *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db}
}

// Create 录入交易；未指定类别时按用户在该商户上的规则归类
func (s *TransactionService) Create(ctx context.Context, userID string, in CreateTransactionInput) (*models.Transaction, error) {
	name := models.NormalizeMerchantName(in.MerchantName)
	if name == "" {
		return nil, fmt.Errorf("%w: merchantName is required", ErrValidation)
	}
	if in.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must not be zero", ErrValidation)
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "EUR"
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency must be an ISO 4217 code", ErrValidation)
	}
	if in.OccurredAt.IsZero() {
		return nil, fmt.Errorf("%w: occurredAt is required", ErrValidation)
	}

	var txn models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var merchant models.Merchant
		if err := tx.Where(models.Merchant{Name: name}).FirstOrCreate(&merchant).Error; err != nil {
			return fmt.Errorf("find or create merchant: %w", err)
		}

		categoryID, err := resolveCategory(tx, userID, merchant.ID, in.CategoryID)
		if err != nil {
			return err
		}

		txn = models.Transaction{
			UserID:      userID,
			MerchantID:  merchant.ID,
			CategoryID:  categoryID,
			Amount:      in.Amount.Round(2),
			Currency:    currency,
			Description: strings.TrimSpace(in.Description),
			OccurredAt:  in.OccurredAt.UTC(),
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// resolveCategory 显式类别需存在；否则取用户级规则，没有规则则保持未分类
func resolveCategory(tx *gorm.DB, userID, merchantID string, explicit *string) (*string, error) {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		id := strings.TrimSpace(*explicit)
		var cat models.Category
		if err := tx.Where("id = ?", id).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: category %s does not exist", ErrValidation, id)
			}
			return nil, err
		}
		return &cat.ID, nil
	}

	var rule models.UserCategoryRule
	err := tx.Where("user_id = ? AND merchant_id = ?", userID, merchantID).First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule.CategoryID, nil
}

// List 当前用户的交易
func (s *TransactionService) List(ctx context.Context, userID string, f TransactionFilter) (*TransactionPage, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}

	query := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	if f.CategoryID != "" {
		query = query.Where("category_id = ?", f.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	list := make([]models.Transaction, 0)
	offset := (f.Page - 1) * f.PageSize
	if err := query.Order("occurred_at DESC, id DESC").Offset(offset).Limit(f.PageSize).Find(&list).Error; err != nil {
		return nil, err
	}
	return &TransactionPage{Total: total, Page: f.Page, PageSize: f.PageSize, List: list}, nil
}

// Get 获取当前用户的一条交易
func (s *TransactionService) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction %s", ErrNotFound, id)
		}
		return nil, err
	}
	if !txn.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: transaction %s belongs to another user", ErrForbidden, id)
	}
	return &txn, nil
}
