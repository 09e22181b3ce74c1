package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction 用户交易记录
// CategoryID 为空表示尚未分类
type Transaction struct {
	ID          string          `json:"id" gorm:"primaryKey;size:36"`
	UserID      string          `json:"userId" gorm:"size:36;not null;index"`
	MerchantID  string          `json:"merchantId" gorm:"size:36;not null;index"`
	CategoryID  *string         `json:"categoryId" gorm:"size:36;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency    string          `json:"currency" gorm:"size:3;not null;default:EUR"`
	Description string          `json:"description" gorm:"size:255"`
	OccurredAt  time.Time       `json:"occurredAt" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

// OwnedBy 交易是否属于指定用户
func (t *Transaction) OwnedBy(userID string) bool {
	return t.UserID == userID
}
