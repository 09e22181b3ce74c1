package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Merchant 商户，由交易导入或手工录入时按名称创建
type Merchant struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Merchant) TableName() string {
	return "merchants"
}

func (m *Merchant) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

// NormalizeMerchantName 去除首尾空白并合并内部连续空白
func NormalizeMerchantName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
