package models

import (
	"time"

	"gorm.io/gorm"
)

// UserCategoryRule 用户级商户类别规则：该用户此后来自同一商户的交易归入 CategoryID
// 每个 (user_id, merchant_id) 至多一条，提交类别纠错报告时写入或覆盖
type UserCategoryRule struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	UserID         string    `json:"userId" gorm:"size:36;not null;uniqueIndex:idx_user_merchant"`
	MerchantID     string    `json:"merchantId" gorm:"size:36;not null;uniqueIndex:idx_user_merchant"`
	CategoryID     string    `json:"categoryId" gorm:"size:36;not null"`
	SourceReportID string    `json:"sourceReportId" gorm:"size:36"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (UserCategoryRule) TableName() string {
	return "user_category_rules"
}

func (r *UserCategoryRule) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
