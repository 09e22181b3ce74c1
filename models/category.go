package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultCategoryColor 未指定颜色时使用的灰色
const DefaultCategoryColor = "#64748b"

// Category 交易类别（后台维护）
type Category struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	Name      string         `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Sort      int            `json:"sort" gorm:"default:0;index"`
	Color     string         `json:"color" gorm:"size:20;default:#64748b"` // 颜色代码，如 #ef4444
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// DefaultCategory 初始化时写入的类别
type DefaultCategory struct {
	Name  string
	Color string
}

// GetDefaultCategories 默认类别（仅在类别表为空时写入）
func GetDefaultCategories() []DefaultCategory {
	return []DefaultCategory{
		{"Groceries", "#10b981"},
		{"Dining", "#ef4444"},
		{"Transport", "#3b82f6"},
		{"Shopping", "#a855f7"},
		{"Entertainment", "#ec4899"},
		{"Health", "#14b8a6"},
		{"Utilities", "#f59e0b"},
		{"Housing", "#0ea5e9"},
		{"Income", "#22c55e"},
		{"Other", DefaultCategoryColor},
	}
}
