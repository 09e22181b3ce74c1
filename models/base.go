package models

import (
	"github.com/google/uuid"
)

// NewID 生成实体主键（UUID v4 字符串，对客户端不透明）
func NewID() string {
	return uuid.NewString()
}

// ensureID 主键为空时补齐，供各模型 BeforeCreate 钩子使用
func ensureID(id *string) {
	if *id == "" {
		*id = NewID()
	}
}
