package service

import "errors"

// 业务错误，handler 通过 errors.Is 映射为 HTTP 状态码
var (
	// ErrValidation 参数或引用无效（400）
	ErrValidation = errors.New("validation failed")
	// ErrForbidden 资源不属于当前用户（403）
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound 资源不存在（404）
	ErrNotFound = errors.New("not found")
	// ErrConflict 状态已变化，不允许该操作（409）
	ErrConflict = errors.New("conflict")
)
