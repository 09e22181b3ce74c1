package api

import (
	"errors"

	"kardio/database"
	"kardio/middleware"
	"kardio/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserAdminHandler 管理员维护用户状态
type UserAdminHandler struct{}

func NewUserAdminHandler() *UserAdminHandler {
	return &UserAdminHandler{}
}

// UpdateUserStatusRequest 用户状态
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active locked" example:"active"`
}

// UpdateStatus 锁定/解锁用户
// @Summary 锁定或解锁用户
// @Description 新注册用户默认锁定，管理员解锁后才能登录
// @Tags 后台管理-用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "用户ID"
// @Param request body UpdateUserStatusRequest true "状态"
// @Success 200 {object} models.User
// @Failure 400 {object} Response "参数错误或不能锁定自己"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/admin/users/{id}/status [put]
func (h *UserAdminHandler) UpdateStatus(c *gin.Context) {
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	id := c.Param("id")
	if id == middleware.GetCurrentUserID(c) && req.Status == models.UserStatusLocked {
		BadRequest(c, "不能锁定自己")
		return
	}

	var user models.User
	if err := database.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "用户不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "查询用户失败"))
		return
	}

	if err := database.DB.Model(&user).Update("status", req.Status).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新状态失败"))
		return
	}
	user.Status = req.Status
	Success(c, user)
}
