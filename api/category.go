package api

import (
	"errors"
	"strings"

	"kardio/database"
	"kardio/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler 交易类别
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

type CategoryCreateRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Sort  int    `json:"sort"`
	Color string `json:"color" binding:"omitempty,max=20"` // 颜色代码，如 #ef4444
}

type CategoryUpdateRequest struct {
	Name  string  `json:"name" binding:"omitempty,min=1,max=50"`
	Sort  *int    `json:"sort"`
	Color *string `json:"color" binding:"omitempty,max=20"`
}

// List 列出所有类别（不包含软删除）
// @Summary 获取类别列表
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Category "类别列表"
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list := make([]models.Category, 0)
	if err := database.DB.Order("sort ASC, name ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// Create 创建类别
// @Summary 创建类别
// @Tags 后台管理-类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryCreateRequest true "类别信息"
// @Success 201 {object} models.Category "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 409 {object} Response "类别名称已存在"
// @Router /api/admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "名称不能为空")
		return
	}

	var existing models.Category
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		Conflict(c, "类别名称已存在")
		return
	}

	color := req.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}
	cat := models.Category{Name: req.Name, Sort: req.Sort, Color: color}
	if err := database.DB.Create(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	Created(c, cat)
}

// Update 更新类别
// @Summary 更新类别
// @Tags 后台管理-类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "类别ID"
// @Param request body CategoryUpdateRequest true "更新的类别信息"
// @Success 200 {object} models.Category "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "类别不存在"
// @Failure 409 {object} Response "类别名称已存在"
// @Router /api/admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	cat, ok := h.load(c)
	if !ok {
		return
	}

	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			BadRequest(c, "名称不能为空")
			return
		}
		var existing models.Category
		if err := database.DB.Where("name = ? AND id <> ?", req.Name, cat.ID).First(&existing).Error; err == nil {
			Conflict(c, "类别名称已存在")
			return
		}
		updates["name"] = req.Name
	}
	if req.Sort != nil {
		updates["sort"] = *req.Sort
	}
	if req.Color != nil {
		color := *req.Color
		if color == "" {
			color = models.DefaultCategoryColor
		}
		updates["color"] = color
	}
	if len(updates) == 0 {
		Success(c, cat)
		return
	}

	if err := database.DB.Model(&cat).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	Success(c, cat)
}

// Delete 软删除类别
// 已有交易和报告只保存类别ID，删除后历史记录不受影响
// @Summary 删除类别
// @Tags 后台管理-类别
// @Security BearerAuth
// @Param id path string true "类别ID"
// @Success 204 "删除成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	cat, ok := h.load(c)
	if !ok {
		return
	}
	if err := database.DB.Delete(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	NoContent(c)
}

func (h *CategoryHandler) load(c *gin.Context) (models.Category, bool) {
	var cat models.Category
	err := database.DB.Where("id = ?", c.Param("id")).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "类别不存在")
		return cat, false
	}
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return cat, false
	}
	return cat, true
}
