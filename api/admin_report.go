package api

import (
	"errors"
	"io"
	"strconv"

	"kardio/middleware"
	"kardio/models"
	"kardio/service"

	"github.com/gin-gonic/gin"
)

// AdminReportHandler 管理端报告审核
type AdminReportHandler struct {
	svc *service.ReportService
}

func NewAdminReportHandler(svc *service.ReportService) *AdminReportHandler {
	return &AdminReportHandler{svc: svc}
}

// ResolveRequest 审核备注
type ResolveRequest struct {
	ResolutionNote *string `json:"resolutionNote"`
}

// List 报告列表
// @Summary 报告列表
// @Tags 后台管理-类别纠错
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING/APPROVED/REJECTED/RESOLVED/ALL" default(ALL)
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} service.ReportPage
// @Failure 400 {object} Response "未知状态"
// @Router /api/admin/category-user-reports [get]
func (h *AdminReportHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.svc.List(c.Request.Context(), service.ListFilter{
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		ServiceError(c, err, "查询报告失败")
		return
	}
	Success(c, result)
}

// Get 报告详情
// @Summary 报告详情
// @Tags 后台管理-类别纠错
// @Produce json
// @Security BearerAuth
// @Param id path string true "报告ID"
// @Success 200 {object} models.CategoryChangeReport
// @Failure 404 {object} Response "报告不存在"
// @Router /api/admin/category-user-reports/{id} [get]
func (h *AdminReportHandler) Get(c *gin.Context) {
	report, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err, "查询报告失败")
		return
	}
	Success(c, report)
}

// Approve 通过报告
// @Summary 通过报告
// @Tags 后台管理-类别纠错
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "报告ID"
// @Param request body ResolveRequest false "审核备注"
// @Success 200 {object} models.CategoryChangeReport
// @Failure 404 {object} Response "报告不存在"
// @Failure 409 {object} Response "报告已处理"
// @Router /api/admin/category-user-reports/{id}/approve [post]
func (h *AdminReportHandler) Approve(c *gin.Context) {
	h.resolve(c, models.ReportStatusApproved)
}

// Reject 驳回报告
// @Summary 驳回报告
// @Description 只改变报告状态，不回滚用户已生效的改类
// @Tags 后台管理-类别纠错
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "报告ID"
// @Param request body ResolveRequest false "审核备注"
// @Success 200 {object} models.CategoryChangeReport
// @Failure 404 {object} Response "报告不存在"
// @Failure 409 {object} Response "报告已处理"
// @Router /api/admin/category-user-reports/{id}/reject [post]
func (h *AdminReportHandler) Reject(c *gin.Context) {
	h.resolve(c, models.ReportStatusRejected)
}

func (h *AdminReportHandler) resolve(c *gin.Context, decision models.ReportStatus) {
	var req ResolveRequest
	// 请求体可省略，空 body（包括 chunked）读到 EOF
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	admin := middleware.GetCurrentAdmin(c)
	if admin == nil {
		Forbidden(c, "需要管理员权限")
		return
	}

	report, err := h.svc.Resolve(c.Request.Context(), admin.ID, c.Param("id"), decision, req.ResolutionNote)
	if err != nil {
		ServiceError(c, err, "处理报告失败")
		return
	}
	Success(c, report)
}
