package api

import (
	"kardio/middleware"
	"kardio/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler 用户侧类别纠错报告
type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// SubmitReportRequest 提交报告
type SubmitReportRequest struct {
	TransactionID       string  `json:"transactionId" binding:"required" example:"3f1c..."`
	RequestedCategoryID string  `json:"requestedCategoryId" binding:"required" example:"9a2b..."`
	UserNote            *string `json:"userNote" example:"这是超市不是餐厅"`
}

// Submit 提交类别纠错报告
// @Summary 提交类别纠错报告
// @Description 交易立即改为所选类别，并记住该用户在此商户上的选择；报告进入待审核
// @Tags 类别纠错
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitReportRequest true "报告"
// @Success 201 {object} models.CategoryChangeReport
// @Failure 400 {object} Response "参数错误或引用不存在"
// @Failure 403 {object} Response "不是自己的交易"
// @Router /api/me/category-user-reports [post]
func (h *ReportHandler) Submit(c *gin.Context) {
	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	report, err := h.svc.Submit(c.Request.Context(), middleware.GetCurrentUserID(c), service.SubmitInput{
		TransactionID:       req.TransactionID,
		RequestedCategoryID: req.RequestedCategoryID,
		UserNote:            req.UserNote,
	})
	if err != nil {
		ServiceError(c, err, "提交报告失败")
		return
	}
	Created(c, report)
}

// ListMine 我的报告
// @Summary 我提交的报告
// @Tags 类别纠错
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CategoryChangeReport
// @Router /api/me/category-user-reports [get]
func (h *ReportHandler) ListMine(c *gin.Context) {
	reports, err := h.svc.ListMine(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		ServiceError(c, err, "查询报告失败")
		return
	}
	Success(c, reports)
}
