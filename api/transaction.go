package api

import (
	"strconv"
	"time"

	"kardio/middleware"
	"kardio/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler 当前用户的交易
type TransactionHandler struct {
	svc *service.TransactionService
}

func NewTransactionHandler(svc *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// TransactionCreateRequest 手工录入交易
type TransactionCreateRequest struct {
	MerchantName string          `json:"merchantName" binding:"required,max=255" example:"Coop Pronto"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"-12.50"`
	Currency     string          `json:"currency" binding:"omitempty,len=3" example:"EUR"`
	Description  string          `json:"description" binding:"max=255"`
	OccurredAt   time.Time       `json:"occurredAt" binding:"required"`
	CategoryID   *string         `json:"categoryId"`
}

// List 交易列表
// @Summary 我的交易列表
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param category_id query string false "类别ID"
// @Success 200 {object} service.TransactionPage
// @Router /api/me/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.svc.List(c.Request.Context(), middleware.GetCurrentUserID(c), service.TransactionFilter{
		CategoryID: c.Query("category_id"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		ServiceError(c, err, "查询交易失败")
		return
	}
	Success(c, result)
}

// Get 交易详情
// @Summary 交易详情
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param id path string true "交易ID"
// @Success 200 {object} models.Transaction
// @Failure 403 {object} Response "不是自己的交易"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/me/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	txn, err := h.svc.Get(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"))
	if err != nil {
		ServiceError(c, err, "查询交易失败")
		return
	}
	Success(c, txn)
}

// Create 录入交易
// @Summary 录入交易
// @Description 商户按名称查找或创建；未指定类别时按用户在该商户上的规则归类
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionCreateRequest true "交易"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} Response "参数错误"
// @Router /api/me/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	txn, err := h.svc.Create(c.Request.Context(), middleware.GetCurrentUserID(c), service.CreateTransactionInput{
		MerchantName: req.MerchantName,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Description:  req.Description,
		OccurredAt:   req.OccurredAt,
		CategoryID:   req.CategoryID,
	})
	if err != nil {
		ServiceError(c, err, "录入交易失败")
		return
	}
	Created(c, txn)
}
