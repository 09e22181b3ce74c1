package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"kardio/models"
)

// Report 报告记录
type Report = models.CategoryChangeReport

// Transaction 交易记录
type Transaction = models.Transaction

// ReportPage 管理端报告分页
type ReportPage struct {
	Total    int64    `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	List     []Report `json:"list"`
}

// TransactionPage 交易分页
type TransactionPage struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	List     []Transaction `json:"list"`
}

type submitRequest struct {
	TransactionID       string  `json:"transactionId"`
	RequestedCategoryID string  `json:"requestedCategoryId"`
	UserNote            *string `json:"userNote,omitempty"`
}

type resolveRequest struct {
	ResolutionNote *string `json:"resolutionNote,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login 登录并保存 token
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out.User, nil
}

// SubmitReport 提交类别纠错报告
// 服务端同时把交易改为所申请的类别，成功后报告列表和该交易的缓存一并失效
func (c *Client) SubmitReport(ctx context.Context, transactionID, requestedCategoryID string, userNote *string) (*Report, error) {
	var out Report
	err := c.do(ctx, http.MethodPost, "/api/me/category-user-reports", submitRequest{
		TransactionID:       transactionID,
		RequestedCategoryID: requestedCategoryID,
		UserNote:            userNote,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.invalidate(mutationSubmitReport, &out)
	return &out, nil
}

// ListMine 当前用户提交的报告，保持服务端返回的顺序
func (c *Client) ListMine(ctx context.Context) ([]Report, error) {
	return cached(ctx, c.cache, keyReportsMine, func(ctx context.Context) ([]Report, error) {
		var out []Report
		if err := c.do(ctx, http.MethodGet, "/api/me/category-user-reports", nil, &out); err != nil {
			return nil, err
		}
		if out == nil {
			out = []Report{}
		}
		return out, nil
	})
}

// Resolve 管理员通过或驳回报告；报告已处理时返回 *ConflictError
// 成功后报告集合、该报告以及所属交易的缓存一并失效
func (c *Client) Resolve(ctx context.Context, reportID string, decision models.ReportStatus, resolutionNote *string) (*Report, error) {
	var action string
	switch decision {
	case models.ReportStatusApproved:
		action = "approve"
	case models.ReportStatusRejected:
		action = "reject"
	default:
		return nil, &ValidationError{Status: http.StatusBadRequest, Message: models.ErrInvalidDecision.Error()}
	}

	var out Report
	path := fmt.Sprintf("/api/admin/category-user-reports/%s/%s", url.PathEscape(reportID), action)
	if err := c.do(ctx, http.MethodPost, path, resolveRequest{ResolutionNote: resolutionNote}, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out.ID = reportID
	}
	c.invalidate(mutationResolveReport, &out)
	return &out, nil
}

// ListAdmin 管理端报告列表，status 为 PENDING/APPROVED/REJECTED/RESOLVED/ALL，page 从 1 开始
func (c *Client) ListAdmin(ctx context.Context, status string, page int) (*ReportPage, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status == "" {
		status = "ALL"
	}
	if page <= 0 {
		page = 1
	}
	key := fmt.Sprintf("%s%s/%d", keyReportsAdmin, status, page)
	return cached(ctx, c.cache, key, func(ctx context.Context) (*ReportPage, error) {
		q := url.Values{}
		q.Set("status", status)
		q.Set("page", strconv.Itoa(page))
		var out ReportPage
		if err := c.do(ctx, http.MethodGet, "/api/admin/category-user-reports?"+q.Encode(), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// Report 管理端单个报告
func (c *Client) Report(ctx context.Context, id string) (*Report, error) {
	return cached(ctx, c.cache, reportKey(id), func(ctx context.Context) (*Report, error) {
		var out Report
		if err := c.do(ctx, http.MethodGet, "/api/admin/category-user-reports/"+url.PathEscape(id), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// Transaction 当前用户的一条交易
func (c *Client) Transaction(ctx context.Context, id string) (*Transaction, error) {
	return cached(ctx, c.cache, transactionKey(id), func(ctx context.Context) (*Transaction, error) {
		var out Transaction
		if err := c.do(ctx, http.MethodGet, "/api/me/transactions/"+url.PathEscape(id), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// Transactions 当前用户最近的交易（第一页）
func (c *Client) Transactions(ctx context.Context) (*TransactionPage, error) {
	return cached(ctx, c.cache, keyTransactionsMine, func(ctx context.Context) (*TransactionPage, error) {
		var out TransactionPage
		if err := c.do(ctx, http.MethodGet, "/api/me/transactions?page_size=100", nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// Categories 类别列表
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	return cached(ctx, c.cache, keyCategories, func(ctx context.Context) ([]models.Category, error) {
		var out []models.Category
		if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}
