package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ReportStatus 类别纠错报告状态
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "PENDING"
	ReportStatusApproved ReportStatus = "APPROVED"
	ReportStatusRejected ReportStatus = "REJECTED"
)

// MaxUserNoteLength 用户备注/处理备注的最大长度（字符）
const MaxUserNoteLength = 1000

var (
	// ErrReportAlreadyResolved 报告已处理，不允许再次流转
	ErrReportAlreadyResolved = errors.New("report already resolved")
	// ErrInvalidDecision 处理结果只能是 APPROVED 或 REJECTED
	ErrInvalidDecision = errors.New("decision must be APPROVED or REJECTED")
)

// IsValid 是否为已知状态
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending, ReportStatusApproved, ReportStatusRejected:
		return true
	}
	return false
}

// IsTerminal APPROVED/REJECTED 为终态
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusApproved || s == ReportStatusRejected
}

// ParseDecision 解析管理员处理结果（大小写不敏感）
func ParseDecision(s string) (ReportStatus, error) {
	d := ReportStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !d.IsTerminal() {
		return "", ErrInvalidDecision
	}
	return d, nil
}

// CategoryChangeReport 用户提交的交易类别纠错报告
//
// 快照字段（MerchantNameSnapshot、CurrentCategoryIDSnapshot）在提交时写入，之后不再变化。
// PENDING 时处理字段全部为空；APPROVED/REJECTED 时处理字段全部非空。
type CategoryChangeReport struct {
	ID                        string       `json:"id" gorm:"primaryKey;size:36"`
	UserID                    string       `json:"userId" gorm:"size:36;not null;index"`
	TransactionID             string       `json:"transactionId" gorm:"size:36;not null;index"`
	MerchantID                string       `json:"merchantId" gorm:"size:36;not null;index"`
	MerchantNameSnapshot      string       `json:"merchantNameSnapshot" gorm:"size:255;not null"`
	CurrentCategoryIDSnapshot *string      `json:"currentCategoryIdSnapshot" gorm:"size:36"`
	RequestedCategoryID       string       `json:"requestedCategoryId" gorm:"size:36;not null"`
	UserNote                  *string      `json:"userNote" gorm:"type:text"`
	Status                    ReportStatus `json:"status" gorm:"size:16;not null;default:PENDING;index"`
	ResolvedByAdminUserID     *string      `json:"resolvedByAdminUserId" gorm:"size:36"`
	ResolvedAt                *time.Time   `json:"resolvedAt"`
	ResolutionNote            *string      `json:"resolutionNote" gorm:"type:text"`
	CreatedAt                 time.Time    `json:"createdAt" gorm:"index"`
	UpdatedAt                 time.Time    `json:"updatedAt"`
}

// TableName 设置表名
func (CategoryChangeReport) TableName() string {
	return "category_change_reports"
}

func (r *CategoryChangeReport) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

// NewCategoryChangeReport 以交易当前状态为快照创建 PENDING 报告
func NewCategoryChangeReport(txn *Transaction, merchant *Merchant, requestedCategoryID string, userNote *string) *CategoryChangeReport {
	var current *string
	if txn.CategoryID != nil {
		c := *txn.CategoryID
		current = &c
	}
	return &CategoryChangeReport{
		ID:                        NewID(),
		UserID:                    txn.UserID,
		TransactionID:             txn.ID,
		MerchantID:                merchant.ID,
		MerchantNameSnapshot:      merchant.Name,
		CurrentCategoryIDSnapshot: current,
		RequestedCategoryID:       requestedCategoryID,
		UserNote:                  NormalizeNote(userNote),
		Status:                    ReportStatusPending,
	}
}

// IsResolved 是否已处理
func (r *CategoryChangeReport) IsResolved() bool {
	return r.Status.IsTerminal()
}

// Resolve 管理员处理报告，只允许从 PENDING 流转到 APPROVED/REJECTED
// 失败时报告保持不变
func (r *CategoryChangeReport) Resolve(adminID string, decision ReportStatus, note *string, at time.Time) error {
	if !decision.IsTerminal() {
		return ErrInvalidDecision
	}
	if r.Status != ReportStatusPending {
		return ErrReportAlreadyResolved
	}

	resolutionNote := ""
	if n := NormalizeNote(note); n != nil {
		resolutionNote = *n
	}
	resolvedAt := at.UTC()

	r.Status = decision
	r.ResolvedByAdminUserID = &adminID
	r.ResolvedAt = &resolvedAt
	r.ResolutionNote = &resolutionNote
	r.UpdatedAt = resolvedAt
	return nil
}

// CheckInvariants 校验状态与处理字段的一致性
func (r *CategoryChangeReport) CheckInvariants() error {
	if !r.Status.IsValid() {
		return errors.New("unknown report status: " + string(r.Status))
	}
	present := 0
	if r.ResolvedByAdminUserID != nil {
		present++
	}
	if r.ResolvedAt != nil {
		present++
	}
	if r.ResolutionNote != nil {
		present++
	}
	switch {
	case r.Status == ReportStatusPending && present != 0:
		return errors.New("pending report carries resolution fields")
	case r.Status.IsTerminal() && present != 3:
		return errors.New("resolved report is missing resolution fields")
	}
	return nil
}

// NormalizeNote 去除首尾空白，空备注视为未填写
func NormalizeNote(note *string) *string {
	if note == nil {
		return nil
	}
	n := strings.TrimSpace(*note)
	if n == "" {
		return nil
	}
	return &n
}
