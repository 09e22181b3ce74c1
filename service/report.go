package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"kardio/logger"
	"kardio/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 管理端列表的状态筛选
const (
	StatusFilterAll      = "ALL"
	StatusFilterResolved = "RESOLVED"
)

// SubmitInput 提交类别纠错报告
type SubmitInput struct {
	TransactionID       string
	RequestedCategoryID string
	UserNote            *string
}

// ListFilter 管理端报告列表筛选
type ListFilter struct {
	Status   string
	Page     int
	PageSize int
}

// ReportPage 分页结果
type ReportPage struct {
	Total    int64                         `json:"total"`
	Page     int                           `json:"page"`
	PageSize int                           `json:"pageSize"`
	List     []models.CategoryChangeReport `json:"list"`
}

// ReportService 类别纠错报告流程
//
// 提交时在同一事务内完成：写入报告、把交易改为用户要求的类别、写入用户级商户规则。
// 管理员处理（通过/驳回）只改变报告本身，不回滚也不重放已生效的用户级改类。
type ReportService struct {
	db        *gorm.DB
	publisher EventPublisher
	notifier  ReportNotifier
	now       func() time.Time
}

// NewReportService 创建报告服务，publisher/notifier 为 nil 时不发布、不通知
func NewReportService(db *gorm.DB, publisher EventPublisher, notifier ReportNotifier) *ReportService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ReportService{db: db, publisher: publisher, notifier: notifier, now: time.Now}
}

// Submit 用户提交报告
func (s *ReportService) Submit(ctx context.Context, userID string, in SubmitInput) (*models.CategoryChangeReport, error) {
	in.TransactionID = strings.TrimSpace(in.TransactionID)
	in.RequestedCategoryID = strings.TrimSpace(in.RequestedCategoryID)
	if in.TransactionID == "" {
		return nil, fmt.Errorf("%w: transactionId is required", ErrValidation)
	}
	if in.RequestedCategoryID == "" {
		return nil, fmt.Errorf("%w: requestedCategoryId is required", ErrValidation)
	}
	if in.UserNote != nil && utf8.RuneCountInString(*in.UserNote) > models.MaxUserNoteLength {
		return nil, fmt.Errorf("%w: userNote exceeds %d characters", ErrValidation, models.MaxUserNoteLength)
	}

	var report *models.CategoryChangeReport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.Where("id = ?", in.TransactionID).First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: transaction %s does not exist", ErrValidation, in.TransactionID)
			}
			return err
		}
		if !txn.OwnedBy(userID) {
			return fmt.Errorf("%w: transaction %s belongs to another user", ErrForbidden, txn.ID)
		}

		var category models.Category
		if err := tx.Where("id = ?", in.RequestedCategoryID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: category %s does not exist", ErrValidation, in.RequestedCategoryID)
			}
			return err
		}

		var merchant models.Merchant
		if err := tx.Where("id = ?", txn.MerchantID).First(&merchant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: merchant %s of transaction does not exist", ErrValidation, txn.MerchantID)
			}
			return err
		}

		report = models.NewCategoryChangeReport(&txn, &merchant, category.ID, in.UserNote)
		if err := tx.Create(report).Error; err != nil {
			return fmt.Errorf("create report: %w", err)
		}

		if err := tx.Model(&models.Transaction{}).
			Where("id = ?", txn.ID).
			Update("category_id", category.ID).Error; err != nil {
			return fmt.Errorf("recategorize transaction: %w", err)
		}

		rule := models.UserCategoryRule{
			UserID:         userID,
			MerchantID:     merchant.ID,
			CategoryID:     category.ID,
			SourceReportID: report.ID,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "merchant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"category_id", "source_report_id", "updated_at"}),
		}).Create(&rule).Error; err != nil {
			return fmt.Errorf("upsert user category rule: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info().
		Str("report_id", report.ID).
		Str("user_id", userID).
		Str("transaction_id", report.TransactionID).
		Str("requested_category_id", report.RequestedCategoryID).
		Msg("category report submitted")
	s.publish(ctx, EventReportSubmitted, report)
	return report, nil
}

// ListMine 当前用户提交的全部报告，最新的在前
func (s *ReportService) ListMine(ctx context.Context, userID string) ([]models.CategoryChangeReport, error) {
	reports := make([]models.CategoryChangeReport, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// List 管理端分页列表
func (s *ReportService) List(ctx context.Context, f ListFilter) (*ReportPage, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}

	query, err := filterByStatus(s.db.WithContext(ctx).Model(&models.CategoryChangeReport{}), f.Status)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	list := make([]models.CategoryChangeReport, 0)
	offset := (f.Page - 1) * f.PageSize
	if err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(f.PageSize).Find(&list).Error; err != nil {
		return nil, err
	}
	return &ReportPage{Total: total, Page: f.Page, PageSize: f.PageSize, List: list}, nil
}

// Export 导出用的全量列表，不分页
func (s *ReportService) Export(ctx context.Context, status string) ([]models.CategoryChangeReport, error) {
	query, err := filterByStatus(s.db.WithContext(ctx).Model(&models.CategoryChangeReport{}), status)
	if err != nil {
		return nil, err
	}
	list := make([]models.CategoryChangeReport, 0)
	if err := query.Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// filterByStatus 空值和 ALL 不筛选，RESOLVED 表示 APPROVED 或 REJECTED
func filterByStatus(query *gorm.DB, status string) (*gorm.DB, error) {
	switch s := strings.ToUpper(strings.TrimSpace(status)); s {
	case "", StatusFilterAll:
		return query, nil
	case StatusFilterResolved:
		return query.Where("status IN ?", []models.ReportStatus{models.ReportStatusApproved, models.ReportStatusRejected}), nil
	default:
		if !models.ReportStatus(s).IsValid() {
			return nil, fmt.Errorf("%w: unknown status filter %q", ErrValidation, status)
		}
		return query.Where("status = ?", s), nil
	}
}

// Get 按ID获取报告
func (s *ReportService) Get(ctx context.Context, id string) (*models.CategoryChangeReport, error) {
	var r models.CategoryChangeReport
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &r, nil
}

// Resolve 管理员通过或驳回报告
// 已处理的报告返回 ErrConflict，记录保持不变
func (s *ReportService) Resolve(ctx context.Context, adminID, reportID string, decision models.ReportStatus, note *string) (*models.CategoryChangeReport, error) {
	if !decision.IsTerminal() {
		return nil, fmt.Errorf("%w: %w", ErrValidation, models.ErrInvalidDecision)
	}
	if note != nil && utf8.RuneCountInString(*note) > models.MaxUserNoteLength {
		return nil, fmt.Errorf("%w: resolutionNote exceeds %d characters", ErrValidation, models.MaxUserNoteLength)
	}

	var report models.CategoryChangeReport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", reportID).
			First(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: report %s", ErrNotFound, reportID)
			}
			return err
		}

		if err := report.Resolve(adminID, decision, note, s.now()); err != nil {
			if errors.Is(err, models.ErrReportAlreadyResolved) {
				return fmt.Errorf("%w: report %s is already %s", ErrConflict, report.ID, report.Status)
			}
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}

		res := tx.Model(&models.CategoryChangeReport{}).
			Where("id = ? AND status = ?", report.ID, models.ReportStatusPending).
			Updates(map[string]interface{}{
				"status":                    report.Status,
				"resolved_by_admin_user_id": report.ResolvedByAdminUserID,
				"resolved_at":               report.ResolvedAt,
				"resolution_note":           report.ResolutionNote,
				"updated_at":                report.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: report %s was resolved concurrently", ErrConflict, report.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info().
		Str("report_id", report.ID).
		Str("admin_id", adminID).
		Str("status", string(report.Status)).
		Msg("category report resolved")
	s.publish(ctx, EventReportResolved, &report)
	s.notifier.ReportResolved(ctx, &report)
	return &report, nil
}

// publish 事务已提交，发布失败只记录日志
func (s *ReportService) publish(ctx context.Context, eventType string, r *models.CategoryChangeReport) {
	if err := s.publisher.Publish(ctx, NewReportEvent(eventType, r)); err != nil {
		logger.Log.Warn().Err(err).Str("report_id", r.ID).Str("event", eventType).Msg("publish report event failed")
	}
}
