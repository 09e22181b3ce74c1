package api

import (
	"fmt"
	"time"

	"kardio/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	reportSheetName = "类别纠错报告"
	timeLayout      = "2006-01-02 15:04:05"
)

var reportExportHeaders = []string{"ID", "用户ID", "交易ID", "商户", "原类别", "申请类别", "用户备注", "状态", "处理人", "处理时间", "处理备注", "提交时间"}

// Export 导出报告
// @Summary 导出报告为 Excel
// @Tags 后台管理-类别纠错
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param status query string false "PENDING/APPROVED/REJECTED/RESOLVED/ALL" default(ALL)
// @Success 200 {file} file "xlsx 文件"
// @Failure 400 {object} Response "未知状态"
// @Router /api/admin/category-user-reports/export [get]
func (h *AdminReportHandler) Export(c *gin.Context) {
	reports, err := h.svc.Export(c.Request.Context(), c.Query("status"))
	if err != nil {
		ServiceError(c, err, "查询报告失败")
		return
	}

	f, err := buildReportWorkbook(reports)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 Excel 失败"))
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("category_reports_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func buildReportWorkbook(reports []models.CategoryChangeReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reportSheetName); err != nil {
		f.Close()
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    border,
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})

	lastCol, _ := excelize.ColumnNumberToName(len(reportExportHeaders))
	_ = f.SetColWidth(reportSheetName, "A", "C", 38)
	_ = f.SetColWidth(reportSheetName, "D", "D", 24)
	_ = f.SetColWidth(reportSheetName, "E", "F", 38)
	_ = f.SetColWidth(reportSheetName, "G", "G", 30)
	_ = f.SetColWidth(reportSheetName, "H", "H", 12)
	_ = f.SetColWidth(reportSheetName, "I", "I", 38)
	_ = f.SetColWidth(reportSheetName, "J", "J", 20)
	_ = f.SetColWidth(reportSheetName, "K", "K", 30)
	_ = f.SetColWidth(reportSheetName, "L", "L", 20)

	for i, header := range reportExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(reportSheetName, cell, header)
	}
	_ = f.SetCellStyle(reportSheetName, "A1", lastCol+"1", headerStyle)

	counts := map[models.ReportStatus]int{}
	for i, r := range reports {
		row := i + 2
		values := []interface{}{
			r.ID,
			r.UserID,
			r.TransactionID,
			r.MerchantNameSnapshot,
			deref(r.CurrentCategoryIDSnapshot),
			r.RequestedCategoryID,
			deref(r.UserNote),
			string(r.Status),
			deref(r.ResolvedByAdminUserID),
			formatTime(r.ResolvedAt),
			deref(r.ResolutionNote),
			r.CreatedAt.UTC().Format(timeLayout),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(reportSheetName, cell, v)
		}
		_ = f.SetCellStyle(reportSheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), dataStyle)
		counts[r.Status]++
	}

	summaryRow := len(reports) + 2
	_ = f.SetCellValue(reportSheetName, fmt.Sprintf("A%d", summaryRow), "合计")
	_ = f.SetCellValue(reportSheetName, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("共 %d 条记录，待审核 %d，已通过 %d，已驳回 %d",
		len(reports), counts[models.ReportStatusPending], counts[models.ReportStatusApproved], counts[models.ReportStatusRejected]))
	_ = f.MergeCell(reportSheetName, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("%s%d", lastCol, summaryRow))
	_ = f.SetCellStyle(reportSheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("%s%d", lastCol, summaryRow), summaryStyle)

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(timeLayout)
}
