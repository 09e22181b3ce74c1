package service

import (
	"context"
	"fmt"
	"html"

	"kardio/config"
	"kardio/logger"
	"kardio/models"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 是否已启用邮件
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendReportResolvedEmail 通知用户其类别纠错报告已处理
func (s *EmailService) SendReportResolvedEmail(toEmail, username, categoryName string, r *models.CategoryChangeReport) error {
	if !s.Enabled() {
		return fmt.Errorf("邮件服务未启用，请配置 KARDIO_EMAIL_ENABLED=true")
	}
	subject := "[Kardio] Your category report was reviewed"
	return s.sendEmail(toEmail, subject, s.generateResolvedEmailBody(username, categoryName, r))
}

// generateResolvedEmailBody 生成处理结果邮件内容
func (s *EmailService) generateResolvedEmailBody(username, categoryName string, r *models.CategoryChangeReport) string {
	outcome := "approved"
	detail := "The category you suggested will also be used for other Kardio users."
	if r.Status == models.ReportStatusRejected {
		outcome = "not adopted globally"
		detail = "Your own transactions keep the category you chose."
	}
	note := ""
	if r.ResolutionNote != nil && *r.ResolutionNote != "" {
		note = fmt.Sprintf(`<p class="note">%s</p>`, html.EscapeString(*r.ResolutionNote))
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; }
        .header { background: #2563eb; color: white; padding: 24px; text-align: center; }
        .content { padding: 32px; color: #333; line-height: 1.7; }
        .note { background: #f1f5f9; border-left: 4px solid #2563eb; padding: 12px; }
        .footer { background: #f8f9fa; padding: 16px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Kardio</h1></div>
        <div class="content">
            <p>Hi <strong>%s</strong>,</p>
            <p>Your request to file <strong>%s</strong> transactions under <strong>%s</strong> was %s.</p>
            <p>%s</p>
            %s
        </div>
        <div class="footer"><p>This message was sent automatically, please do not reply.</p></div>
    </div>
</body>
</html>
`, html.EscapeString(username), html.EscapeString(r.MerchantNameSnapshot), html.EscapeString(categoryName), outcome, detail, note)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}

// ReportNotifier 报告处理后的用户通知
type ReportNotifier interface {
	ReportResolved(ctx context.Context, r *models.CategoryChangeReport)
}

// NopNotifier 不发送任何通知
type NopNotifier struct{}

func (NopNotifier) ReportResolved(context.Context, *models.CategoryChangeReport) {}

// EmailNotifier 通过邮件通知报告提交人，发送在后台进行，失败只记录日志
type EmailNotifier struct {
	db    *gorm.DB
	email *EmailService
}

// NewEmailNotifier 创建邮件通知
func NewEmailNotifier(db *gorm.DB, email *EmailService) *EmailNotifier {
	return &EmailNotifier{db: db, email: email}
}

func (n *EmailNotifier) ReportResolved(_ context.Context, r *models.CategoryChangeReport) {
	if !n.email.Enabled() {
		return
	}
	report := *r
	go func() {
		var user models.User
		if err := n.db.Where("id = ?", report.UserID).First(&user).Error; err != nil {
			logger.Log.Warn().Err(err).Str("report_id", report.ID).Msg("查询报告提交人失败")
			return
		}
		if user.Email == "" {
			return
		}
		categoryName := report.RequestedCategoryID
		var cat models.Category
		if err := n.db.Unscoped().Where("id = ?", report.RequestedCategoryID).First(&cat).Error; err == nil {
			categoryName = cat.Name
		}
		if err := n.email.SendReportResolvedEmail(user.Email, user.Username, categoryName, &report); err != nil {
			logger.Log.Warn().Err(err).Str("report_id", report.ID).Msg("发送处理结果邮件失败")
		}
	}()
}
