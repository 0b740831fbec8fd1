package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	texttemplate "text/template"
	"time"

	"lexium/config"
	"lexium/logger"
	"lexium/services/i18n"

	"github.com/resend/resend-go/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed emails/*
var emailTemplates embed.FS

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers emails
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// ResendMailer sends through the Resend API, or only logs in test mode
type ResendMailer struct {
	cfg    *config.Config
	client *resend.Client
}

// NewMailer creates a mailer from the email settings
func NewMailer(cfg *config.Config) *ResendMailer {
	m := &ResendMailer{cfg: cfg}
	if cfg.ResendAPIKey != "" {
		m.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return m
}

// Send delivers the email. In test mode it is written to the log instead.
func (m *ResendMailer) Send(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	if m.cfg.EmailTestMode {
		logEmailToConsole(logger.FromContext(ctx), email)
		return nil
	}
	if m.client == nil {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", m.cfg.EmailFromName, m.cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	logger.FromContext(ctx).Info("Email sent via Resend", zap.String("id", sent.Id), zap.Strings("to", email.To))
	return nil
}

// logEmailToConsole logs email details in test mode
func logEmailToConsole(log *zap.Logger, email *Email) {
	log.Info("Email (test mode, not sent)",
		zap.Strings("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("text_body", email.TextBody),
		zap.String("html_body", truncate(email.HTMLBody, 500)),
	)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// loadTemplate renders emails/<name>_<lang>.html and .txt, falling back to
// emails/<name>.html and .txt when the language has no variant
func loadTemplate(name, lang string, data interface{}) (string, string, error) {
	pick := func(ext string) (string, []byte, error) {
		localized := fmt.Sprintf("emails/%s_%s%s", name, lang, ext)
		if content, err := fs.ReadFile(emailTemplates, localized); err == nil {
			return localized, content, nil
		}
		base := "emails/" + name + ext
		content, err := fs.ReadFile(emailTemplates, base)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read template %s: %w", base, err)
		}
		return base, content, nil
	}

	htmlPath, htmlSrc, err := pick(".html")
	if err != nil {
		return "", "", err
	}
	htmlTmpl, err := htmltemplate.New(htmlPath).Parse(string(htmlSrc))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", htmlPath, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", htmlPath, err)
	}

	textPath, textSrc, err := pick(".txt")
	if err != nil {
		return "", "", err
	}
	textTmpl, err := texttemplate.New(textPath).Parse(string(textSrc))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", textPath, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", textPath, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// UnbilledDigestRow is one case line of the digest
type UnbilledDigestRow struct {
	Number     string
	Name       string
	ClientName string
	Hours      string
	Amount     string
}

// UnbilledDigestEmailData contains data for the unbilled digest template
type UnbilledDigestEmailData struct {
	Title      string
	Intro      string
	Date       string
	Headers    []string
	Rows       []UnbilledDigestRow
	TotalLabel string
	Total      string
	ExportText string
	ExportURL  string
	Empty      string
}

// BuildUnbilledDigestEmail summarises unbilled work per case. exportURL links
// the archived workbook and may be empty.
func BuildUnbilledDigestEmail(to []string, rows []UnbilledRow, exportURL, lang string, now time.Time) (*Email, error) {
	tr := func(key string) string { return i18n.Translate(lang, key) }

	data := UnbilledDigestEmailData{
		Title:      tr("digest.title"),
		Intro:      tr("digest.intro"),
		Date:       now.Format(DateLayout),
		TotalLabel: tr("reports.total"),
		Total:      FormatMoney(TotalUnbilled(rows)),
		ExportText: tr("digest.export"),
		ExportURL:  exportURL,
		Empty:      tr("digest.empty"),
		Headers: []string{
			tr("reports.columns.number"),
			tr("reports.columns.case"),
			tr("reports.columns.client"),
			tr("reports.columns.unbilled_hours"),
			tr("reports.columns.estimated_amount"),
		},
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, UnbilledDigestRow{
			Number:     r.Number,
			Name:       r.Name,
			ClientName: r.ClientName,
			Hours:      FormatHours(r.UnbilledHours),
			Amount:     FormatMoney(r.EstimatedAmount),
		})
	}

	htmlBody, textBody, err := loadTemplate("unbilled_digest", lang, data)
	if err != nil {
		return nil, err
	}

	return &Email{
		To:       append([]string{}, to...),
		Subject:  fmt.Sprintf("%s (%s)", data.Title, data.Date),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}

// FormatHours renders hours with two decimals
func FormatHours(h decimal.Decimal) string {
	return h.StringFixed(2)
}

// FormatMoney renders an amount with two decimals
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
