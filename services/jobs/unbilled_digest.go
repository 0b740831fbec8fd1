package jobs

import (
	"context"
	"fmt"
	"time"

	"lexium/config"
	"lexium/logger"
	"lexium/services"
	"lexium/services/i18n"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// digestTimeout bounds one digest run: reports, workbook, archive upload and mail
const digestTimeout = 2 * time.Minute

// Digest carries what the unbilled digest job needs
type Digest struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Storage services.StorageProvider
	Mailer  services.Mailer
	Now     func() time.Time
}

// StartScheduler registers the unbilled digest on DIGEST_SCHEDULE and starts
// the cron runner. It returns nil when no schedule or recipients are set.
func StartScheduler(d *Digest) (*cron.Cron, error) {
	log := logger.GetLogger()
	if d.Cfg.DigestSchedule == "" || len(d.Cfg.DigestRecipients) == 0 {
		log.Info("[CRON] Unbilled digest disabled (no schedule or recipients)")
		return nil, nil
	}

	loc, err := time.LoadLocation(d.Cfg.DigestTimezone)
	if err != nil {
		log.Warn("[CRON] Unknown digest timezone, using UTC", zap.String("timezone", d.Cfg.DigestTimezone))
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(d.Cfg.DigestSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		defer cancel()

		log.Info("[CRON] Running unbilled digest")
		if err := d.Send(ctx); err != nil {
			log.Error("[CRON] Unbilled digest failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid DIGEST_SCHEDULE %q: %w", d.Cfg.DigestSchedule, err)
	}

	c.Start()
	log.Info("[CRON] Scheduler started", zap.String("schedule", d.Cfg.DigestSchedule), zap.String("timezone", loc.String()))
	return c, nil
}

// Send builds the unbilled report over active cases, archives the report
// workbook and mails the summary to the configured recipients
func (d *Digest) Send(ctx context.Context) error {
	log := logger.FromContext(ctx)
	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}
	lang := d.Cfg.DefaultLanguage
	if !i18n.IsSupported(lang) {
		lang = i18n.DefaultLanguage()
	}
	ctx = i18n.WithLocale(ctx, lang)

	reports, err := services.BuildReports(d.DB.WithContext(ctx), services.ReportFilter{ActiveOnly: true})
	if err != nil {
		return fmt.Errorf("failed to build reports: %w", err)
	}
	log.Info("[JOB] Unbilled cases found", zap.Int("count", len(reports.UnbilledPerCase)))

	exportURL := ""
	if len(reports.UnbilledPerCase) > 0 && d.Storage != nil {
		workbook, err := services.ExportReportsWorkbook(ctx, reports)
		if err != nil {
			return fmt.Errorf("failed to export workbook: %w", err)
		}
		name := fmt.Sprintf("unbilled-%s.xlsx", now.Format(services.DateLayout))
		res, err := services.ArchiveExport(ctx, d.Storage, now, name, workbook)
		if err != nil {
			// archive failures do not block the mail
			log.Warn("[JOB] Failed to archive digest workbook", zap.Error(err))
		} else {
			exportURL = res.URL
			if exportURL == "" {
				if signed, err := d.Storage.GetSignedURL(ctx, res.Key, 7*24*time.Hour); err == nil {
					exportURL = signed
				}
			}
		}
	}

	email, err := services.BuildUnbilledDigestEmail(d.Cfg.DigestRecipients, reports.UnbilledPerCase, exportURL, lang, now)
	if err != nil {
		return fmt.Errorf("failed to build digest email: %w", err)
	}
	if err := d.Mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send digest email: %w", err)
	}

	log.Info("[JOB] Unbilled digest sent", zap.Strings("to", email.To))
	return nil
}
