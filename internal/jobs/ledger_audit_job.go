package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// LedgerAuditJob periodically verifies the stock ledger invariant: for every
// product, initial_stock plus the sum of its movement deltas must equal the
// current stock. A divergence means a write bypassed the movement trail and
// is logged for operator attention; the job never mutates data.
type LedgerAuditJob struct {
	db       *gorm.DB
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

type ledgerDivergence struct {
	ID           string
	Name         string
	Stock        int
	InitialStock int
	DeltaSum     int
}

// NewLedgerAuditJob creates the audit job. The schedule is a standard cron
// expression, e.g. "@hourly".
func NewLedgerAuditJob(db *gorm.DB, schedule string, logger *slog.Logger) *LedgerAuditJob {
	return &LedgerAuditJob{
		db:       db,
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger.With("component", "ledger_audit_job"),
	}
}

// Start schedules the audit and runs it on the configured cadence.
func (j *LedgerAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Ledger audit failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ledger audit job started", "schedule", j.schedule)
	return nil
}

// Stop stops the audit job.
func (j *LedgerAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Ledger audit job stopped")
}

// Run executes one audit pass and logs every product whose ledger does not
// reconcile.
func (j *LedgerAuditJob) Run(ctx context.Context) error {
	var divergences []ledgerDivergence

	err := j.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.name,
			p.stock,
			p.initial_stock,
			COALESCE(SUM(m.quantity_delta), 0) AS delta_sum
		FROM products p
		LEFT JOIN stock_movements m ON m.product_id = p.id
		GROUP BY p.id, p.name, p.stock, p.initial_stock
		HAVING p.initial_stock + COALESCE(SUM(m.quantity_delta), 0) <> p.stock
	`).Scan(&divergences).Error
	if err != nil {
		return err
	}

	for _, d := range divergences {
		j.logger.ErrorContext(ctx, "Stock ledger divergence detected",
			"product_id", d.ID,
			"product_name", d.Name,
			"stock", d.Stock,
			"initial_stock", d.InitialStock,
			"movement_delta_sum", d.DeltaSum,
			"expected_stock", d.InitialStock+d.DeltaSum,
		)
	}

	if len(divergences) == 0 {
		j.logger.InfoContext(ctx, "Ledger audit passed, all products reconcile")
	}
	return nil
}
