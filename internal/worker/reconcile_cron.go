package worker

// reconcile_cron.go
// Background goroutine that periodically compares the cached stock counters
// against the replayed movement ledger, per salon. Drift is reported, never
// auto-corrected: the ledger is the source of truth and a silent fix would
// hide the bug that caused the divergence.

import (
	"context"
	"time"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/dto"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// StockReconciler is the slice of the stock service the cron needs.
// Declared here to keep the dependency pointing outward.
type StockReconciler interface {
	Reconcile(ctx context.Context, salonID uuid.UUID) (*dto.ReconcileResponse, error)
}

// ReconcileCronConfig holds all dependencies for the reconciliation goroutine.
type ReconcileCronConfig struct {
	Stock    StockReconciler
	Products repository.ProductRepository
	Interval time.Duration
}

// StartReconcileCron launches a background goroutine that ticks on the
// configured interval and sweeps every salon's stock ledger.
// It respects the context for graceful shutdown.
func StartReconcileCron(ctx context.Context, cfg ReconcileCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("reconcile_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reconcile_cron: shutting down")
				return
			case <-ticker.C:
				sweepSalons(ctx, cfg)
			}
		}
	}()
}

func sweepSalons(ctx context.Context, cfg ReconcileCronConfig) {
	salons, err := cfg.Products.DistinctSalons(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconcile_cron: failed to list salons")
		return
	}

	for _, salonID := range salons {
		select {
		case <-ctx.Done():
			return
		default:
		}

		report, err := cfg.Stock.Reconcile(ctx, salonID)
		if err != nil {
			log.Error().Err(err).Str("salon_id", salonID.String()).Msg("reconcile_cron: sweep failed")
			continue
		}
		if len(report.Mismatches) > 0 {
			log.Warn().
				Str("salon_id", salonID.String()).
				Int("mismatches", len(report.Mismatches)).
				Msg("reconcile_cron: stock drift detected")
		}
	}
}
