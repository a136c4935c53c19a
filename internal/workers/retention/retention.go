package retention

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"huddle/config"
	"huddle/infras/otel"
	"huddle/internal/domains/booking/service"
	"huddle/shared/constant"
)

// Worker sweeps expired bookings in the background. The read path already
// purges on demand; this keeps the table bounded even when nobody lists
// bookings for a while.
type Worker struct {
	service service.Booking
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Booking, cfg *config.Config, otel otel.Otel) *Worker {
	return &Worker{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

// Run sweeps once at startup, then on every tick until the context is
// cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.sweep(ctx)

	interval := time.Duration(w.cfg.Booking.SweepIntervalHours) * time.Hour

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("booking retention worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("booking retention worker stopped")

			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".retention.sweep")
	defer scope.End()

	purged, err := w.service.PurgeExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("retention sweep failed")
		scope.TraceError(err)

		return
	}

	if purged > 0 {
		log.Info().Int64("purged", purged).Msg("retention sweep removed expired bookings")
	}
}
