package retention_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"huddle/config"
	"huddle/infras/otel/mocks"
	serviceMocks "huddle/internal/domains/booking/service/mocks"
	"huddle/internal/workers/retention"
)

func TestWorker_Run_SweepsOnStartup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := serviceMocks.NewMockBooking(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Booking.SweepIntervalHours = 24

	ctx, cancel := context.WithCancel(context.Background())

	mockService.EXPECT().PurgeExpired(gomock.Any()).
		DoAndReturn(func(context.Context) (int64, error) {
			cancel()

			return int64(3), nil
		})

	worker := retention.New(mockService, cfg, mockOtel)

	// cancel fires during the startup sweep, so Run returns without
	// waiting for a tick
	worker.Run(ctx)
}

func TestWorker_Run_SurvivesSweepFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := serviceMocks.NewMockBooking(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Booking.SweepIntervalHours = 24

	ctx, cancel := context.WithCancel(context.Background())

	mockService.EXPECT().PurgeExpired(gomock.Any()).
		DoAndReturn(func(context.Context) (int64, error) {
			cancel()

			return 0, errors.New("database error")
		})

	worker := retention.New(mockService, cfg, mockOtel)

	worker.Run(ctx)
}
