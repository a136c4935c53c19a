package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"huddle/config"
	"huddle/infras/otel"
	"huddle/infras/postgres"
	"huddle/internal/domains/booking/availability"
	"huddle/internal/domains/booking/model"
	"huddle/internal/domains/booking/model/dto"
	"huddle/internal/domains/booking/repository"
	roomRepo "huddle/internal/domains/room/repository"
	"huddle/shared"
	"huddle/shared/cache"
	"huddle/shared/constant"
	gDto "huddle/shared/dto"
	"huddle/shared/failure"
	"huddle/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
)

const (
	msgMissingFields   = "Missing required fields: roomId, roomName, title, start, end, bookedBy"
	msgStartBeforeEnd  = "Start time must be before end time"
	msgBookingInPast   = "Cannot book in the past"
	msgRoomNotFound    = "Room not found"
	msgSlotBooked      = "Time slot is already booked"
	msgBookingNotFound = "Booking not found"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) ([]dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	db       *postgres.Connection
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Booking, roomRepo roomRepo.Room, db *postgres.Connection, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		db:       db,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Create validates the request, then checks availability and inserts inside
// a transaction holding the room's row lock. The lock serializes concurrent
// bookings on the same room, so two callers cannot both observe the slot as
// free and both get accepted.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if !req.HasRequiredFields() {
		return res, failure.BadRequestFromString(msgMissingFields) // nolint:wrapcheck
	}

	start, errStart := time.Parse(constant.DateFormat, req.Start)
	end, errEnd := time.Parse(constant.DateFormat, req.End)

	if errStart != nil || errEnd != nil || !start.Before(end) {
		return res, failure.BadRequestFromString(msgStartBeforeEnd) // nolint:wrapcheck
	}

	if start.Before(timezone.Now()) {
		return res, failure.BadRequestFromString(msgBookingInPast) // nolint:wrapcheck
	}

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin booking transaction")

		return res, fmt.Errorf("failed to begin booking transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	room, err := s.roomRepo.GetForUpdateTx(ctx, tx, req.RoomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to lock room for booking")

		return res, fmt.Errorf("failed to lock room for booking: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	}

	existing, err := s.repo.GetAllForRoomTx(ctx, tx, req.RoomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load bookings for availability check")

		return res, fmt.Errorf("failed to load bookings for availability check: %w", err)
	}

	if !availability.Available(req.RoomID, start, end, existing, constant.Empty) {
		return res, failure.Conflict(msgSlotBooked) // nolint:wrapcheck
	}

	booking := req.ToModel(user, room.Name, start, end)

	if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit booking transaction")

		return res, fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Reading the collection sweeps expired bookings first, so listings
	// never surface records past the retention window.
	if _, err = s.PurgeExpired(ctx); err != nil {
		log.Error().Err(err).Msg("failed to purge expired bookings on read")

		return res, fmt.Errorf("failed to purge expired bookings: %w", err)
	}

	// Listings come back in chronological order unless the caller asked
	// for something else.
	if req.SortBy == constant.Empty {
		req.SortBy = model.FieldStartAt
		req.SortDir = gDto.SortDirAsc
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res = dto.BookingsFromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()

	return nil
}

// PurgeExpired drops bookings that started before the retention cutoff and
// invalidates booking caches when anything was removed. Callers are the
// read path, the retention worker and process startup.
func (s *serviceImpl) PurgeExpired(ctx context.Context) (purged int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PurgeExpired")
	defer scope.End()
	defer scope.TraceIfError(err)

	cutoff := timezone.Now().AddDate(0, 0, -s.cfg.Booking.RetentionDays)

	purged, err = s.repo.PurgeExpired(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("failed to purge expired bookings")

		return 0, fmt.Errorf("failed to purge expired bookings: %w", err)
	}

	if purged > 0 {
		log.Info().Int64("purged", purged).Time("cutoff", cutoff).Msg("cleaned up old bookings")

		shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	}

	return purged, nil
}
