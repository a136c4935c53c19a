package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"huddle/config"
	"huddle/infras/otel/mocks"
	"huddle/infras/postgres"
	bookingMocks "huddle/internal/domains/booking/mocks"
	"huddle/internal/domains/booking/model"
	"huddle/internal/domains/booking/model/dto"
	"huddle/internal/domains/booking/service"
	roomMocks "huddle/internal/domains/room/mocks"
	roomModel "huddle/internal/domains/room/model"
	cacheMocks "huddle/shared/cache/mocks"
	"huddle/shared/constant"
	gDto "huddle/shared/dto"
	"huddle/shared/failure"
	gModel "huddle/shared/model"
	"huddle/shared/timezone"
)

func newTestConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")

	return &postgres.Connection{Read: db, Write: db}, mock
}

func validCreateRequest() dto.CreateBookingRequest {
	start := timezone.Now().Add(24 * time.Hour).Truncate(time.Second)

	return dto.CreateBookingRequest{
		RoomID:   "room-1",
		Title:    "Sprint planning",
		Start:    start.Format(constant.DateFormat),
		End:      start.Add(time.Hour).Format(constant.DateFormat),
		BookedBy: "alice@example.com",
	}
}

func TestBookingService_Create(t *testing.T) {
	lockedRoom := roomModel.Room{ID: "room-1", Name: "Conference Room A"}

	tests := []struct {
		name      string
		req       func() dto.CreateBookingRequest
		setupMock func(mock sqlmock.Sqlmock, repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom)
		wantCode  int
		wantMsg   string
	}{
		{
			name: "successful booking",
			req:  validCreateRequest,
			setupMock: func(mock sqlmock.Sqlmock, repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {
				mock.ExpectBegin()
				roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "room-1").Return(lockedRoom, nil)
				repo.EXPECT().GetAllForRoomTx(gomock.Any(), gomock.Any(), "room-1").Return(nil, nil)
				repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mock.ExpectCommit()
			},
		},
		{
			name: "missing required fields",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.BookedBy = ""

				return req
			},
			setupMock: func(sqlmock.Sqlmock, *bookingMocks.MockBooking, *roomMocks.MockRoom) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Missing required fields: roomId, roomName, title, start, end, bookedBy",
		},
		{
			name: "end before start",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.Start, req.End = req.End, req.Start

				return req
			},
			setupMock: func(sqlmock.Sqlmock, *bookingMocks.MockBooking, *roomMocks.MockRoom) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Start time must be before end time",
		},
		{
			name: "start equals end",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.End = req.Start

				return req
			},
			setupMock: func(sqlmock.Sqlmock, *bookingMocks.MockBooking, *roomMocks.MockRoom) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Start time must be before end time",
		},
		{
			name: "unparseable timestamps",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.Start = "tomorrow at nine"

				return req
			},
			setupMock: func(sqlmock.Sqlmock, *bookingMocks.MockBooking, *roomMocks.MockRoom) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Start time must be before end time",
		},
		{
			name: "booking in the past",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				start := timezone.Now().Add(-48 * time.Hour)
				req.Start = start.Format(constant.DateFormat)
				req.End = start.Add(time.Hour).Format(constant.DateFormat)

				return req
			},
			setupMock: func(sqlmock.Sqlmock, *bookingMocks.MockBooking, *roomMocks.MockRoom) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Cannot book in the past",
		},
		{
			name: "room does not exist",
			req:  validCreateRequest,
			setupMock: func(mock sqlmock.Sqlmock, repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {
				mock.ExpectBegin()
				roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "room-1").Return(roomModel.Room{}, nil)
				mock.ExpectRollback()
			},
			wantCode: http.StatusNotFound,
			wantMsg:  "Room not found",
		},
		{
			name: "overlapping booking on the same room",
			req:  validCreateRequest,
			setupMock: func(mock sqlmock.Sqlmock, repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {
				mock.ExpectBegin()
				roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "room-1").Return(lockedRoom, nil)
				repo.EXPECT().GetAllForRoomTx(gomock.Any(), gomock.Any(), "room-1").Return([]model.Booking{
					{
						ID:      "b1",
						RoomID:  "room-1",
						StartAt: timezone.Now().Add(23 * time.Hour),
						EndAt:   timezone.Now().Add(26 * time.Hour),
					},
				}, nil)
				mock.ExpectRollback()
			},
			wantCode: http.StatusConflict,
			wantMsg:  "Time slot is already booked",
		},
		{
			name: "insert failure",
			req:  validCreateRequest,
			setupMock: func(mock sqlmock.Sqlmock, repo *bookingMocks.MockBooking, roomRepo *roomMocks.MockRoom) {
				mock.ExpectBegin()
				roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "room-1").Return(lockedRoom, nil)
				repo.EXPECT().GetAllForRoomTx(gomock.Any(), gomock.Any(), "room-1").Return(nil, nil)
				repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				mock.ExpectRollback()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := bookingMocks.NewMockBooking(ctrl)
			mockRoomRepo := roomMocks.NewMockRoom(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockOtel := mocks.NewOtel()

			conn, mock := newTestConnection(t)

			cfg := &config.Config{}
			cfg.Cache.TTL = 3600
			cfg.Booking.RetentionDays = 30

			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			svc := service.New(mockRepo, mockRoomRepo, conn, cfg, mockCache, mockOtel)

			tt.setupMock(mock, mockRepo, mockRoomRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			req := tt.req()

			res, err := svc.Create(ctx, req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, req.RoomID, res.RoomID)
			assert.Equal(t, "Conference Room A", res.RoomName)
			assert.Equal(t, req.Title, res.Title)
			assert.Equal(t, req.Start, res.Start)
			assert.Equal(t, req.End, res.End)
			assert.Equal(t, req.BookedBy, res.BookedBy)
		})
	}
}

func TestBookingService_Create_IgnoresClientRoomName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	conn, mock := newTestConnection(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockRoomRepo, conn, cfg, mockCache, mockOtel)

	mock.ExpectBegin()
	mockRoomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "room-1").
		Return(roomModel.Room{ID: "room-1", Name: "Board Room"}, nil)
	mockRepo.EXPECT().GetAllForRoomTx(gomock.Any(), gomock.Any(), "room-1").Return(nil, nil)
	mockRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	mock.ExpectCommit()

	req := validCreateRequest()
	req.RoomName = "Spoofed Name"

	res, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Board Room", res.RoomName)
}

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	conn, _ := newTestConnection(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.RetentionDays = 30

	svc := service.New(mockRepo, mockRoomRepo, conn, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "cache miss falls through to the repository",
			setupMock: func() {
				mockRepo.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).Return(int64(0), nil)
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{
					{
						ID:       "b1",
						RoomID:   "room-1",
						RoomName: "Conference Room A",
						Title:    "Standup",
						StartAt:  timezone.Now().Add(time.Hour),
						EndAt:    timezone.Now().Add(2 * time.Hour),
						BookedBy: "alice@example.com",
						Metadata: gModel.Metadata{CreatedAt: timezone.Now()},
					},
				}, nil)
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()
			},
			wantLen: 1,
		},
		{
			name: "purge removes stale rows and clears the listing cache",
			setupMock: func() {
				mockRepo.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).Return(int64(2), nil)
				mockCache.EXPECT().Clear(gomock.Any(), "booking:gets:*").Return(nil)
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()
			},
			wantLen: 0,
		},
		{
			name: "purge failure aborts the read",
			setupMock: func() {
				mockRepo.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).Return(int64(0), nil)
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res, tt.wantLen)
		})
	}
}

func TestBookingService_GetAll_PurgeCutoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	conn, _ := newTestConnection(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.RetentionDays = 30

	svc := service.New(mockRepo, mockRoomRepo, conn, cfg, mockCache, mockOtel)

	var cutoff time.Time

	mockRepo.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, before time.Time) (int64, error) {
			cutoff = before

			return 0, nil
		})
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

	_, err := svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)

	want := timezone.Now().AddDate(0, 0, -30)
	assert.WithinDuration(t, want, cutoff, time.Minute)
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	conn, _ := newTestConnection(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, conn, cfg, mockCache, mockOtel)

	t.Run("found", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), "booking:get:b1", gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b1", Title: "Standup"}, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), "b1")

		assert.NoError(t, err)
		assert.Equal(t, "b1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), "booking:get:missing", gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.EqualError(t, err, "Booking not found")
	})
}

func TestBookingService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	conn, _ := newTestConnection(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockRoomRepo, conn, cfg, mockCache, mockOtel)

	t.Run("successful delete", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)

		assert.NoError(t, svc.Delete(context.Background(), "b1"))
	})

	t.Run("unknown booking", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil)

		err := svc.Delete(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.EqualError(t, err, "Booking not found")
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))

		assert.Error(t, svc.Delete(context.Background(), "b1"))
	})
}

func TestBookingService_GetAll_DefaultSort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	conn, _ := newTestConnection(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.RetentionDays = 30

	svc := service.New(mockRepo, mockRoomRepo, conn, cfg, mockCache, mockOtel)

	var params gDto.QueryParams

	mockRepo.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			params = p

			return nil, nil
		})
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

	_, err := svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)

	assert.Equal(t, model.FieldStartAt, params.SortBy)
	assert.Equal(t, gDto.SortDirAsc, params.SortDir)
}

// TestBookingService_Lifecycle walks one slot through its whole life: booked,
// defended against an overlap, shared back-to-back, freed, and booked again.
func TestBookingService_Lifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	conn, mock := newTestConnection(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockRoomRepo, conn, cfg, mockCache, mockOtel)

	var existing []model.Booking

	mockRoomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "room-1").
		Return(roomModel.Room{ID: "room-1", Name: "Conference Room A"}, nil).AnyTimes()
	mockRepo.EXPECT().GetAllForRoomTx(gomock.Any(), gomock.Any(), "room-1").
		DoAndReturn(func(context.Context, *sqlx.Tx, string) ([]model.Booking, error) {
			return append([]model.Booking(nil), existing...), nil
		}).AnyTimes()
	mockRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
			existing = append(existing, booking)

			return nil
		}).AnyTimes()

	day := timezone.Now().Add(24 * time.Hour).Truncate(time.Hour)
	slot := func(title string, startOffset, endOffset time.Duration) dto.CreateBookingRequest {
		return dto.CreateBookingRequest{
			RoomID:   "room-1",
			Title:    title,
			Start:    day.Add(startOffset).Format(constant.DateFormat),
			End:      day.Add(endOffset).Format(constant.DateFormat),
			BookedBy: "alice@example.com",
		}
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	first, err := svc.Create(context.Background(), slot("Standup", 0, time.Hour))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = svc.Create(context.Background(), slot("Overlap", 30*time.Minute, 90*time.Minute))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.EqualError(t, err, "Time slot is already booked")

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err = svc.Create(context.Background(), slot("Back to back", time.Hour, 2*time.Hour))
	require.NoError(t, err)

	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, gDto.FilterGroup) (int64, error) {
			kept := existing[:0]
			for _, booking := range existing {
				if booking.ID != first.ID {
					kept = append(kept, booking)
				}
			}
			existing = kept

			return 1, nil
		})

	require.NoError(t, svc.Delete(context.Background(), first.ID))

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err = svc.Create(context.Background(), slot("Reclaimed", 30*time.Minute, 90*time.Minute))
	require.NoError(t, err)
}
