package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"huddle/config"
	"huddle/infras/otel/mocks"
	bookingMocks "huddle/internal/domains/booking/mocks"
	roomMocks "huddle/internal/domains/room/mocks"
	"huddle/internal/domains/room/model"
	"huddle/internal/domains/room/model/dto"
	"huddle/internal/domains/room/service"
	cacheMocks "huddle/shared/cache/mocks"
	"huddle/shared/constant"
	gDto "huddle/shared/dto"
	"huddle/shared/failure"
	gModel "huddle/shared/model"
	"huddle/shared/timezone"
)

func intPtr(v int) *int {
	return &v
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func(repo *roomMocks.MockRoom)
		wantCode  int
		wantMsg   string
	}{
		{
			name: "successful creation",
			req: dto.CreateRoomRequest{
				Name:        "Huddle Space",
				Capacity:    intPtr(4),
				Description: "Small room near the kitchen",
			},
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "name only",
			req:  dto.CreateRoomRequest{Name: "Bare Room"},
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "missing name",
			req:       dto.CreateRoomRequest{Capacity: intPtr(4)},
			setupMock: func(*roomMocks.MockRoom) {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Room name is required",
		},
		{
			name: "repository error",
			req:  dto.CreateRoomRequest{Name: "Huddle Space"},
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := roomMocks.NewMockRoom(ctrl)
			mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockOtel := mocks.NewOtel()

			cfg := &config.Config{}
			cfg.Cache.TTL = 3600

			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel)

			tt.setupMock(mockRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")

			res, err := svc.Create(ctx, tt.req)

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
			assert.Equal(t, tt.req.Name, res.Name)
			assert.Equal(t, tt.req.Capacity, res.Capacity)
			assert.NotEmpty(t, res.CreatedAt)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Room{
			{ID: "room-1", Name: "Conference Room A", Capacity: intPtr(8), Metadata: gModel.Metadata{CreatedAt: timezone.Now()}},
			{ID: "room-2", Name: "Meeting Room B", Capacity: intPtr(4), Metadata: gModel.Metadata{CreatedAt: timezone.Now()}},
		}, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, "Conference Room A", res[0].Name)
	})

	t.Run("repository error", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

		_, err := svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	t.Run("found", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), "room:get:room-1", gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "room-1", Name: "Conference Room A"}, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), "room-1")

		assert.NoError(t, err)
		assert.Equal(t, "Conference Room A", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), "room:get:missing", gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.EqualError(t, err, "Room not found")
	})
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *roomMocks.MockRoom, bookingRepo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache)
		wantCode  int
		wantMsg   string
	}{
		{
			name: "successful delete",
			setupMock: func(repo *roomMocks.MockRoom, bookingRepo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				bookingRepo.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).Return(int64(0), nil)
				bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
		},
		{
			name: "room with active bookings",
			setupMock: func(repo *roomMocks.MockRoom, bookingRepo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				bookingRepo.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).Return(int64(0), nil)
				bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Cannot delete room with active bookings",
		},
		{
			name: "expired bookings are swept before the reference check",
			setupMock: func(repo *roomMocks.MockRoom, bookingRepo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				bookingRepo.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).Return(int64(3), nil)
				cache.EXPECT().Clear(gomock.Any(), "booking:gets:*").Return(nil)
				bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
		},
		{
			name: "unknown room",
			setupMock: func(repo *roomMocks.MockRoom, bookingRepo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				bookingRepo.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).Return(int64(0), nil)
				bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantCode: http.StatusNotFound,
			wantMsg:  "Room not found",
		},
		{
			name: "reference check error",
			setupMock: func(repo *roomMocks.MockRoom, bookingRepo *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				bookingRepo.EXPECT().PurgeExpired(gomock.Any(), gomock.Any()).Return(int64(0), nil)
				bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := roomMocks.NewMockRoom(ctrl)
			mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockOtel := mocks.NewOtel()

			cfg := &config.Config{}
			cfg.Cache.TTL = 3600
			cfg.Booking.RetentionDays = 30

			mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			mockCache.EXPECT().Clear(gomock.Any(), "room:gets:*").Return(nil).AnyTimes()

			svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel)

			tt.setupMock(mockRepo, mockBookingRepo, mockCache)

			err := svc.Delete(context.Background(), "room-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}
