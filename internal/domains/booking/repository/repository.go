package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"huddle/infras/otel"
	"huddle/infras/postgres"
	"huddle/internal/domains/booking/model"
	"huddle/shared/constant"
	gDto "huddle/shared/dto"
	"huddle/shared/logger"
	gRepo "huddle/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetAllForRoomTx(ctx context.Context, tx *sqlx.Tx, roomID string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetAllForRoomTx loads the room's bookings inside the given transaction,
// after the caller has taken the room row lock.
func (repo *repositoryImpl) GetAllForRoomTx(ctx context.Context, tx *sqlx.Tx, roomID string) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetAllForRoomTx")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT id, room_id, room_name, title, description, start_at, end_at, booked_by, booked_for, created_at, modified_at, created_by, modified_by FROM %s WHERE %s = $1",
		model.TableName,
		model.FieldRoomID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var bookings []model.Booking

	if err := tx.SelectContext(ctx, &bookings, query, roomID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get bookings for room: %w", err)
	}

	return bookings, nil
}

// PurgeExpired removes bookings whose start is older than the given cutoff
// and reports how many rows went away. This is the retention sweep.
func (repo *repositoryImpl) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.PurgeExpired")
	defer scope.End()

	query := fmt.Sprintf("DELETE FROM %s WHERE %s < $1", model.TableName, model.FieldStartAt)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, before)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to purge expired bookings: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}
