package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"huddle/shared/failure"
)

func TestFailure_Constructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "bad request from string",
			err:      failure.BadRequestFromString("Room name is required"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Room name is required",
		},
		{
			name:     "not found",
			err:      failure.NotFound("Room not found"),
			wantCode: http.StatusNotFound,
			wantMsg:  "Room not found",
		},
		{
			name:     "conflict",
			err:      failure.Conflict("Time slot is already booked"),
			wantCode: http.StatusConflict,
			wantMsg:  "Time slot is already booked",
		},
		{
			name:     "unauthorized",
			err:      failure.Unauthorized("Missing authorization header"),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Missing authorization header",
		},
		{
			name:     "internal error",
			err:      failure.InternalError(errors.New("boom")),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestGetCode_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain error")))
}

func TestGetCode_WrappedFailure(t *testing.T) {
	err := fmt.Errorf("creating booking: %w", failure.Conflict("Time slot is already booked"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestBadRequest_NilError(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}
