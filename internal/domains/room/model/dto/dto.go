package dto

import (
	"github.com/google/uuid"

	"huddle/internal/domains/room/model"
	"huddle/shared/constant"
	gModel "huddle/shared/model"
	"huddle/shared/timezone"
)

type CreateRoomRequest struct {
	Name        string `json:"name"        validate:"omitempty,max=100"`
	Capacity    *int   `json:"capacity"    validate:"omitempty,gt=0"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	var description *string
	if c.Description != "" {
		description = &c.Description
	}

	return model.Room{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Capacity:    c.Capacity,
		Description: description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type RoomResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Capacity    *int   `json:"capacity,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Capacity = model.Capacity

	if model.Description != nil {
		r.Description = *model.Description
	}

	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

func RoomsFromModels(models []model.Room) []RoomResponse {
	rooms := make([]RoomResponse, len(models))
	for i, mod := range models {
		rooms[i].FromModel(mod)
	}

	return rooms
}
