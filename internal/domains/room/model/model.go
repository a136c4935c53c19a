package model

import "huddle/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldCapacity    = "capacity"
	FieldDescription = "description"
)

type Room struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Capacity    *int    `db:"capacity"`
	Description *string `db:"description"`
	model.Metadata
}
