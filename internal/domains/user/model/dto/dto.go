package dto

import (
	"huddle/internal/domains/user/model"
	"huddle/shared/constant"
	"huddle/shared/timezone"
)

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Level     string `json:"level"`
	FullName  string `json:"fullName,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func (u *UserResponse) FromModel(model model.User) {
	u.ID = model.ID
	u.Email = model.Email
	u.Level = model.Level

	if model.FullName != nil {
		u.FullName = *model.FullName
	}

	if model.LastLogin != nil {
		u.LastLogin = timezone.Format(*model.LastLogin, constant.DateFormat)
	}

	u.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}
