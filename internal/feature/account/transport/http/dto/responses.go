package dto

import "account_backend/internal/feature/account/domain/entity"

// MessageRes is a generic confirmation payload.
type MessageRes struct {
	Message string `json:"message"`
}

// ErrorRes carries a single failure message.
type ErrorRes struct {
	Error string `json:"error"`
}

// ValidationErrorRes carries the distinct messages of failed field rules.
type ValidationErrorRes struct {
	Error []string `json:"error"`
}

// RegisterRes is the response for a successful registration.
type RegisterRes struct {
	Message string  `json:"message"`
	User    UserRes `json:"user"`
}

// LoginRes is the response for a successful login.
type LoginRes struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// UserRes is the profile view of a single user. Credential material is never
// part of a response.
type UserRes struct {
	ID             string  `json:"id"`
	Fullname       string  `json:"fullname"`
	Email          string  `json:"email"`
	Mobile         string  `json:"mobile"`
	ProfilePicture *string `json:"profile_picture"`
}

// NewUserRes builds the profile view of a user record.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:             u.ID,
		Fullname:       u.Fullname,
		Email:          u.Email,
		Mobile:         u.Mobile,
		ProfilePicture: u.ProfilePicture,
	}
}

// UserSummary is the listing view of a user: no id, no picture reference.
type UserSummary struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

// UsersRes is the response for the user listing.
type UsersRes struct {
	Users []UserSummary `json:"users"`
}

// NewUsersRes builds the listing view of user records.
func NewUsersRes(users []entity.User) UsersRes {
	out := UsersRes{Users: make([]UserSummary, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, UserSummary{
			Fullname: u.Fullname,
			Email:    u.Email,
			Mobile:   u.Mobile,
		})
	}
	return out
}
