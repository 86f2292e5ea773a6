package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// updateProfileRequest is bound with full-replace semantics: any field the
// caller omits decodes to its zero value and is written as-is. Notably,
// leaving out isActive deactivates the account.
type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Username  string `json:"username"`
	IsActive  bool   `json:"isActive"`
}

type resetPasswordRequest struct {
	UserID      string `json:"userId"      validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// --- Response types ---
// These are explicit allow-list projections owned by the transport layer: the
// password hash has no field here, so it can never leak into a response.

type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// updatedUserResponse additionally omits the admin flag, which the update
// operation never touches.
type updatedUserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type createUserResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Access string `json:"access"`
}

type profileResponse struct {
	User userResponse `json:"user"`
}

type listUsersResponse struct {
	Message string         `json:"message"`
	Count   int            `json:"count"`
	Users   []userResponse `json:"users"`
}

type getUserResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type updateUserResponse struct {
	Message string              `json:"message"`
	User    updatedUserResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
