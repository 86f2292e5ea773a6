package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/b5commerce/accounts-api/internal/api/metrics"
	"github.com/b5commerce/accounts-api/internal/core/domain"
	"github.com/b5commerce/accounts-api/internal/core/ports"
)

// UserHandler handles HTTP requests for account operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUser handles POST /b5/users/create-user (admin only).
//
// @Summary      Create a new user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New account details"
// @Success      201   {object}  createUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /b5/users/create-user [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Username:  req.Username,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidUsername), errors.Is(err, domain.ErrPasswordTooShort):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createUserResponse{
		Message: "Created successfully",
		User:    toUserResponse(user),
	})
}

// Login handles POST /b5/users/login (public).
//
// @Summary      Authenticate and obtain an access token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /b5/users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	token, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		switch {
		case errors.Is(err, domain.ErrInvalidUsername):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid username format"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "no username found"})
		case errors.Is(err, domain.ErrAccountDeactivated):
			return c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Access: token})
}

// GetProfile handles GET /b5/users/profile (authenticated).
//
// @Summary      Get the caller's own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /b5/users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{User: toUserResponse(user)})
}

// GetAllUsers handles GET /b5/users/get-all-profile (admin only).
//
// @Summary      List every user account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /b5/users/get-all-profile [get]
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no users found"})
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Message: "All user profiles retrieved successfully",
		Count:   len(users),
		Users:   toUserResponses(users),
	})
}

// GetUserByID handles GET /b5/users/get-profile/:userId (admin only).
//
// @Summary      Get a user profile by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  getUserResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /b5/users/get-profile/{userId} [get]
func (h *UserHandler) GetUserByID(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "user id is required"})
	}

	user, err := h.service.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, getUserResponse{
		Message: "User profile retrieved successfully",
		User:    toUserResponse(user),
	})
}

// UpdateUser handles PUT /b5/users/update-profile/:userId (admin only).
//
// The update is a full replace of the mutable profile fields: values the
// caller omits are cleared, not preserved.
//
// @Summary      Replace a user's profile fields
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string                true  "User id"
// @Param        body    body      updateProfileRequest  true  "Full profile replacement"
// @Success      200     {object}  updateUserResponse
// @Failure      404     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /b5/users/update-profile/{userId} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "user id is required"})
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	user, err := h.service.UpdateUserByID(c.Request().Context(), userID, ports.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Username:  req.Username,
		IsActive:  req.IsActive,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, updateUserResponse{
		Message: "User updated successfully",
		User:    toUpdatedUserResponse(user),
	})
}

// ResetPassword handles PUT /b5/users/reset-password (admin only).
//
// @Summary      Reset a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resetPasswordRequest  true  "Target user and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /b5/users/reset-password [put]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	err := h.service.ResetPassword(c.Request().Context(), req.UserID, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordTooShort):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.PasswordResetsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Password reset successfully"})
}
