package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/b5commerce/accounts-api/internal/api/middleware"
	"github.com/b5commerce/accounts-api/internal/core/domain"
	"github.com/b5commerce/accounts-api/internal/core/ports"
)

type stubUserService struct {
	createFn  func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	loginFn   func(ctx context.Context, username, password string) (string, error)
	profileFn func(ctx context.Context, userID string) (*domain.User, error)
	listFn    func(ctx context.Context) ([]*domain.User, error)
	getByIDFn func(ctx context.Context, userID string) (*domain.User, error)
	updateFn  func(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error)
	resetFn   func(ctx context.Context, userID, newPassword string) error
}

func (s *stubUserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubUserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.getByIDFn(ctx, userID)
}

func (s *stubUserService) UpdateUserByID(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, userID, input)
}

func (s *stubUserService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	return s.resetFn(ctx, userID, newPassword)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sampleUser() *domain.User {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:           "u1",
		FirstName:    "Jane",
		LastName:     "Doe",
		Role:         "cashier",
		Username:     "jane.doe",
		PasswordHash: "$2a$10$should-never-appear",
		IsAdmin:      false,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserHandler_CreateUser_Success(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			if input.Username != "jane.doe" || input.Password != "password1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return sampleUser(), nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/b5/users/create-user",
		`{"firstName":"Jane","lastName":"Doe","role":"cashier","username":"jane.doe","password":"password1"}`)

	if err := h.CreateUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("response must not contain a password field")
	}
	if user["username"] != "jane.doe" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if !strings.Contains(rec.Body.String(), "Created successfully") {
		t.Fatalf("missing creation message: %s", rec.Body.String())
	}
}

func TestUserHandler_CreateUser_Conflict(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/b5/users/create-user",
		`{"username":"jane.doe","password":"password1"}`)

	_ = h.CreateUser(c)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestUserHandler_CreateUser_Validation(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrInvalidUsername
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/b5/users/create-user",
		`{"username":"janedoe","password":"password1"}`)

	_ = h.CreateUser(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	stub := &stubUserService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "jane.doe" || password != "password1" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/b5/users/login",
		`{"username":"jane.doe","password":"password1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access"] != "token123" {
		t.Fatalf("expected access token in response, got %+v", resp)
	}
}

func TestUserHandler_Login_Failures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"bad format", domain.ErrInvalidUsername, http.StatusBadRequest},
		{"unknown user", domain.ErrUserNotFound, http.StatusNotFound},
		{"deactivated", domain.ErrAccountDeactivated, http.StatusForbidden},
		{"wrong password", domain.ErrInvalidCredentials, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubUserService{
				loginFn: func(ctx context.Context, username, password string) (string, error) {
					return "", tc.err
				},
			}
			h := NewUserHandler(stub)

			c, rec := newTestContext(t, http.MethodPost, "/b5/users/login",
				`{"username":"jane.doe","password":"whatever1"}`)

			_ = h.Login(c)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestUserHandler_GetProfile(t *testing.T) {
	stub := &stubUserService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return sampleUser(), nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/b5/users/profile", "")
	c.Set(middleware.CtxUserID, "u1")

	if err := h.GetProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("profile response must not mention password: %s", rec.Body.String())
	}
}

func TestUserHandler_GetProfile_MissingClaims(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, rec := newTestContext(t, http.MethodGet, "/b5/users/profile", "")

	if err := h.GetProfile(c); err != nil {
		c.Echo().HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUserHandler_GetProfile_Gone(t *testing.T) {
	stub := &stubUserService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/b5/users/profile", "")
	c.Set(middleware.CtxUserID, "u1")

	_ = h.GetProfile(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_GetAllUsers(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{sampleUser(), sampleUser()}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/b5/users/get-all-profile", "")

	if err := h.GetAllUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["count"] != float64(2) {
		t.Fatalf("expected count 2, got %v", resp["count"])
	}
}

func TestUserHandler_GetAllUsers_Empty(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/b5/users/get-all-profile", "")

	_ = h.GetAllUsers(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty collection, got %d", rec.Code)
	}
}

func TestUserHandler_GetUserByID(t *testing.T) {
	stub := &stubUserService{
		getByIDFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				return nil, domain.ErrUserNotFound
			}
			return sampleUser(), nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/b5/users/get-profile/u1", "")
	c.SetParamNames("userId")
	c.SetParamValues("u1")

	if err := h.GetUserByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_GetUserByID_Missing(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, rec := newTestContext(t, http.MethodGet, "/b5/users/get-profile/", "")

	_ = h.GetUserByID(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_GetUserByID_NotFound(t *testing.T) {
	stub := &stubUserService{
		getByIDFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/b5/users/get-profile/ghost", "")
	c.SetParamNames("userId")
	c.SetParamValues("ghost")

	_ = h.GetUserByID(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateUser(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
			// Omitted fields must arrive zeroed: the contract is full replace.
			if input.FirstName != "Janet" || input.LastName != "" || input.IsActive {
				t.Fatalf("unexpected input: %+v", input)
			}
			u := sampleUser()
			u.FirstName = "Janet"
			u.LastName = ""
			u.IsActive = false
			return u, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/b5/users/update-profile/u1", `{"firstName":"Janet"}`)
	c.SetParamNames("userId")
	c.SetParamValues("u1")

	if err := h.UpdateUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if _, present := user["isAdmin"]; present {
		t.Fatalf("update response must not expose the admin flag")
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("update response must not contain a password field")
	}
}

func TestUserHandler_UpdateUser_NotFound(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/b5/users/update-profile/ghost", `{"firstName":"Janet"}`)
	c.SetParamNames("userId")
	c.SetParamValues("ghost")

	_ = h.UpdateUser(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_ResetPassword_Success(t *testing.T) {
	stub := &stubUserService{
		resetFn: func(ctx context.Context, userID, newPassword string) error {
			if userID != "u1" || newPassword != "newpassword" {
				t.Fatalf("unexpected args: %s %s", userID, newPassword)
			}
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/b5/users/reset-password",
		`{"userId":"u1","newPassword":"newpassword"}`)

	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Password reset successfully") {
		t.Fatalf("missing reset message: %s", rec.Body.String())
	}
}

func TestUserHandler_ResetPassword_Validation(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		resetFn: func(ctx context.Context, userID, newPassword string) error {
			t.Fatalf("service should not be called")
			return nil
		},
	})

	cases := []struct {
		name string
		body string
	}{
		{"missing user id", `{"newPassword":"newpassword"}`},
		{"missing password", `{"userId":"u1"}`},
		{"short password", `{"userId":"u1","newPassword":"short"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPut, "/b5/users/reset-password", tc.body)
			_ = h.ResetPassword(c)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestUserHandler_ResetPassword_NotFound(t *testing.T) {
	stub := &stubUserService{
		resetFn: func(ctx context.Context, userID, newPassword string) error {
			return domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/b5/users/reset-password",
		`{"userId":"ghost","newPassword":"newpassword"}`)

	_ = h.ResetPassword(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
