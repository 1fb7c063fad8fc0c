package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/handler"
	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/microservices/http-api/service"
	"cineforo/internal/microservices/http-api/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupUserRouter(mockService *MockUserService, role string) http.Handler {
	r := newTestRouter(asUser(testUserID, role))
	handler.NewUserHandler(mockService).RegisterRoutes(r.Group("/api/users"))
	handler.NewReferenceHandler().RegisterRoutes(r.Group("/api"))
	return r
}

func TestMe(t *testing.T) {
	mockService := new(MockUserService)
	mockService.On("GetProfile", mock.Anything, testUserID).Return(&dto.UserResponse{ID: testUserID, Name: "Juan"}, nil)

	w := doJSON(setupUserRouter(mockService, models.RoleUser), http.MethodGet, "/api/users/me", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Juan", decode[dto.UserResponse](w).Name)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	mockService := new(MockUserService)
	req := dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "secret2", PasswordConfirmation: "secret2"}
	mockService.On("ChangePassword", mock.Anything, testUserID, req).Return(service.ErrWrongPassword)

	w := doJSON(setupUserRouter(mockService, models.RoleUser), http.MethodPut, "/api/users/me/password", req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadAvatar(t *testing.T) {
	newRequest := func(t *testing.T, field string) *http.Request {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile(field, "me.png")
		require.NoError(t, err)
		_, _ = part.Write([]byte("not really a png"))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/users/me/avatar", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return req
	}

	t.Run("InvalidImage", func(t *testing.T) {
		mockService := new(MockUserService)
		mockService.On("UploadAvatar", mock.Anything, testUserID, mock.Anything).Return(nil, service.ErrInvalidImage)

		w := httptest.NewRecorder()
		setupUserRouter(mockService, models.RoleUser).ServeHTTP(w, newRequest(t, "avatar"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("TooLarge", func(t *testing.T) {
		mockService := new(MockUserService)
		mockService.On("UploadAvatar", mock.Anything, testUserID, mock.Anything).Return(nil, service.ErrImageTooLarge)

		w := httptest.NewRecorder()
		setupUserRouter(mockService, models.RoleUser).ServeHTTP(w, newRequest(t, "avatar"))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("MissingFile", func(t *testing.T) {
		mockService := new(MockUserService)

		w := httptest.NewRecorder()
		setupUserRouter(mockService, models.RoleUser).ServeHTTP(w, newRequest(t, "picture"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "UploadAvatar", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSetRole(t *testing.T) {
	target := "44444444-4444-4444-4444-444444444444"

	t.Run("ModeratorOnly", func(t *testing.T) {
		mockService := new(MockUserService)

		w := doJSON(setupUserRouter(mockService, models.RoleUser), http.MethodPut, "/api/users/"+target+"/role",
			dto.UpdateRoleRequest{Role: models.RoleModerator})

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Promote", func(t *testing.T) {
		mockService := new(MockUserService)
		mockService.On("SetRole", mock.Anything, target, models.RoleModerator).
			Return(&dto.UserResponse{ID: target, Role: models.RoleModerator}, nil)

		w := doJSON(setupUserRouter(mockService, models.RoleModerator), http.MethodPut, "/api/users/"+target+"/role",
			dto.UpdateRoleRequest{Role: models.RoleModerator})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.RoleModerator, decode[dto.UserResponse](w).Role)
	})
}

func TestReferenceLists(t *testing.T) {
	r := setupUserRouter(new(MockUserService), models.RoleUser)

	w := doJSON(r, http.MethodGet, "/api/genres", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, validation.Genres, decode[dto.ReferenceListResponse](w).Data)

	w = doJSON(r, http.MethodGet, "/api/categories", nil)
	assert.Equal(t, validation.Categories, decode[dto.ReferenceListResponse](w).Data)
}
