// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The VidTube Authors

package http

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/accounts/internal/service"
	"github.com/vidtube/accounts/internal/store"
	"github.com/vidtube/accounts/models"
)

// buildRegisterForm assembles a multipart registration body.
func buildRegisterForm(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile(name, name+".png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestRegister_Success(t *testing.T) {
	var gotRequest models.RegisterRequest
	handler := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			registerFn: func(_ context.Context, request models.RegisterRequest) (models.PublicUser, error) {
				gotRequest = request
				return models.PublicUser{UserID: "user-1", UserName: "alice"}, nil
			},
		},
	})
	router := handler.Init()

	body, contentType := buildRegisterForm(t,
		map[string]string{
			"fullName": "Alice Anderson",
			"email":    "alice@example.com",
			"userName": "alice",
			"password": "s3cret",
		},
		map[string][]byte{
			"avatar":     []byte("fake-avatar-bytes"),
			"coverImage": []byte("fake-cover-bytes"),
		},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	assert.Equal(t, http.StatusCreated, envelope.StatusCode)

	assert.Equal(t, "Alice Anderson", gotRequest.FullName)
	assert.Equal(t, "alice", gotRequest.UserName)
	assert.NotEmpty(t, gotRequest.AvatarLocalPath, "avatar file must be staged to a local path")
	assert.NotEmpty(t, gotRequest.CoverImageLocalPath)
}

func TestRegister_WithoutCoverImage(t *testing.T) {
	handler := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			registerFn: func(_ context.Context, request models.RegisterRequest) (models.PublicUser, error) {
				assert.Empty(t, request.CoverImageLocalPath)
				return models.PublicUser{UserID: "user-1"}, nil
			},
		},
	})
	router := handler.Init()

	body, contentType := buildRegisterForm(t,
		map[string]string{"fullName": "Alice", "email": "a@b.c", "userName": "alice", "password": "pw"},
		map[string][]byte{"avatar": []byte("fake-avatar-bytes")},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegister_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"missing fields", service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"duplicate identity", store.ErrUserAlreadyExists, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, &service.Services{
				AuthService: &mockAuthService{
					registerFn: func(context.Context, models.RegisterRequest) (models.PublicUser, error) {
						return models.PublicUser{}, tt.serviceErr
					},
				},
			})
			router := handler.Init()

			body, contentType := buildRegisterForm(t,
				map[string]string{"userName": "alice"},
				map[string][]byte{"avatar": []byte("x")},
			)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			envelope := decodeEnvelope(t, rec)
			assert.False(t, envelope.Success)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	handler := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			loginFn: func(_ context.Context, request models.LoginRequest) (models.PublicUser, models.TokenPair, error) {
				assert.Equal(t, "alice", request.UserName)
				assert.Equal(t, "s3cret", request.Password)
				return models.PublicUser{UserID: "user-1", UserName: "alice"},
					models.TokenPair{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"},
					nil
			},
		},
	})
	router := handler.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		strings.NewReader(`{"userName":"alice","password":"s3cret"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	accessCookie := cookieByName(rec, accessTokenCookie)
	require.NotNil(t, accessCookie)
	assert.Equal(t, "access-jwt", accessCookie.Value)
	assert.True(t, accessCookie.HttpOnly)

	refreshCookie := cookieByName(rec, refreshTokenCookie)
	require.NotNil(t, refreshCookie)
	assert.Equal(t, "refresh-jwt", refreshCookie.Value)

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "access-jwt", data["accessToken"])
	assert.Equal(t, "refresh-jwt", data["refreshToken"])
}

func TestLogin_Unauthorized(t *testing.T) {
	handler := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			loginFn: func(context.Context, models.LoginRequest) (models.PublicUser, models.TokenPair, error) {
				return models.PublicUser{}, models.TokenPair{}, service.ErrWrongPassword
			},
		},
	})
	router := handler.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		strings.NewReader(`{"userName":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, cookieByName(rec, accessTokenCookie), "failed login must not set cookies")
}

func TestLogin_InvalidJSON(t *testing.T) {
	handler := newTestHandler(t, &service.Services{AuthService: &mockAuthService{}})
	router := handler.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshToken_FromCookie(t *testing.T) {
	handler := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			refreshFn: func(_ context.Context, presented string) (models.TokenPair, error) {
				assert.Equal(t, "old-refresh-jwt", presented)
				return models.TokenPair{AccessToken: "new-access-jwt", RefreshToken: "new-refresh-jwt"}, nil
			},
		},
	})
	router := handler.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "old-refresh-jwt"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	refreshCookie := cookieByName(rec, refreshTokenCookie)
	require.NotNil(t, refreshCookie)
	assert.Equal(t, "new-refresh-jwt", refreshCookie.Value, "rotated token must replace the cookie")
}

func TestRefreshToken_FromBody(t *testing.T) {
	handler := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			refreshFn: func(_ context.Context, presented string) (models.TokenPair, error) {
				assert.Equal(t, "body-refresh-jwt", presented)
				return models.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil
			},
		},
	})
	router := handler.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token",
		strings.NewReader(`{"refreshToken":"body-refresh-jwt"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshToken_ReplayRejected(t *testing.T) {
	handler := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			refreshFn: func(context.Context, string) (models.TokenPair, error) {
				return models.TokenPair{}, service.ErrTokenReuseDetected
			},
		},
	})
	router := handler.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "already-rotated"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_ClearsCookies(t *testing.T) {
	var loggedOut string
	handler := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			logoutFn: func(_ context.Context, userID string) error {
				loggedOut = userID
				return nil
			},
		},
		TokenService: verifierFor("valid-access-jwt", "user-1"),
	})
	router := handler.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "valid-access-jwt"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", loggedOut)

	accessCookie := cookieByName(rec, accessTokenCookie)
	require.NotNil(t, accessCookie)
	assert.Empty(t, accessCookie.Value)
	assert.Negative(t, accessCookie.MaxAge, "logout must expire the access token cookie")

	refreshCookie := cookieByName(rec, refreshTokenCookie)
	require.NotNil(t, refreshCookie)
	assert.Negative(t, refreshCookie.MaxAge, "logout must expire the refresh token cookie")
}

func TestChangePassword(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"wrong current password", service.ErrWrongPassword, http.StatusUnauthorized},
		{"empty passwords", service.ErrInvalidDataProvided, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, &service.Services{
				AuthService: &mockAuthService{
					changePasswordFn: func(_ context.Context, userID string, request models.ChangePasswordRequest) error {
						assert.Equal(t, "user-1", userID)
						return tt.serviceErr
					},
				},
				TokenService: verifierFor("valid-access-jwt", "user-1"),
			})
			router := handler.Init()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/change-password",
				strings.NewReader(`{"currentPassword":"old","newPassword":"new"}`))
			req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "valid-access-jwt"})
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCurrentUser(t *testing.T) {
	handler := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			currentUserFn: func(_ context.Context, userID string) (models.PublicUser, error) {
				return models.PublicUser{UserID: userID, UserName: "alice"}, nil
			},
		},
		TokenService: verifierFor("valid-access-jwt", "user-1"),
	})
	router := handler.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "valid-access-jwt"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", data["userName"])
}
