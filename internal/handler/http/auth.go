package http

import (
	"encoding/json"
	"net/http"

	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/service"
	"github.com/vidtube/accounts/internal/utils"
	"github.com/vidtube/accounts/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("invalid multipart form")
		respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	avatarPath, err := h.stageFormFile(r, "avatar")
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("staging avatar failed")
		respondError(w, r, err)
		return
	}
	coverPath, err := h.stageFormFile(r, "coverImage")
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("staging cover image failed")
		respondError(w, r, err)
		return
	}

	createdUser, err := h.services.AuthService.Register(ctx, models.RegisterRequest{
		FullName:            r.FormValue("fullName"),
		Email:               r.FormValue("email"),
		UserName:            r.FormValue("userName"),
		Password:            r.FormValue("password"),
		AvatarLocalPath:     avatarPath,
		CoverImageLocalPath: coverPath,
	})
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("registration failed")
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "user registered successfully", createdUser)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("invalid JSON was passed")
		respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	loggedInUser, pair, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("login failed")
		respondError(w, r, err)
		return
	}

	setSessionCookies(w, pair)
	respond(w, r, http.StatusOK, "user logged in successfully", map[string]any{
		"user":         loggedInUser,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	if err := h.services.AuthService.Logout(ctx, userID); err != nil {
		log.Err(err).Str("func", "*Handler.logout").Msg("logout failed")
		respondError(w, r, err)
		return
	}

	clearSessionCookies(w)
	respond(w, r, http.StatusOK, "user logged out", nil)
}

// refreshToken exchanges a refresh token for a fresh pair. The token is read
// from the refreshToken cookie first, falling back to the request body for
// non-browser clients.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	presented := ""
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			presented = body.RefreshToken
		}
	}

	pair, err := h.services.AuthService.Refresh(ctx, presented)
	if err != nil {
		log.Err(err).Str("func", "*Handler.refreshToken").Msg("token refresh failed")
		respondError(w, r, err)
		return
	}

	setSessionCookies(w, pair)
	respond(w, r, http.StatusOK, "access token refreshed", map[string]any{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var request models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.changePassword").Msg("invalid JSON was passed")
		respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.AuthService.ChangePassword(ctx, userID, request); err != nil {
		log.Err(err).Str("func", "*Handler.changePassword").Msg("password change failed")
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "password changed successfully", nil)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	user, err := h.services.AuthService.CurrentUser(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.currentUser").Msg("current user lookup failed")
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "current user fetched successfully", user)
}
