package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/service"
	"github.com/vidtube/accounts/internal/utils"
)

func (h *Handler) channelProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	viewerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	userName := chi.URLParam(r, "userName")

	profile, err := h.services.ProfileService.ChannelProfile(ctx, userName, viewerID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.channelProfile").Str("userName", userName).Msg("channel lookup failed")
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "channel profile fetched successfully", profile)
}

func (h *Handler) watchHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	history, err := h.services.ProfileService.WatchHistory(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.watchHistory").Msg("watch history lookup failed")
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "watch history fetched successfully", history)
}

func (h *Handler) recordWatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	videoID := chi.URLParam(r, "videoID")

	if err := h.services.ProfileService.RecordWatch(ctx, userID, videoID); err != nil {
		log.Err(err).Str("func", "*Handler.recordWatch").Str("videoID", videoID).Msg("watch record failed")
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "watch history recorded successfully", nil)
}
