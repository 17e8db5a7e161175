package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/service"
	"github.com/vidtube/accounts/internal/utils"
	"github.com/vidtube/accounts/models"
)

func (h *Handler) updateDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var patch models.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Str("func", "*Handler.updateDetails").Msg("invalid JSON was passed")
		respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	updated, err := h.services.ProfileService.UpdateDetails(ctx, userID, patch)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateDetails").Msg("details update failed")
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "account details updated successfully", updated)
}

func (h *Handler) updateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateMedia(w, r, "avatar", h.services.ProfileService.UpdateAvatar)
}

func (h *Handler) updateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateMedia(w, r, "coverImage", h.services.ProfileService.UpdateCoverImage)
}

// updateMedia is the shared multipart flow behind the avatar and cover image
// endpoints: stage the uploaded file, hand its path to the service, answer
// with the updated public view.
func (h *Handler) updateMedia(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	update func(ctx context.Context, userID string, localPath string) (models.PublicUser, error),
) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		log.Err(err).Str("func", "*Handler.updateMedia").Str("field", field).Msg("invalid multipart form")
		respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	localPath, err := h.stageFormFile(r, field)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateMedia").Str("field", field).Msg("staging file failed")
		respondError(w, r, err)
		return
	}

	updated, err := update(ctx, userID, localPath)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateMedia").Str("field", field).Msg("media update failed")
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, field+" updated successfully", updated)
}
