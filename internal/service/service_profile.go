package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vidtube/accounts/internal/adapter"
	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/store"
	"github.com/vidtube/accounts/models"
)

// profileService is the concrete implementation of ProfileService.
type profileService struct {
	userRepository    store.UserRepository
	channelRepository store.ChannelRepository

	// uploader exchanges staged local files for hosted media URLs when the
	// avatar or cover image is replaced.
	uploader adapter.MediaUploader

	logger *logger.Logger
}

// NewProfileService constructs a ProfileService over the given repositories
// and media uploader.
func NewProfileService(userRepository store.UserRepository, channelRepository store.ChannelRepository, uploader adapter.MediaUploader, logger *logger.Logger) ProfileService {
	return &profileService{
		userRepository:    userRepository,
		channelRepository: channelRepository,
		uploader:          uploader,
		logger:            logger,
	}
}

// UpdateDetails rewrites the account's full name and/or e-mail. Only the
// fields present in the patch are touched; at least one must be set.
//
// Returns the updated public view or:
//   - ErrInvalidDataProvided if the patch carries no fields or blank values.
//   - store.ErrUserAlreadyExists if the new e-mail is already taken.
func (p *profileService) UpdateDetails(ctx context.Context, userID string, patch models.ProfilePatch) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	patch.AvatarURL = nil
	patch.CoverImageURL = nil

	if patch.FullName != nil {
		trimmed := strings.TrimSpace(*patch.FullName)
		if trimmed == "" {
			log.Error().Str("userID", userID).Msg("details update rejected: blank full name")
			return models.PublicUser{}, ErrInvalidDataProvided
		}
		patch.FullName = &trimmed
	}
	if patch.Email != nil {
		trimmed := strings.TrimSpace(*patch.Email)
		if trimmed == "" {
			log.Error().Str("userID", userID).Msg("details update rejected: blank email")
			return models.PublicUser{}, ErrInvalidDataProvided
		}
		patch.Email = &trimmed
	}
	if patch.IsEmpty() {
		log.Error().Str("userID", userID).Msg("details update rejected: no fields provided")
		return models.PublicUser{}, ErrInvalidDataProvided
	}

	updated, err := p.userRepository.UpdateProfileFields(ctx, userID, patch)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("details update failed")
		return models.PublicUser{}, fmt.Errorf("details update failed: %w", err)
	}

	log.Info().Str("userID", userID).Msg("account details updated")
	return updated, nil
}

// UpdateAvatar uploads the staged file and points the account's avatar at the
// hosted URL. The previously hosted avatar is not deleted.
func (p *profileService) UpdateAvatar(ctx context.Context, userID string, localPath string) (models.PublicUser, error) {
	return p.updateMedia(ctx, userID, localPath, "avatar")
}

// UpdateCoverImage uploads the staged file and points the account's cover
// image at the hosted URL.
func (p *profileService) UpdateCoverImage(ctx context.Context, userID string, localPath string) (models.PublicUser, error) {
	return p.updateMedia(ctx, userID, localPath, "coverImage")
}

func (p *profileService) updateMedia(ctx context.Context, userID string, localPath string, field string) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	if localPath == "" {
		log.Error().Str("userID", userID).Str("field", field).Msg("media update rejected: no file staged")
		return models.PublicUser{}, ErrInvalidDataProvided
	}

	hostedURL, err := p.uploader.Upload(ctx, localPath)
	if err != nil {
		log.Err(err).Str("userID", userID).Str("field", field).Msg("media upload failed")
		return models.PublicUser{}, fmt.Errorf("media upload failed: %w", err)
	}

	patch := models.ProfilePatch{}
	switch field {
	case "avatar":
		patch.AvatarURL = &hostedURL
	default:
		patch.CoverImageURL = &hostedURL
	}

	updated, err := p.userRepository.UpdateProfileFields(ctx, userID, patch)
	if err != nil {
		log.Err(err).Str("userID", userID).Str("field", field).Msg("media URL update failed")
		return models.PublicUser{}, fmt.Errorf("media URL update failed: %w", err)
	}

	log.Info().Str("userID", userID).Str("field", field).Str("url", hostedURL).Msg("account media updated")
	return updated, nil
}

// ChannelProfile assembles the public channel page for the named account:
// profile fields plus subscriber counts and, when viewerID identifies an
// authenticated caller, whether that caller subscribes to the channel.
//
// Returns the profile or:
//   - ErrInvalidDataProvided if userName is blank.
//   - store.ErrNoUserWasFound if no such channel exists.
func (p *profileService) ChannelProfile(ctx context.Context, userName string, viewerID string) (models.ChannelProfile, error) {
	log := logger.FromContext(ctx)

	userName = strings.ToLower(strings.TrimSpace(userName))
	if userName == "" {
		log.Error().Msg("channel lookup rejected: blank user name")
		return models.ChannelProfile{}, ErrInvalidDataProvided
	}

	profile, err := p.channelRepository.GetChannelProfile(ctx, userName, viewerID)
	if err != nil {
		log.Err(err).Str("userName", userName).Msg("channel lookup failed")
		return models.ChannelProfile{}, fmt.Errorf("channel lookup failed: %w", err)
	}

	return profile, nil
}

// WatchHistory returns the account's watched videos, most recent first, each
// joined with its owner's public fields.
func (p *profileService) WatchHistory(ctx context.Context, userID string) ([]models.WatchHistoryEntry, error) {
	log := logger.FromContext(ctx)

	history, err := p.channelRepository.GetWatchHistory(ctx, userID)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("watch history lookup failed")
		return nil, fmt.Errorf("watch history lookup failed: %w", err)
	}

	return history, nil
}

// RecordWatch appends a video to the account's watch history. The video
// service calls this endpoint when it registers a view.
func (p *profileService) RecordWatch(ctx context.Context, userID string, videoID string) error {
	log := logger.FromContext(ctx)

	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		log.Error().Str("userID", userID).Msg("watch record rejected: blank video ID")
		return ErrInvalidDataProvided
	}

	if err := p.channelRepository.AppendWatchHistory(ctx, userID, videoID); err != nil {
		log.Err(err).Str("userID", userID).Str("videoID", videoID).Msg("watch record failed")
		return fmt.Errorf("watch record failed: %w", err)
	}

	return nil
}
