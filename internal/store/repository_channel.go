package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/models"
)

// channelRepository is the PostgreSQL-backed implementation of
// [ChannelRepository]. It serves the denormalized channel and watch-history
// read views; the account core never writes through this repository except
// to append watch-history rows.
type channelRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewChannelRepository constructs a [ChannelRepository] backed by the
// provided database connection and logger.
func NewChannelRepository(db *DB, logger *logger.Logger) ChannelRepository {
	logger.Debug().Msg("creating channel repository")
	return &channelRepository{
		db:     db,
		logger: logger,
	}
}

// GetChannelProfile returns the channel summary of the account with the
// given user name: public display fields plus subscriber aggregates and the
// viewer's own subscription status.
func (r *channelRepository) GetChannelProfile(ctx context.Context, userName, viewerID string) (models.ChannelProfile, error) {
	log := logger.FromContext(ctx)

	var profile models.ChannelProfile
	var coverImage sql.NullString

	row := r.db.QueryRowContext(ctx, getChannelProfile, userName, viewerID)
	err := row.Scan(
		&profile.UserID, &profile.UserName, &profile.FullName, &profile.Email,
		&profile.AvatarURL, &coverImage,
		&profile.SubscriberCount, &profile.SubscribedToCount, &profile.IsSubscribed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ChannelProfile{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*channelRepository.GetChannelProfile").Msg("error: channel lookup failed")
		return models.ChannelProfile{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if coverImage.Valid {
		profile.CoverImageURL = coverImage.String
	}

	return profile, nil
}

// GetWatchHistory returns the watch history of the given user, most recent
// first, each entry joined with the watched video and its owner's display
// fields.
func (r *channelRepository) GetWatchHistory(ctx context.Context, userID string) ([]models.WatchHistoryEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getWatchHistory, userID)
	if err != nil {
		log.Err(err).Str("func", "*channelRepository.GetWatchHistory").Msg("error: watch history query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	entries := make([]models.WatchHistoryEntry, 0)
	for rows.Next() {
		var entry models.WatchHistoryEntry
		err := rows.Scan(
			&entry.Video.VideoID, &entry.Video.OwnerID, &entry.Video.VideoFile,
			&entry.Video.Thumbnail, &entry.Video.Title, &entry.Video.Description,
			&entry.Video.Duration, &entry.Video.Views, &entry.Video.IsPublished,
			&entry.Video.CreatedAt,
			&entry.OwnerUserName, &entry.OwnerFullName, &entry.OwnerAvatarURL,
			&entry.WatchedAt,
		)
		if err != nil {
			log.Err(err).Str("func", "*channelRepository.GetWatchHistory").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// AppendWatchHistory records a watched video for the user. Entries are
// append-only; ordering is provided by the watched_at column.
func (r *channelRepository) AppendWatchHistory(ctx context.Context, userID, videoID string) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, appendWatchHistory, userID, videoID)
	if err != nil {
		log.Err(err).Str("func", "*channelRepository.AppendWatchHistory").Msg("error: watch history insert failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
