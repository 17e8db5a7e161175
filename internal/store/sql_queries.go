// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The VidTube Authors

package store

const (
	userColumns = `user_id, user_name, email, full_name, password_hash, avatar_url, cover_image_url, refresh_token, created_at, updated_at`

	createUser = `INSERT INTO users (user_id, user_name, email, full_name, password_hash, avatar_url, cover_image_url)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + userColumns + `;`

	// NULLIF keeps an empty identifier from matching anything: the caller
	// may pass user name, email, or both.
	findUserByIdentifier = `SELECT ` + userColumns + `
    FROM users
    WHERE LOWER(user_name) = LOWER(NULLIF($1, '')) OR email = NULLIF($2, '');`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	updateRefreshToken = `UPDATE users
    SET refresh_token = $2, updated_at = NOW()
    WHERE user_id = $1;`

	updatePassword = `UPDATE users
    SET password_hash = $2, updated_at = NOW()
    WHERE user_id = $1;`

	getChannelProfile = `SELECT
        u.user_id, u.user_name, u.full_name, u.email, u.avatar_url, u.cover_image_url,
        (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.user_id)    AS subscriber_count,
        (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.user_id) AS subscribed_to_count,
        EXISTS (
            SELECT 1 FROM subscriptions s
            WHERE s.channel_id = u.user_id AND s.subscriber_id = $2
        ) AS is_subscribed
    FROM users u
    WHERE LOWER(u.user_name) = LOWER($1);`

	getWatchHistory = `SELECT
        v.video_id, v.owner_id, v.video_file, v.thumbnail, v.title, v.description,
        v.duration, v.views, v.is_published, v.created_at,
        o.user_name, o.full_name, o.avatar_url,
        wh.watched_at
    FROM watch_history wh
    JOIN videos v ON v.video_id = wh.video_id
    JOIN users o ON o.user_id = v.owner_id
    WHERE wh.user_id = $1
    ORDER BY wh.watched_at DESC;`

	appendWatchHistory = `INSERT INTO watch_history (user_id, video_id)
    VALUES ($1, $2);`
)
