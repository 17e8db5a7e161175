// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The VidTube Authors

package models

// ChannelProfile is the denormalized channel read view returned by the
// channel endpoint: a public user projection enriched with subscription
// aggregates computed relative to the requesting viewer.
type ChannelProfile struct {
	UserID        string `json:"id"`
	UserName      string `json:"userName"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	AvatarURL     string `json:"avatarUrl"`
	CoverImageURL string `json:"coverImageUrl,omitempty"`

	// SubscriberCount is the number of accounts subscribed to this channel.
	SubscriberCount int64 `json:"subscriberCount"`

	// SubscribedToCount is the number of channels this account subscribes to.
	SubscribedToCount int64 `json:"subscribedToCount"`

	// IsSubscribed reports whether the requesting viewer is subscribed
	// to this channel.
	IsSubscribed bool `json:"isSubscribed"`
}
