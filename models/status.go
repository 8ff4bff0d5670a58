package models

import "time"

// AutopostStatus is the JSON snapshot written after each scheduler tick.
type AutopostStatus struct {
	LastTick time.Time                `json:"last_tick"`
	Configs  map[string]*ConfigStatus `json:"configs"`
}

// ConfigStatus records the most recent outcome for a single config,
// keyed in AutopostStatus.Configs by "guildID:subreddit:channelID".
type ConfigStatus struct {
	Subreddit  string    `json:"subreddit"`
	ChannelID  string    `json:"channel_id"`
	LastPostAt time.Time `json:"last_post_at,omitzero"`
	LastError  string    `json:"last_error,omitempty"`
}
