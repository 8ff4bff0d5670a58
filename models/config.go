package models

// SubredditConfig is the durable record for one auto-post destination:
// new and best posts from Subreddit are delivered to ChannelID in GuildID.
type SubredditConfig struct {
	ID             int64  `db:"id"`
	GuildID        string `db:"guild_id"`
	Subreddit      string `db:"subreddit"` // canonical lower-case, no r/ prefix
	ChannelID      string `db:"channel_id"`
	Enabled        bool   `db:"enabled"`
	LastBestPostTS int64  `db:"last_best_post_ts"` // Unix seconds, 0 if never posted
	CreatedAt      int64  `db:"created_at"`        // Unix seconds
}

// CommandsConfig represents the "commands" section of config.yaml.
type CommandsConfig struct {
	Auth AuthConfig `mapstructure:"auth"`
}

// AuthConfig holds the authorization lists for commands.
type AuthConfig struct {
	Developers []string `mapstructure:"developers"`
}
