package database

import (
	"database/sql"
	"fmt"

	"meme-bot/models"
)

// Store provides CRUD over subreddit configs and seen posts. It is the only
// component that mutates persisted autopost state; the scheduler and the
// command handlers go through it.
type Store struct {
	db *sql.DB
}

// NewStore wraps an initialized database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Enable creates a config for the (guild, subreddit, channel) triple, or
// re-enables an existing one in place. Seen-post history and the best-post
// cooldown survive a disable/enable cycle. Calling Enable twice with the
// same arguments is a no-op beyond the first call.
func (s *Store) Enable(guildID, subreddit, channelID string, now int64) (models.SubredditConfig, error) {
	query := `
    INSERT INTO subreddit_configs (guild_id, subreddit, channel_id, enabled, created_at)
    VALUES (?, ?, ?, 1, ?)
    ON CONFLICT(guild_id, subreddit, channel_id) DO UPDATE SET enabled = 1`

	if _, err := s.db.Exec(query, guildID, subreddit, channelID, now); err != nil {
		return models.SubredditConfig{}, fmt.Errorf("failed to enable config for r/%s: %w", subreddit, err)
	}

	return s.get(guildID, subreddit, channelID)
}

// Disable sets enabled=false for the triple and reports whether a matching
// config existed. Seen-post history is not deleted.
func (s *Store) Disable(guildID, subreddit, channelID string) (bool, error) {
	res, err := s.db.Exec(
		`UPDATE subreddit_configs SET enabled = 0 WHERE guild_id = ? AND subreddit = ? AND channel_id = ?`,
		guildID, subreddit, channelID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to disable config for r/%s: %w", subreddit, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows > 0, nil
}

// ListEnabled returns all enabled configs across guilds in creation order.
func (s *Store) ListEnabled() ([]models.SubredditConfig, error) {
	return s.list(`SELECT id, guild_id, subreddit, channel_id, enabled, last_best_post_ts, created_at
        FROM subreddit_configs WHERE enabled = 1 ORDER BY id`)
}

// ListEnabledForGuild returns the enabled configs of one guild in creation order.
func (s *Store) ListEnabledForGuild(guildID string) ([]models.SubredditConfig, error) {
	return s.list(`SELECT id, guild_id, subreddit, channel_id, enabled, last_best_post_ts, created_at
        FROM subreddit_configs WHERE enabled = 1 AND guild_id = ? ORDER BY id`, guildID)
}

// HasSeen reports whether a post ID was already delivered for a subreddit.
func (s *Store) HasSeen(subreddit, postID string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM seen_posts WHERE subreddit = ? AND post_id = ? LIMIT 1`,
		subreddit, postID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query seen post %s/%s: %w", subreddit, postID, err)
	}
	return true, nil
}

// MarkSeen records a delivered post ID. Inserting an already-present pair is
// a no-op, not an error.
func (s *Store) MarkSeen(subreddit, postID string, ts int64) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO seen_posts (subreddit, post_id, first_seen_ts) VALUES (?, ?, ?)`,
		subreddit, postID, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to mark post %s/%s seen: %w", subreddit, postID, err)
	}
	return nil
}

// UpdateBestCooldown sets the last best-post timestamp for a config.
func (s *Store) UpdateBestCooldown(configID int64, ts int64) error {
	_, err := s.db.Exec(
		`UPDATE subreddit_configs SET last_best_post_ts = ? WHERE id = ?`,
		ts, configID,
	)
	if err != nil {
		return fmt.Errorf("failed to update best cooldown for config %d: %w", configID, err)
	}
	return nil
}

func (s *Store) get(guildID, subreddit, channelID string) (models.SubredditConfig, error) {
	var cfg models.SubredditConfig
	err := s.db.QueryRow(
		`SELECT id, guild_id, subreddit, channel_id, enabled, last_best_post_ts, created_at
        FROM subreddit_configs WHERE guild_id = ? AND subreddit = ? AND channel_id = ?`,
		guildID, subreddit, channelID,
	).Scan(&cfg.ID, &cfg.GuildID, &cfg.Subreddit, &cfg.ChannelID, &cfg.Enabled, &cfg.LastBestPostTS, &cfg.CreatedAt)
	if err != nil {
		return models.SubredditConfig{}, fmt.Errorf("failed to load config for r/%s: %w", subreddit, err)
	}
	return cfg, nil
}

func (s *Store) list(query string, args ...any) ([]models.SubredditConfig, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query configs: %w", err)
	}
	defer rows.Close()

	var configs []models.SubredditConfig
	for rows.Next() {
		var cfg models.SubredditConfig
		if err := rows.Scan(&cfg.ID, &cfg.GuildID, &cfg.Subreddit, &cfg.ChannelID, &cfg.Enabled, &cfg.LastBestPostTS, &cfg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan config row: %w", err)
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}
