package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"meme-bot/models"
)

// StatusManager maintains the autopost status snapshot file.
type StatusManager struct {
	statusFile string
	mutex      sync.Mutex
	status     *models.AutopostStatus
}

// NewStatusManager creates a new status manager.
func NewStatusManager(statusFile string) *StatusManager {
	return &StatusManager{
		statusFile: statusFile,
		status: &models.AutopostStatus{
			Configs: make(map[string]*models.ConfigStatus),
		},
	}
}

// RecordTick marks the time the last scheduler tick completed.
func (sm *StatusManager) RecordTick(at time.Time) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	sm.status.LastTick = at
}

// RecordPost records a successful delivery for a config.
func (sm *StatusManager) RecordPost(cfg models.SubredditConfig, at time.Time) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	st := sm.ensure(cfg)
	st.LastPostAt = at
	st.LastError = ""
}

// RecordError records the most recent failure for a config.
func (sm *StatusManager) RecordError(cfg models.SubredditConfig, err error) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	sm.ensure(cfg).LastError = err.Error()
}

func (sm *StatusManager) ensure(cfg models.SubredditConfig) *models.ConfigStatus {
	key := fmt.Sprintf("%s:%s:%s", cfg.GuildID, cfg.Subreddit, cfg.ChannelID)
	st, ok := sm.status.Configs[key]
	if !ok {
		st = &models.ConfigStatus{
			Subreddit: cfg.Subreddit,
			ChannelID: cfg.ChannelID,
		}
		sm.status.Configs[key] = st
	}
	return st
}

// Save commits the current status to the JSON file.
func (sm *StatusManager) Save() error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	// Ensure the directory exists.
	dir := filepath.Dir(sm.statusFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create status directory: %w", err)
	}

	// Marshal the data to JSON.
	data, err := json.MarshalIndent(sm.status, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	// Write the file, overwriting it if it exists.
	if err := os.WriteFile(sm.statusFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write status file: %w", err)
	}

	return nil
}
