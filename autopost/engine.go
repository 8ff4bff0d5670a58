package autopost

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"meme-bot/models"
	"meme-bot/reddit"
	"meme-bot/utils"
)

// ConfigStore is the slice of the database layer the engine needs.
// *database.Store satisfies it.
type ConfigStore interface {
	ListEnabled() ([]models.SubredditConfig, error)
	HasSeen(subreddit, postID string) (bool, error)
	MarkSeen(subreddit, postID string, ts int64) error
	UpdateBestCooldown(configID int64, ts int64) error
}

// StatusRecorder receives per-tick health updates. *database.StatusManager
// satisfies it.
type StatusRecorder interface {
	RecordTick(at time.Time)
	RecordPost(cfg models.SubredditConfig, at time.Time)
	RecordError(cfg models.SubredditConfig, err error)
	Save() error
}

// Options holds the tunables of the engine.
type Options struct {
	NewestLimit  int           // candidates fetched for the newest lane
	BestLimit    int           // candidates fetched for the best lane
	BestWindow   string        // top-posts window: "day", "week", ...
	BestCooldown time.Duration // minimum gap between best-lane posts per config
}

// DefaultOptions mirrors the documented defaults: 30s ticks are configured
// separately in the cron spec; the best-lane cooldown is an independent knob.
func DefaultOptions() Options {
	return Options{
		NewestLimit:  10,
		BestLimit:    100,
		BestWindow:   "day",
		BestCooldown: 5 * time.Minute,
	}
}

// Engine drives one polling tick over all enabled subreddit configs.
// Collaborators are injected so tests can run with fakes and a fixed clock.
type Engine struct {
	store   ConfigStore
	fetcher reddit.Fetcher
	sink    Sink
	status  StatusRecorder // optional
	opts    Options

	now     func() time.Time
	running atomic.Bool
	wg      sync.WaitGroup
}

// NewEngine creates an engine. status may be nil.
func NewEngine(store ConfigStore, fetcher reddit.Fetcher, sink Sink, status StatusRecorder, opts Options) *Engine {
	return &Engine{
		store:   store,
		fetcher: fetcher,
		sink:    sink,
		status:  status,
		opts:    opts,
		now:     time.Now,
	}
}

// RunTick executes one tick: every enabled config is evaluated for a newest
// and a best lane post. Ticks never overlap; if the previous one is still
// running, this firing is skipped.
func (e *Engine) RunTick(ctx context.Context) {
	if !e.running.CompareAndSwap(false, true) {
		log.Println("Previous autopost tick still running, skipping this one")
		return
	}
	e.wg.Add(1)
	defer func() {
		e.wg.Done()
		e.running.Store(false)
	}()

	configs, err := e.store.ListEnabled()
	if err != nil {
		// Storage failure on listing aborts this tick only; the next timer
		// firing retries.
		log.Printf("Failed to list enabled autopost configs: %v", err)
		utils.Error("Autopost", "ListEnabled", err.Error())
		return
	}

	for _, cfg := range configs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		e.processConfig(ctx, cfg)
	}

	if e.status != nil {
		e.status.RecordTick(e.now())
		if err := e.status.Save(); err != nil {
			log.Printf("Failed to save autopost status: %v", err)
		}
	}
}

// Stop waits for an in-flight tick to finish, or for ctx to expire.
// The caller must have stopped the timer first.
func (e *Engine) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// processConfig runs both lanes for one config. Failures are contained here:
// nothing escapes to abort the remaining configs of the tick.
func (e *Engine) processConfig(ctx context.Context, cfg models.SubredditConfig) {
	now := e.now()

	// Newest lane: first unseen image post from the newest listing.
	posts, err := e.fetcher.FetchNewest(ctx, cfg.Subreddit, e.opts.NewestLimit)
	if err != nil {
		e.recordFetchError(cfg, err)
		return // a fetch failure skips this config for the rest of the tick
	}
	post, ok, err := e.firstUnseen(cfg.Subreddit, posts)
	if err != nil {
		log.Printf("Storage error while deduplicating r/%s, skipping this tick: %v", cfg.Subreddit, err)
		return
	}
	if ok {
		// Delivery failure leaves the post unseen so the next tick retries it.
		if err := e.deliver(cfg, post, LaneNewest, now); err != nil {
			log.Printf("Failed to deliver newest post for r/%s: %v", cfg.Subreddit, err)
			e.recordError(cfg, err)
		}
	}

	// Best lane: gated by the cooldown; a miss does not touch the timestamp.
	if now.Sub(time.Unix(cfg.LastBestPostTS, 0)) < e.opts.BestCooldown {
		return
	}
	best, err := e.fetcher.FetchBest(ctx, cfg.Subreddit, e.opts.BestWindow, e.opts.BestLimit)
	if err != nil {
		e.recordFetchError(cfg, err)
		return
	}
	post, ok, err = e.firstUnseen(cfg.Subreddit, best)
	if err != nil {
		log.Printf("Storage error while deduplicating r/%s, skipping this tick: %v", cfg.Subreddit, err)
		return
	}
	if !ok {
		return
	}
	if err := e.deliver(cfg, post, LaneBest, now); err != nil {
		log.Printf("Failed to deliver best post for r/%s: %v", cfg.Subreddit, err)
		e.recordError(cfg, err)
		return
	}
	if err := e.store.UpdateBestCooldown(cfg.ID, now.Unix()); err != nil {
		log.Printf("Failed to update best cooldown for r/%s: %v", cfg.Subreddit, err)
	}
}

// firstUnseen walks candidates in order and returns the first image post not
// yet recorded as seen.
func (e *Engine) firstUnseen(subreddit string, posts []models.RedditPost) (models.RedditPost, bool, error) {
	for _, p := range posts {
		if p.ImageURL == "" || p.ID == "" {
			continue
		}
		seen, err := e.store.HasSeen(subreddit, p.ID)
		if err != nil {
			return models.RedditPost{}, false, err
		}
		if !seen {
			return p, true, nil
		}
	}
	return models.RedditPost{}, false, nil
}

// deliver sends the post and, only after the sink confirms, marks it seen.
func (e *Engine) deliver(cfg models.SubredditConfig, post models.RedditPost, lane Lane, now time.Time) error {
	if err := e.sink.Send(cfg.ChannelID, post, lane); err != nil {
		return err
	}
	if err := e.store.MarkSeen(cfg.Subreddit, post.ID, now.Unix()); err != nil {
		// The post went out but was not recorded; it may repeat next tick.
		// At-least-once is the accepted tradeoff.
		log.Printf("Failed to mark post %s/%s seen: %v", cfg.Subreddit, post.ID, err)
	}
	if e.status != nil {
		e.status.RecordPost(cfg, now)
	}
	return nil
}

func (e *Engine) recordFetchError(cfg models.SubredditConfig, err error) {
	if errors.Is(err, reddit.ErrSubredditNotFound) {
		log.Printf("Subreddit r/%s is missing, banned or private, will retry next tick: %v", cfg.Subreddit, err)
		utils.Warn("Autopost", "Fetch", "r/"+cfg.Subreddit+" not accessible")
	} else {
		log.Printf("Failed to fetch posts for r/%s: %v", cfg.Subreddit, err)
	}
	e.recordError(cfg, err)
}

func (e *Engine) recordError(cfg models.SubredditConfig, err error) {
	if e.status != nil {
		e.status.RecordError(cfg, err)
	}
}
