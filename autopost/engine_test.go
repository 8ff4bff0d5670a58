package autopost

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"meme-bot/models"
	"meme-bot/reddit"
)

type fakeStore struct {
	mu        sync.Mutex
	configs   []models.SubredditConfig
	seen      map[string]bool
	listErr   error
	markErr   error
	markCalls int
}

func newFakeStore(configs ...models.SubredditConfig) *fakeStore {
	return &fakeStore{configs: configs, seen: make(map[string]bool)}
}

func (f *fakeStore) ListEnabled() ([]models.SubredditConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.SubredditConfig, len(f.configs))
	copy(out, f.configs)
	return out, nil
}

func (f *fakeStore) HasSeen(subreddit, postID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[subreddit+"/"+postID], nil
}

func (f *fakeStore) MarkSeen(subreddit, postID string, ts int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markCalls++
	if f.markErr != nil {
		return f.markErr
	}
	f.seen[subreddit+"/"+postID] = true
	return nil
}

func (f *fakeStore) UpdateBestCooldown(configID int64, ts int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.configs {
		if f.configs[i].ID == configID {
			f.configs[i].LastBestPostTS = ts
		}
	}
	return nil
}

type fakeFetcher struct {
	newest    map[string][]models.RedditPost
	best      map[string][]models.RedditPost
	newestErr map[string]error
	bestErr   map[string]error

	newestCalls int
	bestCalls   int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		newest:    make(map[string][]models.RedditPost),
		best:      make(map[string][]models.RedditPost),
		newestErr: make(map[string]error),
		bestErr:   make(map[string]error),
	}
}

func (f *fakeFetcher) FetchNewest(ctx context.Context, subreddit string, limit int) ([]models.RedditPost, error) {
	f.newestCalls++
	if err := f.newestErr[subreddit]; err != nil {
		return nil, err
	}
	return f.newest[subreddit], nil
}

func (f *fakeFetcher) FetchBest(ctx context.Context, subreddit, window string, limit int) ([]models.RedditPost, error) {
	f.bestCalls++
	if err := f.bestErr[subreddit]; err != nil {
		return nil, err
	}
	return f.best[subreddit], nil
}

type sentPost struct {
	channelID string
	postID    string
	lane      Lane
}

type fakeSink struct {
	mu      sync.Mutex
	sent    []sentPost
	sendErr error
	block   chan struct{} // when non-nil, Send waits for it to close
	started chan struct{} // closed once the first Send begins
}

func (f *fakeSink) Send(channelID string, post models.RedditPost, lane Lane) error {
	if f.started != nil {
		select {
		case <-f.started:
		default:
			close(f.started)
		}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentPost{channelID: channelID, postID: post.ID, lane: lane})
	return nil
}

func imagePost(id string) models.RedditPost {
	return models.RedditPost{
		ID:       id,
		Title:    "post " + id,
		Author:   "someone",
		ImageURL: fmt.Sprintf("https://i.redd.it/%s.jpg", id),
		PostURL:  "https://www.reddit.com/r/memes/comments/" + id,
	}
}

func testConfig(id int64, sub string) models.SubredditConfig {
	return models.SubredditConfig{
		ID:        id,
		GuildID:   "g1",
		Subreddit: sub,
		ChannelID: "c1",
		Enabled:   true,
	}
}

func newTestEngine(store ConfigStore, fetcher reddit.Fetcher, sink Sink, now time.Time) *Engine {
	e := NewEngine(store, fetcher, sink, nil, DefaultOptions())
	e.now = func() time.Time { return now }
	return e
}

func TestNewestLaneSkipsSeenPosts(t *testing.T) {
	now := time.Unix(10_000, 0)
	store := newFakeStore(testConfig(1, "pics"))
	store.seen["pics/p2"] = true

	fetcher := newFakeFetcher()
	fetcher.newest["pics"] = []models.RedditPost{imagePost("p1"), imagePost("p2")}

	sink := &fakeSink{}
	cfg := store.configs[0]
	cfg.LastBestPostTS = now.Unix() // keep the best lane quiet
	store.configs[0] = cfg

	e := newTestEngine(store, fetcher, sink, now)
	e.RunTick(context.Background())

	if len(sink.sent) != 1 {
		t.Fatalf("got %d sends, want 1", len(sink.sent))
	}
	if sink.sent[0].postID != "p1" || sink.sent[0].lane != LaneNewest {
		t.Errorf("got %+v, want newest-lane p1", sink.sent[0])
	}
	if !store.seen["pics/p1"] {
		t.Error("delivered post was not marked seen")
	}

	// A second tick must not repeat p1.
	e.RunTick(context.Background())
	if len(sink.sent) != 1 {
		t.Errorf("seen post was re-emitted: %+v", sink.sent)
	}
}

func TestNoNewCandidatesEmitsNothing(t *testing.T) {
	now := time.Unix(10_000, 0)
	store := newFakeStore(testConfig(1, "pics"))
	store.seen["pics/p1"] = true
	store.configs[0].LastBestPostTS = now.Unix()

	fetcher := newFakeFetcher()
	fetcher.newest["pics"] = []models.RedditPost{imagePost("p1")}

	sink := &fakeSink{}
	e := newTestEngine(store, fetcher, sink, now)
	e.RunTick(context.Background())

	if len(sink.sent) != 0 {
		t.Errorf("got %d sends, want 0", len(sink.sent))
	}
	if store.markCalls != 0 {
		t.Errorf("MarkSeen called %d times on an all-seen tick", store.markCalls)
	}
}

func TestDeliveryFailureRetriesNextTick(t *testing.T) {
	now := time.Unix(10_000, 0)
	store := newFakeStore(testConfig(1, "pics"))
	store.configs[0].LastBestPostTS = now.Unix()

	fetcher := newFakeFetcher()
	fetcher.newest["pics"] = []models.RedditPost{imagePost("p1")}

	sink := &fakeSink{sendErr: errors.New("discord unavailable")}
	e := newTestEngine(store, fetcher, sink, now)
	e.RunTick(context.Background())

	if store.seen["pics/p1"] {
		t.Fatal("post marked seen despite failed delivery")
	}

	// Delivery recovers; the same post goes out on the next tick.
	sink.sendErr = nil
	e.RunTick(context.Background())
	if len(sink.sent) != 1 || sink.sent[0].postID != "p1" {
		t.Errorf("expected p1 to be retried, got %+v", sink.sent)
	}
}

func TestBestLaneRespectsCooldown(t *testing.T) {
	now := time.Unix(10_000, 0)
	cfg := testConfig(1, "pics")
	cfg.LastBestPostTS = now.Add(-time.Minute).Unix() // only 1m elapsed
	store := newFakeStore(cfg)

	fetcher := newFakeFetcher()
	fetcher.best["pics"] = []models.RedditPost{imagePost("b1")}

	sink := &fakeSink{}
	e := newTestEngine(store, fetcher, sink, now)
	e.RunTick(context.Background())

	if fetcher.bestCalls != 0 {
		t.Error("best lane fetched inside the cooldown window")
	}
	if len(sink.sent) != 0 {
		t.Errorf("best lane fired inside the cooldown window: %+v", sink.sent)
	}

	// Once the cooldown elapses the lane fires and the timestamp advances.
	e.now = func() time.Time { return now.Add(10 * time.Minute) }
	e.RunTick(context.Background())

	if len(sink.sent) != 1 || sink.sent[0].lane != LaneBest {
		t.Fatalf("expected one best-lane send, got %+v", sink.sent)
	}
	if store.configs[0].LastBestPostTS != now.Add(10*time.Minute).Unix() {
		t.Errorf("cooldown timestamp not advanced, got %d", store.configs[0].LastBestPostTS)
	}

	// Immediately after, the lane is quiet again.
	e.RunTick(context.Background())
	if len(sink.sent) != 1 {
		t.Errorf("best lane fired twice within the cooldown: %+v", sink.sent)
	}
}

func TestBestLaneMissDoesNotTouchCooldown(t *testing.T) {
	now := time.Unix(10_000, 0)
	store := newFakeStore(testConfig(1, "pics"))
	store.seen["pics/b1"] = true

	fetcher := newFakeFetcher()
	fetcher.best["pics"] = []models.RedditPost{imagePost("b1")}

	sink := &fakeSink{}
	e := newTestEngine(store, fetcher, sink, now)
	e.RunTick(context.Background())

	if len(sink.sent) != 0 {
		t.Errorf("got sends %+v, want none", sink.sent)
	}
	if store.configs[0].LastBestPostTS != 0 {
		t.Errorf("cooldown advanced without a best-lane post: %d", store.configs[0].LastBestPostTS)
	}
}

func TestNewestDeliveredBeforeBest(t *testing.T) {
	now := time.Unix(10_000, 0)
	store := newFakeStore(testConfig(1, "pics"))

	fetcher := newFakeFetcher()
	fetcher.newest["pics"] = []models.RedditPost{imagePost("n1")}
	fetcher.best["pics"] = []models.RedditPost{imagePost("b1")}

	sink := &fakeSink{}
	e := newTestEngine(store, fetcher, sink, now)
	e.RunTick(context.Background())

	if len(sink.sent) != 2 {
		t.Fatalf("got %d sends, want 2 (the per-config cap)", len(sink.sent))
	}
	if sink.sent[0].lane != LaneNewest || sink.sent[1].lane != LaneBest {
		t.Errorf("lane order wrong: %+v", sink.sent)
	}
}

func TestFetchFailureSkipsOnlyThatConfig(t *testing.T) {
	now := time.Unix(10_000, 0)
	broken := testConfig(1, "banned")
	broken.LastBestPostTS = now.Unix()
	healthy := testConfig(2, "pics")
	healthy.LastBestPostTS = now.Unix()
	store := newFakeStore(broken, healthy)

	fetcher := newFakeFetcher()
	fetcher.newestErr["banned"] = fmt.Errorf("wrapped: %w", reddit.ErrSubredditNotFound)
	fetcher.newest["pics"] = []models.RedditPost{imagePost("p1")}

	sink := &fakeSink{}
	e := newTestEngine(store, fetcher, sink, now)
	e.RunTick(context.Background())

	if len(sink.sent) != 1 || sink.sent[0].postID != "p1" {
		t.Errorf("healthy config not processed after another config failed: %+v", sink.sent)
	}
}

func TestStorageFailureOnListAbortsTickOnly(t *testing.T) {
	store := newFakeStore(testConfig(1, "pics"))
	store.listErr = errors.New("disk full")

	fetcher := newFakeFetcher()
	sink := &fakeSink{}
	e := newTestEngine(store, fetcher, sink, time.Unix(10_000, 0))

	e.RunTick(context.Background()) // must not panic

	if fetcher.newestCalls != 0 || len(sink.sent) != 0 {
		t.Error("tick proceeded despite a storage failure on listing")
	}

	// The next firing recovers.
	store.mu.Lock()
	store.listErr = nil
	store.mu.Unlock()
	fetcher.newest["pics"] = []models.RedditPost{imagePost("p1")}
	e.RunTick(context.Background())
	if len(sink.sent) != 1 {
		t.Errorf("tick did not recover after storage came back: %+v", sink.sent)
	}
}

func TestTicksNeverOverlap(t *testing.T) {
	now := time.Unix(10_000, 0)
	cfg := testConfig(1, "pics")
	cfg.LastBestPostTS = now.Unix()
	store := newFakeStore(cfg)

	fetcher := newFakeFetcher()
	fetcher.newest["pics"] = []models.RedditPost{imagePost("p1")}

	sink := &fakeSink{
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	e := newTestEngine(store, fetcher, sink, now)

	done := make(chan struct{})
	go func() {
		e.RunTick(context.Background())
		close(done)
	}()
	<-sink.started

	// This firing must be skipped, not queued.
	e.RunTick(context.Background())

	close(sink.block)
	<-done

	if fetcher.newestCalls != 1 {
		t.Errorf("overlapping tick ran the fetcher %d times, want 1", fetcher.newestCalls)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := e.Stop(ctx); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
