package autopost

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"meme-bot/database"
	"meme-bot/models"
)

var _ ConfigStore = (*database.Store)(nil)
var _ StatusRecorder = (*database.StatusManager)(nil)

// End to end against the real sqlite store: enable r/pics, return one unseen
// and one already-seen candidate, and expect exactly one newest-lane message.
func TestEngineWithSQLiteStore(t *testing.T) {
	db, err := database.InitDB(filepath.Join(t.TempDir(), "autopost.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer db.Close()
	store := database.NewStore(db)

	now := time.Unix(1_700_000_000, 0)
	cfg, err := store.Enable("g1", "pics", "chanC", now.Unix())
	if err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if err := store.MarkSeen("pics", "p2", now.Unix()-60); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	if err := store.UpdateBestCooldown(cfg.ID, now.Unix()); err != nil {
		t.Fatalf("UpdateBestCooldown: %v", err)
	}

	fetcher := newFakeFetcher()
	fetcher.newest["pics"] = []models.RedditPost{imagePost("p1"), imagePost("p2")}

	sink := &fakeSink{}
	e := newTestEngine(store, fetcher, sink, now)
	e.RunTick(context.Background())

	if len(sink.sent) != 1 {
		t.Fatalf("got %d sends, want 1", len(sink.sent))
	}
	if sink.sent[0].channelID != "chanC" || sink.sent[0].postID != "p1" || sink.sent[0].lane != LaneNewest {
		t.Errorf("unexpected send: %+v", sink.sent[0])
	}

	seen, err := store.HasSeen("pics", "p1")
	if err != nil {
		t.Fatalf("HasSeen: %v", err)
	}
	if !seen {
		t.Error("p1 not marked seen after delivery")
	}
}
