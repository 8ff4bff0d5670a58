package reddit

import (
	"context"
	"errors"
	"strings"

	"meme-bot/models"
)

// ErrSubredditNotFound marks a subreddit that is missing, banned or private.
// Callers distinguish it from transient network errors via errors.Is.
var ErrSubredditNotFound = errors.New("subreddit not found or not accessible")

// Fetcher defines the interface for fetching candidate posts.
type Fetcher interface {
	// FetchNewest returns up to limit posts sorted newest-first.
	FetchNewest(ctx context.Context, subreddit string, limit int) ([]models.RedditPost, error)
	// FetchBest returns up to limit top-ranked posts for a recent window
	// ("day", "week", "month", "all"), best first.
	FetchBest(ctx context.Context, subreddit, window string, limit int) ([]models.RedditPost, error)
}

var imageSuffixes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// isImageURL reports whether a URL is a direct image link.
func isImageURL(url string) bool {
	for _, suffix := range imageSuffixes {
		if strings.HasSuffix(url, suffix) {
			return true
		}
	}
	return false
}
