package reddit

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"meme-bot/models"
)

// MockClient implements Fetcher with fake data, for local development
// without hitting reddit.com.
type MockClient struct{}

// NewMockClient returns a fetcher that fabricates posts.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// FetchNewest returns limit fake posts, newest first.
func (mc *MockClient) FetchNewest(ctx context.Context, subreddit string, limit int) ([]models.RedditPost, error) {
	return mc.fakePosts(subreddit, "new", limit), nil
}

// FetchBest returns limit fake posts, best first.
func (mc *MockClient) FetchBest(ctx context.Context, subreddit, window string, limit int) ([]models.RedditPost, error) {
	return mc.fakePosts(subreddit, "best", limit), nil
}

func (mc *MockClient) fakePosts(subreddit, kind string, limit int) []models.RedditPost {
	now := time.Now().Unix()
	var posts []models.RedditPost
	for i := 0; i < limit; i++ {
		posts = append(posts, models.RedditPost{
			ID:          fmt.Sprintf("mock_%s_%s_%d", subreddit, kind, i),
			Title:       fmt.Sprintf("[%s] Simulated %s post #%d", subreddit, kind, i),
			Author:      "simulated_user",
			Subreddit:   subreddit,
			ImageURL:    "https://localhost/mock-image.png",
			PostURL:     "https://localhost/mock-post",
			Score:       rand.Intn(500),
			NumComments: rand.Intn(50),
			CreatedUTC:  now - int64(i*60),
		})
	}
	return posts
}
