package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	goreddit "github.com/loganintech/go-reddit/v2/reddit"
	"golang.org/x/time/rate"

	"meme-bot/models"
)

// APIClient fetches posts through the authenticated Reddit OAuth API.
type APIClient struct {
	client  *goreddit.Client
	limiter *rate.Limiter
}

// NewAPIClient creates an authenticated client. The userAgent is required to
// comply with Reddit's API rules.
func NewAPIClient(id, secret, user, pass, userAgent string) (*APIClient, error) {
	creds := goreddit.Credentials{ID: id, Secret: secret, Username: user, Password: pass}

	client, err := goreddit.NewClient(creds, goreddit.WithUserAgent(userAgent))
	if err != nil {
		return nil, err
	}

	// OAuth API limit: ~60 reqs/min (safe buffer)
	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)

	return &APIClient{client: client, limiter: limiter}, nil
}

// FetchNewest returns up to limit posts from /new, newest first.
func (ac *APIClient) FetchNewest(ctx context.Context, subreddit string, limit int) ([]models.RedditPost, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	posts, _, err := ac.client.Subreddit.NewPosts(ctx, subreddit, &goreddit.ListOptions{Limit: limit})
	if err != nil {
		return nil, wrapAPIError(err)
	}
	return convertPosts(posts), nil
}

// FetchBest returns up to limit top posts for the given window.
func (ac *APIClient) FetchBest(ctx context.Context, subreddit, window string, limit int) ([]models.RedditPost, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	posts, _, err := ac.client.Subreddit.TopPosts(ctx, subreddit, &goreddit.ListPostOptions{
		ListOptions: goreddit.ListOptions{Limit: limit},
		Time:        window,
	})
	if err != nil {
		return nil, wrapAPIError(err)
	}
	return convertPosts(posts), nil
}

func convertPosts(posts []*goreddit.Post) []models.RedditPost {
	var result []models.RedditPost
	for _, p := range posts {
		imageURL := ""
		if isImageURL(p.URL) {
			imageURL = p.URL
		}

		created := int64(0)
		if p.Created != nil {
			created = p.Created.Unix()
		}

		result = append(result, models.RedditPost{
			ID:          p.ID,
			Title:       p.Title,
			Author:      p.Author,
			Subreddit:   p.SubredditName,
			ImageURL:    imageURL,
			PostURL:     redditURL + p.Permalink,
			Score:       p.Score,
			NumComments: p.NumberOfComments,
			CreatedUTC:  created,
		})
	}
	return result
}

func wrapAPIError(err error) error {
	var apiErr *goreddit.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		code := apiErr.Response.StatusCode
		if code == http.StatusNotFound || code == http.StatusForbidden {
			return fmt.Errorf("%w (status %d)", ErrSubredditNotFound, code)
		}
	}
	return fmt.Errorf("reddit api error: %w", err)
}
