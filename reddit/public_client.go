package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"meme-bot/models"
)

const redditURL = "https://www.reddit.com"

// PublicClient fetches posts from the unauthenticated reddit.com JSON
// endpoints. Reddit requires a descriptive User-Agent for these.
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	baseURL    string
}

type listingResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				ID          string  `json:"id"`
				Title       string  `json:"title"`
				Author      string  `json:"author"`
				Subreddit   string  `json:"subreddit"`
				URL         string  `json:"url"`
				Permalink   string  `json:"permalink"`
				Thumbnail   string  `json:"thumbnail"`
				IsGallery   bool    `json:"is_gallery"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// NewPublicClient creates an unauthenticated client.
func NewPublicClient(userAgent string) (*PublicClient, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("a user agent is required for public reddit access")
	}
	return &PublicClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Public JSON limit: 1 req / 2 seconds (stricter than the OAuth API)
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		userAgent: userAgent,
		baseURL:   redditURL,
	}, nil
}

// FetchNewest returns up to limit posts from /new, newest first.
func (pc *PublicClient) FetchNewest(ctx context.Context, subreddit string, limit int) ([]models.RedditPost, error) {
	url := fmt.Sprintf("%s/r/%s/new.json?limit=%d", pc.baseURL, subreddit, limit)
	return pc.fetchListing(ctx, url)
}

// FetchBest returns up to limit posts from /top for the given window.
func (pc *PublicClient) FetchBest(ctx context.Context, subreddit, window string, limit int) ([]models.RedditPost, error) {
	url := fmt.Sprintf("%s/r/%s/top.json?limit=%d&t=%s", pc.baseURL, subreddit, limit, window)
	return pc.fetchListing(ctx, url)
}

func (pc *PublicClient) fetchListing(ctx context.Context, url string) ([]models.RedditPost, error) {
	if err := pc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", pc.userAgent)

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound, http.StatusForbidden:
		// Banned and private subreddits come back as 404/403.
		return nil, fmt.Errorf("%w (status %d)", ErrSubredditNotFound, resp.StatusCode)
	default:
		return nil, fmt.Errorf("reddit returned status %d", resp.StatusCode)
	}

	var listing listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode reddit listing: %w", err)
	}

	var posts []models.RedditPost
	for _, child := range listing.Data.Children {
		d := child.Data
		imageURL := ""
		switch {
		case isImageURL(d.URL):
			imageURL = d.URL
		case d.IsGallery || strings.Contains(d.URL, "gallery"):
			// Galleries only expose a thumbnail through the listing endpoint.
			if strings.HasPrefix(d.Thumbnail, "http") {
				imageURL = d.Thumbnail
			}
		}

		posts = append(posts, models.RedditPost{
			ID:          d.ID,
			Title:       d.Title,
			Author:      d.Author,
			Subreddit:   d.Subreddit,
			ImageURL:    imageURL,
			PostURL:     redditURL + d.Permalink,
			Score:       d.Score,
			NumComments: d.NumComments,
			CreatedUTC:  int64(d.CreatedUTC),
		})
	}
	return posts, nil
}
