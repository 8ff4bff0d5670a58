package models

// RedditPost is the unified shape for a candidate post from the fetcher.
type RedditPost struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Subreddit   string `json:"subreddit"`
	ImageURL    string `json:"image_url"` // empty if the post carries no image
	PostURL     string `json:"post_url"`  // full permalink on reddit.com
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	CreatedUTC  int64  `json:"created_utc"`
}

// SeenPost records a post ID already delivered for a subreddit.
type SeenPost struct {
	Subreddit   string `db:"subreddit"`
	PostID      string `db:"post_id"`
	FirstSeenTS int64  `db:"first_seen_ts"`
}
