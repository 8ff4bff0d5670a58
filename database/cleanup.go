package database

import (
	"fmt"
	"log"

	"meme-bot/utils"
)

// seenPostsPerSubreddit caps the seen-post history retained per subreddit.
// Older rows only matter while the post can still show up in a newest/top
// listing, so the tail is safe to drop.
const seenPostsPerSubreddit = 500

// PruneSeenPosts keeps the newest seenPostsPerSubreddit seen-post rows per
// subreddit and deletes the rest. Intended to run from a daily cron job.
func (s *Store) PruneSeenPosts() {
	log.Println("Starting cleanup of old seen posts...")

	res, err := s.db.Exec(`
        DELETE FROM seen_posts WHERE (subreddit, post_id) NOT IN (
            SELECT subreddit, post_id FROM (
                SELECT subreddit, post_id,
                       ROW_NUMBER() OVER (PARTITION BY subreddit ORDER BY first_seen_ts DESC) AS rn
                FROM seen_posts
            ) WHERE rn <= ?
        )`, seenPostsPerSubreddit)
	if err != nil {
		log.Printf("Error pruning seen posts: %v", err)
		utils.Error("Cleanup", "PruneSeenPosts", err.Error())
		return
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		log.Printf("Error getting rows affected for seen post cleanup: %v", err)
		return
	}

	log.Printf("Successfully cleaned up %d old seen posts", rowsAffected)
	if rowsAffected > 0 {
		utils.Info("Cleanup", "PruneSeenPosts", fmt.Sprintf("Successfully cleaned up %d old seen posts", rowsAffected))
	}
}
