package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// shutdownTimeout bounds how long Stop waits for an in-flight tick.
const shutdownTimeout = 30 * time.Second

var c *cron.Cron

// startScheduler starts the cron jobs.
func startScheduler(b *Bot) {
	log.Println("Initializing scheduler...")
	c = cron.New()

	interval := viper.GetInt("autopost.interval")
	_, err := c.AddFunc(fmt.Sprintf("@every %ds", interval), func() {
		b.Engine.RunTick(context.Background())
	})
	if err != nil {
		log.Fatalf("Could not set up autopost cron job: %v", err)
	}

	_, err = c.AddFunc("@daily", b.Store.PruneSeenPosts)
	if err != nil {
		log.Fatalf("Could not set up cleanup cron job: %v", err)
	}

	c.Start()
	log.Printf("Autopost tick scheduled every %d seconds.", interval)
}

// stopScheduler stops the cron jobs and waits for an in-flight tick to finish.
func stopScheduler(b *Bot) {
	if c == nil {
		return
	}
	c.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := b.Engine.Stop(ctx); err != nil {
		log.Printf("Timed out waiting for in-flight tick: %v", err)
	}
	log.Println("Scheduler stopped.")
}
