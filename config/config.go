package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from a .env file, config.yaml and the
// environment. Environment variables override file settings of the same name
// (dots in keys map to underscores).
func LoadConfig() {
	// Load environment variables from .env, ignore a missing file.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, skipping.")
	}

	viper.SetConfigName("config") // config file name (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// A missing config file is fine, env vars and defaults apply.
			log.Printf("No config.yaml found, using environment variables and defaults.")
		} else {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}
}

func setDefaults() {
	viper.SetDefault("autopost.dbPath", "data/autopost.db")
	viper.SetDefault("autopost.statusFile", "data/autopost_status.json")
	viper.SetDefault("autopost.interval", 30)      // seconds between ticks
	viper.SetDefault("autopost.bestCooldown", 300) // seconds between best-lane posts
	viper.SetDefault("autopost.newestLimit", 10)
	viper.SetDefault("autopost.bestLimit", 100)
	viper.SetDefault("autopost.bestWindow", "day")
	viper.SetDefault("reddit.userAgent", "discord:meme-bot:v1.0")
}
