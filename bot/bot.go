package bot

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meme-bot/autopost"
	"meme-bot/command"
	"meme-bot/config"
	"meme-bot/database"
	"meme-bot/reddit"
	"meme-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// Bot encapsulates the bot's state.
type Bot struct {
	Session *discordgo.Session
	DB      *sql.DB
	Store   *database.Store
	Status  *database.StatusManager
	Engine  *autopost.Engine
}

// NewBot creates and initializes a new Bot instance.
func NewBot() (*Bot, error) {
	config.LoadConfig()
	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	db, err := database.InitDB(viper.GetString("autopost.dbPath"))
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	fetcher, err := reddit.NewFetcher()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error initializing reddit fetcher: %w", err)
	}

	store := database.NewStore(db)
	status := database.NewStatusManager(viper.GetString("autopost.statusFile"))
	engine := autopost.NewEngine(store, fetcher, autopost.NewDiscordSink(dg), status, engineOptions())

	return &Bot{
		Session: dg,
		DB:      db,
		Store:   store,
		Status:  status,
		Engine:  engine,
	}, nil
}

func engineOptions() autopost.Options {
	opts := autopost.DefaultOptions()
	if n := viper.GetInt("autopost.newestLimit"); n > 0 {
		opts.NewestLimit = n
	}
	if n := viper.GetInt("autopost.bestLimit"); n > 0 {
		opts.BestLimit = n
	}
	if w := viper.GetString("autopost.bestWindow"); w != "" {
		opts.BestWindow = w
	}
	if s := viper.GetInt("autopost.bestCooldown"); s > 0 {
		opts.BestCooldown = time.Duration(s) * time.Second
	}
	return opts
}

// Start opens the bot's session, registers slash commands and starts the scheduler.
func (b *Bot) Start(registerHandlers func(*Bot)) error {
	registerHandlers(b)

	err := b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	utils.InitLogger(b.Session)

	// Register slash commands
	for _, def := range command.GetCommandDefinitions() {
		_, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, "", def)
		if err != nil {
			log.Printf("Cannot create '%v' command: %v", def.Name, err)
		}
	}

	startScheduler(b)

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts the bot down, waiting for an in-flight tick.
func (b *Bot) Stop() {
	stopScheduler(b)
	if b.Session != nil {
		b.Session.Close()
	}
	if b.DB != nil {
		b.DB.Close()
	}
	fmt.Println("Bot stopped gracefully.")
}

// Run is the main entry point for the bot application.
func Run(registerHandlers func(*Bot)) {
	bot, err := NewBot()
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}

	if err := bot.Start(registerHandlers); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
}
