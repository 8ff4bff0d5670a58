package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"meme-bot/bot"

	"github.com/bwmarrin/discordgo"
)

// HandleAutopost handles the logic for the /reddit_autopost command.
func HandleAutopost(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respondEphemeral(s, i, "This command can only be used in a server.")
		return
	}

	options := i.ApplicationCommandData().Options
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		optionMap[opt.Name] = opt
	}

	var rawSubreddit string
	if opt, ok := optionMap["subreddit"]; ok {
		rawSubreddit = opt.StringValue()
	}

	subreddit, ok := CanonicalSubreddit(rawSubreddit)
	if !ok {
		respondEphemeral(s, i, "Please provide a valid subreddit name (e.g., 'memes' or 'dankmemes').")
		return
	}

	// Post to the invoking channel unless another one was given.
	channelID := i.ChannelID
	if opt, ok := optionMap["channel"]; ok {
		channelID = opt.ChannelValue(nil).ID
	}

	cfg, err := b.Store.Enable(i.GuildID, subreddit, channelID, time.Now().Unix())
	if err != nil {
		log.Printf("Failed to enable autopost for r/%s: %v", subreddit, err)
		respondEphemeral(s, i, fmt.Sprintf("❌ Failed to enable auto-posting for r/%s.", subreddit))
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Reddit Auto-Post Enabled",
		Description: fmt.Sprintf("I'll automatically post new content from r/%s in <#%s>.", cfg.Subreddit, cfg.ChannelID),
		Color:       0x2ecc71, // green
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "What to Expect",
				Value: strings.Join([]string{
					"• New posts will be shared as they appear",
					"• Best posts will be shared occasionally",
					"• Only image posts will be shared",
					"• Duplicate posts will be skipped",
				}, "\n"),
			},
			{
				Name:  "Management",
				Value: "Use `/reddit_autopost_list` to view and manage your auto-post settings.",
			},
		},
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to autopost interaction: %v", err)
	}
}

// HandleAutopostList handles the logic for the /reddit_autopost_list command.
func HandleAutopostList(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respondEphemeral(s, i, "This command can only be used in a server.")
		return
	}

	page := 1
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "page" {
			page = int(opt.IntValue())
		}
	}

	data, err := renderList(b, i.GuildID, page)
	if err != nil {
		log.Printf("Failed to render autopost list: %v", err)
		respondEphemeral(s, i, "❌ Failed to load the auto-post configuration.")
		return
	}
	if data == nil {
		respondEphemeral(s, i, "No subreddits are currently configured for auto-posting in this server.")
		return
	}

	data.Flags = discordgo.MessageFlagsEphemeral
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Printf("Error responding to autopost list interaction: %v", err)
	}
}

// HandlePing handles the logic for the /ping command.
func HandlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Pong!",
		},
	})
	if err != nil {
		log.Printf("Error responding to ping: %v", err)
	}
}

// CanonicalSubreddit normalizes user input to the stored subreddit form:
// trimmed, lower-case, r/ and /r/ prefixes stripped. The second return value
// is false for empty or invalid names.
func CanonicalSubreddit(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "/r/")
	name = strings.TrimPrefix(name, "r/")
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
