package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"meme-bot/bot"
	"meme-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// ComponentDispatcher routes message component interactions (buttons) by
// their custom ID prefix.
func ComponentDispatcher(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, "autopost_page:"):
		handlePageButton(b, s, i, customID)
	case strings.HasPrefix(customID, "autopost_disable:"):
		handleDisableButton(b, s, i, customID)
	}
}

// handlePageButton re-renders the list at the requested page in place.
func handlePageButton(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	page, err := strconv.Atoi(strings.TrimPrefix(customID, "autopost_page:"))
	if err != nil {
		log.Printf("Malformed page button ID %q: %v", customID, err)
		return
	}
	updateList(b, s, i, page)
}

// handleDisableButton disables one config and re-renders the current page.
func handleDisableButton(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	// autopost_disable:<page>:<subreddit>:<channel_id>
	parts := strings.SplitN(strings.TrimPrefix(customID, "autopost_disable:"), ":", 3)
	if len(parts) != 3 {
		log.Printf("Malformed disable button ID %q", customID)
		return
	}
	page, err := strconv.Atoi(parts[0])
	if err != nil {
		log.Printf("Malformed disable button ID %q: %v", customID, err)
		return
	}
	subreddit, channelID := parts[1], parts[2]

	auth, err := utils.NewAuth()
	if err != nil {
		log.Printf("Failed to create auth instance: %v", err)
		return
	}
	if !auth.CanManageAutopost(i) {
		respondEphemeral(s, i, "🚫 You need the 'Manage Channels' permission to disable auto-posting.")
		return
	}

	ok, err := b.Store.Disable(i.GuildID, subreddit, channelID)
	if err != nil {
		log.Printf("Failed to disable autopost for r/%s: %v", subreddit, err)
		respondEphemeral(s, i, fmt.Sprintf("❌ Failed to disable auto-posting for r/%s.", subreddit))
		return
	}
	if !ok {
		respondEphemeral(s, i, fmt.Sprintf("r/%s is not configured for auto-posting here.", subreddit))
		return
	}

	log.Printf("Autopost disabled for r/%s in guild %s", subreddit, i.GuildID)
	updateList(b, s, i, page)
}

// updateList replaces the list message with a freshly rendered page.
func updateList(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, page int) {
	data, err := renderList(b, i.GuildID, page)
	if err != nil {
		log.Printf("Failed to render autopost list: %v", err)
		respondEphemeral(s, i, "❌ Failed to load the auto-post configuration.")
		return
	}

	var response *discordgo.InteractionResponse
	if data == nil {
		response = &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    "No subreddits are currently configured for auto-posting in this server.",
				Embeds:     []*discordgo.MessageEmbed{},
				Components: []discordgo.MessageComponent{},
			},
		}
	} else {
		response = &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: data,
		}
	}

	if err := s.InteractionRespond(i.Interaction, response); err != nil {
		log.Printf("Error updating autopost list: %v", err)
	}
}
