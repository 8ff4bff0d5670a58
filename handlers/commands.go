package handlers

import (
	"log"

	"meme-bot/bot"
	"meme-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// CommandDispatcher is the central handler for all application command interactions.
// It performs permission checks and then dispatches the interaction to the appropriate handler.
func CommandDispatcher(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	auth, err := utils.NewAuth()
	if err != nil {
		log.Printf("Failed to create auth instance: %v", err)
		return
	}

	switch i.ApplicationCommandData().Name {
	case "reddit_autopost":
		if !auth.CanManageAutopost(i) {
			respondEphemeral(s, i, "🚫 You need the 'Manage Channels' permission to set up auto-posting.")
			return
		}
		HandleAutopost(b, s, i)
	case "reddit_autopost_list":
		HandleAutopostList(b, s, i)
	case "ping":
		HandlePing(s, i)
	default:
		respondEphemeral(s, i, "🚫 Unknown command.")
	}
}

// respondEphemeral sends a plain ephemeral reply to an interaction.
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}
