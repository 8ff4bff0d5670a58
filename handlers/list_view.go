package handlers

import (
	"fmt"

	"meme-bot/bot"
	"meme-bot/models"

	"github.com/bwmarrin/discordgo"
)

// listPageSize is the fixed number of entries per page of /reddit_autopost_list.
const listPageSize = 5

// paginate clamps page (1-based) into range and returns the slice bounds for
// it plus the total page count. A zero total yields (0, 0, 0).
func paginate(total, pageSize, page int) (start, end, maxPages int) {
	if total == 0 {
		return 0, 0, 0
	}
	maxPages = (total + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	} else if page > maxPages {
		page = maxPages
	}
	start = (page - 1) * pageSize
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end, maxPages
}

// clampPage returns page clamped to [1, maxPages].
func clampPage(page, maxPages int) int {
	if page < 1 {
		return 1
	}
	if page > maxPages {
		return maxPages
	}
	return page
}

// renderList builds the paginated list embed with its navigation and disable
// buttons. It returns nil data when the guild has no enabled configs.
func renderList(b *bot.Bot, guildID string, page int) (*discordgo.InteractionResponseData, error) {
	configs, err := b.Store.ListEnabledForGuild(guildID)
	if err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return nil, nil
	}

	start, end, maxPages := paginate(len(configs), listPageSize, page)
	page = clampPage(page, maxPages)
	pageItems := configs[start:end]

	embed := &discordgo.MessageEmbed{
		Title:       "Reddit Auto-Post Configuration",
		Description: fmt.Sprintf("Page %d/%d • %d subreddit(s) configured", page, maxPages, len(configs)),
		Color:       0x3498db, // blue
	}
	for idx, cfg := range pageItems {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%d. r/%s", start+idx+1, cfg.Subreddit),
			Value: fmt.Sprintf("Posts to: <#%s>", cfg.ChannelID),
		})
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: listComponents(pageItems, start, page, maxPages),
	}, nil
}

// listComponents builds the navigation row and one disable button per entry.
func listComponents(pageItems []models.SubredditConfig, start, page, maxPages int) []discordgo.MessageComponent {
	nav := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Previous",
				Style:    discordgo.SecondaryButton,
				CustomID: fmt.Sprintf("autopost_page:%d", page-1),
				Disabled: page == 1,
			},
			discordgo.Button{
				Label:    "Next",
				Style:    discordgo.SecondaryButton,
				CustomID: fmt.Sprintf("autopost_page:%d", page+1),
				Disabled: page == maxPages,
			},
		},
	}

	disable := discordgo.ActionsRow{}
	for idx, cfg := range pageItems {
		disable.Components = append(disable.Components, discordgo.Button{
			Label:    fmt.Sprintf("Disable #%d", start+idx+1),
			Style:    discordgo.DangerButton,
			CustomID: fmt.Sprintf("autopost_disable:%d:%s:%s", page, cfg.Subreddit, cfg.ChannelID),
		})
	}

	return []discordgo.MessageComponent{nav, disable}
}
