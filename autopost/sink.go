package autopost

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"meme-bot/models"
)

const (
	colorNewest = 0x3498db // blue
	colorBest   = 0xe67e22 // orange
)

// Lane identifies which selection strategy produced a post.
type Lane string

const (
	LaneNewest Lane = "NEW"
	LaneBest   Lane = "BEST"
)

// Indicator returns the visual tag shown on outgoing embeds.
func (l Lane) Indicator() string {
	switch l {
	case LaneNewest:
		return "🆕 NEW"
	case LaneBest:
		return "🏆 BEST"
	}
	return string(l)
}

// Sink delivers a selected post to a destination channel.
type Sink interface {
	Send(channelID string, post models.RedditPost, lane Lane) error
}

// DiscordSink sends posts as Discord embeds.
type DiscordSink struct {
	session *discordgo.Session
}

// NewDiscordSink creates a sink backed by a Discord session.
func NewDiscordSink(s *discordgo.Session) *DiscordSink {
	return &DiscordSink{session: s}
}

// Send posts the embed to the channel. A non-nil error means the post was not
// delivered and must not be marked seen.
func (ds *DiscordSink) Send(channelID string, post models.RedditPost, lane Lane) error {
	_, err := ds.session.ChannelMessageSendEmbed(channelID, BuildEmbed(post, lane))
	if err != nil {
		return fmt.Errorf("failed to send post %s to channel %s: %w", post.ID, channelID, err)
	}
	return nil
}

// BuildEmbed renders a post with the lane indicator, image and stats.
func BuildEmbed(post models.RedditPost, lane Lane) *discordgo.MessageEmbed {
	color := colorNewest
	if lane == LaneBest {
		color = colorBest
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s | %s", lane.Indicator(), post.Title),
		URL:   post.PostURL,
		Color: color,
		Image: &discordgo.MessageEmbedImage{URL: post.ImageURL},
		Author: &discordgo.MessageEmbedAuthor{
			Name: fmt.Sprintf("Posted by u/%s", post.Author),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👍 Upvotes", Value: fmt.Sprintf("%d", post.Score), Inline: true},
			{Name: "💬 Comments", Value: fmt.Sprintf("%d", post.NumComments), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s • %s UTC • r/%s",
				lane.Indicator(), time.Now().UTC().Format("2006-01-02 15:04:05"), post.Subreddit),
		},
	}
	return embed
}
