package command

import "github.com/bwmarrin/discordgo"

// AutopostCommand defines the structure for the /reddit_autopost command.
type AutopostCommand struct{}

// Definition returns the application command definition.
func (c *AutopostCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "reddit_autopost",
		Description: "Enable automatic posting of new/best content from a subreddit",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "subreddit",
				Description: "Subreddit name (without r/)",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
			},
			{
				Name:        "channel",
				Description: "Channel to post content in (defaults to current channel)",
				Type:        discordgo.ApplicationCommandOptionChannel,
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildText,
				},
				Required: false,
			},
		},
	}
}

// AutopostListCommand defines the structure for the /reddit_autopost_list command.
type AutopostListCommand struct{}

// Definition returns the application command definition.
func (c *AutopostListCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "reddit_autopost_list",
		Description: "List all subreddits configured for auto-posting",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "page",
				Description: "Page to show",
				Type:        discordgo.ApplicationCommandOptionInteger,
				Required:    false,
			},
		},
	}
}

// PingCommand defines the structure for the /ping command.
type PingCommand struct{}

// Definition returns the application command definition.
func (c *PingCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Responds with Pong!",
	}
}
