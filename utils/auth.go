package utils

import (
	"meme-bot/models"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// Auth provides methods for authorization checks.
type Auth struct {
	config models.CommandsConfig
}

// NewAuth creates a new Auth instance with the loaded configuration.
func NewAuth() (*Auth, error) {
	var commandsConfig models.CommandsConfig
	if err := viper.UnmarshalKey("commands", &commandsConfig); err != nil {
		return nil, err
	}
	return &Auth{config: commandsConfig}, nil
}

// IsDeveloper checks if a user is a developer.
func (a *Auth) IsDeveloper(userID string) bool {
	for _, devID := range a.config.Auth.Developers {
		if userID == devID {
			return true
		}
	}
	return false
}

// CanManageAutopost checks whether the invoking member may change autopost
// settings: either the Manage Channels permission or a configured developer.
func (a *Auth) CanManageAutopost(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false // DM context, autopost is guild-only
	}
	if a.IsDeveloper(i.Member.User.ID) {
		return true
	}
	return i.Member.Permissions&discordgo.PermissionManageChannels != 0
}
