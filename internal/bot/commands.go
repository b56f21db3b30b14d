package bot

import "github.com/bwmarrin/discordgo"

const (
	researchCommand = "research"
	researchOption  = "message"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        researchCommand,
		Description: "Start a research thread about a message",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        researchOption,
				Description: "The message to research (message URL or content)",
				Required:    true,
			},
		},
	},
}

// registerCommands replaces the application's commands, scoped to
// GUILD_ID when set, and reports how many were synced.
func (b *Bot) registerCommands() (int, error) {
	appID := b.dg.State.User.ID

	synced, err := b.dg.ApplicationCommandBulkOverwrite(appID, b.cfg.GuildID, commands)
	if err != nil {
		return 0, err
	}
	return len(synced), nil
}
