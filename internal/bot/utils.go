package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

func replyText(api discordAPI, i *discordgo.InteractionCreate, msg string) error {
	return api.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func deferReply(api discordAPI, i *discordgo.InteractionCreate) error {
	return api.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func editReplyEmbed(api discordAPI, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return api.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
}

// interactionUser returns the invoking user in guilds and DMs alike.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func sameEmoji(a, b string) bool {
	const vs16 = "\ufe0f"
	return strings.TrimSuffix(a, vs16) == strings.TrimSuffix(b, vs16)
}

func truncate(in string, max int) string {
	r := []rune(in)
	if len(r) <= max {
		return in
	}
	return string(r[:max-1]) + "…"
}
