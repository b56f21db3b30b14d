package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Discord blurple
const uiColor = 0x5865F2

const embedDescriptionLimit = 4096

// QueryEmbed is the reply a research thread is started on when /research
// gets free text instead of a message link.
func QueryEmbed(query, requestedBy string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🔍 Research",
		Description: truncate(strings.TrimSpace(query), embedDescriptionLimit),
		Color:       uiColor,
		Footer:      requestedFooter(requestedBy),
	}
}

// SourceEmbed points the /research reply at the message being researched.
func SourceEmbed(link, preview, requestedBy string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🔍 Research started",
		URL:         link,
		Description: fmt.Sprintf("A research thread was opened on [this message](%s).\n> %s", link, truncate(preview, 200)),
		Color:       uiColor,
		Footer:      requestedFooter(requestedBy),
	}
}

func requestedFooter(by string) *discordgo.MessageEmbedFooter {
	by = strings.TrimSpace(by)
	if by == "" {
		return nil
	}
	return &discordgo.MessageEmbedFooter{Text: "Requested by @" + by}
}
