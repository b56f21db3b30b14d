package bot

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	discordMessageLimit = 2000
	maxAnswerLength     = 1800 // leaves room for the footer
	chunkSize           = 1900

	truncatedSuffix = "\n... (truncated)"
	continuedSuffix = "\n\n...(continued)"

	threadNamePreview = 50
)

// FormatAnswer turns a model answer into Discord-sized messages, each at most
// 2000 characters, with the source link footer on the last one.
func FormatAnswer(answer, link string) []string {
	if runeLen(answer) > maxAnswerLength {
		answer = string([]rune(answer)[:maxAnswerLength]) + truncatedSuffix
	}

	footer := ""
	if link != "" {
		footer = "\n\nReplying to → " + link
	}

	if runeLen(answer)+runeLen(footer) <= discordMessageLimit {
		return []string{answer + footer}
	}

	parts := splitRunes(answer, chunkSize)
	out := make([]string, 0, len(parts)+1)
	for i, p := range parts {
		switch {
		case i < len(parts)-1:
			out = append(out, p+continuedSuffix)
		case runeLen(p)+runeLen(footer) <= discordMessageLimit:
			out = append(out, p+footer)
		default:
			// The footer does not fit next to the last chunk.
			out = append(out, p+continuedSuffix, strings.TrimPrefix(footer, "\n\n"))
		}
	}
	return out
}

func ThreadName(content string) string {
	return "Research: " + truncateRunes(content, threadNamePreview) + "..."
}

// MessageLink builds the jump URL for a message; DMs use "@me" as guild.
func MessageLink(guildID, channelID, messageID string) string {
	if guildID == "" {
		guildID = "@me"
	}
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
}

// ParseMessageLink extracts the ids from a message jump URL of the form
// https://discord.com/channels/<guild>/<channel>/<message>.
func ParseMessageLink(s string) (guildID, channelID, messageID string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "https://") {
		return "", "", "", false
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}

	parts := strings.Split(strings.TrimRight(s, "/"), "/")
	if len(parts) < 6 || parts[len(parts)-4] != "channels" {
		return "", "", "", false
	}
	guildID, channelID, messageID = parts[len(parts)-3], parts[len(parts)-2], parts[len(parts)-1]

	if guildID != "@me" && !isSnowflake(guildID) {
		return "", "", "", false
	}
	if !isSnowflake(channelID) || !isSnowflake(messageID) {
		return "", "", "", false
	}
	return guildID, channelID, messageID, true
}

func isSnowflake(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

func runeLen(s string) int {
	return len([]rune(s))
}

func splitRunes(s string, size int) []string {
	r := []rune(s)
	if len(r) == 0 {
		return []string{""}
	}
	out := make([]string, 0, (len(r)+size-1)/size)
	for i := 0; i < len(r); i += size {
		end := i + size
		if end > len(r) {
			end = len(r)
		}
		out = append(out, string(r[i:end]))
	}
	return out
}

func truncateRunes(in string, max int) string {
	r := []rune(in)
	if len(r) <= max {
		return in
	}
	return string(r[:max])
}
