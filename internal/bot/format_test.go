package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAnswer_Short(t *testing.T) {
	got := FormatAnswer("hello", "https://discord.com/channels/1/2/3")
	assert.Equal(t, []string{"hello\n\nReplying to → https://discord.com/channels/1/2/3"}, got)
}

func TestFormatAnswer_NoLink(t *testing.T) {
	assert.Equal(t, []string{"hello"}, FormatAnswer("hello", ""))
}

func TestFormatAnswer_Truncates(t *testing.T) {
	got := FormatAnswer(strings.Repeat("é", 2500), "")
	require.Len(t, got, 1)
	assert.True(t, strings.HasSuffix(got[0], "\n... (truncated)"))
	assert.Equal(t, 1800+runeLen("\n... (truncated)"), runeLen(got[0]))
}

func TestFormatAnswer_FooterOverflow(t *testing.T) {
	link := "https://discord.com/channels/1/2/" + strings.Repeat("9", 300)
	got := FormatAnswer(strings.Repeat("x", 1800), link)

	require.Len(t, got, 2)
	assert.Equal(t, strings.Repeat("x", 1800)+"\n\n...(continued)", got[0])
	assert.Equal(t, "Replying to → "+link, got[1])
	for _, part := range got {
		assert.LessOrEqual(t, runeLen(part), discordMessageLimit)
	}
}

func TestSplitRunes(t *testing.T) {
	assert.Equal(t, []string{"ab", "cd", "e"}, splitRunes("abcde", 2))
	assert.Equal(t, []string{"日本", "語"}, splitRunes("日本語", 2))
	assert.Equal(t, []string{""}, splitRunes("", 3))
}

func TestThreadName(t *testing.T) {
	assert.Equal(t, "Research: short...", ThreadName("short"))

	long := strings.Repeat("ß", 80)
	assert.Equal(t, "Research: "+strings.Repeat("ß", 50)+"...", ThreadName(long))
}

func TestMessageLink(t *testing.T) {
	assert.Equal(t, "https://discord.com/channels/1/2/3", MessageLink("1", "2", "3"))
	assert.Equal(t, "https://discord.com/channels/@me/2/3", MessageLink("", "2", "3"))
}

func TestParseMessageLink(t *testing.T) {
	tests := []struct {
		in                  string
		guild, chann, msgID string
		ok                  bool
	}{
		{"https://discord.com/channels/111/222/333", "111", "222", "333", true},
		{"https://ptb.discord.com/channels/111/222/333/", "111", "222", "333", true},
		{"https://discord.com/channels/@me/222/333", "@me", "222", "333", true},
		{"https://discord.com/channels/111/222/333?foo=bar", "111", "222", "333", true},
		{"  https://discord.com/channels/111/222/333  ", "111", "222", "333", true},
		{"http://discord.com/channels/111/222/333", "", "", "", false},
		{"https://discord.com/channels/111/222", "", "", "", false},
		{"https://discord.com/channels/111/abc/333", "", "", "", false},
		{"https://example.com/a/b/c", "", "", "", false},
		{"what is a snowflake", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g, c, m, ok := ParseMessageLink(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.guild, g)
			assert.Equal(t, tt.chann, c)
			assert.Equal(t, tt.msgID, m)
		})
	}
}
