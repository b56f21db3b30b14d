package bot

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	// Claims outlive the thread auto-archive window.
	claimTTL           = 24 * time.Hour
	threadArchiveAfter = 1440 // minutes

	waitingMessage = "🔍 Researching with Grok... Please wait 10–30 seconds."
	doneMessage    = "✅ Grok research complete!"
)

type researchTarget struct {
	GuildID   string
	ChannelID string
	MessageID string
	AuthorID  string
	Content   string
}

func targetFromMessage(m *discordgo.Message) researchTarget {
	t := researchTarget{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		Content:   m.Content,
	}
	if m.Author != nil {
		t.AuthorID = m.Author.ID
	}
	return t
}

func (t researchTarget) link() string {
	return MessageLink(t.GuildID, t.ChannelID, t.MessageID)
}

// research opens a thread on the target message and posts the model's
// answer into it. Every failure after the thread exists is reported there.
func (b *Bot) research(ctx context.Context, t researchTarget) {
	log := b.log.With("guild", t.GuildID, "channel", t.ChannelID, "message", t.MessageID)

	if self := b.selfID(); self != "" && t.AuthorID == self {
		return
	}
	if strings.TrimSpace(t.Content) == "" {
		log.Debug("skipping research: message has no text")
		return
	}

	claimed, err := b.claims.Claim(ctx, t.MessageID, claimTTL)
	if err != nil {
		log.Warnw("claim store unavailable, researching anyway", "err", err)
	} else if !claimed {
		log.Debug("skipping research: already in progress or done")
		return
	}

	b.stats.started.Add(1)

	thread, err := b.api.MessageThreadStartComplex(t.ChannelID, t.MessageID, &discordgo.ThreadStart{
		Name:                ThreadName(t.Content),
		AutoArchiveDuration: threadArchiveAfter,
		Type:                discordgo.ChannelTypeGuildPublicThread,
	}, discordgo.WithContext(ctx))
	if err != nil {
		b.stats.failed.Add(1)
		log.Errorw("creating research thread failed", "err", err)
		if err := b.claims.Release(context.Background(), t.MessageID); err != nil {
			log.Warnw("releasing claim failed", "err", err)
		}
		return
	}
	log = log.With("thread", thread.ID)

	b.send(log, thread.ID, waitingMessage)

	link := t.link()
	answer, err := b.ai.Research(ctx, t.Content, link)
	if err != nil {
		b.stats.failed.Add(1)
		log.Errorw("research failed", "err", err)
		b.send(log, thread.ID, "❌ Error: "+err.Error())
		return
	}

	for _, part := range FormatAnswer(answer, link) {
		if _, err := b.api.ChannelMessageSend(thread.ID, part); err != nil {
			b.stats.failed.Add(1)
			log.Errorw("posting answer failed", "err", err)
			b.send(log, thread.ID, "❌ Error: "+err.Error())
			return
		}
	}

	b.send(log, thread.ID, doneMessage)
	b.stats.completed.Add(1)
	log.Info("research complete")
}

func (b *Bot) send(log *zap.SugaredLogger, channelID, content string) {
	if _, err := b.api.ChannelMessageSend(channelID, content); err != nil {
		log.Warnw("sending message failed", "err", err)
	}
}
