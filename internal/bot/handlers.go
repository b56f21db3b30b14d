package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name == researchCommand {
		b.handleResearch(i)
	}
}

func (b *Bot) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	b.handleReaction(r.MessageReaction)
}

func (b *Bot) handleResearch(i *discordgo.InteractionCreate) {
	b.wg.Add(1)
	defer b.wg.Done()

	var query string
	if opts := i.ApplicationCommandData().Options; len(opts) > 0 {
		query = strings.TrimSpace(opts[0].StringValue())
	}
	if query == "" {
		_ = replyText(b.api, i, "Give me a message link or some text to research.")
		return
	}

	// Ack quickly
	if err := deferReply(b.api, i); err != nil {
		b.log.Errorw("deferring /research failed", "err", err)
		return
	}

	ctx, cancel := b.runContext()
	defer cancel()

	requestedBy := ""
	author := ""
	if u := interactionUser(i); u != nil {
		requestedBy = u.Username
		author = u.ID
	}

	// A link to a message in this guild is researched in place.
	if guildID, channelID, messageID, ok := ParseMessageLink(query); ok && guildID == i.GuildID {
		msg, err := b.api.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
		if err == nil {
			if msg.GuildID == "" {
				msg.GuildID = guildID
			}
			link := MessageLink(guildID, channelID, messageID)
			if _, err := editReplyEmbed(b.api, i, SourceEmbed(link, msg.Content, requestedBy)); err != nil {
				b.log.Warnw("editing /research reply failed", "err", err)
			}
			b.research(ctx, targetFromMessage(msg))
			return
		}
		b.log.Debugw("fetching linked message failed, researching the text instead", "link", query, "err", err)
	}

	reply, err := editReplyEmbed(b.api, i, QueryEmbed(query, requestedBy))
	if err != nil {
		b.log.Errorw("editing /research reply failed", "err", err)
		return
	}

	channelID := reply.ChannelID
	if channelID == "" {
		channelID = i.ChannelID
	}
	b.research(ctx, researchTarget{
		GuildID:   i.GuildID,
		ChannelID: channelID,
		MessageID: reply.ID,
		AuthorID:  author,
		Content:   query,
	})
}

func (b *Bot) handleReaction(r *discordgo.MessageReaction) {
	if !sameEmoji(r.Emoji.Name, b.cfg.TriggerEmoji) {
		return
	}
	if r.UserID == b.selfID() {
		return
	}

	b.wg.Add(1)
	defer b.wg.Done()

	ctx, cancel := b.runContext()
	defer cancel()

	msg, err := b.api.ChannelMessage(r.ChannelID, r.MessageID, discordgo.WithContext(ctx))
	if err != nil {
		b.log.Errorw("fetching reacted message failed", "channel", r.ChannelID, "message", r.MessageID, "err", err)
		return
	}
	if msg.GuildID == "" {
		msg.GuildID = r.GuildID
	}

	b.research(ctx, targetFromMessage(msg))
}
