package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"researchbot/internal/store"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type sentMessage struct {
	ChannelID string
	Content   string
}

// fakeDiscord records REST calls. Messages are looked up by channel/message id.
type fakeDiscord struct {
	mu sync.Mutex

	messages  map[string]*discordgo.Message
	threads   []*discordgo.ThreadStart
	threadOn  []string
	sent      []sentMessage
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit

	threadErr error
	sendErr   error
	nextID    int
}

func newFakeDiscord() *fakeDiscord {
	return &fakeDiscord{messages: make(map[string]*discordgo.Message)}
}

func (f *fakeDiscord) addMessage(m *discordgo.Message) {
	f.mu.Lock()
	f.messages[m.ChannelID+"/"+m.ID] = m
	f.mu.Unlock()
}

func (f *fakeDiscord) ChannelMessage(channelID, messageID string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[channelID+"/"+messageID]
	if !ok {
		return nil, errors.New("HTTP 404 Not Found")
	}
	cp := *m
	return &cp, nil
}

func (f *fakeDiscord) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, sentMessage{ChannelID: channelID, Content: content})
	f.nextID++
	return &discordgo.Message{ID: fmt.Sprintf("sent-%d", f.nextID), ChannelID: channelID, Content: content}, nil
}

func (f *fakeDiscord) MessageThreadStartComplex(channelID, messageID string, data *discordgo.ThreadStart, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.threadErr != nil {
		return nil, f.threadErr
	}
	f.threads = append(f.threads, data)
	f.threadOn = append(f.threadOn, channelID+"/"+messageID)
	return &discordgo.Channel{ID: "thread-" + messageID, ParentID: channelID, Name: data.Name}, nil
}

func (f *fakeDiscord) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeDiscord) InteractionResponseEdit(i *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, edit)
	return &discordgo.Message{ID: "reply-" + i.ID, ChannelID: i.ChannelID, GuildID: i.GuildID}, nil
}

func (f *fakeDiscord) sentTo(channelID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.sent {
		if m.ChannelID == channelID {
			out = append(out, m.Content)
		}
	}
	return out
}

type researchCall struct {
	Query string
	Link  string
}

type fakeResearcher struct {
	mu     sync.Mutex
	calls  []researchCall
	answer string
	err    error
}

func (f *fakeResearcher) Research(_ context.Context, query, link string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, researchCall{Query: query, Link: link})
	return f.answer, f.err
}

func newTestBot(t *testing.T, api discordAPI, ai researcher) *Bot {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	b := &Bot{
		cfg:    Config{GrokModel: "grok-4-1-fast-reasoning", TriggerEmoji: "🤖"},
		api:    api,
		ai:     ai,
		claims: store.NewMemory(),
		log:    zap.NewNop().Sugar(),
		ctx:    ctx,
		cancel: cancel,
	}
	b.setUser(&discordgo.User{ID: "bot", Username: "Researcher", Discriminator: "0"})
	return b
}
