package bot

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"researchbot/internal/grok"
	"researchbot/internal/store"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const researchTimeout = 3 * time.Minute

// discordAPI is the REST surface used outside of gateway setup.
// *discordgo.Session satisfies it.
type discordAPI interface {
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageThreadStartComplex(channelID, messageID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type researcher interface {
	Research(ctx context.Context, query, messageLink string) (string, error)
}

type Bot struct {
	cfg    Config
	dg     *discordgo.Session
	api    discordAPI
	ai     researcher
	claims store.Claimer
	log    *zap.SugaredLogger

	mu    sync.RWMutex
	user  *discordgo.User
	ready atomic.Bool
	stats researchStats

	// ctx is cancelled by Close to abort in-flight research.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type researchStats struct {
	started   atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
}

func New(cfg Config, claims store.Claimer, log *zap.SugaredLogger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{
		cfg:    cfg,
		dg:     dg,
		api:    dg,
		ai:     grok.New(cfg.GrokAPIURL, cfg.GrokAPIKey, cfg.GrokModel, grok.WithTimeout(cfg.GrokTimeout)),
		claims: claims,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	return b, nil
}

func (b *Bot) Start() error {
	// Message content is needed to research the text of reacted messages.
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent
	b.dg.ShouldReconnectOnError = true

	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onResumed)
	b.dg.AddHandler(b.onDisconnect)
	b.dg.AddHandler(b.onInteractionCreate)
	b.dg.AddHandler(b.onReactionAdd)

	return b.dg.Open()
}

// Close disconnects from the gateway and waits for in-flight research.
func (b *Bot) Close() error {
	err := b.dg.Close()
	b.ready.Store(false)
	b.cancel()
	b.wg.Wait()
	return err
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.setUser(r.User)
	b.ready.Store(true)
	b.log.Infow("bot is online", "user", r.User.String(), "model", b.cfg.GrokModel)

	synced, err := b.registerCommands()
	if err != nil {
		b.log.Errorw("syncing slash commands failed", "err", err)
		return
	}
	b.log.Infof("Synced %d slash commands", synced)
}

func (b *Bot) onResumed(s *discordgo.Session, r *discordgo.Resumed) {
	b.ready.Store(true)
	b.log.Info("discord connection resumed")
}

func (b *Bot) onDisconnect(s *discordgo.Session, d *discordgo.Disconnect) {
	b.ready.Store(false)
	b.log.Warn("discord disconnected, will attempt to reconnect")
}

func (b *Bot) setUser(u *discordgo.User) {
	b.mu.Lock()
	b.user = u
	b.mu.Unlock()
}

func (b *Bot) selfID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.user == nil {
		return ""
	}
	return b.user.ID
}

// Status implements StatusReporter.
func (b *Bot) Status() Status {
	st := Status{
		Ready: b.ready.Load(),
		Model: b.cfg.GrokModel,
		Research: ResearchCounts{
			Started:   b.stats.started.Load(),
			Completed: b.stats.completed.Load(),
			Failed:    b.stats.failed.Load(),
		},
	}

	b.mu.RLock()
	if b.user != nil {
		name := b.user.String()
		st.Bot = &name
	}
	b.mu.RUnlock()
	return st
}

// runContext bounds one research run and is cancelled when the bot closes.
func (b *Bot) runContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(b.ctx, researchTimeout)
}
