package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/codygriffin/cardboard/internal/images"
	"github.com/codygriffin/cardboard/internal/repositories/guildconfig"
	"github.com/codygriffin/cardboard/internal/services/collection"
	"github.com/codygriffin/cardboard/internal/services/trade"
	"go.uber.org/zap"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	cardsCmd   *CardsCommand
	guildRepo  guildconfig.Repository
	logger     *zap.SugaredLogger
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Collection service
	CollectionService collection.Service

	// Trade service
	TradeService trade.Service

	// Compositor for pick images
	Compositor *images.Compositor

	// Guild channel restrictions
	GuildConfigRepo guildconfig.Repository

	// Logger
	Logger *zap.SugaredLogger

	// Configured cooldowns, passed through to the help text
	DrawCooldown time.Duration
	PackCooldown time.Duration
	PickCooldown time.Duration
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.CollectionService == nil {
		return nil, errors.New("collection service cannot be nil")
	}

	if cfg.TradeService == nil {
		return nil, errors.New("trade service cannot be nil")
	}

	if cfg.Compositor == nil {
		return nil, errors.New("compositor cannot be nil")
	}

	if cfg.GuildConfigRepo == nil {
		return nil, errors.New("guild config repo cannot be nil")
	}

	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		guildRepo:  cfg.GuildConfigRepo,
		logger:     cfg.Logger,
		config:     cfg,
	}

	bot.cardsCmd = NewCardsCommand(&CardsCommandConfig{
		CollectionService: cfg.CollectionService,
		TradeService:      cfg.TradeService,
		Compositor:        cfg.Compositor,
		GuildConfigRepo:   cfg.GuildConfigRepo,
		Logger:            cfg.Logger,
		DrawCooldown:      cfg.DrawCooldown,
		PackCooldown:      cfg.PackCooldown,
		PickCooldown:      cfg.PickCooldown,
	})

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(b.cardsCmd); err != nil {
		return fmt.Errorf("failed to register cards command: %w", err)
	}

	b.logger.Infow("bot is running")
	return nil
}

// Stop removes registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Errorw("failed to delete command", "command", cmdName, "command_id", cmdID, "error", err)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register the command for that guild only.
	// Guild commands propagate instantly, which is what you want in dev.
	guildID := b.config.GuildID

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Infow("registered command", "command", cmd.GetName(), "command_id", createdCmd.ID, "guild_id", guildID)

	return nil
}

// handleInteraction routes Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		h, ok := b.commands[name]
		if !ok {
			return
		}

		if !b.channelAllowed(i) {
			return
		}

		if err := h.Handle(s, i); err != nil {
			b.logger.Errorw("command failed", "command", name, "error", err)
		}
	case discordgo.InteractionMessageComponent:
		if !b.channelAllowed(i) {
			return
		}

		customID := i.MessageComponentData().CustomID
		if err := b.cardsCmd.HandleComponent(s, i, customID); err != nil {
			b.logger.Errorw("component failed", "custom_id", customID, "error", err)
		}
	}
}

// channelAllowed enforces the per-guild channel restriction. The channel
// subcommand itself always passes so a server can rebind the restriction.
func (b *Bot) channelAllowed(i *discordgo.InteractionCreate) bool {
	if i.GuildID == "" {
		return true
	}

	if i.Type == discordgo.InteractionApplicationCommand {
		data := i.ApplicationCommandData()
		if len(data.Options) > 0 && data.Options[0].Name == "channel" {
			return true
		}
	}

	out, err := b.guildRepo.GetChannel(context.Background(), &guildconfig.GetChannelInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		if !errors.Is(err, guildconfig.ErrNotConfigured) {
			b.logger.Errorw("failed to load guild channel", "guild_id", i.GuildID, "error", err)
		}
		// No restriction configured, or we could not read it; let the
		// interaction through rather than locking everyone out.
		return true
	}

	if out.ChannelID == i.ChannelID {
		return true
	}

	msg := fmt.Sprintf("Card commands only work in <#%s> on this server.", out.ChannelID)
	if err := RespondWithEphemeralMessage(b.session, i, msg); err != nil {
		b.logger.Errorw("failed to respond with channel redirect", "error", err)
	}

	return false
}
