package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/codygriffin/cardboard/internal/catalog"
	"github.com/codygriffin/cardboard/internal/cooldown"
	"github.com/codygriffin/cardboard/internal/images"
	"github.com/codygriffin/cardboard/internal/models"
	"github.com/codygriffin/cardboard/internal/repositories/guildconfig"
	"github.com/codygriffin/cardboard/internal/services/collection"
	"github.com/codygriffin/cardboard/internal/services/trade"
	"go.uber.org/zap"
)

const (
	// Component custom ID prefixes
	componentPick  = "pick"
	componentTrade = "trade"

	tradeActionAccept  = "accept"
	tradeActionDecline = "decline"
)

// CardsCommandConfig holds the dependencies for the /cards command
type CardsCommandConfig struct {
	CollectionService collection.Service
	TradeService      trade.Service
	Compositor        *images.Compositor
	GuildConfigRepo   guildconfig.Repository
	Logger            *zap.SugaredLogger

	// Configured cooldowns, for the help text
	DrawCooldown time.Duration
	PackCooldown time.Duration
	PickCooldown time.Duration
}

// CardsCommand handles the /cards command
type CardsCommand struct {
	BaseCommand
	collectionService collection.Service
	tradeService      trade.Service
	compositor        *images.Compositor
	guildConfigRepo   guildconfig.Repository
	logger            *zap.SugaredLogger

	drawCooldown time.Duration
	packCooldown time.Duration
	pickCooldown time.Duration
}

// NewCardsCommand creates the /cards command handler
func NewCardsCommand(cfg *CardsCommandConfig) *CardsCommand {
	return &CardsCommand{
		BaseCommand: BaseCommand{
			Name:        "cards",
			Description: "Collectible card commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "draw",
					Description: "Draw a random card",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "pack",
					Description: "Open a pack of five cards",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "pick",
					Description: "Pick one of three offered cards",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "collection",
					Description: "Show your collection",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "trash",
					Description: "Remove a card from your collection",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "number",
							Description: "Card number from your collection listing",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "trade",
					Description: "Offer one of your cards to another user",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Who receives the card",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "number",
							Description: "Card number from your collection listing",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "cooldowns",
					Description: "Show your remaining cooldowns",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "channel",
					Description: "Restrict the bot to this channel (requires Manage Server)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "help",
					Description: "How the card game works",
				},
			},
		},
		collectionService: cfg.CollectionService,
		tradeService:      cfg.TradeService,
		compositor:        cfg.Compositor,
		guildConfigRepo:   cfg.GuildConfigRepo,
		logger:            cfg.Logger,
		drawCooldown:      cfg.DrawCooldown,
		packCooldown:      cfg.PackCooldown,
		pickCooldown:      cfg.PickCooldown,
	}
}

// Handle processes a Discord interaction for the cards command
func (c *CardsCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	userID := interactionUserID(i)
	if userID == "" {
		return RespondWithError(s, i, "Could not determine who you are.")
	}

	switch data.Options[0].Name {
	case "draw":
		return c.handleDraw(s, i, userID)
	case "pack":
		return c.handlePack(s, i, userID)
	case "pick":
		return c.handlePick(s, i, userID)
	case "collection":
		return c.handleCollection(s, i, userID)
	case "trash":
		return c.handleTrash(s, i, userID, data.Options[0].Options)
	case "trade":
		return c.handleTrade(s, i, userID, data.Options[0].Options)
	case "cooldowns":
		return c.handleCooldowns(s, i, userID)
	case "channel":
		return c.handleChannel(s, i)
	case "help":
		return c.handleHelp(s, i)
	default:
		return errors.New("unknown subcommand")
	}
}

// HandleComponent processes button presses belonging to this command
func (c *CardsCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) error {
	userID := interactionUserID(i)
	if userID == "" {
		return RespondWithError(s, i, "Could not determine who you are.")
	}

	parts := strings.Split(customID, ":")
	switch parts[0] {
	case componentPick:
		return c.handlePickButton(s, i, userID, parts)
	case componentTrade:
		return c.handleTradeButton(s, i, userID, parts)
	default:
		return fmt.Errorf("unknown component %q", customID)
	}
}

func (c *CardsCommand) handleDraw(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	out, err := c.collectionService.Draw(context.Background(), &collection.DrawInput{
		UserID: userID,
	})
	if err != nil {
		return c.respondServiceError(s, i, err)
	}

	return RespondWithEmbed(s, i, renderCardEmbed("You drew a card!", out.Card, out.Instance))
}

func (c *CardsCommand) handlePack(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	out, err := c.collectionService.OpenPack(context.Background(), &collection.OpenPackInput{
		UserID: userID,
	})
	if err != nil {
		return c.respondServiceError(s, i, err)
	}

	return RespondWithEmbed(s, i, renderPackEmbed(out.Cards))
}

func (c *CardsCommand) handlePick(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	out, err := c.collectionService.StartPick(context.Background(), &collection.StartPickInput{
		UserID: userID,
	})
	if err != nil {
		return c.respondServiceError(s, i, err)
	}

	buttons := pickButtons(out.Choices)

	composite, err := c.compositor.Compose(context.Background(),
		out.Choices[0].ImageURL, out.Choices[1].ImageURL, out.Choices[2].ImageURL)
	if err != nil {
		// The pick is already active; only the image failed. Fall back
		// to a text listing.
		c.logger.Warnw("failed to compose pick image", "user_id", userID, "error", err)
		return RespondWithEmbedAndButtons(s, i, renderPickEmbed(out.Choices), buttons)
	}

	file := &discordgo.File{
		Name:        "pick.png",
		ContentType: "image/png",
		Reader:      bytes.NewReader(composite),
	}

	return RespondWithFileAndButtons(s, i, "Pick one of these three cards:", file, buttons)
}

func (c *CardsCommand) handlePickButton(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, parts []string) error {
	if len(parts) != 2 {
		return RespondWithError(s, i, "Malformed pick button.")
	}

	slot, err := strconv.Atoi(parts[1])
	if err != nil {
		return RespondWithError(s, i, "Malformed pick button.")
	}

	out, err := c.collectionService.ResolvePick(context.Background(), &collection.ResolvePickInput{
		UserID: userID,
		Slot:   slot,
	})
	if err != nil {
		return c.respondServiceError(s, i, err)
	}

	return RespondWithEmbed(s, i, renderCardEmbed("You picked a card!", out.Card, out.Instance))
}

func (c *CardsCommand) handleCollection(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	out, err := c.collectionService.GetCollection(context.Background(), &collection.GetCollectionInput{
		UserID: userID,
	})
	if err != nil {
		return c.respondServiceError(s, i, err)
	}

	if len(out.Cards) == 0 {
		return RespondWithEphemeralMessage(s, i, "Your collection is empty. Try `/cards draw`.")
	}

	return RespondWithEmbed(s, i, renderCollectionEmbed(out.Cards))
}

func (c *CardsCommand) handleTrash(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	number := findIntOption(opts, "number")

	out, err := c.collectionService.Trash(context.Background(), &collection.TrashInput{
		UserID: userID,
		Index:  int(number) - 1, // listing is 1-based
	})
	if err != nil {
		return c.respondServiceError(s, i, err)
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Trashed **%s** (`%s`).", out.Card.Name, out.Instance.InstanceID))
}

func (c *CardsCommand) handleTrade(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	var receiverID string
	for _, opt := range opts {
		if opt.Name == "user" {
			receiverID = opt.UserValue(nil).ID
		}
	}
	number := findIntOption(opts, "number")

	out, err := c.tradeService.ProposeTrade(context.Background(), &trade.ProposeTradeInput{
		SenderID:   userID,
		ReceiverID: receiverID,
		CardIndex:  int(number) - 1, // listing is 1-based
	})
	if err != nil {
		return c.respondServiceError(s, i, err)
	}

	// The offer rides entirely on the buttons; nothing is stored.
	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Accept",
			Style:    discordgo.SuccessButton,
			CustomID: tradeCustomID(tradeActionAccept, out.Offer),
		},
		discordgo.Button{
			Label:    "Decline",
			Style:    discordgo.DangerButton,
			CustomID: tradeCustomID(tradeActionDecline, out.Offer),
		},
	}

	return RespondWithEmbedAndButtons(s, i, renderTradeOfferEmbed(out.Offer, out.Card), buttons)
}

func (c *CardsCommand) handleTradeButton(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, parts []string) error {
	offer, accept, err := parseTradeCustomID(parts)
	if err != nil {
		return RespondWithError(s, i, "Malformed trade button.")
	}

	out, err := c.tradeService.ResolveTrade(context.Background(), &trade.ResolveTradeInput{
		Offer:   offer,
		ActorID: userID,
		Accept:  accept,
	})
	if err != nil {
		return c.respondServiceError(s, i, err)
	}

	if out.Offer.Status == models.TradeStatusDeclined {
		return RespondWithMessage(s, i, fmt.Sprintf("<@%s> declined the trade.", out.Offer.ReceiverID))
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Trade complete: **%s** (`%s`) went from <@%s> to <@%s>.",
		out.Card.Name, out.Offer.InstanceID, out.Offer.SenderID, out.Offer.ReceiverID))
}

func (c *CardsCommand) handleCooldowns(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	out, err := c.collectionService.GetCooldowns(context.Background(), &collection.GetCooldownsInput{
		UserID: userID,
	})
	if err != nil {
		return c.respondServiceError(s, i, err)
	}

	return RespondWithEphemeralMessage(s, i, renderCooldowns(out))
}

func (c *CardsCommand) handleChannel(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.GuildID == "" {
		return RespondWithEphemeralMessage(s, i, "This command only works in a server.")
	}

	if i.Member == nil || i.Member.Permissions&discordgo.PermissionManageServer == 0 {
		return RespondWithEphemeralMessage(s, i, "You need the Manage Server permission to do that.")
	}

	err := c.guildConfigRepo.SetChannel(context.Background(), &guildconfig.SetChannelInput{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
	})
	if err != nil {
		c.logger.Errorw("failed to set guild channel", "guild_id", i.GuildID, "error", err)
		return RespondWithError(s, i, "Could not save the channel restriction.")
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Card commands are now restricted to <#%s>.", i.ChannelID))
}

func (c *CardsCommand) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return RespondWithEmbed(s, i, renderHelpEmbed(c.drawCooldown, c.packCooldown, c.pickCooldown))
}

// respondServiceError maps service errors onto user-facing responses
func (c *CardsCommand) respondServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	var cooldownErr *collection.CooldownError
	if errors.As(err, &cooldownErr) {
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("You can %s again in **%s**.",
			cooldownErr.Action, cooldown.FormatRemaining(cooldownErr.Remaining)))
	}

	switch {
	case errors.Is(err, collection.ErrIndexOutOfRange), errors.Is(err, trade.ErrIndexOutOfRange):
		return RespondWithEphemeralMessage(s, i, "There is no card with that number. Check `/cards collection`.")
	case errors.Is(err, collection.ErrNoActivePick):
		return RespondWithEphemeralMessage(s, i, "You have no pick in progress. Start one with `/cards pick`.")
	case errors.Is(err, trade.ErrSelfTrade):
		return RespondWithEphemeralMessage(s, i, "You cannot trade with yourself.")
	case errors.Is(err, trade.ErrNotReceiver):
		return RespondWithEphemeralMessage(s, i, "This trade is not yours to answer.")
	case errors.Is(err, trade.ErrInstanceGone):
		return RespondWithEphemeralMessage(s, i, "That card is no longer in the sender's collection, so the trade was cancelled.")
	case errors.Is(err, catalog.ErrEmptyCatalog):
		return RespondWithError(s, i, "The card catalog is empty.")
	}

	c.logger.Errorw("command failed", "error", err)
	return RespondWithError(s, i, "Something went wrong. Try again in a moment.")
}

// findIntOption returns the named integer option, or 0 when absent
func findIntOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) int64 {
	for _, opt := range opts {
		if opt.Name == name {
			return opt.IntValue()
		}
	}
	return 0
}

// pickButtons builds one button per pick slot
func pickButtons(choices []*models.CardDefinition) []discordgo.MessageComponent {
	buttons := make([]discordgo.MessageComponent, 0, len(choices))
	for slot := range choices {
		buttons = append(buttons, discordgo.Button{
			Label:    fmt.Sprintf("Pick %d", slot+1),
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("%s:%d", componentPick, slot),
		})
	}
	return buttons
}

// tradeCustomID encodes a trade offer into a button custom ID
func tradeCustomID(action string, offer *models.TradeOffer) string {
	return strings.Join([]string{
		componentTrade, action, offer.SenderID, offer.ReceiverID, offer.InstanceID,
	}, ":")
}

// parseTradeCustomID decodes a trade button back into a pending offer
func parseTradeCustomID(parts []string) (*models.TradeOffer, bool, error) {
	if len(parts) != 5 {
		return nil, false, fmt.Errorf("malformed trade custom ID")
	}

	action := parts[1]
	if action != tradeActionAccept && action != tradeActionDecline {
		return nil, false, fmt.Errorf("unknown trade action %q", action)
	}

	offer := &models.TradeOffer{
		SenderID:   parts[2],
		ReceiverID: parts[3],
		InstanceID: parts[4],
		Status:     models.TradeStatusPending,
	}

	return offer, action == tradeActionAccept, nil
}
