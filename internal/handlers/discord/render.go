package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/codygriffin/cardboard/internal/cooldown"
	"github.com/codygriffin/cardboard/internal/models"
	"github.com/codygriffin/cardboard/internal/services/collection"
)

const (
	colorCommon    = 0x95a5a6
	colorUncommon  = 0x2ecc71
	colorRare      = 0x3498db
	colorEpic      = 0x9b59b6
	colorLegendary = 0xf1c40f
	colorNeutral   = 0x7289da
)

// rarityColor picks an embed color for a card rarity
func rarityColor(rarity string) int {
	switch strings.ToLower(rarity) {
	case "common":
		return colorCommon
	case "uncommon":
		return colorUncommon
	case "rare":
		return colorRare
	case "epic":
		return colorEpic
	case "legendary":
		return colorLegendary
	default:
		return colorNeutral
	}
}

// renderCardEmbed shows a single owned card with its image
func renderCardEmbed(title string, card *models.CardDefinition, instance *models.CardInstance) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("**%s**\n%s · %s", card.Name, card.Rarity, card.Set),
		Color:       rarityColor(card.Rarity),
		Footer: &discordgo.MessageEmbedFooter{
			Text: instance.InstanceID,
		},
	}

	if card.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{
			URL: card.ImageURL,
		}
	}

	return embed
}

// renderPackEmbed lists the contents of a freshly opened pack
func renderPackEmbed(cards []*collection.OwnedCard) *discordgo.MessageEmbed {
	var sb strings.Builder
	for _, owned := range cards {
		sb.WriteString(fmt.Sprintf("**%s** · %s (`%s`)\n",
			owned.Card.Name, owned.Card.Rarity, owned.Instance.InstanceID))
	}

	return &discordgo.MessageEmbed{
		Title:       "Pack opened!",
		Description: sb.String(),
		Color:       colorNeutral,
	}
}

// renderPickEmbed lists pick choices when no composite image is available
func renderPickEmbed(choices []*models.CardDefinition) *discordgo.MessageEmbed {
	var sb strings.Builder
	for n, card := range choices {
		sb.WriteString(fmt.Sprintf("%d. **%s** · %s\n", n+1, card.Name, card.Rarity))
	}

	return &discordgo.MessageEmbed{
		Title:       "Pick one of these three cards:",
		Description: sb.String(),
		Color:       colorNeutral,
	}
}

// renderCollectionEmbed shows a numbered inventory listing in acquisition
// order. The numbers are what trash and trade take as input.
func renderCollectionEmbed(cards []*collection.OwnedCard) *discordgo.MessageEmbed {
	var sb strings.Builder
	for n, owned := range cards {
		sb.WriteString(fmt.Sprintf("%d. **%s** · %s (`%s`)\n",
			n+1, owned.Card.Name, owned.Card.Rarity, owned.Instance.InstanceID))
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Your collection (%d cards)", len(cards)),
		Description: sb.String(),
		Color:       colorNeutral,
	}
}

// renderTradeOfferEmbed shows a pending trade offer
func renderTradeOfferEmbed(offer *models.TradeOffer, card *models.CardDefinition) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Trade offer",
		Description: fmt.Sprintf("<@%s> offers **%s** (`%s`) to <@%s>.",
			offer.SenderID, card.Name, offer.InstanceID, offer.ReceiverID),
		Color: rarityColor(card.Rarity),
		Footer: &discordgo.MessageEmbedFooter{
			Text: offer.ID,
		},
	}
}

// renderCooldowns formats the per-action remaining waits
func renderCooldowns(out *collection.GetCooldownsOutput) string {
	line := func(action string, remaining time.Duration) string {
		if remaining <= 0 {
			return fmt.Sprintf("**%s**: ready\n", action)
		}
		return fmt.Sprintf("**%s**: %s\n", action, cooldown.FormatRemaining(remaining))
	}

	var sb strings.Builder
	sb.WriteString(line("draw", out.DrawRemaining))
	sb.WriteString(line("pack", out.PackRemaining))
	sb.WriteString(line("pick", out.PickRemaining))
	return sb.String()
}

// renderHelpEmbed describes the commands using the configured cooldowns,
// so the help text never drifts from the actual gates.
func renderHelpEmbed(drawCooldown, packCooldown, pickCooldown time.Duration) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Card commands",
		Color: colorNeutral,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "/cards draw",
				Value: fmt.Sprintf("Draw one random card. Once every %s.", formatCooldown(drawCooldown)),
			},
			{
				Name:  "/cards pack",
				Value: fmt.Sprintf("Open a pack of %d cards. Once every %s.", collection.PackSize, formatCooldown(packCooldown)),
			},
			{
				Name:  "/cards pick",
				Value: fmt.Sprintf("Choose one of %d offered cards. Once every %s.", collection.PickSize, formatCooldown(pickCooldown)),
			},
			{
				Name:  "/cards collection",
				Value: "Show your cards, numbered in the order you got them.",
			},
			{
				Name:  "/cards trash <number>",
				Value: "Remove a card from your collection for good.",
			},
			{
				Name:  "/cards trade <user> <number>",
				Value: "Offer a card to another user. They accept or decline with the buttons.",
			},
			{
				Name:  "/cards cooldowns",
				Value: "Show how long until you can draw, open a pack, or pick again.",
			},
		},
	}
}

// formatCooldown renders a configured cooldown for the help text
func formatCooldown(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d%time.Minute == 0 {
		return fmt.Sprintf("%dm", int(d/time.Minute))
	}
	return cooldown.FormatRemaining(d)
}
