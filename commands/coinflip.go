package commands

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

type CoinflipCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *CoinflipCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "coinflip",
		Description:  "Bets on a coin flip. Doubles your bet or loses it.",
		DMPermission: boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionString, Name: "side", Description: "Your call", Required: true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Heads", Value: "heads"},
					{Name: "Tails", Value: "tails"},
				},
			},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "bet", Description: "Coins to bet (default 10)", Required: false, MinValue: &[]float64{1}[0]},
		},
	}
}

func (c *CoinflipCommand) Handle(ctx *Context) {
	side := ctx.String("side")
	bet := ctx.Int("bet")
	if bet == 0 {
		bet = defaultGameBet
	}

	if _, err := c.Store.RemoveBalance(ctx.GuildID(), ctx.User().ID, bet); err != nil {
		if errors.Is(err, storage.ErrInsufficientFunds) {
			ctx.ReplyEphemeral("❌ You don't have enough coins for that bet.")
			return
		}
		c.Log.Error("Failed to take coinflip bet", "error", err, "userID", ctx.User().ID)
		ctx.ReplyEphemeral("❌ Something went wrong.")
		return
	}

	result := "heads"
	emoji := "🪙"
	if rand.Intn(2) == 1 {
		result = "tails"
	}

	if result == side {
		newBalance, err := c.Store.AddBalance(ctx.GuildID(), ctx.User().ID, bet*2)
		if err != nil {
			c.Log.Error("Failed to pay coinflip winnings", "error", err, "userID", ctx.User().ID)
		}
		ctx.Reply(fmt.Sprintf("%s It's **%s**! You won **%d** coins. Balance: %d", emoji, result, bet, newBalance))
		return
	}

	u, _ := c.Store.GetUser(ctx.GuildID(), ctx.User().ID)
	balance := int64(0)
	if u != nil {
		balance = u.Balance
	}
	ctx.Reply(fmt.Sprintf("%s It's **%s**. You lost **%d** coins. Balance: %d", emoji, result, bet, balance))
}

func (c *CoinflipCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *CoinflipCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *CoinflipCommand) GetComponentIDs() []string                                            { return nil }
func (c *CoinflipCommand) GetCategory() string                                                  { return CategoryGames }
