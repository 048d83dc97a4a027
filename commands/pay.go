package commands

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

type PayCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *PayCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "pay",
		Description:  "Sends coins to another member.",
		DMPermission: boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to pay", Required: true},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Coins to send", Required: true, MinValue: &[]float64{1}[0]},
		},
	}
}

func (c *PayCommand) Handle(ctx *Context) {
	target := ctx.UserOpt("user")
	if target == nil {
		ctx.ReplyEphemeral("❌ User not found.")
		return
	}
	if target.ID == ctx.User().ID {
		ctx.ReplyEphemeral("❌ You can't pay yourself.")
		return
	}
	if target.Bot {
		ctx.ReplyEphemeral("❌ Bots don't need coins.")
		return
	}

	amount := ctx.Int("amount")
	if err := c.Store.TransferBalance(ctx.GuildID(), ctx.User().ID, target.ID, amount); err != nil {
		if errors.Is(err, storage.ErrInsufficientFunds) {
			ctx.ReplyEphemeral("❌ You don't have that many coins.")
			return
		}
		c.Log.Error("Failed to transfer balance", "error", err, "from", ctx.User().ID, "to", target.ID)
		ctx.ReplyEphemeral("❌ The transfer failed.")
		return
	}

	ctx.Reply(fmt.Sprintf("💸 Sent **%d** coins to **%s**.", amount, target.Username))
}

func (c *PayCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *PayCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *PayCommand) GetComponentIDs() []string                                            { return nil }
func (c *PayCommand) GetCategory() string                                                  { return CategoryEconomy }
