package commands

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dustin/go-humanize"

	"logiq/interfaces"
	"logiq/storage"
)

type BuyCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *BuyCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "buy",
		Description:  "Buys an item from the server shop.",
		DMPermission: boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "item_id",
				Description: "Item ID shown in the shop",
				Required:    true,
				MinValue:    &[]float64{1}[0],
			},
		},
	}
}

func (c *BuyCommand) Handle(ctx *Context) {
	itemID := ctx.Int("item_id")

	item, err := c.Store.PurchaseItem(ctx.GuildID(), ctx.User().ID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrItemNotFound):
			ctx.ReplyEphemeral(fmt.Sprintf("❌ There is no item `%d` in the shop. Check `shop` for the list.", itemID))
		case errors.Is(err, storage.ErrInsufficientFunds):
			ctx.ReplyEphemeral("❌ You can't afford that item.")
		default:
			c.Log.Error("Failed to purchase item", "error", err, "guildID", ctx.GuildID(), "userID", ctx.User().ID, "itemID", itemID)
			ctx.ReplyEphemeral("❌ Purchase failed.")
		}
		return
	}

	ctx.Reply(fmt.Sprintf("🛍️ You bought **%s** for %s coins.", item.Name, humanize.Comma(item.Price)))
}

func (c *BuyCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *BuyCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *BuyCommand) GetComponentIDs() []string                                            { return nil }
func (c *BuyCommand) GetCategory() string                                                  { return CategoryEconomy }
