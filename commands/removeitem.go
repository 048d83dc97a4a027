package commands

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

type RemoveItemCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *RemoveItemCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "removeitem",
		Description:              "Removes an item from the server shop.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
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

func (c *RemoveItemCommand) Handle(ctx *Context) {
	itemID := ctx.Int("item_id")

	if err := c.Store.RemoveShopItem(ctx.GuildID(), itemID); err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			ctx.ReplyEphemeral("❌ No item with that ID. Look IDs up with `/shop`.")
			return
		}
		c.Log.Error("Failed to remove shop item", "error", err, "guildID", ctx.GuildID(), "itemID", itemID)
		ctx.ReplyEphemeral("❌ Failed to remove the item.")
		return
	}

	ctx.Reply(fmt.Sprintf("✅ Removed item `%d` from the shop.", itemID))
}

func (c *RemoveItemCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *RemoveItemCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *RemoveItemCommand) GetComponentIDs() []string                                            { return nil }
func (c *RemoveItemCommand) GetCategory() string                                                  { return CategoryEconomy }
