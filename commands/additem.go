package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dustin/go-humanize"

	"logiq/interfaces"
)

type AddItemCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *AddItemCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "additem",
		Description:              "Adds an item to the server shop.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Item name",
				Required:    true,
				MaxLength:   100,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "price",
				Description: "Price in coins",
				Required:    true,
				MinValue:    &[]float64{1}[0],
				MaxValue:    1000000000,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "description",
				Description: "Item description",
				MaxLength:   200,
			},
		},
	}
}

func (c *AddItemCommand) Handle(ctx *Context) {
	name := ctx.String("name")
	price := ctx.Int("price")
	description := ctx.String("description")

	itemID, err := c.Store.CreateShopItem(ctx.GuildID(), name, price, description)
	if err != nil {
		c.Log.Error("Failed to create shop item", "error", err, "guildID", ctx.GuildID(), "name", name)
		ctx.ReplyEphemeral("❌ Failed to add the item.")
		return
	}

	c.Log.Info("Shop item created", "guildID", ctx.GuildID(), "itemID", itemID, "name", name, "price", price)
	ctx.Reply(fmt.Sprintf("✅ Added **%s** to the shop for %s coins (ID: `%d`).", name, humanize.Comma(price), itemID))
}

func (c *AddItemCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *AddItemCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *AddItemCommand) GetComponentIDs() []string                                            { return nil }
func (c *AddItemCommand) GetCategory() string                                                  { return CategoryEconomy }
