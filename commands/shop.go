package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dustin/go-humanize"

	"logiq/interfaces"
)

type ShopCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *ShopCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "shop",
		Description:  "Browses the server shop.",
		DMPermission: boolPtr(false),
	}
}

func (c *ShopCommand) Handle(ctx *Context) {
	items, err := c.Store.GetShopItems(ctx.GuildID())
	if err != nil {
		c.Log.Error("Failed to load shop items", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to load the shop.")
		return
	}
	if len(items) == 0 {
		ctx.Reply("The shop is empty. Admins can stock it with `additem`.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🛒 Server shop",
		Color: 0x3498db,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Buy with: buy <item_id>",
		},
	}
	// 埋め込みのフィールドは25個まで
	for i, item := range items {
		if i == 25 {
			embed.Footer.Text = fmt.Sprintf("Showing 25 of %d items · Buy with: buy <item_id>", len(items))
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("#%d %s · %s coins", item.ItemID, item.Name, humanize.Comma(item.Price)),
			Value: itemDescription(item.Description),
		})
	}

	ctx.ReplyEmbed(embed)
}

func itemDescription(desc string) string {
	if desc == "" {
		return "*no description*"
	}
	return desc
}

func (c *ShopCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *ShopCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *ShopCommand) GetComponentIDs() []string                                            { return nil }
func (c *ShopCommand) GetCategory() string                                                  { return CategoryEconomy }
