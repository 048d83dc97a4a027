package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type InventoryCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *InventoryCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "inventory",
		Description:  "Shows the items you own.",
		DMPermission: boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to inspect (defaults to you)",
			},
		},
	}
}

func (c *InventoryCommand) GetAliases() []string { return []string{"inv"} }

func (c *InventoryCommand) Handle(ctx *Context) {
	target := ctx.User()
	if u := ctx.UserOpt("user"); u != nil {
		target = u
	}

	inventory, err := c.Store.GetInventory(ctx.GuildID(), target.ID)
	if err != nil {
		c.Log.Error("Failed to load inventory", "error", err, "guildID", ctx.GuildID(), "userID", target.ID)
		ctx.ReplyEphemeral("❌ Failed to load the inventory.")
		return
	}
	if len(inventory) == 0 {
		if target.ID == ctx.User().ID {
			ctx.Reply("Your inventory is empty. Browse the `shop` to change that.")
		} else {
			ctx.Reply(fmt.Sprintf("**%s** doesn't own any items.", target.Username))
		}
		return
	}

	var b strings.Builder
	for _, inv := range inventory {
		fmt.Fprintf(&b, "**%s** ×%d\n", inv.Item.Name, inv.Quantity)
	}

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎒 %s's inventory", target.Username),
		Description: b.String(),
		Color:       0x9b59b6,
	})
}

func (c *InventoryCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *InventoryCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *InventoryCommand) GetComponentIDs() []string                                            { return nil }
func (c *InventoryCommand) GetCategory() string                                                  { return CategoryEconomy }
