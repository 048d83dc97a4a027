package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type BalanceCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *BalanceCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "balance",
		Description:  "Shows a member's coin balance.",
		DMPermission: boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to look up (defaults to you)", Required: false},
		},
	}
}

func (c *BalanceCommand) GetAliases() []string { return []string{"bal"} }

func (c *BalanceCommand) Handle(ctx *Context) {
	target := ctx.User()
	if ctx.Has("user") {
		if u := ctx.UserOpt("user"); u != nil {
			target = u
		}
	}

	user, err := c.Store.GetUser(ctx.GuildID(), target.ID)
	if err != nil {
		c.Log.Error("Failed to load balance", "error", err, "userID", target.ID)
		ctx.ReplyEphemeral("❌ Something went wrong.")
		return
	}

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       fmt.Sprintf("💰 %s's wallet", target.Username),
		Description: fmt.Sprintf("**%d** coins", user.Balance),
		Color:       0xf1c40f,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("128")},
	})
}

func (c *BalanceCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *BalanceCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *BalanceCommand) GetComponentIDs() []string                                            { return nil }
func (c *BalanceCommand) GetCategory() string                                                  { return CategoryEconomy }
