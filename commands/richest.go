package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/dustin/go-humanize"

	"logiq/interfaces"
)

type RichestCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *RichestCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "richest",
		Description:  "Shows the server's richest members.",
		DMPermission: boolPtr(false),
	}
}

func (c *RichestCommand) Handle(ctx *Context) {
	users, err := c.Store.GetBalanceLeaderboard(ctx.GuildID(), 10)
	if err != nil {
		c.Log.Error("Failed to load balance leaderboard", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to load the leaderboard.")
		return
	}
	if len(users) == 0 {
		ctx.Reply("Nobody has any coins yet.")
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	for i, u := range users {
		rank := fmt.Sprintf("`%2d.`", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		fmt.Fprintf(&b, "%s <@%s> %s coins\n", rank, u.UserID, humanize.Comma(u.Balance))
	}

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🤑 Richest members",
		Description: b.String(),
		Color:       0xf1c40f,
	})
}

func (c *RichestCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *RichestCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *RichestCommand) GetComponentIDs() []string                                            { return nil }
func (c *RichestCommand) GetCategory() string                                                  { return CategoryEconomy }
