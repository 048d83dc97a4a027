package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type LevelsCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *LevelsCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "levels",
		Description:  "Shows the server's XP leaderboard.",
		DMPermission: boolPtr(false),
	}
}

func (c *LevelsCommand) Handle(ctx *Context) {
	users, err := c.Store.GetXPLeaderboard(ctx.GuildID(), 10)
	if err != nil {
		c.Log.Error("Failed to load XP leaderboard", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to load the leaderboard.")
		return
	}
	if len(users) == 0 {
		ctx.Reply("Nobody has earned XP yet. Start chatting!")
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	for i, u := range users {
		rank := fmt.Sprintf("`%2d.`", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		fmt.Fprintf(&b, "%s <@%s> Level %d (%d XP)\n", rank, u.UserID, u.Level, u.XP)
	}

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🏆 Level leaderboard",
		Description: b.String(),
		Color:       0xf1c40f,
	})
}

func (c *LevelsCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *LevelsCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *LevelsCommand) GetComponentIDs() []string                                            { return nil }
func (c *LevelsCommand) GetCategory() string                                                  { return CategoryLeveling }
