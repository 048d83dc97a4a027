package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/player"
)

type JoinCommand struct {
	Player *player.Manager
	Log    interfaces.Logger
}

func (c *JoinCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "join",
		Description:  "Joins your voice channel.",
		DMPermission: boolPtr(false),
	}
}

func (c *JoinCommand) Handle(ctx *Context) {
	vs, err := ctx.Session.State.VoiceState(ctx.GuildID(), ctx.User().ID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		ctx.ReplyEphemeral("❌ Join a voice channel first, then try again.")
		return
	}

	if err := c.Player.Join(ctx.GuildID(), vs.ChannelID); err != nil {
		c.Log.Error("Failed to join voice channel", "error", err, "guildID", ctx.GuildID(), "channelID", vs.ChannelID)
		ctx.ReplyEphemeral("❌ Couldn't join your voice channel.")
		return
	}

	ctx.Reply(fmt.Sprintf("🔊 Joined <#%s>.", vs.ChannelID))
}

func (c *JoinCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *JoinCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *JoinCommand) GetComponentIDs() []string                                            { return nil }
func (c *JoinCommand) GetCategory() string                                                  { return CategoryMusic }
