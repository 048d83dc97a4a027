package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type SlowmodeCommand struct {
	Log interfaces.Logger
}

func (c *SlowmodeCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "slowmode",
		Description:              "Sets this channel's slowmode interval.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageChannels),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "seconds",
				Description: "Seconds between messages, 0 disables (max 21600)",
				Required:    true,
				MinValue:    &[]float64{0}[0],
				MaxValue:    21600,
			},
		},
	}
}

func (c *SlowmodeCommand) Handle(ctx *Context) {
	seconds := int(ctx.Int("seconds"))

	if _, err := ctx.Session.ChannelEdit(ctx.ChannelID(), &discordgo.ChannelEdit{
		RateLimitPerUser: &seconds,
	}); err != nil {
		c.Log.Error("Failed to set slowmode", "error", err, "channelID", ctx.ChannelID())
		ctx.ReplyEphemeral("❌ Failed to change slowmode.")
		return
	}

	if seconds == 0 {
		ctx.Reply("🐇 Slowmode disabled.")
		return
	}
	ctx.Reply(fmt.Sprintf("🐢 Slowmode set to %d seconds.", seconds))
}

func (c *SlowmodeCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *SlowmodeCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *SlowmodeCommand) GetComponentIDs() []string                                            { return nil }
func (c *SlowmodeCommand) GetCategory() string                                                  { return CategoryModeration }
