package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type ServerInfoCommand struct {
	Log interfaces.Logger
}

func (c *ServerInfoCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "serverinfo",
		Description:  "Shows information about this server.",
		DMPermission: boolPtr(false),
	}
}

func (c *ServerInfoCommand) Handle(ctx *Context) {
	s := ctx.Session
	guild, err := s.State.Guild(ctx.GuildID())
	if err != nil {
		guild, err = s.Guild(ctx.GuildID())
		if err != nil {
			c.Log.Error("Failed to fetch guild", "error", err, "guildID", ctx.GuildID())
			ctx.ReplyEphemeral("❌ Failed to fetch server information.")
			return
		}
	}

	createdAt, _ := discordgo.SnowflakeTimestamp(guild.ID)

	textChannels, voiceChannels := 0, 0
	for _, ch := range guild.Channels {
		switch ch.Type {
		case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews:
			textChannels++
		case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice:
			voiceChannels++
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:     guild.Name,
		Color:     0x5865f2,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("256")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
			{Name: "Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
			{Name: "Created", Value: fmt.Sprintf("<t:%d:D>", createdAt.Unix()), Inline: true},
			{Name: "Channels", Value: fmt.Sprintf("💬 %d / 🔊 %d", textChannels, voiceChannels), Inline: true},
			{Name: "Roles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
			{Name: "Boosts", Value: fmt.Sprintf("%d", guild.PremiumSubscriptionCount), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "ID: " + guild.ID},
	}
	ctx.ReplyEmbed(embed)
}

func (c *ServerInfoCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *ServerInfoCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *ServerInfoCommand) GetComponentIDs() []string                                            { return nil }
func (c *ServerInfoCommand) GetCategory() string                                                  { return CategoryUtility }
