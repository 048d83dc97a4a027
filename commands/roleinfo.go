package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type RoleInfoCommand struct {
	Log interfaces.Logger
}

func (c *RoleInfoCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "roleinfo",
		Description:  "Shows information about a role.",
		DMPermission: boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Role to inspect", Required: true},
		},
	}
}

func (c *RoleInfoCommand) Handle(ctx *Context) {
	role := ctx.RoleOpt("role")
	if role == nil {
		ctx.ReplyEphemeral("❌ Role not found.")
		return
	}

	members := 0
	if guild, err := ctx.Session.State.Guild(ctx.GuildID()); err == nil {
		for _, m := range guild.Members {
			for _, id := range m.Roles {
				if id == role.ID {
					members++
					break
				}
			}
		}
	}

	createdAt, _ := discordgo.SnowflakeTimestamp(role.ID)

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "Role: " + role.Name,
		Color: role.Color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: role.ID, Inline: true},
			{Name: "Color", Value: fmt.Sprintf("#%06x", role.Color), Inline: true},
			{Name: "Position", Value: fmt.Sprintf("%d", role.Position), Inline: true},
			{Name: "Mentionable", Value: fmt.Sprintf("%v", role.Mentionable), Inline: true},
			{Name: "Hoisted", Value: fmt.Sprintf("%v", role.Hoist), Inline: true},
			{Name: "Members", Value: fmt.Sprintf("%d (cached)", members), Inline: true},
			{Name: "Created", Value: fmt.Sprintf("<t:%d:D>", createdAt.Unix()), Inline: true},
		},
	})
}

func (c *RoleInfoCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *RoleInfoCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *RoleInfoCommand) GetComponentIDs() []string                                            { return nil }
func (c *RoleInfoCommand) GetCategory() string                                                  { return CategoryRoles }
