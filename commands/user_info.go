package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type UserInfoCommand struct {
	Log interfaces.Logger
}

func (c *UserInfoCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "userinfo",
		Description:  "Shows information about a server member.",
		DMPermission: boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "User to inspect (defaults to you)", Required: false},
		},
	}
}

func (c *UserInfoCommand) Handle(ctx *Context) {
	user := ctx.User()
	if ctx.Has("user") {
		if u := ctx.UserOpt("user"); u != nil {
			user = u
		}
	}

	s := ctx.Session
	member, err := s.State.Member(ctx.GuildID(), user.ID)
	if err != nil {
		member, err = s.GuildMember(ctx.GuildID(), user.ID)
		if err != nil {
			c.Log.Error("Failed to fetch member", "error", err, "userID", user.ID)
			ctx.ReplyEphemeral("❌ That user is not a member of this server.")
			return
		}
	}

	createdAt, _ := discordgo.SnowflakeTimestamp(user.ID)

	roles := make([]string, 0, len(member.Roles))
	for _, id := range member.Roles {
		roles = append(roles, fmt.Sprintf("<@&%s>", id))
	}
	roleList := "None"
	if len(roles) > 0 {
		roleList = strings.Join(roles, " ")
		if len(roleList) > 1024 {
			roleList = fmt.Sprintf("%d roles", len(roles))
		}
	}

	name := user.Username
	if member.Nick != "" {
		name = fmt.Sprintf("%s (%s)", member.Nick, user.Username)
	}

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     name,
		Color:     0x7289da,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("256")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: user.ID, Inline: true},
			{Name: "Bot", Value: fmt.Sprintf("%v", user.Bot), Inline: true},
			{Name: "Created", Value: fmt.Sprintf("<t:%d:R>", createdAt.Unix()), Inline: true},
			{Name: "Joined", Value: fmt.Sprintf("<t:%d:R>", member.JoinedAt.Unix()), Inline: true},
			{Name: "Roles", Value: roleList, Inline: false},
		},
	})
}

func (c *UserInfoCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *UserInfoCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *UserInfoCommand) GetComponentIDs() []string                                            { return nil }
func (c *UserInfoCommand) GetCategory() string                                                  { return CategoryUtility }
