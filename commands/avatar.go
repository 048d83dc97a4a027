package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type AvatarCommand struct{}

func (c *AvatarCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "avatar",
		Description: "Shows a user's avatar in full size.",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "User to show (defaults to you)", Required: false},
		},
	}
}

func (c *AvatarCommand) Handle(ctx *Context) {
	user := ctx.User()
	if ctx.Has("user") {
		if u := ctx.UserOpt("user"); u != nil {
			user = u
		}
	}

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's avatar", user.Username),
		Color: 0x5865f2,
		Image: &discordgo.MessageEmbedImage{URL: user.AvatarURL("1024")},
	})
}

func (c *AvatarCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *AvatarCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *AvatarCommand) GetComponentIDs() []string                                            { return nil }
func (c *AvatarCommand) GetCategory() string                                                  { return CategoryUtility }
