package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

type RankCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *RankCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "rank",
		Description:  "Shows your level and XP progress.",
		DMPermission: boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to look up (defaults to you)", Required: false},
		},
	}
}

func (c *RankCommand) Handle(ctx *Context) {
	target := ctx.User()
	if ctx.Has("user") {
		if u := ctx.UserOpt("user"); u != nil {
			target = u
		}
	}

	user, err := c.Store.GetUser(ctx.GuildID(), target.ID)
	if err != nil {
		c.Log.Error("Failed to load user", "error", err, "guildID", ctx.GuildID(), "userID", target.ID)
		ctx.ReplyEphemeral("❌ Failed to load rank data.")
		return
	}

	curFloor := storage.XPForLevel(user.Level)
	nextFloor := storage.XPForLevel(user.Level + 1)
	progress := user.XP - curFloor
	needed := nextFloor - curFloor

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     fmt.Sprintf("📈 %s", target.Username),
		Color:     0x57f287,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("128")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: fmt.Sprintf("%d", user.Level), Inline: true},
			{Name: "XP", Value: fmt.Sprintf("%d / %d", progress, needed), Inline: true},
			{Name: "Progress", Value: progressBar(progress, needed), Inline: false},
		},
	})
}

// progressBar は次のレベルまでの進捗を10マスで表します。
func progressBar(progress, needed int) string {
	if needed <= 0 {
		return "`" + strings.Repeat("█", 10) + "`"
	}
	filled := progress * 10 / needed
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return "`" + strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + "`"
}

func (c *RankCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *RankCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *RankCommand) GetComponentIDs() []string                                            { return nil }
func (c *RankCommand) GetCategory() string                                                  { return CategoryLeveling }
