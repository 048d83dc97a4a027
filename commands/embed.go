package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

var embedColors = map[string]int{
	"blue":   0x5865f2,
	"green":  0x57f287,
	"yellow": 0xfee75c,
	"red":    0xed4245,
	"purple": 0x9b59b6,
	"grey":   0x95a5a6,
}

// EmbedCommand lets moderators post an announcement as an embed.
type EmbedCommand struct {
	Log interfaces.Logger
}

func (c *EmbedCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "embed",
		Description:              "Posts a custom embed in this channel.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageMessages),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "title", Description: "Embed title", Required: true, MaxLength: 256},
			{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "Embed body", Required: true, MaxLength: 2000},
			{Type: discordgo.ApplicationCommandOptionString, Name: "color", Description: "Hex like #ff5500 or blue/green/yellow/red/purple/grey", Required: false},
		},
	}
}

func (c *EmbedCommand) GetPrefixUsage() string {
	return `embed "<title>" "<description>" [#hex|color name]`
}

func (c *EmbedCommand) Handle(ctx *Context) {
	color, err := parseEmbedColor(ctx.String("color"))
	if err != nil {
		ctx.ReplyEphemeral("❌ Invalid color. Use a hex value like `#ff5500` or one of: blue, green, yellow, red, purple, grey.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       ctx.String("title"),
		Description: ctx.String("description"),
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: "by " + ctx.User().Username},
	}

	if _, err := ctx.Session.ChannelMessageSendEmbed(ctx.ChannelID(), embed); err != nil {
		c.Log.Error("Failed to post embed", "error", err, "channelID", ctx.ChannelID())
		ctx.ReplyEphemeral("❌ Failed to post the embed.")
		return
	}

	if ctx.IsSlash() {
		ctx.ReplyEphemeral("✅ Embed posted.")
	} else {
		// テキスト起動では元のコマンドメッセージを片付ける
		ctx.Session.ChannelMessageDelete(ctx.ChannelID(), ctx.TriggerMessageID())
	}
}

// parseEmbedColor は色名または16進表記を受け付けます。未指定はブランドカラー。
func parseEmbedColor(raw string) (int, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return embedColors["blue"], nil
	}
	if color, ok := embedColors[raw]; ok {
		return color, nil
	}
	hex := strings.TrimPrefix(raw, "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("色の形式が不正です: %q", raw)
	}
	color, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("色の形式が不正です: %q", raw)
	}
	return int(color), nil
}

func (c *EmbedCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *EmbedCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *EmbedCommand) GetComponentIDs() []string                                            { return nil }
func (c *EmbedCommand) GetCategory() string                                                  { return CategoryUtility }
