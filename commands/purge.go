package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type PurgeCommand struct {
	Log interfaces.Logger
}

func (c *PurgeCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "purge",
		Description:              "Bulk-deletes recent messages in this channel.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageMessages),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "count",
				Description: "Number of messages to delete (1-100)",
				Required:    true,
				MinValue:    &[]float64{1}[0],
				MaxValue:    100,
			},
		},
	}
}

func (c *PurgeCommand) Handle(ctx *Context) {
	count := int(ctx.Int("count"))

	// テキスト起動の場合はコマンドメッセージ自体も消す
	beforeID := ""
	if !ctx.IsSlash() {
		beforeID = ctx.TriggerMessageID()
	}

	msgs, err := ctx.Session.ChannelMessages(ctx.ChannelID(), count, beforeID, "", "")
	if err != nil {
		c.Log.Error("Failed to list messages for purge", "error", err, "channelID", ctx.ChannelID())
		ctx.ReplyEphemeral("❌ Failed to fetch messages.")
		return
	}

	ids := make([]string, 0, len(msgs)+1)
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	if beforeID != "" {
		ids = append(ids, beforeID)
	}

	if err := ctx.Session.ChannelMessagesBulkDelete(ctx.ChannelID(), ids); err != nil {
		c.Log.Error("Failed to bulk delete messages", "error", err, "channelID", ctx.ChannelID())
		ctx.ReplyEphemeral("❌ Failed to delete messages. Messages older than 14 days cannot be bulk-deleted.")
		return
	}

	result := fmt.Sprintf("🧹 Deleted %d messages.", len(msgs))
	if ctx.IsSlash() {
		ctx.ReplyEphemeral(result)
		return
	}
	// 起動メッセージも消えているため、返信形式ではなく通常送信にする
	if _, err := ctx.Session.ChannelMessageSend(ctx.ChannelID(), result); err != nil {
		c.Log.Warn("Failed to send purge result", "error", err, "channelID", ctx.ChannelID())
	}
}

func (c *PurgeCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *PurgeCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *PurgeCommand) GetComponentIDs() []string                                            { return nil }
func (c *PurgeCommand) GetCategory() string                                                  { return CategoryAdmin }
