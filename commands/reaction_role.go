package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

// ReactionRoleCommand binds an emoji reaction on a message to a role.
// The reaction events are handled in handlers/events.
type ReactionRoleCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *ReactionRoleCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "reactionrole",
		Description:              "Grants a role when members react to a message.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageRoles),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Adds a reaction role binding.",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "message_id", Description: "Message to watch", Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "emoji", Description: "Emoji, e.g. 🎮 or a custom emoji", Required: true},
					{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Role to grant", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Removes a reaction role binding.",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "message_id", Description: "Message the binding is on", Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "emoji", Description: "Emoji of the binding", Required: true},
				},
			},
		},
	}
}

func (c *ReactionRoleCommand) Handle(ctx *Context) {
	messageID := ctx.String("message_id")
	if !snowflakePattern.MatchString(messageID) {
		ctx.ReplyEphemeral("❌ That does not look like a message ID. Right-click a message and copy its ID.")
		return
	}
	emoji := normalizeEmoji(ctx.String("emoji"))

	switch ctx.Subcommand() {
	case "add":
		role := ctx.RoleOpt("role")
		if role == nil {
			ctx.ReplyEphemeral("❌ Role not found.")
			return
		}

		if err := c.Store.SetReactionRole(ctx.GuildID(), messageID, emoji, role.ID); err != nil {
			c.Log.Error("Failed to save reaction role", "error", err, "guildID", ctx.GuildID())
			ctx.ReplyEphemeral("❌ Failed to save the binding.")
			return
		}

		// ボットが先にリアクションを付けておくと押しやすい
		if err := ctx.Session.MessageReactionAdd(ctx.ChannelID(), messageID, emoji); err != nil {
			c.Log.Warn("Could not seed reaction", "error", err, "messageID", messageID)
		}

		ctx.Reply(fmt.Sprintf("✅ Reacting with %s on that message now grants <@&%s>.", ctx.String("emoji"), role.ID))

	case "remove":
		if _, err := c.Store.GetReactionRole(ctx.GuildID(), messageID, emoji); errors.Is(err, sql.ErrNoRows) {
			ctx.ReplyEphemeral("❌ No binding found for that message and emoji.")
			return
		}
		if err := c.Store.DeleteReactionRole(ctx.GuildID(), messageID, emoji); err != nil {
			c.Log.Error("Failed to delete reaction role", "error", err, "guildID", ctx.GuildID())
			ctx.ReplyEphemeral("❌ Failed to remove the binding.")
			return
		}
		ctx.Reply("🗑️ Reaction role binding removed.")
	}
}

// normalizeEmoji はカスタム絵文字の <:name:id> 表記を API が使う name:id 形式へ揃えます。
func normalizeEmoji(emoji string) string {
	emoji = strings.TrimSpace(emoji)
	if strings.HasPrefix(emoji, "<") && strings.HasSuffix(emoji, ">") {
		emoji = strings.Trim(emoji, "<>")
		emoji = strings.TrimPrefix(emoji, "a")
		emoji = strings.TrimPrefix(emoji, ":")
	}
	return emoji
}

func (c *ReactionRoleCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *ReactionRoleCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *ReactionRoleCommand) GetComponentIDs() []string                                            { return nil }
func (c *ReactionRoleCommand) GetCategory() string                                                  { return CategoryRoles }
