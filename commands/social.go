package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

// SocialCommand manages RSS/Atom feed subscriptions announced in a channel.
type SocialCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *SocialCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "social",
		Description:              "Manages feed subscriptions for this server.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Subscribes a channel to an RSS/Atom feed.",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "url", Description: "Feed URL", Required: true},
					{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Channel to announce new items in", ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText}, Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Removes a subscription by ID.",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "Subscription ID from /social list", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Lists this server's subscriptions.",
			},
		},
	}
}

func (c *SocialCommand) Handle(ctx *Context) {
	switch ctx.Subcommand() {
	case "add":
		c.add(ctx)
	case "remove":
		c.remove(ctx)
	case "list":
		c.list(ctx)
	}
}

func (c *SocialCommand) add(ctx *Context) {
	url := ctx.String("url")
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		ctx.ReplyEphemeral("❌ The feed URL must start with http:// or https://.")
		return
	}
	ch := ctx.ChannelOpt("channel")
	if ch == nil {
		ctx.ReplyEphemeral("❌ Channel not found.")
		return
	}

	id, err := c.Store.AddSocialFeed(ctx.GuildID(), url, ch.ID)
	if err != nil {
		c.Log.Error("Failed to add social feed", "error", err, "guildID", ctx.GuildID(), "url", url)
		ctx.ReplyEphemeral("❌ Failed to save the subscription.")
		return
	}

	ctx.Reply(fmt.Sprintf("📡 Subscribed <#%s> to <%s> (ID %d). New items are checked every 5 minutes.", ch.ID, url, id))
}

func (c *SocialCommand) remove(ctx *Context) {
	id := ctx.Int("id")
	if err := c.Store.RemoveSocialFeed(ctx.GuildID(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.ReplyEphemeral("❌ No subscription with that ID. Check `/social list`.")
			return
		}
		c.Log.Error("Failed to remove social feed", "error", err, "guildID", ctx.GuildID(), "feedID", id)
		ctx.ReplyEphemeral("❌ Failed to remove the subscription.")
		return
	}
	ctx.Reply(fmt.Sprintf("🗑️ Subscription %d removed.", id))
}

func (c *SocialCommand) list(ctx *Context) {
	feeds, err := c.Store.ListSocialFeeds(ctx.GuildID())
	if err != nil {
		c.Log.Error("Failed to list social feeds", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to load subscriptions.")
		return
	}
	if len(feeds) == 0 {
		ctx.Reply("No feed subscriptions yet. Add one with `/social add`.")
		return
	}

	var b strings.Builder
	for _, f := range feeds {
		fmt.Fprintf(&b, "`%d` <#%s> <%s>\n", f.ID, f.ChannelID, f.FeedURL)
	}
	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "📡 Feed subscriptions",
		Description: b.String(),
		Color:       0x5865f2,
	})
}

func (c *SocialCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *SocialCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *SocialCommand) GetComponentIDs() []string                                            { return nil }
func (c *SocialCommand) GetCategory() string                                                  { return CategorySocial }
