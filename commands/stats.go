package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

type StatsCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *StatsCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "stats",
		Description:  "Shows server activity statistics.",
		DMPermission: boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "days",
				Description: "Look-back window in days (default 7)",
				MinValue:    &[]float64{1}[0],
				MaxValue:    30,
			},
		},
	}
}

func (c *StatsCommand) Handle(ctx *Context) {
	days := int64(7)
	if ctx.Has("days") {
		days = ctx.Int("days")
	}
	since := time.Now().AddDate(0, 0, -int(days))

	joins, err := c.Store.CountEvents(ctx.GuildID(), storage.EventMemberJoin, since)
	if err != nil {
		c.Log.Error("Failed to count events", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to load statistics.")
		return
	}
	leaves, _ := c.Store.CountEvents(ctx.GuildID(), storage.EventMemberLeave, since)
	messages, _ := c.Store.CountEvents(ctx.GuildID(), storage.EventMessage, since)
	commandsRun, _ := c.Store.CountEvents(ctx.GuildID(), storage.EventCommandUsed, since)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 Server activity (last %d days)", days),
		Color: 0x1abc9c,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Members joined", Value: fmt.Sprintf("%d", joins), Inline: true},
			{Name: "Members left", Value: fmt.Sprintf("%d", leaves), Inline: true},
			{Name: "Net change", Value: fmt.Sprintf("%+d", joins-leaves), Inline: true},
			{Name: "Messages", Value: fmt.Sprintf("%d", messages), Inline: true},
			{Name: "Commands used", Value: fmt.Sprintf("%d", commandsRun), Inline: true},
		},
	}

	if top, err := c.Store.TopCommands(ctx.GuildID(), since, 5); err == nil && len(top) > 0 {
		var b strings.Builder
		for i, cc := range top {
			fmt.Fprintf(&b, "`%d.` **%s** (%d)\n", i+1, cc.Name, cc.Count)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Top commands",
			Value: b.String(),
		})
	}

	ctx.ReplyEmbed(embed)
}

func (c *StatsCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *StatsCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *StatsCommand) GetComponentIDs() []string                                            { return nil }
func (c *StatsCommand) GetCategory() string                                                  { return CategoryAnalytics }
