package commands

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"

	"logiq/interfaces"
)

type BotInfoCommand struct {
	Store     interfaces.DataStore
	StartTime time.Time
}

func (c *BotInfoCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "botinfo",
		Description: "Shows runtime information about the bot.",
	}
}

func (c *BotInfoCommand) Handle(ctx *Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s := ctx.Session
	users := 0
	for _, g := range s.State.Guilds {
		users += g.MemberCount
	}
	served := 0
	if usage, err := c.Store.GetCommandUsage(); err == nil {
		for _, n := range usage {
			served += n
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: "Logiq",
		Color: 0x5865f2,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: s.State.User.AvatarURL("256"),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Servers", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
			{Name: "Users", Value: fmt.Sprintf("%d", users), Inline: true},
			{Name: "Uptime", Value: formatUptime(time.Since(c.StartTime)), Inline: true},
			{Name: "Latency", Value: s.HeartbeatLatency().Round(time.Millisecond).String(), Inline: true},
			{Name: "Memory", Value: humanize.IBytes(mem.Alloc), Inline: true},
			{Name: "Commands served", Value: fmt.Sprintf("%d", served), Inline: true},
			{Name: "Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			{Name: "Go", Value: runtime.Version(), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "discordgo " + discordgo.VERSION},
	}
	ctx.ReplyEmbed(embed)
}

// formatUptime は稼働時間を「2d 3h 14m」の形式に整えます。
func formatUptime(d time.Duration) string {
	d = d.Round(time.Minute)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, h, m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func (c *BotInfoCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *BotInfoCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *BotInfoCommand) GetComponentIDs() []string                                            { return nil }
func (c *BotInfoCommand) GetCategory() string                                                  { return CategoryAdmin }
