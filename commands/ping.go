package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type PingCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *PingCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Measures the bot's latency and checks database health.",
	}
}

func (c *PingCommand) Handle(ctx *Context) {
	// 往復時間を測るため先に仮の応答を出す
	apiStart := time.Now()
	if err := ctx.Reply("Pinging..."); err != nil {
		c.Log.Error("Failed to send initial ping response", "error", err)
		return
	}
	apiLatency := time.Since(apiStart)

	dbStart := time.Now()
	dbErr := c.Store.PingDB()
	dbLatency := time.Since(dbStart)
	dbStatus := "✅ OK"
	if dbErr != nil {
		dbStatus = "❌ Unreachable"
		dbLatency = 0
	}

	gatewayLatency := ctx.Session.HeartbeatLatency()

	color := 0x43b581 // 緑
	if gatewayLatency.Milliseconds() > 150 || apiLatency.Milliseconds() > 300 {
		color = 0xfaa61a // 黄
	}
	if gatewayLatency.Milliseconds() > 400 || apiLatency.Milliseconds() > 600 || dbErr != nil {
		color = 0xf04747 // 赤
	}

	embed := &discordgo.MessageEmbed{
		Title: "🏓 Pong!",
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Gateway", Value: fmt.Sprintf("```%s```", gatewayLatency.Round(time.Millisecond)), Inline: true},
			{Name: "API", Value: fmt.Sprintf("```%s```", apiLatency.Round(time.Millisecond)), Inline: true},
			{Name: "Database", Value: fmt.Sprintf("```%s (%s)```", dbStatus, dbLatency.Round(time.Microsecond)), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if err := ctx.EditReplyEmbed(embed); err != nil {
		c.Log.Error("Failed to edit ping response", "error", err)
	}
}

func (c *PingCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *PingCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *PingCommand) GetComponentIDs() []string                                            { return nil }
func (c *PingCommand) GetCategory() string                                                  { return CategoryUtility }
