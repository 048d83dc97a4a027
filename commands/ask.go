package commands

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"logiq/ai"
	"logiq/interfaces"
)

type AskCommand struct {
	AI      *ai.Client
	Log     interfaces.Logger
	limiter *ai.Limiter
}

func NewAskCommand(client *ai.Client, log interfaces.Logger) *AskCommand {
	return &AskCommand{
		AI:      client,
		Log:     log,
		limiter: ai.NewLimiter(10*time.Second, 3),
	}
}

func (c *AskCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ask",
		Description: "Asks the AI assistant a question.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "question",
				Description: "What do you want to know?",
				Required:    true,
			},
		},
	}
}

func (c *AskCommand) Handle(ctx *Context) {
	if c.AI == nil {
		ctx.ReplyEphemeral("❌ AI features are not configured on this bot.")
		return
	}
	if !c.limiter.Allow(ctx.GuildID()) {
		ctx.ReplyEphemeral("⌛ The assistant is busy. Try again in a few seconds.")
		return
	}

	question := ctx.String("question")
	if err := ctx.Defer(); err != nil {
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	answer, err := c.AI.Ask(reqCtx, question)
	if err != nil {
		c.Log.Error("AI request failed", "error", err, "guildID", ctx.GuildID())
		ctx.EditReply("❌ The assistant couldn't answer that. Try again later.")
		return
	}

	// Discordの上限は2000文字。マルチバイト文字の途中で切らないようにする。
	if len(answer) > 1900 {
		answer = answer[:1900]
		for len(answer) > 0 && !utf8.ValidString(answer) {
			answer = answer[:len(answer)-1]
		}
		answer += "…"
	}
	ctx.EditReply(answer)
}

func (c *AskCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *AskCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *AskCommand) GetComponentIDs() []string                                            { return nil }
func (c *AskCommand) GetCategory() string                                                  { return CategoryAI }
