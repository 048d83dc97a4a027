package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

var pollEmojis = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣"}

type PollCommand struct {
	Log interfaces.Logger
}

func (c *PollCommand) GetCommandDef() *discordgo.ApplicationCommand {
	opts := []*discordgo.ApplicationCommandOption{
		{Type: discordgo.ApplicationCommandOptionString, Name: "question", Description: "What to ask", Required: true},
		{Type: discordgo.ApplicationCommandOptionString, Name: "choice1", Description: "First choice", Required: true},
		{Type: discordgo.ApplicationCommandOptionString, Name: "choice2", Description: "Second choice", Required: true},
	}
	for i := 3; i <= len(pollEmojis); i++ {
		opts = append(opts, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        fmt.Sprintf("choice%d", i),
			Description: fmt.Sprintf("Choice %d", i),
		})
	}
	return &discordgo.ApplicationCommand{
		Name:        "poll",
		Description: "Creates a reaction poll with up to 5 choices.",
		Options:     opts,
	}
}

func (c *PollCommand) GetPrefixUsage() string {
	return `poll "<question>" "<choice1>" "<choice2>" ["choice3" ...]`
}

func (c *PollCommand) Handle(ctx *Context) {
	question := ctx.String("question")

	choices := make([]string, 0, len(pollEmojis))
	for i := 1; i <= len(pollEmojis); i++ {
		name := fmt.Sprintf("choice%d", i)
		if !ctx.Has(name) {
			continue
		}
		if choice := strings.TrimSpace(ctx.String(name)); choice != "" {
			choices = append(choices, choice)
		}
	}
	if len(choices) < 2 {
		ctx.ReplyEphemeral("❌ A poll needs at least 2 choices.")
		return
	}

	var description strings.Builder
	for i, choice := range choices {
		fmt.Fprintf(&description, "%s %s\n\n", pollEmojis[i], choice)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📊 " + question,
		Description: description.String(),
		Color:       0x40e0d0,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Poll by " + ctx.User().Username},
	}

	// リアクションを付けるためメッセージIDが要るので通常メッセージとして送る
	msg, err := ctx.Session.ChannelMessageSendEmbed(ctx.ChannelID(), embed)
	if err != nil {
		c.Log.Error("Failed to post poll", "error", err, "channelID", ctx.ChannelID())
		ctx.ReplyEphemeral("❌ Failed to create the poll.")
		return
	}

	for i := range choices {
		ctx.Session.MessageReactionAdd(msg.ChannelID, msg.ID, pollEmojis[i])
	}

	if ctx.IsSlash() {
		ctx.ReplyEphemeral("📊 Poll created.")
	}
}

func (c *PollCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *PollCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *PollCommand) GetComponentIDs() []string                                            { return nil }
func (c *PollCommand) GetCategory() string                                                  { return CategoryUtility }
