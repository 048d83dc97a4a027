package commands

import (
	"fmt"
	"strconv"

	"github.com/Knetic/govaluate"
	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type CalcCommand struct {
	Log interfaces.Logger
}

func (c *CalcCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "calc",
		Description: "Evaluates a math expression.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "expression",
				Description: "Expression to evaluate, e.g. (10 + 20) * 3 / 2",
				Required:    true,
				MaxLength:   200,
			},
		},
	}
}

func (c *CalcCommand) Handle(ctx *Context) {
	expressionStr := ctx.String("expression")

	resultStr, err := evalExpression(expressionStr)
	if err != nil {
		ctx.ReplyEphemeral("❌ Could not evaluate that expression.")
		return
	}

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "🧮 Calculator",
		Color: 0x5865f2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Expression", Value: fmt.Sprintf("```%s```", expressionStr)},
			{Name: "Result", Value: fmt.Sprintf("```%s```", resultStr)},
		},
	})
}

// evalExpression は式を評価して結果を文字列で返します。
func evalExpression(expressionStr string) (string, error) {
	expression, err := govaluate.NewEvaluableExpression(expressionStr)
	if err != nil {
		return "", fmt.Errorf("invalid expression: %w", err)
	}

	result, err := expression.Evaluate(nil)
	if err != nil {
		return "", fmt.Errorf("evaluation failed: %w", err)
	}

	// govaluateはfloat64を返すので整数なら小数点を落とす
	if f, ok := result.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return fmt.Sprintf("%v", result), nil
}

func (c *CalcCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *CalcCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *CalcCommand) GetComponentIDs() []string                                            { return nil }
func (c *CalcCommand) GetCategory() string                                                  { return CategoryUtility }
