package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/config"
	"logiq/interfaces"
)

type HelpCommand struct {
	AllCommands map[string]CommandHandler
	Aliases     map[string]string
	Store       interfaces.DataStore
}

func (c *HelpCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "help",
		Description: "Lists commands, or shows details for one command.",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "command", Description: "Command to explain", Required: false},
		},
	}
}

func (c *HelpCommand) Handle(ctx *Context) {
	prefix := c.guildPrefix(ctx)

	if ctx.Has("command") {
		c.showCommand(ctx, strings.ToLower(ctx.String("command")), prefix)
		return
	}

	byCategory := make(map[string][]string)
	for name, handler := range c.AllCommands {
		byCategory[handler.GetCategory()] = append(byCategory[handler.GetCategory()], name)
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(Categories))
	for _, cat := range Categories {
		names := byCategory[cat]
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  cat,
			Value: "`" + strings.Join(names, "` `") + "`",
		})
	}

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "📖 Commands",
		Description: fmt.Sprintf("Every command works as a slash command and as a text command with the `%s` prefix.\nUse `%shelp <command>` for details.", prefix, prefix),
		Color:       0x5865f2,
		Fields:      fields,
	})
}

func (c *HelpCommand) showCommand(ctx *Context, name, prefix string) {
	if canonical, ok := c.Aliases[name]; ok {
		name = canonical
	}
	handler, ok := c.AllCommands[name]
	if !ok {
		ctx.ReplyEphemeral(fmt.Sprintf("❌ Unknown command: `%s`", name))
		return
	}
	def := handler.GetCommandDef()

	usage := def.Name + usageSuffix(def)
	if u, ok := handler.(PrefixUsager); ok {
		if custom := u.GetPrefixUsage(); custom != "" {
			usage = custom
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "/" + def.Name,
		Description: def.Description,
		Color:       0x5865f2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Category", Value: handler.GetCategory(), Inline: true},
			{Name: "Text usage", Value: fmt.Sprintf("`%s%s`", prefix, usage), Inline: false},
		},
	}

	aliases := make([]string, 0, 2)
	for alias, canonical := range c.Aliases {
		if canonical == name {
			aliases = append(aliases, alias)
		}
	}
	if len(aliases) > 0 {
		sort.Strings(aliases)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Aliases", Value: "`" + strings.Join(aliases, "` `") + "`", Inline: true,
		})
	}

	ctx.ReplyEmbed(embed)
}

// guildPrefix は表示用のテキストプレフィックスを決めます。
func (c *HelpCommand) guildPrefix(ctx *Context) string {
	if !ctx.IsSlash() {
		return ctx.Prefix()
	}
	if ctx.GuildID() != "" {
		if settings, err := c.Store.GetGuildSettings(ctx.GuildID()); err == nil && settings.Prefix != "" {
			return settings.Prefix
		}
	}
	return config.Cfg.Bot.Prefix
}

// usageSuffix はオプション宣言から「 <user> [reason]」のような表記を組み立てます。
func usageSuffix(def *discordgo.ApplicationCommand) string {
	var b strings.Builder
	if len(def.Options) > 0 && def.Options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		subs := make([]string, 0, len(def.Options))
		for _, o := range def.Options {
			subs = append(subs, o.Name)
		}
		fmt.Fprintf(&b, " <%s>", strings.Join(subs, "|"))
		return b.String()
	}
	for _, o := range def.Options {
		if o.Required {
			fmt.Fprintf(&b, " <%s>", o.Name)
		} else {
			fmt.Fprintf(&b, " [%s]", o.Name)
		}
	}
	return b.String()
}

func (c *HelpCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *HelpCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *HelpCommand) GetComponentIDs() []string                                            { return nil }
func (c *HelpCommand) GetCategory() string                                                  { return CategoryUtility }
