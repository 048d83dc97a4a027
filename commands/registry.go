package commands

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/ai"
	"logiq/interfaces"
	"logiq/player"
	"logiq/storage"
)

// AppContext はコマンドへ依存を渡すためのコンテナです。
type AppContext struct {
	Log       interfaces.Logger
	Store     interfaces.DataStore
	AI        *ai.Client
	Player    *player.Manager
	StartTime time.Time
}

// RegisterCommands はすべてのコマンドを初期化して返します。
// 戻り値: コマンド名→ハンドラ、コンポーネントID→ハンドラ、別名→コマンド名、スラッシュ定義の一覧。
func RegisterCommands(appCtx *AppContext) (map[string]CommandHandler, map[string]CommandHandler, map[string]string, []*discordgo.ApplicationCommand) {
	commandHandlers := make(map[string]CommandHandler)
	componentHandlers := make(map[string]CommandHandler)
	aliases := make(map[string]string)
	defs := make([]*discordgo.ApplicationCommand, 0)

	// 新しいコマンドはこのリストに追加するだけで登録されます。
	list := []CommandHandler{
		// Administration
		&BotInfoCommand{Store: appCtx.Store, StartTime: appCtx.StartTime},
		&SetPrefixCommand{Store: appCtx.Store, Log: appCtx.Log},
		&ModuleCommand{Store: appCtx.Store, Log: appCtx.Log},
		&SetLogChannelCommand{Store: appCtx.Store, Log: appCtx.Log},
		&SetWelcomeCommand{Store: appCtx.Store, Log: appCtx.Log},
		&PurgeCommand{Log: appCtx.Log},
		&SyncCommand{AllCommands: commandHandlers, Log: appCtx.Log},
		&ReloadConfigCommand{Log: appCtx.Log},
		// Verification
		&VerifyPanelCommand{Store: appCtx.Store, Log: appCtx.Log},
		// Utility
		&PingCommand{Store: appCtx.Store, Log: appCtx.Log},
		&AvatarCommand{},
		&UserInfoCommand{Log: appCtx.Log},
		&ServerInfoCommand{Log: appCtx.Log},
		&PollCommand{Log: appCtx.Log},
		&RemindCommand{Store: appCtx.Store, Log: appCtx.Log},
		&CalcCommand{Log: appCtx.Log},
		NewExchangeCommand(appCtx.Log),
		&EmbedCommand{Log: appCtx.Log},
		&HelpCommand{AllCommands: commandHandlers, Aliases: aliases, Store: appCtx.Store},
		// Tickets
		&TicketPanelCommand{Store: appCtx.Store, Log: appCtx.Log},
		// Voice
		&VCLobbyCommand{Store: appCtx.Store, Log: appCtx.Log},
		// Social
		&SocialCommand{Store: appCtx.Store, Log: appCtx.Log},
		// Roles
		&AutoRoleCommand{Store: appCtx.Store, Log: appCtx.Log},
		&ReactionRoleCommand{Store: appCtx.Store, Log: appCtx.Log},
		&RoleInfoCommand{Log: appCtx.Log},
		// Music
		&JoinCommand{Player: appCtx.Player, Log: appCtx.Log},
		&LeaveCommand{Player: appCtx.Player, Log: appCtx.Log},
		&PlayCommand{Player: appCtx.Player, Log: appCtx.Log},
		&SkipCommand{Player: appCtx.Player, Log: appCtx.Log},
		&StopCommand{Player: appCtx.Player, Log: appCtx.Log},
		&QueueCommand{Player: appCtx.Player, Log: appCtx.Log},
		&NowPlayingCommand{Player: appCtx.Player, Log: appCtx.Log},
		// Moderation
		&KickCommand{Store: appCtx.Store, Log: appCtx.Log},
		&BanCommand{Store: appCtx.Store, Log: appCtx.Log},
		&TimeoutCommand{Store: appCtx.Store, Log: appCtx.Log},
		&UntimeoutCommand{Store: appCtx.Store, Log: appCtx.Log},
		&WarnCommand{Store: appCtx.Store, Log: appCtx.Log},
		&WarningsCommand{Store: appCtx.Store, Log: appCtx.Log},
		&UnwarnCommand{Store: appCtx.Store, Log: appCtx.Log},
		&SlowmodeCommand{Log: appCtx.Log},
		// Leveling
		&RankCommand{Store: appCtx.Store, Log: appCtx.Log},
		&LevelsCommand{Store: appCtx.Store, Log: appCtx.Log},
		// Giveaways
		&GStartCommand{Store: appCtx.Store, Log: appCtx.Log},
		&GEndCommand{Store: appCtx.Store, Log: appCtx.Log},
		&GRerollCommand{Store: appCtx.Store, Log: appCtx.Log},
		&GListCommand{Store: appCtx.Store, Log: appCtx.Log},
		// Games
		&SlotsCommand{Store: appCtx.Store, Log: appCtx.Log},
		&CoinflipCommand{Store: appCtx.Store, Log: appCtx.Log},
		NewHiLowCommand(appCtx.Store, appCtx.Log),
		// Economy
		&DailyCommand{Store: appCtx.Store, Log: appCtx.Log},
		&WorkCommand{Store: appCtx.Store, Log: appCtx.Log},
		&BalanceCommand{Store: appCtx.Store, Log: appCtx.Log},
		&PayCommand{Store: appCtx.Store, Log: appCtx.Log},
		&RichestCommand{Store: appCtx.Store, Log: appCtx.Log},
		&ShopCommand{Store: appCtx.Store, Log: appCtx.Log},
		&AddItemCommand{Store: appCtx.Store, Log: appCtx.Log},
		&RemoveItemCommand{Store: appCtx.Store, Log: appCtx.Log},
		&BuyCommand{Store: appCtx.Store, Log: appCtx.Log},
		&InventoryCommand{Store: appCtx.Store, Log: appCtx.Log},
		// Analytics
		&StatsCommand{Store: appCtx.Store, Log: appCtx.Log},
		&DashboardCommand{Store: appCtx.Store, Log: appCtx.Log},
		// AI
		NewAskCommand(appCtx.AI, appCtx.Log),
	}

	for _, cmd := range list {
		def := cmd.GetCommandDef()
		defs = append(defs, def)

		wrapped := &CommandUsageWrapper{CommandHandler: cmd, Store: appCtx.Store}
		commandHandlers[def.Name] = wrapped

		for _, id := range cmd.GetComponentIDs() {
			componentHandlers[id] = cmd
		}
		if a, ok := cmd.(Aliaser); ok {
			for _, alias := range a.GetAliases() {
				aliases[strings.ToLower(alias)] = def.Name
			}
		}
	}

	return commandHandlers, componentHandlers, aliases, defs
}

// CommandUsageWrapper はコマンド実行を記録してから本体へ委譲します。
type CommandUsageWrapper struct {
	CommandHandler
	Store interfaces.DataStore
}

func (w *CommandUsageWrapper) Handle(ctx *Context) {
	def := w.CommandHandler.GetCommandDef()
	if ctx.GuildID() != "" {
		w.Store.LogEvent(ctx.GuildID(), storage.EventCommandUsed, ctx.User().ID, def.Name)
	}
	// 管理コマンドはカテゴリ別統計に含めない
	if category := w.CommandHandler.GetCategory(); category != "" && category != CategoryAdmin {
		w.Store.IncrementCommandUsage(category)
	}
	w.CommandHandler.Handle(ctx)
}

// GetPrefixUsage は内側のコマンドが定義していればその使い方を返します。
func (w *CommandUsageWrapper) GetPrefixUsage() string {
	if u, ok := w.CommandHandler.(PrefixUsager); ok {
		return u.GetPrefixUsage()
	}
	return ""
}
