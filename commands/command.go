package commands

import "github.com/bwmarrin/discordgo"

// CommandHandler は、すべてのコマンドが実装すべきインターフェースです。
// Handle はスラッシュ形式・従来型 (プレフィックス) 形式のどちらから呼ばれても
// 同じContextを受け取ります。コンポーネントとモーダルはインタラクション経由でしか
// 届かないため、元のシグネチャのままです。
type CommandHandler interface {
	GetCommandDef() *discordgo.ApplicationCommand
	Handle(ctx *Context)
	HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate)
	HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)
	GetComponentIDs() []string
	GetCategory() string
}

// Aliaser を実装したコマンドは、従来型形式で使える別名を持ちます。
type Aliaser interface {
	GetAliases() []string
}

// PrefixUsager を実装したコマンドは、引数エラー時に表示する独自の使い方を返します。
// 実装しない場合はコマンド定義から自動生成されます。
type PrefixUsager interface {
	GetPrefixUsage() string
}

// Usage はコマンドの従来型形式での使い方を返します。
// PrefixUsager を実装していればそちらを優先します。
func Usage(h CommandHandler) string {
	if u, ok := h.(PrefixUsager); ok {
		if custom := u.GetPrefixUsage(); custom != "" {
			return custom
		}
	}
	def := h.GetCommandDef()
	return def.Name + usageSuffix(def)
}

// コマンドカテゴリ。モジュールの有効・無効の単位でもあります。
const (
	CategoryAdmin        = "Administration"
	CategoryVerification = "Verification"
	CategoryUtility      = "Utility"
	CategoryTickets      = "Tickets"
	CategoryVoice        = "Voice"
	CategorySocial       = "Social"
	CategoryRoles        = "Roles"
	CategoryMusic        = "Music"
	CategoryModeration   = "Moderation"
	CategoryLeveling     = "Leveling"
	CategoryGiveaways    = "Giveaways"
	CategoryGames        = "Games"
	CategoryEconomy      = "Economy"
	CategoryAnalytics    = "Analytics"
	CategoryAI           = "AI"
)

// Categories は help やモジュール管理で使う表示順のカテゴリ一覧です。
var Categories = []string{
	CategoryAdmin,
	CategoryVerification,
	CategoryUtility,
	CategoryTickets,
	CategoryVoice,
	CategorySocial,
	CategoryRoles,
	CategoryMusic,
	CategoryModeration,
	CategoryLeveling,
	CategoryGiveaways,
	CategoryGames,
	CategoryEconomy,
	CategoryAnalytics,
	CategoryAI,
}

func int64Ptr(v int64) *int64 {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
