package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// matchPrefix はメッセージ先頭のプレフィックスを判定し、取り除いた残りを返します。
// ギルドごとのプレフィックスのほか、ボット宛メンションもプレフィックスとして扱います。
func matchPrefix(content, prefix, botID string) (string, bool) {
	if prefix != "" && strings.HasPrefix(content, prefix) {
		return strings.TrimSpace(content[len(prefix):]), true
	}
	if botID == "" {
		return "", false
	}
	for _, mention := range []string{"<@" + botID + ">", "<@!" + botID + ">"} {
		if strings.HasPrefix(content, mention) {
			return strings.TrimSpace(content[len(mention):]), true
		}
	}
	return "", false
}

// HasPermissions は保有権限が要求ビットをすべて含むかを返します。
// 管理者権限を持つ場合は常に許可します。
func HasPermissions(perms, required int64) bool {
	if perms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return perms&required == required
}
