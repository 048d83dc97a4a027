package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Config はアプリケーションの設定を保持します。
type Config struct {
	Bot struct {
		Token    string `mapstructure:"token"`
		Prefix   string `mapstructure:"prefix"`
		OwnerID  string `mapstructure:"owner_id"`
		Activity string `mapstructure:"activity"`
		Status   string `mapstructure:"status"`
	} `mapstructure:"bot"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Logging struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"logging"`
	Web struct {
		Enabled       bool   `mapstructure:"enabled"`
		Host          string `mapstructure:"host"`
		Port          int    `mapstructure:"port"`
		ClientID      string `mapstructure:"client_id"`
		ClientSecret  string `mapstructure:"client_secret"`
		RedirectURI   string `mapstructure:"redirect_uri"`
		SessionSecret string `mapstructure:"session_secret"`
	} `mapstructure:"web"`
	AI struct {
		GeminiAPIKey string `mapstructure:"gemini_api_key"`
		Model        string `mapstructure:"model"`
	} `mapstructure:"ai"`
}

var (
	Cfg *Config

	// loadedPath はReloadのために最後に読み込んだファイルのパスを覚えておきます。
	loadedPath string
)

// envVarPattern は設定値に埋め込まれた ${ENV_VAR} 形式のプレースホルダにマッチします。
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load は設定ファイルを読み込み、パッケージ変数Cfgを初期化します。
// pathが空の場合はカレントディレクトリのconfig.yamlを探します。
func Load(path string) error {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetDefault("bot.prefix", "x")
	v.SetDefault("bot.status", "online")
	v.SetDefault("database.path", "logiq.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "logiq.log")
	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", 8080)
	v.SetDefault("ai.model", "gemini-1.5-flash")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	// すべての文字列値に対して ${ENV_VAR} を環境変数で置換する
	for _, key := range v.AllKeys() {
		switch val := v.Get(key).(type) {
		case string:
			v.Set(key, ExpandEnv(val))
		case []interface{}:
			for i, item := range val {
				if s, ok := item.(string); ok {
					val[i] = ExpandEnv(s)
				}
			}
			v.Set(key, val)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("設定の解析に失敗: %w", err)
	}

	// 環境変数によるトークンの上書き
	if token := os.Getenv("DISCORD_BOT_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}

	if cfg.Bot.Token == "" {
		return fmt.Errorf("botトークンが設定されていません (bot.token または DISCORD_BOT_TOKEN)")
	}
	if err := ValidatePrefix(cfg.Bot.Prefix); err != nil {
		return err
	}

	Cfg = cfg
	loadedPath = path
	return nil
}

// Reload は前回Loadしたファイルを読み直します。
func Reload() error {
	return Load(loadedPath)
}

// ExpandEnv は文字列中の ${ENV_VAR} を環境変数の値で置換します。
// 未定義の環境変数はプレースホルダのまま残します。
func ExpandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

// ValidatePrefix は従来型コマンドのプレフィックスとして使える文字列か検証します。
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("プレフィックスが空です")
	}
	if len(prefix) > 5 {
		return fmt.Errorf("プレフィックスが長すぎます (最大5文字): %q", prefix)
	}
	if strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("プレフィックス %q はスラッシュコマンドと衝突します", prefix)
	}
	if strings.HasPrefix(prefix, "@") || strings.HasPrefix(prefix, "#") {
		return fmt.Errorf("プレフィックス %q はメンションと区別できません", prefix)
	}
	return nil
}
