package commands

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// MissingArgumentError は必須オプションが渡されなかったことを示します。
type MissingArgumentError struct {
	Option string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument: %s", e.Option)
}

// InvalidArgumentError は型や範囲に合わない値が渡されたことを示します。
// Reasonはそのままユーザーへの返信に使われます。
type InvalidArgumentError struct {
	Option string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Option, e.Reason)
}

// UnknownSubcommandError は存在しないサブコマンドが指定されたことを示します。
type UnknownSubcommandError struct {
	Given string
	Valid []string
}

func (e *UnknownSubcommandError) Error() string {
	return fmt.Sprintf("unknown subcommand %q (valid: %s)", e.Given, strings.Join(e.Valid, ", "))
}

var (
	userMentionPattern    = regexp.MustCompile(`^<@!?(\d+)>$`)
	channelMentionPattern = regexp.MustCompile(`^<#(\d+)>$`)
	roleMentionPattern    = regexp.MustCompile(`^<@&(\d+)>$`)
	snowflakePattern      = regexp.MustCompile(`^\d{15,20}$`)
)

// parseArgs は従来型コマンドのトークン列を、スラッシュコマンド定義の
// オプション宣言に沿って位置引数として解釈します。
// 最後に宣言された文字列オプションは残りのトークンをすべて受け取ります。
func parseArgs(def *discordgo.ApplicationCommand, tokens []string) (string, map[string]optionValue, error) {
	declared := def.Options

	// 第一階層がサブコマンドなら最初のトークンで選択する
	if len(declared) > 0 && declared[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		if len(tokens) == 0 {
			return "", nil, &MissingArgumentError{Option: "subcommand"}
		}
		name := strings.ToLower(tokens[0])
		var sub *discordgo.ApplicationCommandOption
		valid := make([]string, 0, len(declared))
		for _, o := range declared {
			valid = append(valid, o.Name)
			if o.Name == name {
				sub = o
			}
		}
		if sub == nil {
			return "", nil, &UnknownSubcommandError{Given: tokens[0], Valid: valid}
		}
		subOpts, err := parsePositional(sub.Options, tokens[1:])
		if err != nil {
			return "", nil, err
		}
		return sub.Name, subOpts, nil
	}

	parsed, err := parsePositional(declared, tokens)
	if err != nil {
		return "", nil, err
	}
	return "", parsed, nil
}

// typeMismatchError は値の型がオプションと合わないことを表す内部エラーです。
// 任意オプションではそのトークンを次のオプションへ回す判断に使います。
type typeMismatchError struct {
	reason string
}

func (e *typeMismatchError) Error() string { return e.reason }

func parsePositional(declared []*discordgo.ApplicationCommandOption, tokens []string) (map[string]optionValue, error) {
	opts := make(map[string]optionValue)

	for idx, opt := range declared {
		if len(tokens) == 0 {
			if opt.Required {
				return nil, &MissingArgumentError{Option: opt.Name}
			}
			continue
		}

		greedy := opt.Type == discordgo.ApplicationCommandOptionString && idx == len(declared)-1
		var raw string
		if greedy {
			// 末尾の文字列オプションは残り全部を受け取る
			raw = strings.Join(tokens, " ")
		} else {
			raw = tokens[0]
		}

		v, err := convertToken(opt, raw)
		if err != nil {
			var mismatch *typeMismatchError
			if errors.As(err, &mismatch) {
				// 任意オプションに合わないトークンは次のオプション用に残す
				if !opt.Required {
					continue
				}
				return nil, &InvalidArgumentError{Option: opt.Name, Reason: mismatch.reason}
			}
			return nil, err
		}

		opts[opt.Name] = v
		if greedy {
			tokens = nil
		} else {
			tokens = tokens[1:]
		}
	}
	return opts, nil
}

func convertToken(opt *discordgo.ApplicationCommandOption, raw string) (optionValue, error) {
	var v optionValue
	switch opt.Type {
	case discordgo.ApplicationCommandOptionString:
		if len(opt.Choices) > 0 {
			matched := false
			valid := make([]string, 0, len(opt.Choices))
			for _, choice := range opt.Choices {
				val, _ := choice.Value.(string)
				valid = append(valid, val)
				if strings.EqualFold(raw, val) || strings.EqualFold(raw, choice.Name) {
					v.str = val
					matched = true
					break
				}
			}
			if !matched {
				return v, &typeMismatchError{reason: fmt.Sprintf("must be one of: %s", strings.Join(valid, ", "))}
			}
			return v, nil
		}
		// 長さ上限はスラッシュ側ではDiscordが弾く。こちらでも揃える
		if opt.MaxLength > 0 && utf8.RuneCountInString(raw) > opt.MaxLength {
			return v, &InvalidArgumentError{Option: opt.Name, Reason: fmt.Sprintf("must be at most %d characters", opt.MaxLength)}
		}
		v.str = raw

	case discordgo.ApplicationCommandOptionInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return v, &typeMismatchError{reason: fmt.Sprintf("%q is not a number", raw)}
		}
		// 範囲外は任意オプションでも読み飛ばさずエラーにする
		if opt.MinValue != nil && float64(n) < *opt.MinValue {
			return v, &InvalidArgumentError{Option: opt.Name, Reason: fmt.Sprintf("must be at least %d", int64(*opt.MinValue))}
		}
		if opt.MaxValue != 0 && float64(n) > opt.MaxValue {
			return v, &InvalidArgumentError{Option: opt.Name, Reason: fmt.Sprintf("must be at most %d", int64(opt.MaxValue))}
		}
		v.i = n

	case discordgo.ApplicationCommandOptionNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return v, &typeMismatchError{reason: fmt.Sprintf("%q is not a number", raw)}
		}
		v.f = f

	case discordgo.ApplicationCommandOptionBoolean:
		switch strings.ToLower(raw) {
		case "true", "yes", "on", "1":
			v.b = true
		case "false", "no", "off", "0":
			v.b = false
		default:
			return v, &typeMismatchError{reason: fmt.Sprintf("%q is not true/false", raw)}
		}

	case discordgo.ApplicationCommandOptionUser:
		id, ok := extractID(raw, userMentionPattern)
		if !ok {
			return v, &typeMismatchError{reason: fmt.Sprintf("%q is not a user mention or ID", raw)}
		}
		v.userID = id

	case discordgo.ApplicationCommandOptionChannel:
		id, ok := extractID(raw, channelMentionPattern)
		if !ok {
			return v, &typeMismatchError{reason: fmt.Sprintf("%q is not a channel mention or ID", raw)}
		}
		v.channelID = id

	case discordgo.ApplicationCommandOptionRole:
		id, ok := extractID(raw, roleMentionPattern)
		if !ok {
			return v, &typeMismatchError{reason: fmt.Sprintf("%q is not a role mention or ID", raw)}
		}
		v.roleID = id

	default:
		v.str = raw
	}
	return v, nil
}

// extractID はメンション表記または生のIDからスノーフレークを取り出します。
func extractID(raw string, mention *regexp.Regexp) (string, bool) {
	if m := mention.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	if snowflakePattern.MatchString(raw) {
		return raw, true
	}
	return "", false
}

var durationPattern = regexp.MustCompile(`(\d+)\s*([dhms])`)

// ParseLongDuration は "1d2h30m" や "90s" のような表記を解釈します。
// time.ParseDuration と違い日単位 (d) を受け付けます。
func ParseLongDuration(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	matches := durationPattern.FindAllStringSubmatch(s, -1)
	if matches == nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	// 表記全体が単位付き数値の並びであることを確認する
	joined := ""
	for _, m := range matches {
		joined += m[0]
	}
	if strings.ReplaceAll(s, " ", "") != strings.ReplaceAll(joined, " ", "") {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var total time.Duration
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		switch m[2] {
		case "d":
			total += time.Duration(n) * 24 * time.Hour
		case "h":
			total += time.Duration(n) * time.Hour
		case "m":
			total += time.Duration(n) * time.Minute
		case "s":
			total += time.Duration(n) * time.Second
		}
	}
	if total <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return total, nil
}
