package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"logiq/interfaces"
	"logiq/storage"
)

// StatsHandler はダッシュボードへ統計を返すAPIです。
type StatsHandler struct {
	log       interfaces.Logger
	store     interfaces.DataStore
	session   *discordgo.Session
	cookies   *sessions.CookieStore
	startTime time.Time
}

func NewStatsHandler(log interfaces.Logger, store interfaces.DataStore, session *discordgo.Session, cookies *sessions.CookieStore, startTime time.Time) *StatsHandler {
	return &StatsHandler{
		log:       log,
		store:     store,
		session:   session,
		cookies:   cookies,
		startTime: startTime,
	}
}

// Health は死活確認に応えます。
func (h *StatsHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Stats はボット全体の概況を返します。認証は不要です。
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	guilds := h.session.State.Guilds
	users := 0
	for _, g := range guilds {
		users += g.MemberCount
	}

	since := time.Now().UTC().Truncate(24 * time.Hour)
	commands, err := h.store.CountAllEvents(storage.EventCommandUsed, since)
	if err != nil {
		h.log.Error("Failed to count command events", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"guilds":        len(guilds),
		"users":         users,
		"commandsToday": commands,
	})
}

// GuildStats はギルド単位の統計を返します。ログイン済みで、
// そのギルドに参加しているユーザーにだけ応えます。
func (h *StatsHandler) GuildStats(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guildID"]

	sess, _ := h.cookies.Get(r, sessionName)
	token, _ := sess.Values["access_token"].(string)
	if token == "" {
		writeJSONError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	member, err := h.userInGuild(r.Context(), token, guildID)
	if err != nil {
		h.log.Warn("Failed to verify guild membership", "error", err, "guildID", guildID)
		writeJSONError(w, http.StatusBadGateway, "could not verify guild membership")
		return
	}
	if !member {
		writeJSONError(w, http.StatusForbidden, "not a member of this guild")
		return
	}

	since := time.Now().Add(-24 * time.Hour)
	counts := make(map[string]int, 4)
	for key, eventType := range map[string]string{
		"messages": storage.EventMessage,
		"joins":    storage.EventMemberJoin,
		"leaves":   storage.EventMemberLeave,
		"commands": storage.EventCommandUsed,
	} {
		n, err := h.store.CountEvents(guildID, eventType, since)
		if err != nil {
			h.log.Error("Failed to count events", "error", err, "guildID", guildID, "eventType", eventType)
			writeJSONError(w, http.StatusInternalServerError, "failed to load stats")
			return
		}
		counts[key] = n
	}

	top, err := h.store.TopCommands(guildID, since, 5)
	if err != nil {
		h.log.Error("Failed to load top commands", "error", err, "guildID", guildID)
		writeJSONError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	topCommands := make([]map[string]any, 0, len(top))
	for _, c := range top {
		topCommands = append(topCommands, map[string]any{"name": c.Name, "count": c.Count})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"guildID":     guildID,
		"messages":    counts["messages"],
		"joins":       counts["joins"],
		"leaves":      counts["leaves"],
		"commands":    counts["commands"],
		"topCommands": topCommands,
	})
}

// userInGuild はユーザー自身のトークンで参加ギルド一覧を引いて確認します。
func (h *StatsHandler) userInGuild(ctx context.Context, token, guildID string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discordAPIURL+"/users/@me/guilds", nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// トークン失効は「参加していない」と同じ扱いにする
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("Discord APIがステータス%dを返しました", resp.StatusCode)
	}

	var guilds []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&guilds); err != nil {
		return false, fmt.Errorf("ギルド一覧の解析に失敗しました: %w", err)
	}
	for _, g := range guilds {
		if g.ID == guildID {
			return true, nil
		}
	}
	return false, nil
}
