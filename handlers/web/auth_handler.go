package web

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/oauth2"

	"logiq/config"
	"logiq/interfaces"
)

const (
	sessionName   = "logiq_session"
	discordAPIURL = "https://discord.com/api/v10"
)

var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

type discordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
}

// AuthHandler はDiscord OAuth2によるダッシュボードのログインを担います。
type AuthHandler struct {
	log     interfaces.Logger
	cookies *sessions.CookieStore
	oauth   *oauth2.Config
}

func NewAuthHandler(log interfaces.Logger, cookies *sessions.CookieStore) *AuthHandler {
	return &AuthHandler{
		log:     log,
		cookies: cookies,
		oauth: &oauth2.Config{
			ClientID:     config.Cfg.Web.ClientID,
			ClientSecret: config.Cfg.Web.ClientSecret,
			RedirectURL:  config.Cfg.Web.RedirectURI,
			Scopes:       []string{"identify", "guilds"},
			Endpoint:     discordEndpoint,
		},
	}
}

// Login はCSRF対策のstateをセッションに保存してDiscordの認可画面へ飛ばします。
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		h.log.Error("Failed to generate OAuth state", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to start login")
		return
	}

	sess, _ := h.cookies.Get(r, sessionName)
	sess.Values["state"] = state
	if err := sess.Save(r, w); err != nil {
		h.log.Error("Failed to save session", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to start login")
		return
	}

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback は認可コードをトークンに交換し、ユーザー情報をセッションへ入れます。
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.cookies.Get(r, sessionName)
	want, _ := sess.Values["state"].(string)
	delete(sess.Values, "state")
	if want == "" || r.URL.Query().Get("state") != want {
		writeJSONError(w, http.StatusBadRequest, "state mismatch")
		return
	}

	token, err := h.oauth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.log.Warn("Failed to exchange OAuth code", "error", err)
		writeJSONError(w, http.StatusBadGateway, "authentication failed")
		return
	}

	user, err := h.fetchUser(r.Context(), token)
	if err != nil {
		h.log.Warn("Failed to fetch Discord user", "error", err)
		writeJSONError(w, http.StatusBadGateway, "authentication failed")
		return
	}

	name := user.GlobalName
	if name == "" {
		name = user.Username
	}
	sess.Values["user_id"] = user.ID
	sess.Values["username"] = name
	sess.Values["avatar"] = user.Avatar
	sess.Values["access_token"] = token.AccessToken
	if err := sess.Save(r, w); err != nil {
		h.log.Error("Failed to save session", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	h.log.Info("Dashboard login", "userID", user.ID)
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// Logout はセッションを破棄します。
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.cookies.Get(r, sessionName)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		h.log.Warn("Failed to clear session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// Me はログイン中のユーザー情報を返します。
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.cookies.Get(r, sessionName)
	id, _ := sess.Values["user_id"].(string)
	if id == "" {
		writeJSONError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	username, _ := sess.Values["username"].(string)
	avatar, _ := sess.Values["avatar"].(string)
	writeJSON(w, http.StatusOK, map[string]string{
		"id":       id,
		"username": username,
		"avatar":   avatar,
	})
}

func (h *AuthHandler) fetchUser(ctx context.Context, token *oauth2.Token) (*discordUser, error) {
	resp, err := h.oauth.Client(ctx, token).Get(discordAPIURL + "/users/@me")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Discord APIがステータス%dを返しました", resp.StatusCode)
	}
	var user discordUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("ユーザー情報の解析に失敗しました: %w", err)
	}
	return &user, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
