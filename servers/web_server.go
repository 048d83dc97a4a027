package servers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"logiq/config"
	"logiq/handlers/web"
	"logiq/interfaces"
)

// WebServer はダッシュボード用のHTTP APIを提供します。
type WebServer struct {
	log  interfaces.Logger
	http *http.Server
}

// NewWebServer はルーティングを組み立てたWebServerを返します。
// 統計系のエンドポイントはBotのセッションからギルド情報を読みます。
func NewWebServer(log interfaces.Logger, store interfaces.DataStore, session *discordgo.Session, startTime time.Time) *WebServer {
	cookies := sessions.NewCookieStore([]byte(config.Cfg.Web.SessionSecret))

	auth := web.NewAuthHandler(log, cookies)
	stats := web.NewStatsHandler(log, store, session, cookies, startTime)

	r := mux.NewRouter()
	r.HandleFunc("/auth/login", auth.Login).Methods(http.MethodGet)
	r.HandleFunc("/auth/callback", auth.Callback).Methods(http.MethodGet)
	r.HandleFunc("/auth/logout", auth.Logout).Methods(http.MethodGet)
	r.HandleFunc("/api/me", auth.Me).Methods(http.MethodGet)

	r.HandleFunc("/api/health", stats.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", stats.Stats).Methods(http.MethodGet)
	r.HandleFunc("/api/guilds/{guildID}/stats", stats.GuildStats).Methods(http.MethodGet)

	addr := fmt.Sprintf("%s:%d", config.Cfg.Web.Host, config.Cfg.Web.Port)
	return &WebServer{
		log: log,
		http: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *WebServer) Name() string { return "web server" }

// Start はリッスンを開始します。アドレスが使えない場合だけエラーを返し、
// 以降のリクエスト処理はバックグラウンドで続きます。
func (s *WebServer) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("アドレス %s でリッスンできません: %w", s.http.Addr, err)
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Web server terminated unexpectedly", "error", err)
		}
	}()

	s.log.Info("Web server listening", "addr", s.http.Addr)
	return nil
}

// Stop は処理中のリクエストの完了を待ってからサーバーを閉じます。
func (s *WebServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		s.log.Error("Failed to shut down web server", "error", err)
	}
}
