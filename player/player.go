package player

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jonas747/dca"

	"logiq/interfaces"
)

// ErrNotConnected は音声チャンネル未接続での再生要求を示します。
var ErrNotConnected = errors.New("音声チャンネルに接続していません")

// Track は再生する曲の情報を保持します。
type Track struct {
	Title       string
	Author      string
	PageURL     string
	Duration    time.Duration
	RequestedBy string

	// streamURL はyt-dlpが解決した実体のURLです。期限付きなのでキューに積んだまま
	// 長時間放置すると失効することがあります。
	streamURL string
}

type guildPlayer struct {
	mu      sync.Mutex
	voice   *discordgo.VoiceConnection
	queue   []*Track
	current *Track
	playing bool
	next    chan struct{}
}

// Manager はすべてのサーバーの再生状態を管理します。
type Manager struct {
	session *discordgo.Session
	log     interfaces.Logger

	mu     sync.Mutex
	guilds map[string]*guildPlayer
}

// NewManager は新しいManagerを作成します。
func NewManager(s *discordgo.Session, log interfaces.Logger) *Manager {
	return &Manager{
		session: s,
		log:     log,
		guilds:  make(map[string]*guildPlayer),
	}
}

func (m *Manager) guild(guildID string) *guildPlayer {
	m.mu.Lock()
	defer m.mu.Unlock()
	gp, ok := m.guilds[guildID]
	if !ok {
		gp = &guildPlayer{next: make(chan struct{})}
		m.guilds[guildID] = gp
	}
	return gp
}

// Join はボイスチャンネルに接続します。
func (m *Manager) Join(guildID, channelID string) error {
	gp := m.guild(guildID)
	gp.mu.Lock()
	defer gp.mu.Unlock()

	vc, err := m.session.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return fmt.Errorf("ボイスチャンネルへの接続に失敗: %w", err)
	}
	gp.voice = vc
	return nil
}

// Leave は再生を止めてボイスチャンネルから切断します。
func (m *Manager) Leave(guildID string) {
	gp := m.guild(guildID)
	gp.mu.Lock()
	gp.queue = nil
	if gp.voice != nil {
		gp.voice.Disconnect()
		gp.voice = nil
	}
	gp.mu.Unlock()
	gp.signalNext()
}

// Connected は音声チャンネルに接続済みか返します。
func (m *Manager) Connected(guildID string) bool {
	gp := m.guild(guildID)
	gp.mu.Lock()
	defer gp.mu.Unlock()
	return gp.voice != nil
}

// Enqueue はトラックをキューへ追加し、再生中でなければ再生を開始します。
// 戻り値は待ち行列内の位置です (0 = すぐ再生)。
func (m *Manager) Enqueue(guildID string, track *Track) (int, error) {
	gp := m.guild(guildID)
	gp.mu.Lock()
	defer gp.mu.Unlock()

	if gp.voice == nil {
		return 0, ErrNotConnected
	}

	gp.queue = append(gp.queue, track)
	position := len(gp.queue) - 1
	if gp.current != nil {
		position++
	}

	if !gp.playing {
		gp.playing = true
		go m.playLoop(gp, guildID)
	}
	return position, nil
}

// Skip は現在の曲を飛ばします。何か再生していた場合にtrueを返します。
func (m *Manager) Skip(guildID string) bool {
	gp := m.guild(guildID)
	gp.mu.Lock()
	playing := gp.current != nil
	gp.mu.Unlock()
	gp.signalNext()
	return playing
}

// Stop は再生を止めてキューを空にします。接続は維持します。
func (m *Manager) Stop(guildID string) {
	gp := m.guild(guildID)
	gp.mu.Lock()
	gp.queue = nil
	gp.mu.Unlock()
	gp.signalNext()
}

// Queue は待ち行列のコピーを返します。再生中の曲は含みません。
func (m *Manager) Queue(guildID string) []Track {
	gp := m.guild(guildID)
	gp.mu.Lock()
	defer gp.mu.Unlock()

	queue := make([]Track, len(gp.queue))
	for i, t := range gp.queue {
		queue[i] = *t
	}
	return queue
}

// Current は再生中の曲を返します。何も再生していなければfalseを返します。
func (m *Manager) Current(guildID string) (Track, bool) {
	gp := m.guild(guildID)
	gp.mu.Lock()
	defer gp.mu.Unlock()
	if gp.current == nil {
		return Track{}, false
	}
	return *gp.current, true
}

// signalNext は再生中のトラックに中断を伝えます。再生していなければ何もしません。
func (gp *guildPlayer) signalNext() {
	select {
	case gp.next <- struct{}{}:
	default:
	}
}

func (m *Manager) playLoop(gp *guildPlayer, guildID string) {
	for {
		gp.mu.Lock()
		if len(gp.queue) == 0 || gp.voice == nil {
			gp.playing = false
			gp.current = nil
			gp.mu.Unlock()
			return
		}
		track := gp.queue[0]
		gp.queue = gp.queue[1:]
		gp.current = track
		gp.mu.Unlock()

		m.playTrack(gp, guildID, track)

		gp.mu.Lock()
		gp.current = nil
		gp.mu.Unlock()
	}
}

// playTrack は1曲をダウンロード・エンコードして再生し、終了か中断まで待ちます。
func (m *Manager) playTrack(gp *guildPlayer, guildID string, track *Track) {
	m.log.Info("Now playing", "guildID", guildID, "title", track.Title, "url", track.PageURL)

	path, err := m.download(track.streamURL)
	if err != nil {
		m.log.Error("Failed to download audio stream", "error", err, "url", track.PageURL)
		return
	}
	defer os.Remove(path)

	options := dca.StdEncodeOptions
	options.RawOutput = true
	options.Bitrate = 96
	options.Application = "lowdelay"

	encoder, err := dca.EncodeFile(path, options)
	if err != nil {
		m.log.Error("Failed to encode audio", "error", err, "title", track.Title)
		return
	}
	defer encoder.Cleanup()

	gp.mu.Lock()
	voice := gp.voice
	gp.mu.Unlock()

	if voice == nil || !voice.Ready {
		m.log.Error("Voice connection is not ready", "guildID", guildID)
		return
	}

	voice.Speaking(true)
	defer voice.Speaking(false)

	done := make(chan error)
	dca.NewStream(encoder, voice, done)

	select {
	case <-gp.next:
		m.log.Info("Playback interrupted", "guildID", guildID, "title", track.Title)
	case err := <-done:
		if err != nil && err != io.EOF {
			m.log.Error("Stream error", "error", err, "guildID", guildID)
		}
	}
}

// download はストリームURLの中身を一時ファイルへ保存し、そのパスを返します。
func (m *Manager) download(streamURL string) (string, error) {
	tmp, err := os.CreateTemp("", "logiq-audio-*")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	resp, err := http.Get(streamURL)
	if err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("ストリームの取得に失敗: %s", resp.Status)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// Resolve はyt-dlpでURLからトラック情報とストリームURLを取得します。
func Resolve(ctx context.Context, url string) (*Track, error) {
	cmd := exec.CommandContext(ctx, "yt-dlp",
		"-f", "bestaudio[ext=webm]/bestaudio",
		"--no-playlist",
		"--dump-json",
		url)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlpの実行に失敗: %w\n%s", err, stderr.String())
	}
	return parseTrackJSON(stdout.Bytes())
}

func parseTrackJSON(data []byte) (*Track, error) {
	var meta struct {
		URL        string  `json:"url"`
		Title      string  `json:"title"`
		Uploader   string  `json:"uploader"`
		Duration   float64 `json:"duration"`
		WebpageURL string  `json:"webpage_url"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("yt-dlp出力のパースに失敗: %w", err)
	}
	if meta.URL == "" {
		return nil, errors.New("yt-dlpからストリームURLを取得できませんでした")
	}
	// 投稿者が取れないソースもある。埋め込みの空フィールドはAPIに弾かれる。
	if meta.Uploader == "" {
		meta.Uploader = "Unknown"
	}
	return &Track{
		Title:     meta.Title,
		Author:    meta.Uploader,
		PageURL:   meta.WebpageURL,
		Duration:  time.Duration(meta.Duration * float64(time.Second)),
		streamURL: meta.URL,
	}, nil
}
