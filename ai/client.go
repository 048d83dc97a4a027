package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client は生成AIバックエンドへの薄いラッパーです。
type Client struct {
	genai *genai.Client
	model string
}

// systemInstruction はボットとしての応答スタイルを固定します。
const systemInstruction = "You are Logiq, a helpful assistant living in a Discord server. " +
	"Answer in the language the question was asked in. " +
	"Keep answers under 1500 characters so they fit in a single Discord message."

// NewClient は新しいAIクライアントを作成します。modelが空の場合は既定モデルを使います。
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini APIキーが設定されていません")
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("生成AIクライアントの作成に失敗: %w", err)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Client{genai: gc, model: model}, nil
}

// Close はクライアントをクローズします。
func (c *Client) Close() {
	c.genai.Close()
}

// Ask はプロンプトに対する応答テキストを生成します。
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	model := c.generativeModel()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("テキスト生成に失敗: %w", err)
	}
	return collectText(resp)
}

// ChatMessage は会話履歴の1件です。FromBot が true のものはモデル側の発言として扱います。
type ChatMessage struct {
	Author  string
	Content string
	FromBot bool
}

// Chat は直近の会話履歴を踏まえて応答を生成します。
func (c *Client) Chat(ctx context.Context, history []ChatMessage, prompt string) (string, error) {
	model := c.generativeModel()
	session := model.StartChat()
	session.History = buildHistory(history)

	resp, err := session.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("テキスト生成に失敗: %w", err)
	}
	return collectText(resp)
}

// buildHistory は会話履歴をGemini形式に変換します。
// 履歴はuser発言で始まり、userとmodelが交互に並ぶ必要があります。
// 先頭のボット発言は捨て、同じ側が続く発言は1件にまとめます。
func buildHistory(history []ChatMessage) []*genai.Content {
	var contents []*genai.Content
	for _, msg := range history {
		if len(contents) == 0 && msg.FromBot {
			continue
		}
		text := msg.Content
		role := "model"
		if !msg.FromBot {
			role = "user"
			if msg.Author != "" {
				text = msg.Author + ": " + msg.Content
			}
		}
		if last := len(contents) - 1; last >= 0 && contents[last].Role == role {
			contents[last].Parts = append(contents[last].Parts, genai.Text("\n"+text))
			continue
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(text)},
		})
	}
	return contents
}

func (c *Client) generativeModel() *genai.GenerativeModel {
	model := c.genai.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	return model
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("AIから有効な応答がありませんでした")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("AIから有効な応答がありませんでした")
	}
	return b.String(), nil
}
