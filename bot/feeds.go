package bot

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"logiq/storage"
)

// 新着が溜まっていても一度に流すのはここまで
const maxFeedAnnounce = 5

type feedItem struct {
	ID    string
	Title string
	Link  string
}

type rssDoc struct {
	Channel struct {
		Items []struct {
			GUID  string `xml:"guid"`
			Title string `xml:"title"`
			Link  string `xml:"link"`
		} `xml:"item"`
	} `xml:"channel"`
}

type atomDoc struct {
	Entries []struct {
		ID    string `xml:"id"`
		Title string `xml:"title"`
		Links []struct {
			Rel  string `xml:"rel,attr"`
			Href string `xml:"href,attr"`
		} `xml:"link"`
	} `xml:"entry"`
}

// parseFeed はRSS 2.0とAtomのフィードを新しい順のまま解釈します。
// 項目のIDはguid(RSS)ないしid(Atom)を使い、無ければリンクで代用します。
func parseFeed(data []byte) ([]feedItem, error) {
	var probe struct {
		XMLName xml.Name
	}
	if err := xml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("フィードの解析に失敗しました: %w", err)
	}

	switch probe.XMLName.Local {
	case "rss":
		var doc rssDoc
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("RSSの解析に失敗しました: %w", err)
		}
		items := make([]feedItem, 0, len(doc.Channel.Items))
		for _, it := range doc.Channel.Items {
			id := it.GUID
			if id == "" {
				id = it.Link
			}
			items = append(items, feedItem{ID: id, Title: it.Title, Link: it.Link})
		}
		return items, nil

	case "feed":
		var doc atomDoc
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("Atomの解析に失敗しました: %w", err)
		}
		items := make([]feedItem, 0, len(doc.Entries))
		for _, e := range doc.Entries {
			var link string
			for _, l := range e.Links {
				if l.Rel == "" || l.Rel == "alternate" {
					link = l.Href
					break
				}
			}
			id := e.ID
			if id == "" {
				id = link
			}
			items = append(items, feedItem{ID: id, Title: e.Title, Link: link})
		}
		return items, nil

	default:
		return nil, fmt.Errorf("未対応のフィード形式です: <%s>", probe.XMLName.Local)
	}
}

// pollSocialFeeds は登録された全フィードの新着を確認します。
// スケジューラから定期的に呼ばれます。
func (b *Bot) pollSocialFeeds() {
	feeds, err := b.Store.GetAllSocialFeeds()
	if err != nil {
		b.Log.Error("Failed to list social feeds", "error", err)
		return
	}
	if len(feeds) == 0 {
		return
	}

	client := &http.Client{Timeout: 20 * time.Second}
	for _, feed := range feeds {
		b.checkFeed(client, feed)
	}
}

func (b *Bot) checkFeed(client *http.Client, feed storage.SocialFeed) {
	resp, err := client.Get(feed.FeedURL)
	if err != nil {
		b.Log.Warn("Failed to fetch social feed", "error", err, "url", feed.FeedURL)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b.Log.Warn("Social feed returned an error status", "status", resp.StatusCode, "url", feed.FeedURL)
		return
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		b.Log.Warn("Failed to read social feed", "error", err, "url", feed.FeedURL)
		return
	}

	items, err := parseFeed(data)
	if err != nil {
		b.Log.Warn("Failed to parse social feed", "error", err, "url", feed.FeedURL)
		return
	}
	if len(items) == 0 {
		return
	}

	newest := items[0]
	if newest.ID == feed.LastItemID {
		return
	}

	// 登録直後の初回は現在位置を覚えるだけで通知しない
	if feed.LastItemID == "" {
		if err := b.Store.SetSocialFeedLastItem(feed.ID, newest.ID); err != nil {
			b.Log.Error("Failed to update feed marker", "error", err, "feedID", feed.ID)
		}
		return
	}

	fresh := make([]feedItem, 0, len(items))
	for _, item := range items {
		if item.ID == feed.LastItemID {
			break
		}
		fresh = append(fresh, item)
	}
	if len(fresh) > maxFeedAnnounce {
		fresh = fresh[:maxFeedAnnounce]
	}

	// 古い順に流す
	for i := len(fresh) - 1; i >= 0; i-- {
		item := fresh[i]
		msg := fmt.Sprintf("📣 **%s**\n%s", item.Title, item.Link)
		if _, err := b.Session.ChannelMessageSend(feed.ChannelID, msg); err != nil {
			b.Log.Warn("Failed to announce feed item", "error", err, "channelID", feed.ChannelID)
		}
	}

	if err := b.Store.SetSocialFeedLastItem(feed.ID, newest.ID); err != nil {
		b.Log.Error("Failed to update feed marker", "error", err, "feedID", feed.ID)
	}
}
