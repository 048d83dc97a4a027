package bot

import "testing"

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Blog</title>
    <item>
      <title>Third post</title>
      <link>https://example.com/3</link>
      <guid>post-3</guid>
    </item>
    <item>
      <title>Second post</title>
      <link>https://example.com/2</link>
      <guid>post-2</guid>
    </item>
    <item>
      <title>First post</title>
      <link>https://example.com/1</link>
    </item>
  </channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:yt="http://www.youtube.com/xml/schemas/2015">
  <title>Example Channel</title>
  <entry>
    <id>yt:video:abc123</id>
    <title>New video</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
  </entry>
  <entry>
    <id>yt:video:def456</id>
    <title>Older video</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=def456"/>
  </entry>
</feed>`

func TestParseFeedRSS(t *testing.T) {
	items, err := parseFeed([]byte(rssFixture))
	if err != nil {
		t.Fatalf("parseFeed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].ID != "post-3" || items[0].Title != "Third post" {
		t.Errorf("items[0] = %+v, want newest post first", items[0])
	}
	// guidが無い項目はリンクをIDとして代用する
	if items[2].ID != "https://example.com/1" {
		t.Errorf("items[2].ID = %q, want link fallback", items[2].ID)
	}
}

func TestParseFeedAtom(t *testing.T) {
	items, err := parseFeed([]byte(atomFixture))
	if err != nil {
		t.Fatalf("parseFeed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "yt:video:abc123" {
		t.Errorf("items[0].ID = %q, want yt:video:abc123", items[0].ID)
	}
	if items[0].Link != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("items[0].Link = %q", items[0].Link)
	}
}

func TestParseFeedRejectsUnknownFormat(t *testing.T) {
	if _, err := parseFeed([]byte(`<html><body>not a feed</body></html>`)); err == nil {
		t.Fatal("expected an error for a non-feed document")
	}
	if _, err := parseFeed([]byte(`not xml at all`)); err == nil {
		t.Fatal("expected an error for invalid XML")
	}
}
