package api

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/smartsavehub/smartsave/internal/model"
)

const goalIDPrefix = "goal-"

// ParseBoard scrapes goal cards out of the server-rendered goal page.
//
// Each card is a #goal-{index} container holding .progress-fill[data-width],
// .progress-labels spans (saved, target), .nudge-text and .history-list items.
// Page-level .badge entries and the .reminder-banner text are read too.
// Missing elements leave the corresponding field zero.
func ParseBoard(r io.Reader) (*model.Board, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("smartsave: parsing goal page: %w", err)
	}

	board := &model.Board{}
	doc.Find(`[id^="goal-"]`).Each(func(_ int, card *goquery.Selection) {
		id, _ := card.Attr("id")
		index, err := strconv.Atoi(strings.TrimPrefix(id, goalIDPrefix))
		if err != nil || index < 0 {
			return
		}
		board.Goals = append(board.Goals, parseCard(index, card))
	})
	sort.Slice(board.Goals, func(i, j int) bool {
		return board.Goals[i].Index < board.Goals[j].Index
	})

	if s := doc.Find(".streak-count").First(); s.Length() > 0 {
		board.Streak = int(parseRupees(s.Text()))
	}

	doc.Find(".badge").Each(func(_ int, b *goquery.Selection) {
		badge := model.Badge{
			Icon: firstText(b, ".badge-icon"),
			Name: firstText(b, ".badge-name"),
			Desc: firstText(b, ".badge-desc"),
		}
		if badge.Desc == "" {
			badge.Desc, _ = b.Attr("title")
		}
		if badge.Name != "" {
			board.Badges = append(board.Badges, badge)
		}
	})
	board.Reminder = firstText(doc.Selection, ".reminder-banner", ".reminder-text")
	return board, nil
}

// firstText returns the trimmed text of the first selector with content.
func firstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(s.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func parseCard(index int, card *goquery.Selection) model.Goal {
	g := model.Goal{Index: index}

	g.Name = firstText(card, ".goal-name", "h3", "h2")

	if w, ok := card.Find(".progress-fill").First().Attr("data-width"); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(w), 64); err == nil {
			g.Percent = int(math.Floor(f))
		}
	}

	labels := card.Find(".progress-labels span")
	if labels.Length() > 0 {
		g.Saved = parseRupees(labels.First().Text())
	}
	if labels.Length() > 1 {
		g.Target = parseRupees(labels.Last().Text())
	}

	g.Nudge = firstText(card, ".nudge-text")
	g.Projection = firstText(card, ".projection-text", ".projection")

	card.Find(".history-list .history-item").Each(func(_ int, item *goquery.Selection) {
		if len(g.History) >= model.MaxVisibleHistory {
			return
		}
		spans := item.Find("span")
		if spans.Length() < 2 {
			return
		}
		g.History = append(g.History, model.HistoryItem{
			Date:   strings.TrimSpace(spans.First().Text()),
			Amount: parseRupees(spans.Last().Text()),
		})
	})

	g.Completed = card.HasClass("completed") || (g.Target > 0 && g.Saved >= g.Target)
	return g
}

// parseRupees extracts the digits from a label like "₹1,20,000" or "+₹500".
func parseRupees(s string) int64 {
	var n int64
	seen := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int64(r-'0')
			seen = true
			continue
		}
		if r == '.' && seen {
			break
		}
	}
	return n
}
