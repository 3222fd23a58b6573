package infinitode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// The web frontend renders its GUI scene as nested div/label elements whose
// layout attributes (width, height, x, ...) are stable across deploys. The
// parsers below anchor on those attributes; when an anchor disappears the
// page format has changed and the parse fails with a PageStructureError.

const (
	pageSeasonal = "seasonal_leaderboard"
	pageProfile  = "profile"
)

func parseSeasonalPage(body []byte) (*Leaderboard, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &MalformedResponseError{Endpoint: pageSeasonal, Field: "body", cause: err}
	}

	season, err := i18nfInt(doc, pageSeasonal, `label[i18n="season_formatted"]`)
	if err != nil {
		return nil, err
	}
	total, err := i18nfInt(doc, pageSeasonal, `label[i18n="player_count_formatted"]`)
	if err != nil {
		return nil, err
	}

	// One div[x="90"] per rendered row; the name and score labels are matched
	// to rows by document order.
	rows := doc.Find(`div[x="90"]`).Length()
	names := doc.Find(`label[color="LIGHT_BLUE:P300"]`)
	scores := doc.Find(`label[nowrap="true"][text-align="right"]`)
	if names.Length() < rows {
		return nil, &PageStructureError{Page: pageSeasonal, Anchor: `label[color="LIGHT_BLUE:P300"]`}
	}
	if scores.Length() < rows {
		return nil, &PageStructureError{Page: pageSeasonal, Anchor: `label[nowrap="true"][text-align="right"]`}
	}

	lb := &Leaderboard{
		Method:     "seasonal_leaderboard",
		Mapname:    "season",
		Mode:       ModeScore,
		Difficulty: DifficultyNormal,
		Total:      total,
		Season:     season,
	}
	for x := 0; x < rows; x++ {
		name := names.Eq(x)
		click, ok := name.Attr("click")
		parts := strings.SplitN(click, "id=", 2)
		if !ok || len(parts) != 2 {
			return nil, &PageStructureError{Page: pageSeasonal, Anchor: `label[color="LIGHT_BLUE:P300"][click]`}
		}
		value, err := strconv.ParseInt(deComma(scores.Eq(x).Text()), 10, 64)
		if err != nil {
			return nil, &PageStructureError{Page: pageSeasonal, Anchor: `label[nowrap="true"][text-align="right"]`}
		}
		nickname := name.Text()
		lb.scores = append(lb.scores, &Score{
			Method:     lb.Method,
			Mapname:    lb.Mapname,
			Mode:       lb.Mode,
			Difficulty: lb.Difficulty,
			PlayerID:   parts[1],
			Rank:       x + 1,
			Score:      &value,
			Nickname:   &nickname,
		})
	}
	return lb, nil
}

func parsePlayerPage(body []byte, playerid string) (*Player, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &MalformedResponseError{Endpoint: pageProfile, Field: "body", cause: err}
	}

	p := &Player{
		PlayerID: playerid,
		levels:   make(map[string]*Score),
		badges:   make(map[string]ProfileBadge),
	}

	// The first non-localized label on the page is the nickname. Profiles of
	// unknown players render without it.
	nick := doc.Find(`label:not([i18n])`).First()
	if nick.Length() == 0 {
		return nil, &PageStructureError{Page: pageProfile, Anchor: `label:not([i18n])`}
	}
	p.Nickname = nick.Text()

	parseProfileTotals(doc, p)
	p.Level = levelFromComments(doc)
	if err := parseProfileXP(doc, p); err != nil {
		return nil, err
	}
	if err := parseProfileLevels(doc, p); err != nil {
		return nil, err
	}
	parseProfileBadges(doc, p)
	if err := parseProfileMisc(doc, p); err != nil {
		return nil, err
	}
	return p, nil
}

// parseProfileTotals reads the seasonal totals box. Players without a ranked
// seasonal score have no box and keep zero totals.
func parseProfileTotals(doc *goquery.Document, p *Player) {
	box := doc.Find(`div[width="522"][height="140"][align="center"]`).First()
	if box.Length() == 0 {
		return
	}
	labels := box.Find("label")
	if labels.Length() < 4 {
		return
	}
	p.TotalScore = tryInt64(deComma(labels.Eq(1).Text()))
	p.TotalRank = tryInt(deComma(labels.Eq(2).Text()))
	if top, ok := percentValue(strings.TrimPrefix(labels.Eq(3).Text(), "- Top ")); ok {
		p.TotalTop = top
	}
}

// levelFromComments digs the XP level out of an HTML comment: the page keeps
// the level widget commented out, shaped like <!-- ...>...>...>LEVEL<... -->.
func levelFromComments(doc *goquery.Document) int {
	level := 1
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.CommentNode && strings.Contains(n.Data, "Level:") {
			parts := strings.Split(n.Data, ">")
			if len(parts) > 3 {
				v := parts[3]
				if i := strings.IndexByte(v, '<'); i >= 0 {
					v = v[:i]
				}
				if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
					level = parsed
				}
			}
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	for _, n := range doc.Nodes {
		if walk(n) {
			break
		}
	}
	return level
}

func parseProfileXP(doc *goquery.Document, p *Player) error {
	box := doc.Find(`div[width="330"][height="64"]`).First()
	if box.Length() == 0 {
		return &PageStructureError{Page: pageProfile, Anchor: `div[width="330"][height="64"]`}
	}
	xp, xpMax, ok := xpPair(box.Find("label").First().Text())
	if !ok {
		return &PageStructureError{Page: pageProfile, Anchor: `div[width="330"][height="64"] label`}
	}
	p.XP, p.XPMax = xp, xpMax

	// The season XP box only renders once the player earned season XP.
	seasonBox := doc.Find(`div[width="530"][align="center"][height="64"][pad-bottom="10"]`).First()
	if seasonBox.Length() == 0 {
		p.SeasonXP, p.SeasonXPMax, p.SeasonLevel = 0, 500, 1
		return nil
	}
	sxp, sxpMax, ok := xpPair(seasonBox.Find("label").First().Text())
	if !ok {
		return &PageStructureError{Page: pageProfile, Anchor: `div[width="530"][align="center"][height="64"][pad-bottom="10"] label`}
	}
	p.SeasonXP, p.SeasonXPMax = sxp, sxpMax

	p.SeasonLevel = 1
	levelBox := seasonBox.Find(`div[x="466"][width="64"][height="64"]`).First()
	if levelBox.Length() > 0 {
		data := levelBox.AttrOr("data", "")
		if i := strings.IndexByte(data, ':'); i >= 0 {
			p.SeasonLevel = tryInt(data[i+1:])
		}
	}
	return nil
}

// parseProfileLevels reads the per-map score table. The first row is the
// table header; rows carrying a not_ranked label become zero-rank entries with
// an absent score value.
func parseProfileLevels(doc *goquery.Document, p *Player) error {
	var parseErr error
	doc.Find(`div[width="800"][height="40"]`).Each(func(i int, row *goquery.Selection) {
		if i == 0 || parseErr != nil {
			return
		}
		labels := row.Find("label")
		if labels.Length() == 0 {
			parseErr = &PageStructureError{Page: pageProfile, Anchor: `div[width="800"][height="40"] label`}
			return
		}
		mapname := labels.Eq(0).Text()
		s := &Score{
			Method:     "player",
			Mapname:    mapname,
			Mode:       ModeScore,
			Difficulty: DifficultyNormal,
			PlayerID:   p.PlayerID,
		}
		nickname, level := p.Nickname, p.Level
		s.Nickname, s.Level = &nickname, &level

		if row.Find(`label[i18n="not_ranked"]`).Length() == 0 {
			if labels.Length() < 4 {
				parseErr = &PageStructureError{Page: pageProfile, Anchor: `div[width="800"][height="40"] label`}
				return
			}
			s.Rank = tryInt(deComma(labels.Eq(2).Text()))
			value := tryInt64(deComma(labels.Eq(1).Text()))
			s.Score = &value
			total := tryInt(deComma(strings.TrimPrefix(labels.Eq(3).Text(), "/ ")))
			s.Total = &total
			if top, ok := percentValue(labels.Last().Text()); ok {
				s.Top = &top
			}
		}
		p.levels[mapname] = s
	})
	return parseErr
}

func parseProfileBadges(doc *goquery.Document, p *Player) {
	highLeveled := p.Level / 10
	if p.Level >= 100 {
		highLeveled = 10
	}
	icons := map[string]struct{}{
		"daily-game":           {},
		"invited-players":      {},
		"killed-enemies":       {},
		"mined-resources":      {},
		"skillful":             {},
		"of-merit":             {},
		"beta-tester-season-2": {},
		fmt.Sprintf("high-leveled-%d", highLeveled): {},
	}
	rarities := map[string]struct{}{
		"not-received": {}, "common": {}, "rare": {}, "very-rare": {},
		"epic": {}, "legendary": {}, "supreme": {}, "artifact": {},
	}

	doc.Find(`div[width="80"][height="80"]`).Each(func(_ int, cell *goquery.Selection) {
		imgs := cell.Find("img")
		if imgs.Length() < 2 {
			return
		}
		rarity, ok := attrSuffix(imgs.Eq(0), "src", "bg-")
		if !ok {
			return
		}
		if _, ok := rarities[rarity]; !ok {
			return
		}
		icon, ok := attrSuffix(imgs.Eq(1), "src", "icon-")
		if !ok {
			return
		}
		_, known := icons[icon]
		switch {
		case known:
		case icon == "youtube-author-"+rarity:
		case icon == "season-level-"+rarity+"-2":
		case icon == "season-level-"+rarity+"-3":
		case strings.HasPrefix(icon, "season-1") || strings.HasPrefix(icon, "season-2"):
		default:
			return
		}
		p.badges[icon] = ProfileBadge{Rarity: rarity, Color: imgs.Last().AttrOr("color", "")}
	})
}

// parseProfileMisc reads the bottom info table: verified replay count, failed
// verification count and the account creation date ("Joined 1st March 2021").
func parseProfileMisc(doc *goquery.Document, p *Player) error {
	tables := doc.Find(`table[width="800"][align="center"]`)
	if tables.Length() == 0 {
		return &PageStructureError{Page: pageProfile, Anchor: `table[width="800"][align="center"]`}
	}
	labels := tables.Last().Find("label")
	if labels.Length() < 3 {
		return &PageStructureError{Page: pageProfile, Anchor: `table[width="800"][align="center"] label`}
	}

	if parts := strings.Split(labels.Eq(labels.Length()-3).Text(), " "); len(parts) == 4 {
		p.Replays = tryInt(parts[3])
	}
	if parts := strings.Split(labels.Eq(labels.Length()-2).Text(), " "); len(parts) == 6 && len(parts[0]) > 3 {
		p.Issues = tryInt(parts[0][3:])
	}

	joined := strings.SplitN(labels.Last().Text(), "ned ", 2)
	if len(joined) != 2 {
		return &PageStructureError{Page: pageProfile, Anchor: `table[width="800"][align="center"] label`}
	}
	sp := strings.Split(joined[1], " ")
	if len(sp) < 3 {
		return &PageStructureError{Page: pageProfile, Anchor: `table[width="800"][align="center"] label`}
	}
	day := sp[0]
	if len(day) >= 2 {
		// strip the ordinal suffix: 1st, 2nd, 23rd, 10th
		day = day[:len(day)-2]
	}
	created, err := time.Parse("2 January 2006", day+" "+sp[len(sp)-2]+" "+sp[len(sp)-1])
	if err != nil {
		return &PageStructureError{Page: pageProfile, Anchor: `table[width="800"][align="center"] label`}
	}
	p.CreatedAt = created.Format(dateLayout)
	return nil
}

// i18nfInt reads the first formatting argument of a localized label, e.g.
// i18nf='["12,345"]'.
func i18nfInt(doc *goquery.Document, page, anchor string) (int, error) {
	label := doc.Find(anchor).First()
	if label.Length() == 0 {
		return 0, &PageStructureError{Page: page, Anchor: anchor}
	}
	var args []string
	if err := json.Unmarshal([]byte(label.AttrOr("i18nf", "")), &args); err != nil || len(args) == 0 {
		return 0, &PageStructureError{Page: page, Anchor: anchor}
	}
	v, err := strconv.Atoi(deComma(args[0]))
	if err != nil {
		return 0, &PageStructureError{Page: page, Anchor: anchor}
	}
	return v, nil
}

// attrSuffix returns what follows the first occurrence of marker in the named
// attribute.
func attrSuffix(sel *goquery.Selection, attr, marker string) (string, bool) {
	v := sel.AttrOr(attr, "")
	i := strings.Index(v, marker)
	if i < 0 {
		return "", false
	}
	return v[i+len(marker):], true
}

func xpPair(text string) (int, int, bool) {
	parts := strings.Split(text, " / ")
	if len(parts) != 2 {
		return 0, 0, false
	}
	xp, err1 := strconv.Atoi(deComma(strings.TrimSpace(parts[0])))
	xpMax, err2 := strconv.Atoi(deComma(strings.TrimSpace(parts[1])))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return xp, xpMax, true
}

func percentValue(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func deComma(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

func tryInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func tryInt64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
