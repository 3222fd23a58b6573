package infinitode

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Leaderboard is an ordered snapshot of one board: its Scores in ascending
// rank order plus the metadata identifying which board was asked for.
//
// Date is set only for daily quest boards (YYYY-MM-DD), Season only for the
// seasonal board (zero otherwise). Raw preserves the JSON payload the board
// was decoded from and is nil for the HTML-scraped boards.
type Leaderboard struct {
	Method     string
	Mapname    string
	Mode       Mode
	Difficulty Difficulty
	Total      int
	Date       string
	Season     int
	Raw        json.RawMessage

	player *Score
	scores []*Score
}

// Len returns the number of scores on the board.
func (l *Leaderboard) Len() int { return len(l.scores) }

// IsEmpty reports whether the board holds no scores.
func (l *Leaderboard) IsEmpty() bool { return len(l.scores) == 0 }

// Player returns the queried player's own entry, which the service reports
// even when the player sits outside the returned window. Nil when no playerid
// was supplied or the player is unranked.
func (l *Leaderboard) Player() *Score { return l.player }

// Index returns the score at position i (0-based, rank order ascending).
func (l *Leaderboard) Index(i int) (*Score, error) {
	if i < 0 || i >= len(l.scores) {
		return nil, fmt.Errorf("%w: %d not in [0:%d)", ErrOutOfRange, i, len(l.scores))
	}
	return l.scores[i], nil
}

// Slice returns a new Leaderboard carrying the same metadata and the scores in
// [i:j). Negative or inverted bounds fail; after that check both bounds clamp
// to Len, so a window past the end yields an empty board.
func (l *Leaderboard) Slice(i, j int) (*Leaderboard, error) {
	if i < 0 || j < 0 || i > j {
		return nil, fmt.Errorf("%w: invalid slice bounds [%d:%d]", ErrOutOfRange, i, j)
	}
	if i > len(l.scores) {
		i = len(l.scores)
	}
	if j > len(l.scores) {
		j = len(l.scores)
	}
	sub := &Leaderboard{
		Method:     l.Method,
		Mapname:    l.Mapname,
		Mode:       l.Mode,
		Difficulty: l.Difficulty,
		Total:      l.Total,
		Date:       l.Date,
		Season:     l.Season,
		Raw:        l.Raw,
		player:     l.player,
	}
	sub.scores = append(sub.scores, l.scores[i:j]...)
	return sub, nil
}

// Scores returns the board's entries in rank order. The returned slice is a
// copy; the board itself stays immutable.
func (l *Leaderboard) Scores() []*Score {
	return append([]*Score(nil), l.scores...)
}

// ScoreByPlayerID returns the entry belonging to the given player, or nil.
func (l *Leaderboard) ScoreByPlayerID(playerid string) *Score {
	for _, s := range l.scores {
		if s.PlayerID == playerid {
			return s
		}
	}
	return nil
}

// ScoreByNickname returns the first entry with the given nickname, or nil.
// Nicknames are not unique; prefer ScoreByPlayerID when the id is known.
func (l *Leaderboard) ScoreByNickname(nickname string) *Score {
	for _, s := range l.scores {
		if s.Nickname != nil && *s.Nickname == nickname {
			return s
		}
	}
	return nil
}

// FormatScores renders the whole board, one FormatScore row per line.
func (l *Leaderboard) FormatScores() (string, error) {
	rows := make([]string, 0, len(l.scores))
	for _, s := range l.scores {
		row, err := s.FormatScore()
		if err != nil {
			return "", err
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n"), nil
}

func (l *Leaderboard) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<Leaderboard method=%s mapname=%s mode=%s difficulty=%s total=%d scores=%d",
		l.Method, l.Mapname, l.Mode, l.Difficulty, l.Total, len(l.scores))
	if l.Date != "" {
		fmt.Fprintf(&b, " date=%s", l.Date)
	}
	if l.Season != 0 {
		fmt.Fprintf(&b, " season=%d", l.Season)
	}
	if l.player != nil {
		b.WriteString(" player=true")
	}
	b.WriteString(">")
	return b.String()
}
