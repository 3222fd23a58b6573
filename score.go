package infinitode

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Score is a single ranked entry on one leaderboard. The always-present
// fields identify the leaderboard the entry belongs to; the pointer fields are
// only delivered by some endpoints and are nil when absent. In particular a
// nil Score value marks an empty slot (the service returns those on EASY
// boards) and must not be read as zero.
type Score struct {
	Method     string
	Mapname    string
	Mode       Mode
	Difficulty Difficulty
	PlayerID   string
	Rank       int

	Score       *int64
	Nickname    *string
	Level       *int
	HasPfp      *bool
	PinnedBadge *Badge
	Position    *int
	Top         *float64
	Total       *int

	player *Player
}

// GetScore returns the score value, or zero when the entry carries none.
func (s *Score) GetScore() int64 {
	if s.Score == nil {
		return 0
	}
	return *s.Score
}

// GetNickname returns the nickname, or the empty string when not delivered.
func (s *Score) GetNickname() string {
	if s.Nickname == nil {
		return ""
	}
	return *s.Nickname
}

// GetLevel returns the player's XP level, or zero when not delivered.
func (s *Score) GetLevel() int {
	if s.Level == nil {
		return 0
	}
	return *s.Level
}

// GetHasPfp reports whether the player has a profile picture, defaulting to
// false when the endpoint did not say.
func (s *Score) GetHasPfp() bool {
	if s.HasPfp == nil {
		return false
	}
	return *s.HasPfp
}

// GetPosition returns the server-reported position, or zero when not
// delivered. Beyond the top 200 the server value is unreliable; prefer Rank.
func (s *Score) GetPosition() int {
	if s.Position == nil {
		return 0
	}
	return *s.Position
}

// GetTop returns the percentile this score sits in, or zero when not
// delivered.
func (s *Score) GetTop() float64 {
	if s.Top == nil {
		return 0
	}
	return *s.Top
}

// GetTotal returns the total number of ranked players, or zero when not
// delivered.
func (s *Score) GetTotal() int {
	if s.Total == nil {
		return 0
	}
	return *s.Total
}

// Player returns the owning player's profile if it has been fetched, else nil.
func (s *Score) Player() *Player { return s.player }

// FetchPlayer retrieves the profile of the player who owns this score and
// caches it on the Score. Requires an open session.
func (s *Score) FetchPlayer(ctx context.Context, sess *Session) (*Player, error) {
	if s.player != nil {
		return s.player, nil
	}
	if sess == nil {
		return nil, ErrMissingSession
	}
	p, err := sess.Player(ctx, s.PlayerID, nil)
	if err != nil {
		return nil, err
	}
	s.player = p
	return p, nil
}

// FormatScore renders the entry as one fixed-width leaderboard row. Column
// widths count characters, not bytes. It fails when the entry has no nickname
// attached, since the row would be unreadable.
func (s *Score) FormatScore() (string, error) {
	if s.Nickname == nil {
		return "", fmt.Errorf("infinitode: score has no nickname attached, cannot format")
	}
	nick := []rune(*s.Nickname)
	if len(nick) >= 21 {
		nick = append(nick[:19], '.', '.', '.')
	}
	pad := strings.Repeat(" ", 22-len(nick))
	return fmt.Sprintf("#%-5d %s%s %s", s.Rank, string(nick), pad, formatThousands(s.GetScore())), nil
}

func (s *Score) String() string {
	return fmt.Sprintf("<Score method=%s mapname=%s mode=%s difficulty=%s playerid=%s rank=%d score=%d>",
		s.Method, s.Mapname, s.Mode, s.Difficulty, s.PlayerID, s.Rank, s.GetScore())
}

// formatThousands renders n with comma digit grouping.
func formatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	start := 0
	if s[0] == '-' {
		start = 1
	}
	digits := len(s) - start
	if digits <= 3 {
		return s
	}
	var b strings.Builder
	b.WriteString(s[:start])
	first := start + digits%3
	if digits%3 == 0 {
		first = start + 3
	}
	b.WriteString(s[start:first])
	for i := first; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
