package infinitode

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Mode selects which column a leaderboard is ranked by.
type Mode string

const (
	ModeScore Mode = "score"
	ModeWaves Mode = "waves"
)

// Difficulty selects the difficulty bracket of a leaderboard.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "EASY"
	DifficultyNormal  Difficulty = "NORMAL"
	DifficultyEndless Difficulty = "ENDLESS_I"
)

const dateLayout = "2006-01-02"

var playerIDPattern = regexp.MustCompile(`^U-([A-Z0-9]{4}-){2}[A-Z0-9]{6}$`)

// Map names the service currently ranks, as shipped in the game build the API
// version targets.
var knownLevels = []string{
	"1.1", "1.2", "1.3", "1.4", "1.5", "1.6", "1.7", "1.8", "1.b1",
	"2.1", "2.2", "2.3", "2.4", "2.5", "2.6", "2.7", "2.8", "2.b1",
	"3.1", "3.2", "3.3", "3.4", "3.5", "3.6", "3.7", "3.8", "3.b1",
	"4.1", "4.2", "4.3", "4.4", "4.5", "4.6", "4.7", "4.8", "4.b1",
	"5.1", "5.2", "5.3", "5.4", "5.5", "5.6", "5.7", "5.8", "5.b1", "5.b2",
	"6.1", "6.2", "6.3", "6.4", "6.5", "6.6", "rumble", "dev", "zecred",
	"DQ1", "DQ3", "DQ4", "DQ5", "DQ7", "DQ8", "DQ9", "DQ10", "DQ11", "DQ12",
}

var levelSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(knownLevels))
	for _, l := range knownLevels {
		m[l] = struct{}{}
	}
	return m
}()

// normalizeMapname stringifies a mapname given as a string or a number, so that
// 5.1 and "5.1" address the same leaderboard.
func normalizeMapname(v any) (string, error) {
	switch m := v.(type) {
	case string:
		return m, nil
	case float64:
		return strconv.FormatFloat(m, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(m), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(m), nil
	case int64:
		return strconv.FormatInt(m, 10), nil
	case fmt.Stringer:
		return m.String(), nil
	default:
		return "", &BadArgumentError{Param: "mapname", Value: fmt.Sprint(v), Reason: "must be a string or a number"}
	}
}

func checkMapname(m string) error {
	if _, ok := levelSet[m]; !ok {
		return &BadArgumentError{Param: "mapname", Value: m, Reason: "unknown map"}
	}
	return nil
}

func checkPlayerID(id string) error {
	if !playerIDPattern.MatchString(id) {
		return &BadArgumentError{Param: "playerid", Value: id, Reason: "must match U-XXXX-XXXX-XXXXXX"}
	}
	return nil
}

func checkMode(m Mode) error {
	switch m {
	case ModeScore, ModeWaves:
		return nil
	}
	return &BadArgumentError{Param: "mode", Value: string(m), Reason: "must be score or waves"}
}

func checkDifficulty(d Difficulty) error {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyEndless:
		return nil
	}
	return &BadArgumentError{Param: "difficulty", Value: string(d), Reason: "must be EASY, NORMAL or ENDLESS_I"}
}

// normalizeDate accepts a date as a time.Time or a YYYY-MM-DD string and
// normalizes it for the daily quest endpoint. A nil or unparseable date falls
// back to the current UTC date; the fallback for bad strings is logged, since
// the caller probably expected a different board.
func normalizeDate(v any, log zerolog.Logger) (string, error) {
	switch d := v.(type) {
	case nil:
		return time.Now().UTC().Format(dateLayout), nil
	case time.Time:
		return d.Format(dateLayout), nil
	case string:
		if _, err := time.Parse(dateLayout, d); err != nil {
			log.Warn().Str("date", d).Msg("invalid daily quest date, using current date (use YYYY-MM-DD)")
			return time.Now().UTC().Format(dateLayout), nil
		}
		return d, nil
	default:
		return "", &BadArgumentError{Param: "date", Value: fmt.Sprint(v), Reason: "must be a string or a time.Time"}
	}
}
