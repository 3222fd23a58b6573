package infinitode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// optInt is a numeric payload field. The service emits JSON numbers or numeric
// strings interchangeably, and blanks out some fields (empty EASY slots come
// back as ""). Blank and null decode to absent, anything non-numeric is an
// error.
type optInt struct {
	value int64
	ok    bool
}

func (o *optInt) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", raw)
		}
		o.value, o.ok = v, true
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", s)
	}
	o.value, o.ok = v, true
	return nil
}

// optPercent is a percentile payload field: a number, or a string with an
// optional trailing percent sign. Placeholders like "-%" decode to absent.
type optPercent struct {
	value float64
	ok    bool
}

func (o *optPercent) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "%")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil
		}
		o.value, o.ok = v, true
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", s)
	}
	o.value, o.ok = v, true
	return nil
}

type payloadBadge struct {
	IconImg      string `json:"iconImg"`
	IconColor    string `json:"iconColor"`
	OverlayImg   string `json:"overlayImg"`
	OverlayColor string `json:"overlayColor"`
}

// payloadScore is the score shape shared by the envelope's player object and
// its leaderboards entries. Entries carry no rank; their rank is their list
// position.
type payloadScore struct {
	PlayerID    string        `json:"playerid"`
	Rank        optInt        `json:"rank"`
	Score       optInt        `json:"score"`
	Nickname    *string       `json:"nickname"`
	HasPfp      *bool         `json:"hasPfp"`
	Level       optInt        `json:"level"`
	PinnedBadge *payloadBadge `json:"pinnedBadge"`
	Position    optInt        `json:"position"`
	Top         optPercent    `json:"top"`
	Total       optInt        `json:"total"`
}

// apiEnvelope is the common envelope of the JSON API actions.
type apiEnvelope struct {
	Status       string         `json:"status"`
	Message      string         `json:"message"`
	Player       *payloadScore  `json:"player"`
	Leaderboards []payloadScore `json:"leaderboards"`
}

func decodeEnvelope(endpoint string, body []byte) (*apiEnvelope, error) {
	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &MalformedResponseError{Endpoint: endpoint, Field: "body", cause: err}
	}
	if env.Status == "" {
		return nil, &MalformedResponseError{Endpoint: endpoint, Field: "status"}
	}
	if env.Status != "success" {
		return nil, &APIError{Endpoint: endpoint, Message: "error response from server: " + env.Message}
	}
	return &env, nil
}

// buildLeaderboard maps a decoded envelope onto a Leaderboard. Entries are
// ranked by their list position, ascending from 1; the envelope's player
// object becomes the board's own-entry Score when the caller supplied a
// playerid and the player is actually ranked.
func buildLeaderboard(endpoint, mapname string, mode Mode, difficulty Difficulty, playerid string, body []byte, date string, season int) (*Leaderboard, error) {
	env, err := decodeEnvelope(endpoint, body)
	if err != nil {
		return nil, err
	}
	if env.Player == nil {
		return nil, &MalformedResponseError{Endpoint: endpoint, Field: "player"}
	}
	if env.Leaderboards == nil {
		return nil, &MalformedResponseError{Endpoint: endpoint, Field: "leaderboards"}
	}
	if !env.Player.Total.ok {
		return nil, &MalformedResponseError{Endpoint: endpoint, Field: "player.total"}
	}
	total := int(env.Player.Total.value)

	lb := &Leaderboard{
		Method:     endpoint,
		Mapname:    mapname,
		Mode:       mode,
		Difficulty: difficulty,
		Total:      total,
		Date:       date,
		Season:     season,
		Raw:        append(json.RawMessage(nil), body...),
	}
	if playerid != "" && env.Player.Rank.value > 0 && env.Player.Score.value != 0 && total > 0 {
		own := scoreFromPayload(endpoint, mapname, mode, difficulty, playerid, int(env.Player.Rank.value), env.Player)
		lb.player = own
	}
	for i, e := range env.Leaderboards {
		lb.scores = append(lb.scores, scoreFromPayload(endpoint, mapname, mode, difficulty, e.PlayerID, i+1, &e))
	}
	return lb, nil
}

// buildRankScore maps a leaderboards_rank envelope onto the queried player's
// Score. Unlike list entries, the rank here comes from the server.
func buildRankScore(endpoint, mapname string, mode Mode, difficulty Difficulty, playerid string, body []byte) (*Score, error) {
	env, err := decodeEnvelope(endpoint, body)
	if err != nil {
		return nil, err
	}
	if env.Player == nil {
		return nil, &MalformedResponseError{Endpoint: endpoint, Field: "player"}
	}
	if !env.Player.Rank.ok {
		return nil, &MalformedResponseError{Endpoint: endpoint, Field: "player.rank"}
	}
	return scoreFromPayload(endpoint, mapname, mode, difficulty, playerid, int(env.Player.Rank.value), env.Player), nil
}

func scoreFromPayload(endpoint, mapname string, mode Mode, difficulty Difficulty, playerid string, rank int, e *payloadScore) *Score {
	s := &Score{
		Method:     endpoint,
		Mapname:    mapname,
		Mode:       mode,
		Difficulty: difficulty,
		PlayerID:   playerid,
		Rank:       rank,
		Nickname:   e.Nickname,
		HasPfp:     e.HasPfp,
	}
	if e.Score.ok {
		v := e.Score.value
		s.Score = &v
	}
	if e.Level.ok {
		v := int(e.Level.value)
		s.Level = &v
	}
	if e.PinnedBadge != nil {
		s.PinnedBadge = &Badge{
			IconImg:      e.PinnedBadge.IconImg,
			IconColor:    e.PinnedBadge.IconColor,
			OverlayImg:   e.PinnedBadge.OverlayImg,
			OverlayColor: e.PinnedBadge.OverlayColor,
		}
	}
	if e.Position.ok {
		v := int(e.Position.value)
		s.Position = &v
	}
	if e.Top.ok {
		v := e.Top.value
		s.Top = &v
	}
	if e.Total.ok {
		v := int(e.Total.value)
		s.Total = &v
	}
	return s
}
