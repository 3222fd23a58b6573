package infinitode

import (
	"context"
	"net/url"
)

// LeaderboardsOptions carries the optional arguments of Leaderboards. Mode
// defaults to score, Difficulty to NORMAL; a non-empty PlayerID additionally
// resolves the player's own entry on the board.
type LeaderboardsOptions struct {
	PlayerID   string
	Mode       Mode
	Difficulty Difficulty
	Beta       bool
}

// LeaderboardsRankOptions carries the optional arguments of LeaderboardsRank.
type LeaderboardsRankOptions struct {
	Mode       Mode
	Difficulty Difficulty
	Beta       bool
}

// RuntimeLeaderboardsOptions carries the optional arguments of
// RuntimeLeaderboards.
type RuntimeLeaderboardsOptions struct {
	Mode       Mode
	Difficulty Difficulty
	Beta       bool
}

// SkillPointOptions carries the optional arguments of SkillPointLeaderboard.
type SkillPointOptions struct {
	PlayerID string
	Beta     bool
}

// DailyQuestOptions carries the optional arguments of DailyQuestLeaderboards.
// Date takes a YYYY-MM-DD string or a time.Time; when nil the current UTC
// date is used.
type DailyQuestOptions struct {
	Date     any
	PlayerID string
	Beta     bool
}

// SeasonalOptions carries the optional arguments of SeasonalLeaderboard.
type SeasonalOptions struct {
	Beta bool
}

// PlayerOptions carries the optional arguments of Player.
type PlayerOptions struct {
	Beta bool
}

// Leaderboards retrieves a map's leaderboard, holding the top 200 scores at
// most. The mapname is accepted as a string or a number, so 5.1 and "5.1"
// address the same board.
func (s *Session) Leaderboards(ctx context.Context, mapname any, opts *LeaderboardsOptions) (*Leaderboard, error) {
	if opts == nil {
		opts = &LeaderboardsOptions{}
	}
	name, mode, difficulty, err := s.levelArgs(mapname, opts.PlayerID, opts.Mode, opts.Difficulty, false)
	if err != nil {
		return nil, err
	}
	form := levelForm(name, opts.PlayerID, mode, difficulty)
	body, err := s.apiPost(ctx, "leaderboards", "getLeaderboards", form, opts.Beta)
	if err != nil {
		return nil, err
	}
	return buildLeaderboard("leaderboards", name, mode, difficulty, opts.PlayerID, body, "", 0)
}

// LeaderboardsRank retrieves the given player's Score on a map, including the
// server-assigned rank. A valid playerid is required.
func (s *Session) LeaderboardsRank(ctx context.Context, mapname any, playerid string, opts *LeaderboardsRankOptions) (*Score, error) {
	if opts == nil {
		opts = &LeaderboardsRankOptions{}
	}
	name, mode, difficulty, err := s.levelArgs(mapname, playerid, opts.Mode, opts.Difficulty, true)
	if err != nil {
		return nil, err
	}
	form := levelForm(name, playerid, mode, difficulty)
	body, err := s.apiPost(ctx, "leaderboards_rank", "getLeaderboardsRank", form, opts.Beta)
	if err != nil {
		return nil, err
	}
	return buildRankScore("leaderboards_rank", name, mode, difficulty, playerid, body)
}

// RuntimeLeaderboards retrieves a map's runtime leaderboard, the one shown
// top right in-game: the top 200 scores plus one entry per top percentile
// bucket. A valid playerid is required.
func (s *Session) RuntimeLeaderboards(ctx context.Context, mapname any, playerid string, opts *RuntimeLeaderboardsOptions) (*Leaderboard, error) {
	if opts == nil {
		opts = &RuntimeLeaderboardsOptions{}
	}
	name, mode, difficulty, err := s.levelArgs(mapname, playerid, opts.Mode, opts.Difficulty, true)
	if err != nil {
		return nil, err
	}
	form := levelForm(name, playerid, mode, difficulty)
	body, err := s.apiPost(ctx, "runtime_leaderboards", "getRuntimeLeaderboards", form, opts.Beta)
	if err != nil {
		return nil, err
	}
	return buildLeaderboard("runtime_leaderboards", name, mode, difficulty, playerid, body, "", 0)
}

// SkillPointLeaderboard retrieves the top 3 skill point owners.
func (s *Session) SkillPointLeaderboard(ctx context.Context, opts *SkillPointOptions) (*Leaderboard, error) {
	if opts == nil {
		opts = &SkillPointOptions{}
	}
	if opts.PlayerID != "" {
		if err := checkPlayerID(opts.PlayerID); err != nil {
			return nil, err
		}
	}
	form := url.Values{}
	if opts.PlayerID != "" {
		form.Set("playerid", opts.PlayerID)
	}
	body, err := s.apiPost(ctx, "skill_point_leaderboard", "getSkillPointLeaderboard", form, opts.Beta)
	if err != nil {
		return nil, err
	}
	return buildLeaderboard("skill_point_leaderboard", "SP", ModeScore, DifficultyNormal, opts.PlayerID, body, "", 0)
}

// DailyQuestLeaderboards retrieves the daily quest leaderboard of the given
// date, holding the top 200 entries at most. An invalid date falls back to
// the current UTC date with a logged warning.
func (s *Session) DailyQuestLeaderboards(ctx context.Context, opts *DailyQuestOptions) (*Leaderboard, error) {
	if opts == nil {
		opts = &DailyQuestOptions{}
	}
	date, err := normalizeDate(opts.Date, s.log)
	if err != nil {
		return nil, err
	}
	if opts.PlayerID != "" {
		if err := checkPlayerID(opts.PlayerID); err != nil {
			return nil, err
		}
	}
	form := url.Values{}
	form.Set("date", date)
	if opts.PlayerID != "" {
		form.Set("playerid", opts.PlayerID)
	}
	body, err := s.apiPost(ctx, "daily_quest_leaderboards", "getDailyQuestLeaderboards", form, opts.Beta)
	if err != nil {
		return nil, err
	}
	return buildLeaderboard("daily_quest_leaderboards", "DQ", ModeScore, DifficultyNormal, opts.PlayerID, body, date, 0)
}

// SeasonalLeaderboard retrieves the season's top 100 scores, scraped from the
// seasonal leaderboard page.
func (s *Session) SeasonalLeaderboard(ctx context.Context, opts *SeasonalOptions) (*Leaderboard, error) {
	if opts == nil {
		opts = &SeasonalOptions{}
	}
	params := url.Values{}
	params.Set("url", "seasonal_leaderboard")
	body, err := s.get(ctx, "seasonal_leaderboard", "/xdx/", params, opts.Beta)
	if err != nil {
		return nil, err
	}
	return parseSeasonalPage(body)
}

// Player retrieves a player's profile, scraped from the profile page. A valid
// playerid is required.
func (s *Session) Player(ctx context.Context, playerid string, opts *PlayerOptions) (*Player, error) {
	if opts == nil {
		opts = &PlayerOptions{}
	}
	if err := checkPlayerID(playerid); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("url", "profile/view")
	params.Set("id", playerid)
	body, err := s.get(ctx, "player", "/xdx/index.php", params, opts.Beta)
	if err != nil {
		return nil, err
	}
	return parsePlayerPage(body, playerid)
}

// levelArgs validates the shared per-map arguments and fills in the mode and
// difficulty defaults. Validation failures surface before any network call.
func (s *Session) levelArgs(mapname any, playerid string, mode Mode, difficulty Difficulty, playerRequired bool) (string, Mode, Difficulty, error) {
	name, err := normalizeMapname(mapname)
	if err != nil {
		return "", "", "", err
	}
	if err := checkMapname(name); err != nil {
		return "", "", "", err
	}
	if playerRequired || playerid != "" {
		if err := checkPlayerID(playerid); err != nil {
			return "", "", "", err
		}
	}
	if mode == "" {
		mode = ModeScore
	}
	if difficulty == "" {
		difficulty = DifficultyNormal
	}
	if err := checkMode(mode); err != nil {
		return "", "", "", err
	}
	if err := checkDifficulty(difficulty); err != nil {
		return "", "", "", err
	}
	return name, mode, difficulty, nil
}

func levelForm(mapname, playerid string, mode Mode, difficulty Difficulty) url.Values {
	form := url.Values{}
	form.Set("gamemode", "BASIC_LEVELS")
	form.Set("difficulty", string(difficulty))
	if playerid != "" {
		form.Set("playerid", playerid)
	}
	form.Set("mapname", mapname)
	form.Set("mode", string(mode))
	return form
}
