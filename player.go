package infinitode

import (
	"context"
	"fmt"
)

// Player is one account's profile as scraped from the profile page. The
// embedded per-map scores come from the same page; DailyQuest and SkillPoint
// start out unfetched and are populated by the corresponding Fetch call.
type Player struct {
	PlayerID    string
	Nickname    string
	Level       int
	XP          int
	XPMax       int
	SeasonLevel int
	SeasonXP    int
	SeasonXPMax int
	TotalScore  int64
	TotalRank   int
	TotalTop    float64
	Replays     int
	Issues      int
	CreatedAt   string

	levels map[string]*Score
	badges map[string]ProfileBadge

	dailyQuest        *Score
	dailyQuestFetched bool
	skillPoint        *Score
	skillPointFetched bool
}

// AvatarLink returns the player's avatar URL. The service serves a placeholder
// image at the same address for players without a profile picture, so the link
// is always usable.
func (p *Player) AvatarLink() string {
	return fmt.Sprintf("https://infinitode.prineside.com/img/avatars/%s-128.png", p.PlayerID)
}

// Badges returns the player's earned badges keyed by badge type.
func (p *Player) Badges() map[string]ProfileBadge {
	out := make(map[string]ProfileBadge, len(p.badges))
	for k, v := range p.badges {
		out[k] = v
	}
	return out
}

// Score returns the player's own entry on the given map, taken from the
// already-parsed profile. Maps the profile does not rank come back as a
// zero-rank entry with an absent score value.
func (p *Player) Score(mapname string) *Score {
	if s, ok := p.levels[mapname]; ok {
		return s
	}
	return &Score{
		Method:     "player",
		Mapname:    mapname,
		Mode:       ModeScore,
		Difficulty: DifficultyNormal,
		PlayerID:   p.PlayerID,
	}
}

// DailyQuest returns the daily quest score stored by FetchDailyQuest. It fails
// with ErrNotFetched until that fetch has run; after a fetch, a nil Score
// means the player is not ranked today.
func (p *Player) DailyQuest() (*Score, error) {
	if !p.dailyQuestFetched {
		return nil, ErrNotFetched
	}
	return p.dailyQuest, nil
}

// SkillPoint returns the skill point score stored by FetchSkillPoint, with the
// same not-fetched and unranked semantics as DailyQuest.
func (p *Player) SkillPoint() (*Score, error) {
	if !p.skillPointFetched {
		return nil, ErrNotFetched
	}
	return p.skillPoint, nil
}

// FetchDailyQuest retrieves the player's daily quest score and stores it on
// the Player. Returns nil when the player is not ranked today. A previously
// fetched score is returned as-is; an unranked result is refetched.
func (p *Player) FetchDailyQuest(ctx context.Context, sess *Session) (*Score, error) {
	if p.dailyQuestFetched && p.dailyQuest != nil {
		return p.dailyQuest, nil
	}
	if sess == nil {
		if p.dailyQuestFetched {
			return p.dailyQuest, nil
		}
		return nil, ErrMissingSession
	}
	lb, err := sess.DailyQuestLeaderboards(ctx, &DailyQuestOptions{PlayerID: p.PlayerID})
	if err != nil {
		return nil, err
	}
	p.dailyQuest = lb.Player()
	p.dailyQuestFetched = true
	return p.dailyQuest, nil
}

// FetchSkillPoint retrieves the player's skill point score and stores it on
// the Player. Returns nil when the player holds no skill points.
func (p *Player) FetchSkillPoint(ctx context.Context, sess *Session) (*Score, error) {
	if p.skillPointFetched && p.skillPoint != nil {
		return p.skillPoint, nil
	}
	if sess == nil {
		if p.skillPointFetched {
			return p.skillPoint, nil
		}
		return nil, ErrMissingSession
	}
	lb, err := sess.SkillPointLeaderboard(ctx, &SkillPointOptions{PlayerID: p.PlayerID})
	if err != nil {
		return nil, err
	}
	p.skillPoint = lb.Player()
	p.skillPointFetched = true
	return p.skillPoint, nil
}

func (p *Player) String() string {
	return fmt.Sprintf("<Player playerid=%s nickname=%s total_rank=%d>", p.PlayerID, p.Nickname, p.TotalRank)
}
