package infinitode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seasonalPage = `<html><body>
<label i18n="season_formatted" i18nf='["3"]'></label>
<label i18n="player_count_formatted" i18nf='["12,345"]'></label>
<div x="90" width="690" height="56"></div>
<div x="90" width="690" height="56"></div>
<label color="LIGHT_BLUE:P300" click="xdx/index.php?url=profile/view&amp;id=U-AAAA-BBBB-CCCCCC">Alpha</label>
<label nowrap="true" text-align="right">2,000</label>
<label color="LIGHT_BLUE:P300" click="xdx/index.php?url=profile/view&amp;id=U-DDDD-EEEE-FFFFFF">Beta</label>
<label nowrap="true" text-align="right">1,500</label>
</body></html>`

func TestParseSeasonalPage(t *testing.T) {
	lb, err := parseSeasonalPage([]byte(seasonalPage))
	require.NoError(t, err)

	assert.Equal(t, "seasonal_leaderboard", lb.Method)
	assert.Equal(t, "season", lb.Mapname)
	assert.Equal(t, ModeScore, lb.Mode)
	assert.Equal(t, DifficultyNormal, lb.Difficulty)
	assert.Equal(t, 3, lb.Season)
	assert.Equal(t, 12345, lb.Total)
	assert.Nil(t, lb.Raw)
	assert.Nil(t, lb.Player())
	require.Equal(t, 2, lb.Len())

	first, err := lb.Index(0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "U-AAAA-BBBB-CCCCCC", first.PlayerID)
	assert.Equal(t, "Alpha", first.GetNickname())
	assert.Equal(t, int64(2000), first.GetScore())

	second, err := lb.Index(1)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Rank)
	assert.Equal(t, "U-DDDD-EEEE-FFFFFF", second.PlayerID)
	assert.Equal(t, int64(1500), second.GetScore())
}

func TestParseSeasonalPageStructure(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		anchor string
	}{
		{
			name:   "no season label",
			body:   `<html><body><label i18n="player_count_formatted" i18nf='["5"]'></label></body></html>`,
			anchor: `label[i18n="season_formatted"]`,
		},
		{
			name: "no player count label",
			body: `<html><body><label i18n="season_formatted" i18nf='["3"]'></label></body></html>`,
			anchor: `label[i18n="player_count_formatted"]`,
		},
		{
			name: "fewer name labels than rows",
			body: `<html><body>
<label i18n="season_formatted" i18nf='["3"]'></label>
<label i18n="player_count_formatted" i18nf='["5"]'></label>
<div x="90"></div>
</body></html>`,
			anchor: `label[color="LIGHT_BLUE:P300"]`,
		},
		{
			name: "name label without a profile link",
			body: `<html><body>
<label i18n="season_formatted" i18nf='["3"]'></label>
<label i18n="player_count_formatted" i18nf='["5"]'></label>
<div x="90"></div>
<label color="LIGHT_BLUE:P300" click="somewhere_else">Alpha</label>
<label nowrap="true" text-align="right">2,000</label>
</body></html>`,
			anchor: `label[color="LIGHT_BLUE:P300"][click]`,
		},
		{
			name: "score label is not a number",
			body: `<html><body>
<label i18n="season_formatted" i18nf='["3"]'></label>
<label i18n="player_count_formatted" i18nf='["5"]'></label>
<div x="90"></div>
<label color="LIGHT_BLUE:P300" click="xdx/index.php?url=profile/view&amp;id=U-AAAA-BBBB-CCCCCC">Alpha</label>
<label nowrap="true" text-align="right">n/a</label>
</body></html>`,
			anchor: `label[nowrap="true"][text-align="right"]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lb, err := parseSeasonalPage([]byte(tt.body))
			assert.Nil(t, lb)
			var perr *PageStructureError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "seasonal_leaderboard", perr.Page)
			assert.Equal(t, tt.anchor, perr.Anchor)
		})
	}
}

const profilePage = `<html><body>
<label i18n="profile_header">Player profile</label>
<label>Tester</label>
<!--<label a="1">Level:</label><label b="2">57</label>-->
<div width="522" height="140" align="center">
<label i18n="total_score">Total score</label>
<label>123,456</label>
<label>789</label>
<label>- Top 4.51%</label>
</div>
<div width="330" height="64"><label>100 / 400</label></div>
<div width="530" align="center" height="64" pad-bottom="10">
<label>250 / 500</label>
<div x="466" width="64" height="64" data="level:7"></div>
</div>
<div width="800" height="40"><label i18n="level_header">Level</label><label i18n="score_header">Score</label></div>
<div width="800" height="40"><label>5.1</label><label>1,000,000</label><label>17</label><label>/ 3,000</label><label>0.57%</label></div>
<div width="800" height="40"><label>rumble</label><label i18n="not_ranked">Not ranked</label></div>
<div width="80" height="80"><img src="gfx/badge-bg-epic"><img src="gfx/badge-icon-skillful" color="WHITE"></div>
<div width="80" height="80"><img src="gfx/badge-bg-rare"><img src="gfx/badge-icon-high-leveled-5" color="GOLD"></div>
<div width="80" height="80"><img src="gfx/badge-bg-legendary"><img src="gfx/badge-icon-season-level-legendary-3" color="CYAN"></div>
<div width="80" height="80"><img src="gfx/badge-bg-common"><img src="gfx/badge-icon-season-1-top-100" color="WHITE"></div>
<div width="80" height="80"><img src="gfx/badge-bg-mystery"><img src="gfx/badge-icon-skillful" color="WHITE"></div>
<div width="80" height="80"><img src="gfx/badge-bg-epic"><img src="gfx/badge-icon-who-knows" color="WHITE"></div>
<table width="800" align="center"><tr><td><label>Movement stats</label></td></tr></table>
<table width="800" align="center">
<tr><td><label>Total verified replays: 12</label></td></tr>
<tr><td><label>rv:3 replays failed verification this season</label></td></tr>
<tr><td><label>Joined 3rd March 2021</label></td></tr>
</table>
</body></html>`

func TestParsePlayerPage(t *testing.T) {
	p, err := parsePlayerPage([]byte(profilePage), "U-E9BP-FSN9-H6ENMQ")
	require.NoError(t, err)

	assert.Equal(t, "U-E9BP-FSN9-H6ENMQ", p.PlayerID)
	assert.Equal(t, "Tester", p.Nickname)
	assert.Equal(t, 57, p.Level)
	assert.Equal(t, 100, p.XP)
	assert.Equal(t, 400, p.XPMax)
	assert.Equal(t, 7, p.SeasonLevel)
	assert.Equal(t, 250, p.SeasonXP)
	assert.Equal(t, 500, p.SeasonXPMax)
	assert.Equal(t, int64(123456), p.TotalScore)
	assert.Equal(t, 789, p.TotalRank)
	assert.InDelta(t, 4.51, p.TotalTop, 0.001)
	assert.Equal(t, 12, p.Replays)
	assert.Equal(t, 3, p.Issues)
	assert.Equal(t, "2021-03-03", p.CreatedAt)
}

func TestParsePlayerPageLevels(t *testing.T) {
	p, err := parsePlayerPage([]byte(profilePage), "U-E9BP-FSN9-H6ENMQ")
	require.NoError(t, err)

	s := p.Score("5.1")
	require.NotNil(t, s)
	assert.Equal(t, "player", s.Method)
	assert.Equal(t, 17, s.Rank)
	assert.Equal(t, int64(1000000), s.GetScore())
	assert.Equal(t, 3000, s.GetTotal())
	assert.InDelta(t, 0.57, s.GetTop(), 0.001)
	assert.Equal(t, "Tester", s.GetNickname())
	assert.Equal(t, 57, s.GetLevel())
	assert.Equal(t, "U-E9BP-FSN9-H6ENMQ", s.PlayerID)

	// listed but not ranked: the row exists with an absent score
	nr := p.Score("rumble")
	require.NotNil(t, nr)
	assert.Zero(t, nr.Rank)
	assert.Nil(t, nr.Score)
	assert.Nil(t, nr.Total)
	assert.Equal(t, "Tester", nr.GetNickname())
}

func TestParsePlayerPageBadges(t *testing.T) {
	p, err := parsePlayerPage([]byte(profilePage), "U-E9BP-FSN9-H6ENMQ")
	require.NoError(t, err)

	badges := p.Badges()
	require.Len(t, badges, 4)
	assert.Equal(t, ProfileBadge{Rarity: "epic", Color: "WHITE"}, badges["skillful"])
	assert.Equal(t, ProfileBadge{Rarity: "rare", Color: "GOLD"}, badges["high-leveled-5"])
	assert.Equal(t, ProfileBadge{Rarity: "legendary", Color: "CYAN"}, badges["season-level-legendary-3"])
	assert.Equal(t, ProfileBadge{Rarity: "common", Color: "WHITE"}, badges["season-1-top-100"])
	assert.NotContains(t, badges, "who-knows")

	// the accessor hands out a copy
	badges["fake"] = ProfileBadge{}
	assert.Len(t, p.Badges(), 4)
}

func TestParsePlayerPageDefaults(t *testing.T) {
	page := `<html><body>
<label>Ghost</label>
<div width="330" height="64"><label>0 / 150</label></div>
<table width="800" align="center">
<tr><td><label>no replays</label></td></tr>
<tr><td><label>nothing</label></td></tr>
<tr><td><label>Joined 21st June 2022</label></td></tr>
</table>
</body></html>`

	p, err := parsePlayerPage([]byte(page), "U-E9BP-FSN9-H6ENMQ")
	require.NoError(t, err)

	assert.Equal(t, "Ghost", p.Nickname)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 150, p.XPMax)
	assert.Equal(t, 0, p.SeasonXP)
	assert.Equal(t, 500, p.SeasonXPMax)
	assert.Equal(t, 1, p.SeasonLevel)
	assert.Zero(t, p.TotalScore)
	assert.Zero(t, p.TotalRank)
	assert.Zero(t, p.TotalTop)
	assert.Zero(t, p.Replays)
	assert.Zero(t, p.Issues)
	assert.Equal(t, "2022-06-21", p.CreatedAt)
	assert.Empty(t, p.Badges())
}

func TestParsePlayerPageStructure(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		anchor string
	}{
		{
			name:   "unknown player without a nickname",
			body:   `<html><body><label i18n="not_found">Not found</label></body></html>`,
			anchor: `label:not([i18n])`,
		},
		{
			name:   "no xp box",
			body:   `<html><body><label>Tester</label></body></html>`,
			anchor: `div[width="330"][height="64"]`,
		},
		{
			name: "no info table",
			body: `<html><body>
<label>Tester</label>
<div width="330" height="64"><label>0 / 150</label></div>
</body></html>`,
			anchor: `table[width="800"][align="center"]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parsePlayerPage([]byte(tt.body), "U-E9BP-FSN9-H6ENMQ")
			assert.Nil(t, p)
			var perr *PageStructureError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "profile", perr.Page)
			assert.Equal(t, tt.anchor, perr.Anchor)
		})
	}
}
