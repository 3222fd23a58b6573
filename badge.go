package infinitode

// Badge is the badge a player pinned to their leaderboard entries.
type Badge struct {
	IconImg      string
	IconColor    string
	OverlayImg   string
	OverlayColor string
}

// ProfileBadge is one badge earned on a player profile.
type ProfileBadge struct {
	Rarity string
	Color  string
}
