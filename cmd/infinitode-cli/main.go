package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"infinitode"
	"infinitode/internal/config"
	"infinitode/internal/constants"
	fxmodules "infinitode/internal/fx"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

var (
	flagPlayerID   = flag.String("playerid", "", "resolve this player's own entry on the board")
	flagMode       = flag.String("mode", "", "leaderboard mode: score or waves")
	flagDifficulty = flag.String("difficulty", "", "difficulty: EASY, NORMAL or ENDLESS_I")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	fx.New(
		fxmodules.Module,
		fx.StopTimeout(constants.ShutdownTimeout),
		fx.Invoke(run),
	).Run()
}

func run(lc fx.Lifecycle, sh fx.Shutdowner, sess *infinitode.Session, cfg *config.Config, log zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				code := 0
				if err := execute(sess, cfg, log); err != nil {
					log.Error().Err(err).Msg("command failed")
					code = 1
				}
				_ = sh.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			sess.Close()
			return nil
		},
	})
}

func execute(sess *infinitode.Session, cfg *config.Config, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	args := flag.Args()
	switch args[0] {
	case "leaderboards":
		if len(args) < 2 {
			return fmt.Errorf("usage: leaderboards <mapname>")
		}
		lb, err := sess.Leaderboards(ctx, args[1], &infinitode.LeaderboardsOptions{
			PlayerID:   *flagPlayerID,
			Mode:       infinitode.Mode(*flagMode),
			Difficulty: infinitode.Difficulty(*flagDifficulty),
			Beta:       cfg.Beta,
		})
		if err != nil {
			return err
		}
		return printBoard(lb)

	case "rank":
		if len(args) < 3 {
			return fmt.Errorf("usage: rank <mapname> <playerid>")
		}
		score, err := sess.LeaderboardsRank(ctx, args[1], args[2], &infinitode.LeaderboardsRankOptions{
			Mode:       infinitode.Mode(*flagMode),
			Difficulty: infinitode.Difficulty(*flagDifficulty),
			Beta:       cfg.Beta,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s on %s: rank #%d, score %d\n", score.PlayerID, score.Mapname, score.Rank, score.GetScore())
		return nil

	case "runtime":
		if len(args) < 3 {
			return fmt.Errorf("usage: runtime <mapname> <playerid>")
		}
		lb, err := sess.RuntimeLeaderboards(ctx, args[1], args[2], &infinitode.RuntimeLeaderboardsOptions{
			Mode:       infinitode.Mode(*flagMode),
			Difficulty: infinitode.Difficulty(*flagDifficulty),
			Beta:       cfg.Beta,
		})
		if err != nil {
			return err
		}
		return printBoard(lb)

	case "skillpoints":
		lb, err := sess.SkillPointLeaderboard(ctx, &infinitode.SkillPointOptions{
			PlayerID: *flagPlayerID,
			Beta:     cfg.Beta,
		})
		if err != nil {
			return err
		}
		return printBoard(lb)

	case "dailyquest":
		opts := &infinitode.DailyQuestOptions{PlayerID: *flagPlayerID, Beta: cfg.Beta}
		if len(args) > 1 {
			opts.Date = args[1]
		}
		lb, err := sess.DailyQuestLeaderboards(ctx, opts)
		if err != nil {
			return err
		}
		return printBoard(lb)

	case "seasonal":
		lb, err := sess.SeasonalLeaderboard(ctx, &infinitode.SeasonalOptions{Beta: cfg.Beta})
		if err != nil {
			return err
		}
		return printBoard(lb)

	case "player":
		if len(args) < 2 {
			return fmt.Errorf("usage: player <playerid>")
		}
		return printPlayer(ctx, sess, cfg, log, args[1])

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printBoard(lb *infinitode.Leaderboard) error {
	header := fmt.Sprintf("%s %s %s", lb.Mapname, lb.Mode, lb.Difficulty)
	if lb.Season != 0 {
		header = fmt.Sprintf("season %d", lb.Season)
	}
	if lb.Date != "" {
		header += " " + lb.Date
	}
	fmt.Printf("%s - %d ranked players\n", header, lb.Total)

	if lb.IsEmpty() {
		fmt.Println("(no scores)")
	} else {
		out, err := lb.FormatScores()
		if err != nil {
			return err
		}
		fmt.Println(out)
	}
	if own := lb.Player(); own != nil {
		fmt.Printf("your entry: rank #%d, score %d\n", own.Rank, own.GetScore())
	}
	return nil
}

func printPlayer(ctx context.Context, sess *infinitode.Session, cfg *config.Config, log zerolog.Logger, playerid string) error {
	p, err := sess.Player(ctx, playerid, &infinitode.PlayerOptions{Beta: cfg.Beta})
	if err != nil {
		return err
	}

	fctx, cancel := context.WithTimeout(context.Background(), constants.FollowFetchTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(fctx)
	g.Go(func() error {
		_, err := p.FetchDailyQuest(gctx, sess)
		return err
	})
	g.Go(func() error {
		_, err := p.FetchSkillPoint(gctx, sess)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("follow-up fetches failed")
	}

	fmt.Printf("%s (%s)\n", p.Nickname, p.PlayerID)
	fmt.Printf("level %d (%d / %d xp), season level %d (%d / %d xp)\n",
		p.Level, p.XP, p.XPMax, p.SeasonLevel, p.SeasonXP, p.SeasonXPMax)
	fmt.Printf("season: score %d, rank #%d, top %.2f%%\n", p.TotalScore, p.TotalRank, p.TotalTop)
	fmt.Printf("joined %s, %d verified replays, %d failed verification\n", p.CreatedAt, p.Replays, p.Issues)

	if badges := p.Badges(); len(badges) > 0 {
		names := make([]string, 0, len(badges))
		for name, b := range badges {
			names = append(names, fmt.Sprintf("%s (%s)", name, b.Rarity))
		}
		sort.Strings(names)
		fmt.Printf("badges: %s\n", strings.Join(names, ", "))
	}
	if dq, err := p.DailyQuest(); err == nil && dq != nil {
		fmt.Printf("daily quest: rank #%d, score %d\n", dq.Rank, dq.GetScore())
	}
	if sp, err := p.SkillPoint(); err == nil && sp != nil {
		fmt.Printf("skill points: rank #%d, %d points\n", sp.Rank, sp.GetScore())
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: infinitode-cli [flags] <command> [args]

commands:
  leaderboards <mapname>        top scores of a map
  rank <mapname> <playerid>     a player's rank on a map
  runtime <mapname> <playerid>  runtime leaderboard of a map
  skillpoints                   top skill point owners
  dailyquest [date]             daily quest board of a date (YYYY-MM-DD)
  seasonal                      current season top 100
  player <playerid>             player profile

flags:
`)
	flag.PrintDefaults()
}
