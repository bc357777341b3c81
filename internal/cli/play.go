package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"imageguess-engine/internal/config"
	"imageguess-engine/internal/domain"
	"imageguess-engine/internal/engine"
	"imageguess-engine/internal/infra/questions"
	"imageguess-engine/internal/transport/console"
)

type playFlags struct {
	mode              string
	teams             int
	rounds            int
	questionsPerRound int
	language          string
	group             string
	categories        []string
	extremeOnly       bool
	timerEnabled      bool
	perQuestion       int
	perTeam           int
	scoring           string
	wrongPenalty      bool
}

// NewPlayCmd builds the subcommand that runs an interactive quiz session.
func NewPlayCmd(configPath, questionsPath *string) *cobra.Command {
	flags := playFlags{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run an interactive quiz session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, *configPath, *questionsPath, flags)
		},
	}

	cmd.Flags().StringVar(&flags.mode, "mode", "", "game mode: standard or timeAttack")
	cmd.Flags().IntVar(&flags.teams, "teams", 0, "number of teams")
	cmd.Flags().IntVar(&flags.rounds, "rounds", 0, "number of rounds (standard mode)")
	cmd.Flags().IntVar(&flags.questionsPerRound, "questions-per-round", 0, "questions per round (standard mode)")
	cmd.Flags().StringVar(&flags.language, "language", "", "filter: question language")
	cmd.Flags().StringVar(&flags.group, "group", "", "filter: content group")
	cmd.Flags().StringSliceVar(&flags.categories, "category", nil, "filter: categories (repeatable)")
	cmd.Flags().BoolVar(&flags.extremeOnly, "extreme-only", false, "filter: extreme questions only")
	cmd.Flags().BoolVar(&flags.timerEnabled, "timer", false, "enable the per-question timer (standard mode)")
	cmd.Flags().IntVar(&flags.perQuestion, "per-question-seconds", 0, "per-question timer length")
	cmd.Flags().IntVar(&flags.perTeam, "per-team-seconds", 0, "per-team timer length (time attack)")
	cmd.Flags().StringVar(&flags.scoring, "scoring", "", "scoring variant: simultaneous or turnBased")
	cmd.Flags().BoolVar(&flags.wrongPenalty, "wrong-penalty", false, "subtract a point for wrong answers")
	return cmd
}

func runPlay(cmd *cobra.Command, configPath, questionsPath string, flags playFlags) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log.Level)

	sessionCfg := cfg.SessionConfig()
	applyOverrides(cmd, &sessionCfg, flags)

	path := cfg.Questions.Path
	if questionsPath != "" {
		path = questionsPath
	}
	source := questions.NewCachedSource(
		questions.NewFileLoader(path),
		config.TTLDuration(cfg.Questions.TTL, 0),
	)
	pool, err := source.Load(cmd.Context())
	if err != nil {
		return err
	}
	logger.Info().Int("questions", len(pool)).Str("path", path).Msg("question pool loaded")

	session := engine.NewSession(pool, engine.WithLogger(logger))
	renderer := console.NewRenderer(cmd.OutOrStdout())

	updates, cancel := session.Subscribe()
	defer cancel()
	go func() {
		for snap := range updates {
			renderer.Render(snap)
		}
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "commands: start | next (n) | reveal (r) | score <team> (s) | wrong <team> (w) | board (b) | reset | quit (q)")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		var opErr error

		switch fields[0] {
		case "start":
			opErr = session.Start(sessionCfg)
		case "n", "next":
			opErr = session.Advance()
		case "r", "reveal":
			opErr = session.RevealAnswer()
		case "s", "score":
			team, err := parseTeam(fields)
			if err != nil {
				opErr = err
				break
			}
			opErr = session.ScoreTeam(team)
		case "w", "wrong":
			team, err := parseTeam(fields)
			if err != nil {
				opErr = err
				break
			}
			opErr = session.MarkWrong(team)
		case "b", "board":
			renderer.Render(session.Snapshot())
		case "reset":
			session.Reset()
		case "q", "quit":
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
		}

		if opErr != nil {
			fmt.Fprintf(out, "error: %v\n", opErr)
		}
	}
	return scanner.Err()
}

// parseTeam converts the operator's 1-based team number to the engine's index.
func parseTeam(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("usage: %s <team>", fields[0])
	}
	team, err := strconv.Atoi(fields[1])
	if err != nil || team < 1 {
		return 0, fmt.Errorf("invalid team number %q", fields[1])
	}
	return team - 1, nil
}

// applyOverrides lays explicitly set flags over the config-file values.
func applyOverrides(cmd *cobra.Command, cfg *domain.SessionConfig, flags playFlags) {
	set := cmd.Flags().Changed
	if set("mode") {
		cfg.Mode = domain.Mode(flags.mode)
	}
	if set("teams") {
		cfg.TeamCount = flags.teams
	}
	if set("rounds") {
		cfg.RoundCount = flags.rounds
	}
	if set("questions-per-round") {
		cfg.QuestionsPerRound = flags.questionsPerRound
	}
	if set("language") {
		cfg.Filter.Language = flags.language
	}
	if set("group") {
		cfg.Filter.Group = flags.group
	}
	if set("category") {
		cfg.Filter.Categories = flags.categories
	}
	if set("extreme-only") {
		cfg.Filter.ExtremeOnly = flags.extremeOnly
	}
	if set("timer") {
		cfg.Timer.Enabled = flags.timerEnabled
	}
	if set("per-question-seconds") {
		cfg.Timer.PerQuestionSeconds = flags.perQuestion
	}
	if set("per-team-seconds") {
		cfg.Timer.PerTeamTotalSeconds = flags.perTeam
	}
	if set("scoring") {
		cfg.Scoring = domain.ScoringVariant(flags.scoring)
	}
	if set("wrong-penalty") {
		cfg.WrongPenalty = flags.wrongPenalty
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
