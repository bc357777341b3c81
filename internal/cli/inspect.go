package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"imageguess-engine/internal/domain"
	"imageguess-engine/internal/infra/questions"
)

// NewInspectCmd builds the subcommand that summarizes the loaded question pool,
// so an operator can pick a filter that still leaves enough questions.
func NewInspectCmd(configPath, questionsPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the question pool by language, group, category and difficulty",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, *configPath, *questionsPath)
		},
	}
}

func runInspect(cmd *cobra.Command, configPath, questionsPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	path := cfg.Questions.Path
	if questionsPath != "" {
		path = questionsPath
	}

	pool, err := questions.NewFileLoader(path).Load(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d questions in %s\n\n", len(pool), path)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	printBreakdown(w, "language", pool, func(q domain.Question) string { return q.Language })
	printBreakdown(w, "group", pool, func(q domain.Question) string { return q.Group })
	printBreakdown(w, "category", pool, func(q domain.Question) string { return q.Category })
	printBreakdown(w, "difficulty", pool, func(q domain.Question) string { return string(q.Difficulty) })
	return w.Flush()
}

func printBreakdown(w *tabwriter.Writer, label string, pool []domain.Question, key func(domain.Question) string) {
	counts := make(map[string]int)
	for _, q := range pool {
		k := key(q)
		if k == "" {
			k = "(none)"
		}
		counts[k]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "by %s:\n", label)
	for _, k := range keys {
		fmt.Fprintf(w, "\t%s\t%d\n", k, counts[k])
	}
	fmt.Fprintln(w)
}
