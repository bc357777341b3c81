package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath    string
	questionsPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	envQuestions := os.Getenv("QUESTIONS_PATH")

	cmd := &cobra.Command{
		Use:   "imageguess",
		Short: "Multi-team picture-guessing quiz session engine",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&questionsPath, "questions", envQuestions, "path to the questions JSON file")
	cmd.AddCommand(NewPlayCmd(&configPath, &questionsPath))
	cmd.AddCommand(NewInspectCmd(&configPath, &questionsPath))
	return cmd
}
