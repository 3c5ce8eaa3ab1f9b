package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/requery/internal/cli"
	"github.com/aretw0/requery/internal/presentation/tui"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the refined answer",
	Long: `Runs one full refinement invocation for the given question: generate a
query and data, judge the result, rephrase and retry while the judge
rejects it, then format the accepted result as a natural-language answer.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		logger, err := newLogger(cfg)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		built, err := cli.Build(cfg, logger, nil)
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		plain, _ := cmd.Flags().GetBool("plain")
		interactive := !plain && term.IsTerminal(int(os.Stdout.Fd()))

		if interactive {
			tui.PrintBanner()
		}

		tr, err := built.Engine.Invoke(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		if interactive {
			render := tui.NewRenderer()
			out, rerr := render(tr.Answer)
			if rerr == nil {
				fmt.Print(out)
			} else {
				fmt.Println(tr.Answer)
			}
			if n := len(tr.QuestionHistory); n > 0 {
				fmt.Printf("(%d attempts, question rephrased %d times)\n", tr.Attempts, n)
			}
		} else {
			fmt.Println(tr.Answer)
		}
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().Bool("plain", false, "Print the raw answer without terminal rendering")
}
