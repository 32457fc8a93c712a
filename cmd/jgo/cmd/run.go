package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/sambacha/jgo/internal/config"
	"github.com/sambacha/jgo/pkg/jgo"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file or an inline expression",
	Long: `Execute a program from a file or from the -e flag.

Examples:
  jgo run average.ijs
  jgo run -e "'mean =: +/ % #' 'mean 1 2 3 4'"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file; may itself be a shell-quoted run of multiple sentences")
}

func runScript(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	sess := jgo.NewWithConfig(cfg)

	var lines []string
	switch {
	case evalExpr != "":
		fields, err := shlex.Split(evalExpr)
		if err != nil {
			return fmt.Errorf("splitting -e argument: %w", err)
		}
		lines = fields
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		lines = strings.Split(string(data), "\n")
	default:
		return fmt.Errorf("provide a file path or -e/--eval")
	}

	for _, line := range lines {
		r, err := sess.Feed(line)
		if err != nil {
			return err
		}
		if !r.Suspended && r.Text != "" {
			fmt.Println(r.Text)
		}
	}
	return nil
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(*cobra.Command, []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	sess := jgo.NewWithConfig(cfg)
	fmt.Printf("jgo %s — session %s\n", Version, sess.ID())

	scanner := bufio.NewScanner(os.Stdin)
	prompt := "   "
	fmt.Print(prompt)
	for scanner.Scan() {
		r, err := sess.Feed(scanner.Text())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		} else if !r.Suspended {
			fmt.Println(r.Text)
		}
		fmt.Print(prompt)
	}
	fmt.Println()
	return scanner.Err()
}
