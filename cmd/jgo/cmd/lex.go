package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sambacha/jgo/internal/lexer"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a script and print the resulting words",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from a file")
}

func runLex(_ *cobra.Command, args []string) error {
	line, err := sourceLine(args)
	if err != nil {
		return err
	}
	words, err := lexer.Scan(line, 1)
	if err != nil {
		return err
	}
	for _, w := range words {
		fmt.Println(w.String())
	}
	return nil
}

func sourceLine(args []string) (string, error) {
	if evalExpr != "" {
		return evalExpr, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("provide a file path or -e/--eval")
}
