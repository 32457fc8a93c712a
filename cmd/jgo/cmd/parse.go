package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sambacha/jgo/internal/config"
	"github.com/sambacha/jgo/internal/display"
	"github.com/sambacha/jgo/internal/env"
	"github.com/sambacha/jgo/internal/lexer"
	"github.com/sambacha/jgo/internal/modifiers"
	"github.com/sambacha/jgo/internal/parser"
	"github.com/sambacha/jgo/internal/token"
	"github.com/sambacha/jgo/internal/verbs"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse and evaluate a single sentence, printing its result",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from a file")
}

func runParse(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	line, err := sourceLine(args)
	if err != nil {
		return err
	}
	words, err := lexer.Scan(line, 1)
	if err != nil {
		return err
	}
	result, err := parser.Parse(words, env.New(), parser.NewVerbTable(verbs.TableSeeded(cfg.RandomSeed)), parser.NewModifierTable(modifiers.Table()))
	if err != nil {
		return err
	}
	if result.Kind == token.KNoun {
		fmt.Println(display.RenderPrecision(result.Noun, cfg.PrintPrecision))
	}
	return nil
}
