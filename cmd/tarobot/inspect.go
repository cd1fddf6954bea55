package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gosuda/tarobot/ast"
	"github.com/gosuda/tarobot/diag"
	"github.com/gosuda/tarobot/lexer"
	"github.com/gosuda/tarobot/parser"
	truntime "github.com/gosuda/tarobot/runtime"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <program>",
		Short: "Print the token stream of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup()
			if err != nil {
				return err
			}
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for tok := range lexer.New(src, diag.NewLogSink(logger)).All() {
				text := tok.Text
				if tok.Kind == lexer.NewLine {
					text = ""
				}
				fmt.Fprintf(out, "%4d  %-20s %s\n", tok.Line, kindStyle.Render(tok.Kind.String()), text)
			}
			return nil
		},
	}
}

func newASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <program>",
		Short: "Print the syntax tree and procedure table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup()
			if err != nil {
				return err
			}
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			prog, failed := parser.Parse(src, diag.NewLogSink(logger))
			if err := ast.Dump(cmd.OutOrStdout(), prog); err != nil {
				return err
			}
			if failed {
				return fmt.Errorf("%s: syntax errors", args[0])
			}
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <program>...",
		Short: "Report syntax errors without running",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bad := 0
			for _, path := range args {
				src, err := readSource(path)
				if err != nil {
					return err
				}
				var col diag.Collector
				prog, failed := parser.Parse(src, &col)
				for _, d := range col.Diagnostics() {
					fmt.Fprintln(cmd.ErrOrStderr(), renderDiagnostic(path, d))
				}
				if failed {
					bad++
					continue
				}
				status := okStyle.Render("ok")
				if _, ok := prog.Procs[truntime.EntryPoint]; !ok {
					status = warnStyle.Render("no main")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d procedures)\n", status, path, len(prog.Procs))
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d programs have syntax errors", bad, len(args))
			}
			return nil
		},
	}
}
