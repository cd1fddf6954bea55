package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gosuda/tarobot"
	"github.com/gosuda/tarobot/config"
	"github.com/gosuda/tarobot/diag"
	"github.com/gosuda/tarobot/maze"
	truntime "github.com/gosuda/tarobot/runtime"
)

type runOptions struct {
	program string
	maze    string
	tui     bool
	trail   bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Execute a program",
		Long: `Execute a program. With --maze the robot walks the given maze file;
without it every robot primitive is only logged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.program = args[0]
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if opts.tui {
				if opts.maze == "" {
					return errors.New("--tui needs --maze")
				}
				return runTUI(opts, cfg, logger)
			}
			return runPlain(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, cfg, logger)
		},
	}
	cmd.Flags().StringVarP(&opts.maze, "maze", "m", "", "maze file (YAML)")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "animate the run in the terminal")
	cmd.Flags().BoolVar(&opts.trail, "trail", false, "print every robot primitive after the run")
	return cmd
}

func runPlain(out, errOut io.Writer, opts runOptions, cfg *config.Config, logger *log.Logger) error {
	src, err := readSource(opts.program)
	if err != nil {
		return err
	}

	var robot truntime.Robot = &logRobot{log: logger}
	var m *maze.Maze
	if opts.maze != "" {
		m, err = maze.LoadFile(opts.maze)
		if err != nil {
			return fmt.Errorf("load maze: %w", err)
		}
		robot = m
	}

	sink := diag.SinkFunc(func(d diag.Diagnostic) {
		fmt.Fprintln(errOut, renderDiagnostic(opts.program, d))
	})
	res, runErr := tarobot.Run(src, robot, sink,
		truntime.WithLimits(cfg.RuntimeLimits()),
		truntime.WithLogger(logger),
	)
	if errors.Is(runErr, tarobot.ErrSyntax) {
		return runErr
	}

	fmt.Fprintln(out, titleStyle.Render("globals"))
	fmt.Fprintln(out, renderGlobals(res.Globals))
	if m != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, titleStyle.Render(m.Name))
		fmt.Fprintln(out, renderGrid(m.Lines()))
		if opts.trail {
			for i, mv := range m.Trail() {
				fmt.Fprintln(out, renderMove(i+1, mv))
			}
		}
		state := warnStyle.Render("exit not reached")
		if m.AtExit() {
			state = okStyle.Render("exit reached")
		}
		fmt.Fprintf(out, "%s after %d actions\n", state, len(m.Trail()))
	}
	return runErr
}

// logRobot stands in for a robot when no maze is given: moves always
// succeed and the sensors report an open field.
type logRobot struct {
	log *log.Logger
}

func (r *logRobot) Step(n int) bool {
	r.log.Info("step", "amount", n)
	return n >= 0
}

func (r *logRobot) Back() int {
	r.log.Info("back")
	return 0
}

func (r *logRobot) Exit() bool {
	r.log.Info("look")
	return false
}

func (r *logRobot) Left()  { r.log.Info("left") }
func (r *logRobot) Right() { r.log.Info("right") }
