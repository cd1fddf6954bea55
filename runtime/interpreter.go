// Package truntime executes parsed robot programs against a Robot.
package truntime

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gosuda/tarobot/ast"
	"github.com/gosuda/tarobot/diag"
)

// EntryPoint names the procedure whose body starts a run.
const EntryPoint = "main"

// Robot is the device a program drives. Every call blocks until the action
// is done.
type Robot interface {
	// Step moves forward n cells and reports whether the whole move succeeded.
	Step(n int) bool
	// Back returns the distance to the nearest obstruction behind the robot.
	Back() int
	// Exit reports whether the robot stands on an exit cell.
	Exit() bool
	Left()
	Right()
}

type Limits struct {
	// MaxCallDepth bounds the number of simultaneously active calls of any
	// single procedure.
	MaxCallDepth int
	// MaxLoopIterations bounds the number of body executions of one while
	// statement.
	MaxLoopIterations int
}

func DefaultLimits() Limits {
	return Limits{MaxCallDepth: 100, MaxLoopIterations: 1000}
}

type Option func(*Interpreter)

func WithLimits(l Limits) Option {
	return func(in *Interpreter) {
		if l.MaxCallDepth > 0 {
			in.limits.MaxCallDepth = l.MaxCallDepth
		}
		if l.MaxLoopIterations > 0 {
			in.limits.MaxLoopIterations = l.MaxLoopIterations
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.logger = l
		}
	}
}

// WithSink sets where runtime conditions are raised.
func WithSink(s diag.Sink) Option {
	return func(in *Interpreter) {
		if s != nil {
			in.sink = s
		}
	}
}

// WithRunID fixes the id attached to log entries. A random one is used
// otherwise.
func WithRunID(id uuid.UUID) Option {
	return func(in *Interpreter) {
		in.runID = id
	}
}

// Interpreter walks a program tree. The tree and its procedure table are only
// read, so several interpreters may share one Program. An Interpreter itself
// is not safe for concurrent use.
type Interpreter struct {
	prog   *ast.Program
	robot  Robot
	limits Limits
	logger *log.Logger
	log    *log.Logger
	sink   diag.Sink
	runID  uuid.UUID

	scopes *Scopes
	depth  map[string]int
}

func New(prog *ast.Program, robot Robot, opts ...Option) *Interpreter {
	if robot == nil {
		robot = idleRobot{}
	}
	in := &Interpreter{
		prog:   prog,
		robot:  robot,
		limits: DefaultLimits(),
		logger: log.New(io.Discard),
		sink:   diag.Discard,
		runID:  uuid.New(),
		scopes: NewScopes(),
		depth:  map[string]int{},
	}
	for _, opt := range opts {
		opt(in)
	}
	in.log = in.logger.With("run", in.runID.String())
	return in
}

func (in *Interpreter) RunID() uuid.UUID {
	return in.runID
}

// Run executes the body of main in the global scope; statements outside any
// procedure are never executed. Statement-level conditions are raised on the
// sink and execution goes on; a fatal condition is raised and returned. Each
// Run starts from an empty global scope.
func (in *Interpreter) Run() error {
	in.scopes = NewScopes()
	in.depth = make(map[string]int, len(in.prog.Procs))
	for name := range in.prog.Procs {
		in.depth[name] = 0
	}

	main, ok := in.prog.Procs[EntryPoint]
	if !ok {
		return in.fail(diag.Errorf(diag.MissingEntryPoint, 0, "no procedure %s", EntryPoint))
	}
	in.log.Debug("run start", "procs", len(in.prog.Procs))

	if in.prog.Body != nil && len(in.prog.Body.Statements) > 0 {
		in.log.Debug("top-level statements skipped", "count", len(in.prog.Body.Statements))
	}

	in.depth[EntryPoint]++
	err := in.execBlock(main.Body)
	in.depth[EntryPoint]--
	if err != nil {
		return in.fail(err)
	}
	in.log.Debug("run done", "globals", len(in.scopes.frames[0].vars))
	return nil
}

func (in *Interpreter) fail(err error) error {
	in.raise(err, 0)
	in.log.Debug("run aborted", "err", err)
	return err
}

// Globals returns a copy of the global scope as left by the last Run.
func (in *Interpreter) Globals() map[string]Variable {
	return in.scopes.Global()
}

// Depth returns the number of active calls of the named procedure.
func (in *Interpreter) Depth(name string) int {
	return in.depth[name]
}

// raise reports err on the sink. Errors that carry no condition are
// implementation faults.
func (in *Interpreter) raise(err error, line int) {
	var de *diag.Error
	if !errors.As(err, &de) {
		in.sink.Raise(diag.Diagnostic{Kind: diag.UnexpectedInternal, Line: line, Message: err.Error()})
		return
	}
	d := de.Diagnostic()
	if d.Line == 0 {
		d.Line = line
	}
	in.sink.Raise(d)
}

type idleRobot struct{}

func (idleRobot) Step(int) bool { return false }
func (idleRobot) Back() int     { return 0 }
func (idleRobot) Exit() bool    { return false }
func (idleRobot) Left()         {}
func (idleRobot) Right()        {}
