package runner

import (
	"context"
	"log/slog"
	"syscall"
	"time"

	"shellward/internal/execenv"
)

// pollInterval is how often the supervisor checks the child and the clock.
// Small enough to keep escalation jitter well under the allowed 1s slack.
const pollInterval = 25 * time.Millisecond

// DefaultExpectedRuntime is assumed when the caller supplies no budget.
const DefaultExpectedRuntime = 30 * time.Second

// Escalation records which supervisory action, if any, was taken.
type Escalation int

const (
	// EscalationNone: the process exited inside its budget.
	EscalationNone Escalation = iota
	// EscalationTerm: SIGTERM was sent at 2x the expected runtime.
	EscalationTerm
	// EscalationKill: SIGKILL was sent at 3x the expected runtime.
	EscalationKill
)

func (e Escalation) String() string {
	switch e {
	case EscalationNone:
		return "none"
	case EscalationTerm:
		return "terminated"
	case EscalationKill:
		return "killed"
	default:
		return "unknown"
	}
}

// RunResult is the raw outcome of one supervised execution.
type RunResult struct {
	// Output is the bounded combined stdout+stderr capture.
	Output []byte
	// ExitCode is the child's exit status; signal deaths map to 128+signal.
	ExitCode int
	// Escalation reports whether the supervisor had to intervene.
	Escalation Escalation
	// Duration is wall-clock time from spawn to reap.
	Duration time.Duration
}

// Options configures a Runner.
type Options struct {
	// Shell is the interpreter invocation; the command is appended as its
	// final argument. Default: /bin/bash -c.
	Shell []string
	// Dir is the working directory for spawned commands.
	Dir string
	// Env filters the environment passed to commands; nil inherits all but
	// secret-looking variables.
	Env *execenv.Policy
	// TTY runs commands under a pseudo-terminal instead of pipes.
	TTY bool
	// MaxCaptureBytes bounds the raw capture buffer; 0 uses the default cap.
	MaxCaptureBytes int
	// Logger receives supervisory diagnostics; nil uses slog.Default.
	Logger *slog.Logger
}

// Runner executes one command at a time under timeout supervision.
type Runner struct {
	shell  []string
	dir    string
	env    *execenv.Policy
	tty    bool
	maxBuf int
	log    *slog.Logger
}

// New creates a Runner.
func New(opts Options) *Runner {
	shell := opts.Shell
	if len(shell) == 0 {
		shell = []string{"/bin/bash", "-c"}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		shell:  shell,
		dir:    opts.Dir,
		env:    opts.Env,
		tty:    opts.TTY,
		maxBuf: opts.MaxCaptureBytes,
		log:    log,
	}
}

// supervisionState is the escalation state machine.
type supervisionState int

const (
	stateRunning supervisionState = iota // [0, 2T): normal wait
	stateGraceRequested                  // [2T, 3T): SIGTERM sent, grace period
	stateForceKilled                     // [3T, ...): SIGKILL sent, awaiting reap
)

// Execute runs command through the shell interpreter and blocks until it is
// reaped. With expected runtime T, the child gets SIGTERM at 2T if still
// running and SIGKILL at 3T; the kill step is reached even when the terminate
// step is ignored. One-shot: no retry.
//
// Returns a SpawnError when the child cannot be created, an ExecutionError
// for OS faults while waiting. A non-zero exit code is not an error.
func (r *Runner) Execute(ctx context.Context, command string, expectedRuntime time.Duration) (*RunResult, error) {
	if expectedRuntime <= 0 {
		expectedRuntime = DefaultExpectedRuntime
	}

	argv := make([]string, 0, len(r.shell)+1)
	argv = append(argv, r.shell...)
	argv = append(argv, command)

	start := time.Now()
	sess, err := startSession(sessionOpts{
		command: argv,
		dir:     r.dir,
		env:     r.env.Environ(),
		tty:     r.tty,
		maxBuf:  r.maxBuf,
	})
	if err != nil {
		return nil, &SpawnError{Command: command, Cause: err}
	}

	termAt := start.Add(2 * expectedRuntime)
	killAt := start.Add(3 * expectedRuntime)

	state := stateRunning
	escalation := EscalationNone

	for !sess.hasExited() {
		now := time.Now()

		switch state {
		case stateRunning:
			if now.After(termAt) {
				r.log.Warn("command exceeded 2x expected runtime, terminating",
					"command", command, "elapsed", now.Sub(start))
				sess.signal(syscall.SIGTERM)
				state = stateGraceRequested
				escalation = EscalationTerm
			}
		case stateGraceRequested:
			if now.After(killAt) {
				r.log.Warn("command ignored termination, killing",
					"command", command, "elapsed", now.Sub(start))
				sess.signal(syscall.SIGKILL)
				state = stateForceKilled
				escalation = EscalationKill
			}
		case stateForceKilled:
			// Nothing left to escalate; SIGKILL cannot be ignored, so the
			// reap is only a matter of the next few polls.
		}

		select {
		case <-ctx.Done():
			sess.signal(syscall.SIGKILL)
			<-sess.exitCh
			return nil, &ExecutionError{Command: command, Cause: ctx.Err()}
		case <-sess.exitCh:
		case <-time.After(pollInterval):
		}
	}

	exitCode, waitErr := sess.result()
	if waitErr != nil {
		return nil, &ExecutionError{Command: command, Cause: waitErr}
	}

	return &RunResult{
		Output:     sess.output(),
		ExitCode:   exitCode,
		Escalation: escalation,
		Duration:   time.Since(start),
	}, nil
}
