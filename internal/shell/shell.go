// Package shell is the top-level run_shell_command orchestration: gate the
// command, supervise its execution, bound its output, and record the work.
package shell

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shellward/internal/console"
	"shellward/internal/gate"
	"shellward/internal/output"
	"shellward/internal/runner"
	"shellward/internal/session"
	"shellward/internal/worklog"
)

// CancelledMessage is the output of a command the user declined to run.
const CancelledMessage = "Command execution cancelled by user"

// DefaultExpectedRuntimeSeconds is assumed when the caller gives no budget.
const DefaultExpectedRuntimeSeconds = 30

// Result is the externally observable outcome of one command. It round-trips
// through JSON without loss.
type Result struct {
	Output     string `json:"output"`
	ReturnCode int    `json:"return_code"`
	Success    bool   `json:"success"`
}

// failure builds a non-zero result; Success stays consistent with ReturnCode.
func failure(msg string) Result {
	return Result{Output: msg, ReturnCode: 1, Success: false}
}

// Executor runs one supervised command. Satisfied by *runner.Runner.
type Executor interface {
	Execute(ctx context.Context, command string, expectedRuntime time.Duration) (*runner.RunResult, error)
}

// Tool wires the command gate, process supervisor, presentation surface, and
// work log into the run_shell_command operation.
type Tool struct {
	gate    *gate.Gate
	exec    Executor
	printer *console.Printer
	work    *worklog.Log
	state   *session.State
	log     *slog.Logger
}

// Config collects the Tool's collaborators.
type Config struct {
	Gate     *gate.Gate
	Executor Executor
	Printer  *console.Printer
	WorkLog  *worklog.Log
	State    *session.State
	Logger   *slog.Logger
}

// New creates a Tool.
func New(cfg Config) *Tool {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Tool{
		gate:    cfg.Gate,
		exec:    cfg.Executor,
		printer: cfg.Printer,
		work:    cfg.WorkLog,
		state:   cfg.State,
		log:     log,
	}
}

// Run executes command under supervision after gate approval. Every path
// returns a well-formed Result; supervisor errors are converted here, at this
// boundary only, never propagated to the caller.
func (t *Tool) Run(ctx context.Context, command string, expectedRuntimeSeconds int) Result {
	if expectedRuntimeSeconds <= 0 {
		expectedRuntimeSeconds = DefaultExpectedRuntimeSeconds
	}

	outcome := t.gate.Authorize(gate.Request{
		Command:                command,
		ExpectedRuntimeSeconds: expectedRuntimeSeconds,
	}, t.state)

	if outcome.Decision == gate.DecisionDeny {
		if outcome.PolicyDenied {
			msg := "Command forbidden by policy"
			if outcome.PolicyReason != "" {
				msg = fmt.Sprintf("%s: %s", msg, outcome.PolicyReason)
			}
			return failure(msg)
		}
		return failure(CancelledMessage)
	}

	res, err := t.exec.Execute(ctx, command, time.Duration(expectedRuntimeSeconds)*time.Second)
	if err != nil {
		t.printer.Panel(err.Error(), console.PanelOpts{Title: "Error", Border: "error"})
		return failure(err.Error())
	}

	if res.Escalation != runner.EscalationNone {
		t.log.Warn("command was reclaimed by timeout escalation",
			"command", output.LogPreview(command),
			"escalation", res.Escalation.String(),
			"duration", res.Duration)
	}

	t.work.Record("Executed shell command: " + output.LogPreview(command))

	// The Executor contract does not promise bounded output; cap the raw
	// bytes before decoding allocates a string from them.
	raw, _ := output.Limit(res.Output, output.MaxCaptureBytes)

	return Result{
		Output:     output.TruncateDefault(output.Decode(raw)),
		ReturnCode: res.ExitCode,
		Success:    res.ExitCode == 0,
	}
}
