// Package gate decides whether a shell command runs at all. It consults the
// exec policy, the session's unattended flag, and finally the user, and owns
// the one-way promotion of a session into unattended mode.
package gate

import (
	"shellward/internal/confirm"
	"shellward/internal/console"
	"shellward/internal/execpolicy"
	"shellward/internal/session"
)

// Decision is the gate's answer for one command.
type Decision int

const (
	// DecisionRun executes the command.
	DecisionRun Decision = iota
	// DecisionDeny refuses the command; no process is spawned.
	DecisionDeny
	// DecisionRunAndPromoteSession executes the command and switches the
	// session into unattended mode for everything that follows.
	DecisionRunAndPromoteSession
)

func (d Decision) String() string {
	switch d {
	case DecisionRun:
		return "run"
	case DecisionDeny:
		return "deny"
	case DecisionRunAndPromoteSession:
		return "run-and-promote"
	default:
		return "unknown"
	}
}

// Request describes one command awaiting authorization.
type Request struct {
	Command                string
	ExpectedRuntimeSeconds int
}

// Outcome carries the decision plus how it was reached.
type Outcome struct {
	Decision Decision
	// PolicyDenied is true when a forbid rule denied the command, as opposed
	// to the user declining it.
	PolicyDenied bool
	// PolicyReason is the rule justification when the policy decided.
	PolicyReason string
	// Prompted is true when the user was asked.
	Prompted bool
}

const promptText = "Execute this command? (y=yes, n=no, c=enable unattended mode for session)"

// choices maps single-character responses to decisions; default is y.
var choices = []string{"y", "n", "c"}

// Gate authorizes commands for one session.
type Gate struct {
	policy    *execpolicy.Policy
	confirmer confirm.Confirmer
	printer   *console.Printer
}

// New creates a Gate. policy may be nil (every command prompts).
func New(policy *execpolicy.Policy, confirmer confirm.Confirmer, printer *console.Printer) *Gate {
	return &Gate{policy: policy, confirmer: confirmer, printer: printer}
}

// Authorize shows the command on the presentation surface and decides whether
// it runs. Precedence: policy forbid, policy allow, session unattended mode,
// interactive confirmation (default: run). A promote answer flips the session
// flag before execution proceeds, so it is visible to every later command.
func (g *Gate) Authorize(req Request, state *session.State) Outcome {
	g.printer.Panel(req.Command, console.PanelOpts{Title: "Shell", Border: "command"})

	eval := g.policy.CheckCommand(req.Command)
	switch eval.Decision {
	case execpolicy.DecisionForbid:
		return Outcome{Decision: DecisionDeny, PolicyDenied: true, PolicyReason: eval.Justification}
	case execpolicy.DecisionAllow:
		return Outcome{Decision: DecisionRun, PolicyReason: eval.Justification}
	}

	if state.Unattended() {
		g.printer.UnattendedAck()
		return Outcome{Decision: DecisionRun}
	}

	answer, err := g.confirmer.Ask(promptText, choices, "y")
	if err != nil {
		// No explicit answer available: use the default.
		answer = "y"
	}

	switch answer {
	case "n":
		return Outcome{Decision: DecisionDeny, Prompted: true}
	case "c":
		state.Promote()
		g.printer.UnattendedAck()
		return Outcome{Decision: DecisionRunAndPromoteSession, Prompted: true}
	default:
		return Outcome{Decision: DecisionRun, Prompted: true}
	}
}
