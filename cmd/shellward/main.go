// shellward runs shell commands under supervision: each command is shown and
// confirmed before it runs (unless the session is unattended or a policy rule
// auto-allows it), and runaway processes are terminated at 2x and killed at
// 3x their expected runtime.
//
// Usage:
//
//	shellward -c "make test"             Run one command and exit
//	shellward -c "sleep 5" -t 2          Expect a 2s runtime (SIGTERM at 4s, SIGKILL at 6s)
//	shellward                            Read commands from stdin, one per line
//	shellward --unattended               Skip per-command confirmation
//	shellward --policy rules.star        Load allow/prompt/forbid prefix rules
//	shellward -c "top" --tty             Run under a pseudo-terminal
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"shellward/internal/confirm"
	"shellward/internal/console"
	"shellward/internal/execenv"
	"shellward/internal/execpolicy"
	"shellward/internal/gate"
	"shellward/internal/runner"
	"shellward/internal/session"
	"shellward/internal/shell"
	"shellward/internal/version"
	"shellward/internal/worklog"
)

func main() {
	command := flag.String("c", "", "Command to run (one-shot); empty reads commands from stdin")
	expectedRuntime := flag.Int("t", shell.DefaultExpectedRuntimeSeconds,
		"Expected runtime in seconds (terminate at 2x, kill at 3x)")
	unattended := flag.Bool("unattended", false, "Start the session in unattended mode (no confirmation)")
	policyFile := flag.String("policy", "", "Starlark policy file with prefix_rule() entries")
	tty := flag.Bool("tty", false, "Run commands under a pseudo-terminal")
	cwd := flag.String("cwd", "", "Working directory for commands")
	envInherit := flag.String("env-inherit", "all", "Environment inheritance: all, core, or none")
	envExclude := flag.String("env-exclude", "", "Comma-separated glob patterns of env vars to drop")
	keepSecretEnv := flag.Bool("keep-secret-env", false, "Pass *KEY*/*SECRET*/*TOKEN* variables to commands")
	workLogPath := flag.String("worklog", "", "Append work-log entries to this file")
	jsonOut := flag.Bool("json", false, "Print the result as JSON (one-shot mode)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	noMarkdown := flag.Bool("no-markdown", false, "Disable markdown rendering")
	verbose := flag.Bool("v", false, "Verbose supervisory logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("shellward " + version.String())
		return
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	printer := console.New(os.Stdout, console.Options{
		NoColor:    *noColor,
		NoMarkdown: *noMarkdown,
	})

	var policy *execpolicy.Policy
	if *policyFile != "" {
		p, err := execpolicy.Load(*policyFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "shellward: %v\n", err)
			os.Exit(2)
		}
		policy = p
		logger.Debug("policy loaded", "file", *policyFile)
	}

	var workSink io.Writer
	if *workLogPath != "" {
		f, err := os.OpenFile(*workLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "shellward: %v\n", err)
			os.Exit(2)
		}
		defer f.Close()
		workSink = f
	}

	envPolicy := &execenv.Policy{
		Inherit:     execenv.Inherit(*envInherit),
		KeepSecrets: *keepSecretEnv,
	}
	if *envExclude != "" {
		for _, pattern := range strings.Split(*envExclude, ",") {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				envPolicy.Exclude = append(envPolicy.Exclude, pattern)
			}
		}
	}

	state := session.New()
	if *unattended {
		state.Promote()
	}

	// One shared buffered reader: confirmation answers and REPL commands
	// both come from stdin and must not steal each other's input.
	stdin := bufio.NewReader(os.Stdin)

	tool := shell.New(shell.Config{
		Gate: gate.New(policy, confirm.NewStdinConfirmer(stdin, os.Stdout), printer),
		Executor: runner.New(runner.Options{
			Dir:    *cwd,
			Env:    envPolicy,
			TTY:    *tty,
			Logger: logger,
		}),
		Printer: printer,
		WorkLog: worklog.New(workSink),
		State:   state,
		Logger:  logger,
	})

	ctx := context.Background()

	if *command != "" {
		res := tool.Run(ctx, *command, *expectedRuntime)
		emitResult(printer, res, *jsonOut)
		os.Exit(res.ReturnCode)
	}

	// REPL: one command per line until EOF.
	for {
		fmt.Print("shellward> ")
		line, err := stdin.ReadString('\n')
		cmd := strings.TrimSpace(line)
		if cmd != "" {
			res := tool.Run(ctx, cmd, *expectedRuntime)
			emitResult(printer, res, false)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(os.Stderr, "shellward: %v\n", err)
				os.Exit(2)
			}
			fmt.Println()
			return
		}
	}
}

// emitResult prints a command's outcome: the bounded output in a panel with
// the exit status as footer, or raw JSON when requested.
func emitResult(printer *console.Printer, res shell.Result, asJSON bool) {
	if asJSON {
		data, err := json.Marshal(res)
		if err == nil {
			fmt.Println(string(data))
		}
		return
	}

	if res.Output != "" {
		border := ""
		if !res.Success {
			border = "error"
		}
		printer.Panel(res.Output, console.PanelOpts{
			Title:  "Output",
			Footer: fmt.Sprintf("exit %d", res.ReturnCode),
			Border: border,
		})
	} else {
		printer.Println(fmt.Sprintf("(no output, exit %d)", res.ReturnCode))
	}
}
