package runner

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/creack/pty"

	"shellward/internal/output"
)

// procSession wraps one running child process (pipes or PTY) with background
// output collection into bounded buffers. Pipe mode captures stdout and
// stderr separately so stderr can be preferred when the combined capture
// exceeds the cap; a PTY is a single stream and uses only outBuf.
type procSession struct {
	cmd      *exec.Cmd
	ptyFile  *os.File // PTY master, tty mode only
	outBuf   *HeadTailBuffer
	errBuf   *HeadTailBuffer
	maxBytes int

	exited   atomic.Bool
	exitCh   chan struct{}
	readerWg sync.WaitGroup

	mu       sync.Mutex
	waitErr  error
	exitCode int
}

type sessionOpts struct {
	command []string // [program, args...]
	dir     string
	env     []string // nil = inherit
	tty     bool
	maxBuf  int
}

// startSession spawns the process in its own process group so escalation
// signals reach the whole pipeline, not just the shell.
func startSession(opts sessionOpts) (*procSession, error) {
	if len(opts.command) == 0 {
		return nil, errors.New("empty command")
	}

	maxBytes := opts.maxBuf
	if maxBytes <= 0 {
		maxBytes = output.MaxCaptureBytes
	}
	s := &procSession{
		outBuf:   NewHeadTailBuffer(maxBytes),
		errBuf:   NewHeadTailBuffer(maxBytes),
		maxBytes: maxBytes,
		exitCh:   make(chan struct{}),
	}

	cmd := exec.Command(opts.command[0], opts.command[1:]...)
	cmd.Dir = opts.dir
	cmd.Env = opts.env
	s.cmd = cmd

	if opts.tty {
		if err := s.startPTY(cmd); err != nil {
			return nil, err
		}
	} else {
		if err := s.startPipes(cmd); err != nil {
			return nil, err
		}
	}

	go s.waitForExit()
	return s, nil
}

func (s *procSession) startPTY(cmd *exec.Cmd) error {
	// pty.Start makes the child a session leader (Setsid), so its pgid equals
	// its pid and group signalling works without Setpgid.
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
	if err != nil {
		return err
	}
	s.ptyFile = ptmx

	// PTY combines stdout and stderr into one stream.
	s.readerWg.Add(1)
	go s.readLoop(ptmx, s.outBuf)
	return nil
}

func (s *procSession) startPipes(cmd *exec.Cmd) error {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	s.readerWg.Add(2)
	go s.readLoop(stdout, s.outBuf)
	go s.readLoop(stderr, s.errBuf)
	return nil
}

func (s *procSession) readLoop(r io.Reader, dst *HeadTailBuffer) {
	defer s.readerWg.Done()
	buf := make([]byte, 8192)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			dst.Push(buf[:n])
		}
		if err != nil {
			// EOF for pipes, EIO for a closed PTY slave.
			return
		}
	}
}

func (s *procSession) waitForExit() {
	// Drain readers before Wait: os/exec closes pipe read ends inside Wait,
	// so reading must complete first.
	s.readerWg.Wait()
	err := s.cmd.Wait()

	code := 0
	var waitErr error
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
			// Signal-terminated processes report 128+signal, the shell
			// convention, so SIGTERM=143 and SIGKILL=137.
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				code = 128 + int(ws.Signal())
			}
		} else {
			code = -1
			waitErr = err
		}
	}

	s.mu.Lock()
	s.exitCode = code
	s.waitErr = waitErr
	s.mu.Unlock()

	s.exited.Store(true)
	close(s.exitCh)

	if s.ptyFile != nil {
		_ = s.ptyFile.Close()
	}
}

// signal delivers sig to the whole process group, falling back to the direct
// process if the group is gone.
func (s *procSession) signal(sig syscall.Signal) {
	if s.cmd.Process == nil {
		return
	}
	pid := s.cmd.Process.Pid
	if err := syscall.Kill(-pid, sig); err != nil {
		_ = s.cmd.Process.Signal(sig)
	}
}

// hasExited reports whether the process has terminated and output is drained.
func (s *procSession) hasExited() bool {
	return s.exited.Load()
}

// result returns the exit code and any non-exit wait fault.
// Valid only after hasExited returns true.
func (s *procSession) result() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitCode, s.waitErr
}

// output merges the bounded stdout and stderr captures, preferring stderr
// when the two together exceed the cap.
func (s *procSession) output() []byte {
	return output.Aggregate(s.outBuf.Snapshot(), s.errBuf.Snapshot(), s.maxBytes)
}
