// Package output bounds and truncates captured command output so a single
// runaway command cannot flood downstream consumers.
package output

// MaxCaptureBytes is the hard cap on bytes retained from a command's
// stdout/stderr/aggregated output. A runaway command cannot OOM the process
// by dumping huge amounts of data.
const MaxCaptureBytes = 1024 * 1024 // 1 MiB

// Limit caps raw output at maxBytes. maxBytes <= 0 uses MaxCaptureBytes.
// Returns the (possibly truncated) result and whether truncation occurred.
func Limit(raw []byte, maxBytes int) (result []byte, truncated bool) {
	if maxBytes <= 0 {
		maxBytes = MaxCaptureBytes
	}
	if len(raw) <= maxBytes {
		return raw, false
	}
	return raw[:maxBytes], true
}

// Aggregate merges a command's stdout and stderr captures into one buffer of
// at most maxBytes (<= 0 uses MaxCaptureBytes). Under the cap the streams are
// concatenated stdout-first. On contention stdout is held to a third of the
// budget so diagnostics on stderr survive a flooding stdout; whatever stderr
// leaves unused goes back to stdout.
func Aggregate(stdout, stderr []byte, maxBytes int) []byte {
	if maxBytes <= 0 {
		maxBytes = MaxCaptureBytes
	}

	if len(stdout)+len(stderr) <= maxBytes {
		result := make([]byte, 0, len(stdout)+len(stderr))
		result = append(result, stdout...)
		result = append(result, stderr...)
		return result
	}

	wantStdout := len(stdout)
	if wantStdout > maxBytes/3 {
		wantStdout = maxBytes / 3
	}

	stderrTake := len(stderr)
	if remaining := maxBytes - wantStdout; stderrTake > remaining {
		stderrTake = remaining
	}

	spare := maxBytes - wantStdout - stderrTake
	if extra := len(stdout) - wantStdout; spare > extra {
		spare = extra
	}
	stdoutTake := wantStdout + spare

	result := make([]byte, 0, stdoutTake+stderrTake)
	result = append(result, stdout[:stdoutTake]...)
	result = append(result, stderr[:stderrTake]...)
	return result
}
