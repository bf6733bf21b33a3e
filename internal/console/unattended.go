package console

import (
	"fmt"
	"math/rand"
)

// ackMessages are printed when a command runs without per-command
// confirmation, so the transcript shows the session was unattended.
var ackMessages = []string{
	"unattended mode: running without confirmation",
	"unattended mode: no prompt for this one",
	"unattended mode: full speed ahead",
}

// UnattendedAck prints a short acknowledgement line, padded with blank lines
// so it stands out between panels.
func (p *Printer) UnattendedAck() {
	msg := ackMessages[rand.Intn(len(ackMessages))]
	_, _ = fmt.Fprintln(p.out)
	_, _ = fmt.Fprintln(p.out, " "+p.styles.Unattended.Render(msg))
	_, _ = fmt.Fprintln(p.out)
}
