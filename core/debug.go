package core

// DebugWriter receives one log line without its line terminator
type DebugWriter func(string)

func discard(string) {}

// Setup logs only happen before the feed loop starts, so output is on
// until a target turns it off.
var debug = struct {
	write DebugWriter
	on    bool
}{write: discard, on: true}

// SetDebugWriter routes log lines, typically to the target's UART. nil
// drops them.
func SetDebugWriter(w DebugWriter) {
	if w == nil {
		w = discard
	}
	debug.write = w
}

func SetDebugEnabled(enabled bool) { debug.on = enabled }

func IsDebugEnabled() bool { return debug.on }

// DebugPrintln logs msg. It blocks on the writer, so the feed loop must
// not call it.
func DebugPrintln(msg string) {
	if debug.on {
		debug.write(msg)
	}
}
