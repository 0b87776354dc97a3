package anchor

import (
	"fmt"
	"os"
)

var (
	debugEnv  = os.Getenv("CITEMARK_DEBUG_ANCHOR") == "1"
	debugFile = os.Getenv("CITEMARK_DEBUG_ANCHOR_FILE")
)

func debugEnabled() bool {
	return debugEnv || debugFile != ""
}

// debugf traces tier decisions. Output goes to the file named by
// CITEMARK_DEBUG_ANCHOR_FILE when set, otherwise to stderr; the UI owns
// stdout while the screen is active.
func debugf(format string, args ...any) {
	if !debugEnabled() {
		return
	}
	line := fmt.Sprintf("[anchor] "+format+"\n", args...)
	if debugFile == "" {
		fmt.Fprint(os.Stderr, line)
		return
	}
	f, err := os.OpenFile(debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprint(os.Stderr, line)
		return
	}
	defer func() {
		_ = f.Close()
	}()
	_, _ = f.WriteString(line)
}
