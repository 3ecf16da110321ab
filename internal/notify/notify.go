// Package notify delivers fire-and-forget desktop notifications, used when an
// open transcript is rewritten while the reader is in the background.
package notify

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// appName identifies the sender on every platform path.
const appName = "marktea"

// Send delivers an OS-level notification. Platforms without a known
// notification command get a terminal bell instead. Errors are returned but
// callers usually ignore them.
func Send(title, body string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("osascript", "-e", appleScript(title, body)).Run()
	case "linux":
		if _, err := exec.LookPath("notify-send"); err != nil {
			return bell()
		}
		return exec.Command("notify-send", "-a", appName, title, body).Run()
	default:
		return bell()
	}
}

// appleScript builds the osascript source for a macOS notification, with the
// app identity as the title and the caller's title demoted to the subtitle.
func appleScript(title, body string) string {
	return fmt.Sprintf("display notification %s with title %s subtitle %s",
		quote(body), quote(appName), quote(title))
}

// quote returns s as an AppleScript string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// bell rings the terminal bell. Most emulators surface it as a badge or sound
// even when the window is unfocused, which is all the fallback needs.
func bell() error {
	_, err := os.Stdout.WriteString("\a")
	return err
}
