// Package clipboard copies rendered reports to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	atotto "github.com/atotto/clipboard"
)

// ErrNoClipboardTool is returned when neither an HTML-aware tool nor the
// plain-text fallback could place content on the clipboard.
var ErrNoClipboardTool = errors.New("no suitable clipboard tool found")

// Copier places HTML on the clipboard using whatever tools the platform has.
type Copier struct {
	GOOS      string
	LookPath  func(name string) (string, error)
	Run       func(name string, args []string, stdin string) error
	PlainText func(text string) error
}

// NewCopier returns a Copier bound to the running platform.
func NewCopier() *Copier {
	return &Copier{
		GOOS:      runtime.GOOS,
		LookPath:  exec.LookPath,
		Run:       runCommand,
		PlainText: atotto.WriteAll,
	}
}

// CopyHTML copies HTML content to the system clipboard.
func CopyHTML(htmlContent string) error {
	return NewCopier().CopyHTML(htmlContent)
}

// CopyHTML tries the platform's rich-text tools first and falls back to a
// plain-text copy of the markup.
func (c *Copier) CopyHTML(htmlContent string) error {
	for _, tool := range c.htmlTools(htmlContent) {
		if _, err := c.LookPath(tool[0]); err != nil {
			continue
		}
		err := c.Run(tool[0], tool[1:], htmlStdin(tool[0], htmlContent))
		if err == nil {
			return nil
		}
		slog.Debug("clipboard tool failed", "tool", tool[0], "error", err)
	}

	if c.PlainText != nil {
		err := c.PlainText(htmlContent)
		if err == nil {
			return nil
		}
		slog.Debug("plain text clipboard failed", "error", err)
	}

	return fmt.Errorf("%w on %s", ErrNoClipboardTool, c.GOOS)
}

func (c *Copier) htmlTools(htmlContent string) [][]string {
	switch c.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		return [][]string{
			{"wl-copy", "--type", "text/html"},                        // Wayland HTML
			{"xclip", "-selection", "clipboard", "-t", "text/html"},   // X11 HTML
			{"xsel", "--clipboard", "--input", "--type", "text/html"}, // X11 alternative HTML
		}
	case "darwin":
		return [][]string{
			{"osascript", "-e", macScript(htmlContent)},
		}
	case "windows":
		return [][]string{
			{"powershell", "-NoProfile", "-Command", windowsScript},
		}
	default:
		return nil
	}
}

// htmlStdin returns the content piped to the tool. osascript receives the
// markup inline as hex so it needs no input.
func htmlStdin(tool, htmlContent string) string {
	if tool == "osascript" {
		return ""
	}
	return htmlContent
}

func macScript(htmlContent string) string {
	return fmt.Sprintf("set the clipboard to «data HTML%X»", []byte(htmlContent))
}

const windowsScript = `Add-Type -AssemblyName System.Windows.Forms; ` +
	`[System.Windows.Forms.Clipboard]::SetText([Console]::In.ReadToEnd(), [System.Windows.Forms.TextDataFormat]::Html)`

func runCommand(name string, args []string, stdin string) error {
	cmd := exec.Command(name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
