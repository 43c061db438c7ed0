package clipboard

import (
	"errors"
	"strings"
	"testing"
)

type call struct {
	name  string
	args  []string
	stdin string
}

func fakeCopier(goos string, available map[string]bool, failing map[string]bool) (*Copier, *[]call, *[]string) {
	var calls []call
	var plain []string
	c := &Copier{
		GOOS: goos,
		LookPath: func(name string) (string, error) {
			if available[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		},
		Run: func(name string, args []string, stdin string) error {
			calls = append(calls, call{name, args, stdin})
			if failing[name] {
				return errors.New("exit status 1")
			}
			return nil
		},
		PlainText: func(text string) error {
			plain = append(plain, text)
			if failing["plain"] {
				return errors.New("no display")
			}
			return nil
		},
	}
	return c, &calls, &plain
}

func TestCopyHTMLLinuxPrefersFirstAvailableTool(t *testing.T) {
	c, calls, plain := fakeCopier("linux", map[string]bool{"xclip": true, "xsel": true}, nil)

	if err := c.CopyHTML("<b>hi</b>"); err != nil {
		t.Fatalf("CopyHTML failed: %v", err)
	}
	if len(*calls) != 1 || (*calls)[0].name != "xclip" {
		t.Fatalf("expected a single xclip call, got %+v", *calls)
	}
	if (*calls)[0].stdin != "<b>hi</b>" {
		t.Errorf("expected HTML on stdin, got %q", (*calls)[0].stdin)
	}
	if !strings.Contains(strings.Join((*calls)[0].args, " "), "text/html") {
		t.Errorf("expected text/html target, got %v", (*calls)[0].args)
	}
	if len(*plain) != 0 {
		t.Error("plain text fallback should not run")
	}
}

func TestCopyHTMLFallsBackToPlainText(t *testing.T) {
	c, calls, plain := fakeCopier("linux", map[string]bool{"wl-copy": true}, map[string]bool{"wl-copy": true})

	if err := c.CopyHTML("<p>x</p>"); err != nil {
		t.Fatalf("CopyHTML failed: %v", err)
	}
	if len(*calls) != 1 {
		t.Errorf("expected wl-copy attempt, got %+v", *calls)
	}
	if len(*plain) != 1 || (*plain)[0] != "<p>x</p>" {
		t.Errorf("expected plain text fallback, got %v", *plain)
	}
}

func TestCopyHTMLNoTool(t *testing.T) {
	c, _, _ := fakeCopier("plan9", nil, map[string]bool{"plain": true})

	err := c.CopyHTML("<p>x</p>")
	if !errors.Is(err, ErrNoClipboardTool) {
		t.Fatalf("expected ErrNoClipboardTool, got %v", err)
	}
}

func TestCopyHTMLDarwinEncodesInline(t *testing.T) {
	c, calls, _ := fakeCopier("darwin", map[string]bool{"osascript": true}, nil)

	if err := c.CopyHTML(`<a href="x">"quoted"</a>`); err != nil {
		t.Fatalf("CopyHTML failed: %v", err)
	}
	got := (*calls)[0]
	if got.stdin != "" {
		t.Errorf("osascript should not read stdin, got %q", got.stdin)
	}
	script := got.args[len(got.args)-1]
	if !strings.HasPrefix(script, "set the clipboard to «data HTML3C61") {
		t.Errorf("unexpected script %q", script)
	}
	if strings.Contains(script, `"`) {
		t.Error("script should not embed raw quotes")
	}
}
