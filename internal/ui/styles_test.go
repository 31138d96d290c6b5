package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withColor(t *testing.T, enabled bool) {
	t.Helper()
	prev := noColor
	noColor = !enabled
	t.Cleanup(func() { noColor = prev })
}

func TestRenderStatus(t *testing.T) {
	withColor(t, true)
	for _, tc := range []struct {
		status string
		code   string
	}{
		{"APPROVED", "114"},
		{"approved", "114"},
		{"PENDING", "179"},
		{"REJECTED", "203"},
		{"CANCELLED", "245"},
		{"INACTIVE", "245"},
	} {
		got := RenderStatus(tc.status)
		if !strings.Contains(got, "38;5;"+tc.code+"m") || !strings.Contains(got, tc.status) {
			t.Errorf("RenderStatus(%q) = %q, want color %s", tc.status, got, tc.code)
		}
	}
	if got := RenderStatus("SOMETHING"); got != "SOMETHING" {
		t.Errorf("unknown status colored: %q", got)
	}
}

func TestNoColor(t *testing.T) {
	withColor(t, false)
	for _, fn := range []func(string) string{RenderAccent, RenderMuted, RenderCommand, RenderError, RenderHeader, RenderStatus} {
		if got := fn("APPROVED"); got != "APPROVED" {
			t.Errorf("got %q with color disabled", got)
		}
	}
}

func TestRenderHeader_Bold(t *testing.T) {
	withColor(t, true)
	if got := RenderHeader("NAME"); !strings.HasPrefix(got, "\x1b[1;") {
		t.Errorf("RenderHeader = %q, want bold prefix", got)
	}
	if got := RenderHeader(""); got != "" {
		t.Errorf("empty header = %q", got)
	}
}

func TestShouldUseColor_Env(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("CLICOLOR_FORCE", "1")
	if ShouldUseColor() {
		t.Error("NO_COLOR should win over CLICOLOR_FORCE")
	}
	t.Setenv("NO_COLOR", "")
	if !ShouldUseColor() {
		t.Error("CLICOLOR_FORCE=1 should enable color")
	}
	t.Setenv("CLICOLOR_FORCE", "")
	t.Setenv("CLICOLOR", "0")
	if ShouldUseColor() {
		t.Error("CLICOLOR=0 should disable color")
	}
}

func TestReadSecret_Piped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in")
	if err := os.WriteFile(path, []byte("hunter22\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var prompt strings.Builder
	got, err := ReadSecret(&prompt, f, "Password: ")
	if err != nil {
		t.Fatalf("ReadSecret: %v", err)
	}
	if got != "hunter22" {
		t.Errorf("secret = %q", got)
	}
	if prompt.String() != "Password: " {
		t.Errorf("prompt = %q", prompt.String())
	}
}
