package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	thingerror "github.com/msto63/thing/foundation/core/error"
	"github.com/msto63/thing/internal/workbench/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores flag defaults between runs of the shared command tree
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("THING_CONFIG", "")

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))

	err := rootCmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestVersion(t *testing.T) {
	r := execute(t, "", "version")
	if r.err != nil {
		t.Fatalf("version error = %v", r.err)
	}
	if !strings.HasPrefix(r.stdout, "thing v") {
		t.Errorf("stdout = %q", r.stdout)
	}
}

func TestParse_Expression(t *testing.T) {
	r := execute(t, "", "parse", "--expr", "-e", "5 * 2 + 4 / 3")
	if r.err != nil {
		t.Fatalf("parse error = %v", r.err)
	}

	want := strings.Join([]string{
		"'+'",
		"  '*'",
		"    '5'",
		"    '2'",
		"  '/'",
		"    '4'",
		"    '3'",
	}, "\n") + "\n"
	if r.stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", r.stdout, want)
	}
}

func TestParse_SyntaxError(t *testing.T) {
	r := execute(t, "", "parse", "--expr", "-e", "(1")

	if !thingerror.HasCode(r.err, thingerror.CodeSyntax) {
		t.Fatalf("error = %v, want SYNTAX", r.err)
	}
	if ExitCode(r.err) != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode(r.err))
	}
	if !strings.Contains(r.stdout, "'' !wrong_token_type expected )") {
		t.Errorf("stdout = %q", r.stdout)
	}
	if !strings.Contains(r.stderr, "Error parsing string (1,3): `)` expected") {
		t.Errorf("stderr = %q", r.stderr)
	}
}

func TestParse_JSON(t *testing.T) {
	r := execute(t, "", "parse", "--json", "-e", "f(x);")
	if r.err != nil {
		t.Fatalf("parse error = %v", r.err)
	}

	var out parseOutput
	if err := json.Unmarshal([]byte(r.stdout), &out); err != nil {
		t.Fatalf("Unmarshal() error = %v: %s", err, r.stdout)
	}
	if out.Mode != "program" {
		t.Errorf("Mode = %q, want program", out.Mode)
	}
	if len(out.Tree.Children) != 1 || out.Tree.Children[0].Text != "f" {
		t.Errorf("Tree = %+v", out.Tree)
	}
}

func TestParse_ExclusiveModeFlags(t *testing.T) {
	r := execute(t, "", "parse", "--expr", "--program", "-e", "a")
	if r.err == nil {
		t.Fatal("--expr with --program should fail")
	}
	if ExitCode(r.err) != 2 {
		t.Errorf("ExitCode = %d, want 2", ExitCode(r.err))
	}
}

func TestCheck_Valid(t *testing.T) {
	r := execute(t, "", "check", "-e", "while (i) { i - 1; }")
	if r.err != nil {
		t.Fatalf("check error = %v", r.err)
	}
	if r.stdout != "<eval>: no errors\n" {
		t.Errorf("stdout = %q", r.stdout)
	}
}

func TestCheck_Stdin(t *testing.T) {
	r := execute(t, "x;", "check")
	if r.err != nil {
		t.Fatalf("check error = %v", r.err)
	}
	if r.stdout != "<stdin>: no errors\n" {
		t.Errorf("stdout = %q", r.stdout)
	}
}

func TestCheck_FileWithErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.thing")
	if err := os.WriteFile(path, []byte("a;\nb;\nc d;"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	r := execute(t, "", "check", path)
	if ExitCode(r.err) != 1 {
		t.Fatalf("ExitCode = %d (%v), want 1", ExitCode(r.err), r.err)
	}
	if !strings.Contains(r.stdout, "Error parsing string (3,3): `;` expected\n\nc d;\n  ^\n") {
		t.Errorf("stdout = %q", r.stdout)
	}
	if !strings.Contains(r.stdout, path+": ") {
		t.Errorf("stdout should end with the summary line: %q", r.stdout)
	}
}

func TestCheck_MaxErrorsFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "thing.toml")
	if err := os.WriteFile(cfgPath, []byte("[diagnostics]\nmax_errors = 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	r := execute(t, "", "--config", cfgPath, "check", "-e", "a b c")
	if !thingerror.HasCode(r.err, thingerror.CodeSyntax) {
		t.Fatalf("error = %v, want SYNTAX", r.err)
	}
	if strings.Count(r.stdout, "Error parsing string") != 1 {
		t.Errorf("stdout should show one diagnostic: %q", r.stdout)
	}
	if !strings.Contains(r.stdout, "not shown") {
		t.Errorf("stdout should note hidden diagnostics: %q", r.stdout)
	}
}

func TestCheck_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code thingerror.Code
		exit int
	}{
		{"missing file", []string{"check", filepath.Join(t.TempDir(), "nope.thing")}, thingerror.CodeNotFound, 2},
		{"watch without file", []string{"check", "--watch", "-e", "a;"}, thingerror.CodeInvalidInput, 2},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "x.toml"), "check", "-e", "a;"}, thingerror.CodeNotFound, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := execute(t, "", tt.args...)
			if !thingerror.HasCode(r.err, tt.code) {
				t.Errorf("error = %v, want %s", r.err, tt.code)
			}
			if got := ExitCode(r.err); got != tt.exit {
				t.Errorf("ExitCode = %d, want %d", got, tt.exit)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	r := execute(t, "", "tokenize", "-e", "a+1")
	if r.err != nil {
		t.Fatalf("tokenize error = %v", r.err)
	}

	lines := strings.Split(strings.TrimRight(r.stdout, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4: %q", len(lines), r.stdout)
	}
	for i, want := range []string{"identifier", "plus", "number", "end_of_file"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want %s", i, lines[i], want)
		}
	}
}

func TestTokenize_JSONWithWhitespace(t *testing.T) {
	r := execute(t, "", "tokenize", "--json", "--whitespace", "-e", "a + 1")
	if r.err != nil {
		t.Fatalf("tokenize error = %v", r.err)
	}

	var tokens []service.TokenDTO
	if err := json.Unmarshal([]byte(r.stdout), &tokens); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(tokens) != 6 {
		t.Errorf("tokens = %d, want 6", len(tokens))
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Error("ExitCode(nil) should be 0")
	}
	if ExitCode(errors.New("unknown flag")) != 2 {
		t.Error("uncoded errors should exit with 2")
	}
	if got := ExitCode(thingerror.New("bad").WithCode(thingerror.CodeInvalidConfig)); got != 3 {
		t.Errorf("ExitCode(INVALID_CONFIG) = %d, want 3", got)
	}
}
