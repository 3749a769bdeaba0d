package cli

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"sort":       false,
		"rank":       false,
		"graph":      false,
		"serve":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSortCommandOrdersArguments(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"sort", "--no-cache", "--hint", "custom1,custom2", "z", "custom2", "a", "custom1"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	first := strings.SplitN(out.String(), "\n", 2)[0]
	if got := strings.Fields(first); !reflect.DeepEqual(got, []string{"custom1", "custom2", "z", "a"}) {
		t.Errorf("sorted output = %v", got)
	}
}

func TestSortCommandRejectsInvalidMode(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"sort", "--no-cache", "--mode", "turbo", "a", "b"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestSortCommandReadsStdin(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader("style\nid\nclass\n"))
	root.SetArgs([]string{"sort", "--no-cache"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	first := strings.SplitN(out.String(), "\n", 2)[0]
	if got := strings.Fields(first); !reflect.DeepEqual(got, []string{"id", "class", "style"}) {
		t.Errorf("sorted output = %v", got)
	}
}

func TestGraphCommandEmitsDOT(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"graph", "--hint", "id,class", "id", "class", "style"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	dot := out.String()
	if !strings.Contains(dot, "digraph") || !strings.Contains(dot, `"id" -> "class"`) {
		t.Errorf("unexpected DOT output:\n%s", dot)
	}
}

func TestParseHint(t *testing.T) {
	got := parseHint(" id, class ,,data-* ")
	want := []string{"id", "class", "data-*"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseHint = %v, want %v", got, want)
	}
}
