package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewRootCmd verifies the command tree.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	if cmd.Use != "pysde" {
		t.Errorf("expected Use 'pysde', got %s", cmd.Use)
	}

	want := map[string]bool{
		"convert": false,
		"fetch":   false,
		"tables":  false,
		"version": false,
	}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand %s to be registered", name)
		}
	}

	if cmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("expected persistent verbose flag")
	}
}

// TestVersionCmd verifies the version subcommand output.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"version"})

	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "pysde version") {
		t.Errorf("expected version header, got: %s", out)
	}
	if !strings.Contains(out, "commit:") {
		t.Errorf("expected commit line, got: %s", out)
	}
}
