package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setTestEnv(t *testing.T, nodeID string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MSG_OUTPUT_DIR", dir)
	t.Setenv("MSG_NODE_ID", nodeID)
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func TestRun_UsageExitCodes(t *testing.T) {
	setTestEnv(t, "1")

	for _, args := range [][]string{nil, {"publish"}} {
		var stderr bytes.Buffer
		if code := run(args, &stderr); code != 2 {
			t.Fatalf("expected exit code 2 for %v, got %d", args, code)
		}
		if !strings.Contains(stderr.String(), "Usage:") {
			t.Fatalf("expected usage on stderr, got %q", stderr.String())
		}
	}
}

func TestRun_InvalidNodeIDReturnsError(t *testing.T) {
	setTestEnv(t, "5000")

	var stderr bytes.Buffer
	if code := run([]string{"inspect", "missing.json"}, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRun_CommandFailureReturnsError(t *testing.T) {
	setTestEnv(t, "1")

	var stderr bytes.Buffer
	if code := run([]string{"inspect"}, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRun_ComposeWritesMessage(t *testing.T) {
	dir := setTestEnv(t, "1")

	var stderr bytes.Buffer
	code := run([]string{"compose", "-nick", "Alice", "-to", "Bob", "-content", "hola", "-out", "hello.json"}, &stderr)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", code, stderr.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "hello.json"))
	if err != nil {
		t.Fatalf("expected archived message, got %v", err)
	}
	if !strings.Contains(string(data), `"sender_nickname":"Alice"`) {
		t.Fatalf("unexpected document %s", data)
	}
}
