/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cfvm/internal/testclass"
)

func writeTestClass(t *testing.T, code []byte, maxStack, maxLocals uint16) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Test.class")
	data := testclass.MethodClass(code, maxStack, maxLocals)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestRunCLIPrettyPrintsByDefault(t *testing.T) {
	path := writeTestClass(t, testclass.ArithmeticProgram(), 2, 2)
	var stdout, stderr bytes.Buffer

	if err := runCLI(path, options{pretty: true}, &stdout, &stderr); err != nil {
		t.Fatalf("runCLI failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "class Test") {
		t.Errorf("stdout missing class header: %q", stdout.String())
	}
}

func TestRunCLIJSON(t *testing.T) {
	path := writeTestClass(t, testclass.ArithmeticProgram(), 2, 2)
	var stdout, stderr bytes.Buffer

	if err := runCLI(path, options{json: true}, &stdout, &stderr); err != nil {
		t.Fatalf("runCLI failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "{") {
		t.Errorf("stdout does not look like JSON: %q", stdout.String())
	}
}

func TestRunCLIReaderModeProducesNoOutput(t *testing.T) {
	path := writeTestClass(t, testclass.ArithmeticProgram(), 2, 2)
	var stdout, stderr bytes.Buffer

	if err := runCLI(path, options{readerMode: true}, &stdout, &stderr); err != nil {
		t.Fatalf("runCLI failed: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("reader-mode produced output: %q", stdout.String())
	}
}

func TestRunCLIRunExecutesEntryMethod(t *testing.T) {
	path := writeTestClass(t, testclass.ArithmeticProgram(), 2, 2)
	var stdout, stderr bytes.Buffer

	if err := runCLI(path, options{pretty: true, run: true}, &stdout, &stderr); err != nil {
		t.Fatalf("runCLI failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "run finished") {
		t.Errorf("stdout missing run summary: %q", stdout.String())
	}
}

func TestRunCLIMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runCLI(filepath.Join(t.TempDir(), "missing.class"), options{pretty: true}, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestNewRootCmdRequiresExactlyOneArg(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when no class-file argument is given")
	}
}
