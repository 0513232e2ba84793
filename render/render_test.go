/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package render

import (
	"encoding/json"
	"strings"
	"testing"

	"cfvm/classfile"
	"cfvm/internal/testclass"
)

func parsedTestClass(t *testing.T) *classfile.ClassFile {
	t.Helper()
	cf, err := classfile.Parse(testclass.MethodClass(testclass.ArithmeticProgram(), 2, 2))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return cf
}

func TestJSONIsValidAndIndented(t *testing.T) {
	cf := parsedTestClass(t)
	out, err := JSON(cf)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	var v map[string]interface{}
	if err := json.Unmarshal(out, &v); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !strings.Contains(string(out), "\n  ") {
		t.Error("output does not look indented")
	}
}

func TestPrettyIncludesClassNameAndDisassembly(t *testing.T) {
	cf := parsedTestClass(t)
	out := Pretty(cf, PrettyOptions{})
	if !strings.Contains(out, "Test") {
		t.Errorf("Pretty output missing class name: %q", out)
	}
	if !strings.Contains(out, "ireturn") {
		t.Errorf("Pretty output missing disassembly: %q", out)
	}
}

func TestPrettyNoCodeOmitsDisassembly(t *testing.T) {
	cf := parsedTestClass(t)
	out := Pretty(cf, PrettyOptions{NoCode: true})
	if strings.Contains(out, "ireturn") {
		t.Errorf("Pretty with NoCode still emitted disassembly: %q", out)
	}
}
