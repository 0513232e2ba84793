/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cfvm/classfile"
	"cfvm/frame"
	"cfvm/interp"
	"cfvm/loader"
	"cfvm/render"
	"cfvm/trace"
)

// options collects the CLI's flag surface into an explicit value
// instead of a package global, so tests can construct it directly.
type options struct {
	pretty     bool
	json       bool
	readerMode bool
	noCode     bool
	run        bool
	debug      bool
	verbose    bool
}

// newRootCmd builds the cobra command tree: a single root command, no
// subcommands -- this is a one-shot dump/run tool.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "cfvm <class-file>",
		Short: "Inspect and interpret a JVM class file",
		Long:  "cfvm decodes a class file, disassembles its bytecode, and optionally runs its main method on a minimal stack interpreter.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCLI(args[0], opts, stdout, stderr)
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&opts.pretty, "pretty", true, "pretty-print the parsed class (default)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "emit the parsed class as JSON")
	cmd.Flags().BoolVar(&opts.readerMode, "reader-mode", false, "parse only, produce no output")
	cmd.Flags().BoolVar(&opts.noCode, "no-code", false, "suppress disassembly of method bodies")
	cmd.Flags().BoolVar(&opts.run, "run", false, "execute the entry method")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "execute with per-instruction tracing and the instruction-count cap")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable stderr progress logs")

	cmd.MarkFlagsMutuallyExclusive("pretty", "json", "reader-mode")

	return cmd
}

// runCLI implements one invocation's worth of work: load, parse, and
// (depending on opts) render or run. It writes exclusively to stdout/
// stderr (never os.Stdout/os.Stderr directly) so tests can capture
// output without environment-wide redirection.
func runCLI(path string, opts options, stdout, stderr io.Writer) error {
	trace.Enabled = opts.verbose || opts.debug

	trace.Trace("loading " + path)
	data, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	trace.Trace("parsing class file")
	cf, err := classfile.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if opts.readerMode {
		return nil
	}

	if opts.json {
		out, err := render.JSON(cf)
		if err != nil {
			return fmt.Errorf("rendering JSON: %w", err)
		}
		fmt.Fprintln(stdout, string(out))
	} else {
		fmt.Fprint(stdout, render.Pretty(cf, render.PrettyOptions{NoCode: opts.noCode}))
	}

	if opts.run || opts.debug {
		return runEntryMethod(cf, opts.debug, stdout)
	}
	return nil
}

// runEntryMethod locates main's Code attribute and runs it to
// completion.
func runEntryMethod(cf *classfile.ClassFile, debug bool, stdout io.Writer) error {
	method, ok := findEntryMethod(cf)
	if !ok {
		return fmt.Errorf("no main method found")
	}
	raw, ok := classfile.FindCodeAttribute(cf.ConstantPool, method)
	if !ok {
		return fmt.Errorf("main method has no Code attribute")
	}
	code, err := classfile.ParseCodeAttribute(cf.ConstantPool, raw)
	if err != nil {
		return fmt.Errorf("parsing Code attribute: %w", err)
	}

	className, _ := classfile.ClassNameAt(cf.ConstantPool, cf.ThisClass)
	f := frameFor(className, "main", code)

	vm := interp.New(cf.ConstantPool, debug)
	outcome, err := vm.Run(f)
	if err != nil {
		return fmt.Errorf("running main: %w", err)
	}
	fmt.Fprintf(stdout, "run finished: outcome=%v instructions=%d\n", outcome, vm.InstrCount)
	return nil
}

// frameFor builds the frame the interpreter starts execution in, sized
// from the method's own Code attribute.
func frameFor(className, methodName string, code *classfile.CodeAttribute) *frame.Frame {
	return frame.New(className, methodName, code.Code, code.MaxLocals, code.MaxStack)
}

// findEntryMethod locates the method named "main" regardless of
// descriptor -- this core does not validate the conventional
// ([Ljava/lang/String;)V signature.
func findEntryMethod(cf *classfile.ClassFile) (classfile.MethodInfo, bool) {
	for _, m := range cf.Methods {
		name, _ := cf.ConstantPool.Utf8At(m.NameIndex)
		if name == "main" {
			return m, true
		}
	}
	return classfile.MethodInfo{}, false
}
