/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"os"

	"cfvm/shutdown"
	"cfvm/trace"
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		trace.Error(err.Error())
		shutdown.Exit(shutdown.JVMException)
	}
	shutdown.Exit(shutdown.OK)
}
