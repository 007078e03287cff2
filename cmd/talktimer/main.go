package main

import (
	"io"
	"os"

	"talktimer/internal/cli"
)

func run(args []string, stdout, stderr io.Writer) int {
	cmd := cli.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cli.ExitCode(cmd.Execute())
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
