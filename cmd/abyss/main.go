package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUsage marks invalid arguments or flags.
var ErrUsage = errors.New("invalid usage")

// commands lists the subcommands. Anything else runs build.
var commands = []string{"build", "check", "config", "completion", "version", "help"}

func main() {
	setMaxProcs(hasVerboseFlag(os.Args[1:]), os.Stderr)
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
}

func hasVerboseFlag(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return slices.Contains(commands, arg)
}

// runMain dispatches to a command and returns the process exit code.
// With no command, or a first argument that is not one, it builds.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := "build", []string{}
	if len(args) > 1 {
		switch {
		case args[1] == "-h" || args[1] == "--help":
			printUsage(env.Stdout)
			return ExitSuccess
		case isCommand(args[1]):
			cmd, rest = args[1], args[2:]
		default:
			rest = args[1:]
		}
	}

	var err error
	switch cmd {
	case "help":
		return runHelp(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "abyss %s\n", Version)
		return ExitSuccess
	case "completion":
		err = runCompletion(rest, env)
	case "config":
		err = runConfigCmd(rest, env)
	case "check":
		return runCheckCmd(ctx, rest, env)
	default:
		err = runBuild(ctx, rest, env)
	}

	return report(err, env.Stderr)
}

// report prints err and maps it to an exit code.
func report(err error, w io.Writer) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintln(w, "error:", err)
	return exitCodeFor(err)
}
