package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// hasVerboseFlag reports whether -v or --verbose appears before flag parsing.
func hasVerboseFlag(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "-v" || a == "--verbose"
	})
}

// runMain dispatches args[0] to its command and returns the exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	var err error
	switch args[0] {
	case "render":
		err = runRender(ctx, args[1:], env)
	case "detect":
		err = runDetect(ctx, args[1:], env)
	case "macros":
		err = runMacros(args[1:], env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "texmath %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		errorLabel.Fprint(env.Stderr, "error:")
		fmt.Fprintf(env.Stderr, " %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}
