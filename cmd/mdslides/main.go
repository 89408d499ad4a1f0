package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(realMain(os.Args[1:], DefaultEnv()))
}

// realMain dispatches the subcommand and maps errors to exit codes.
func realMain(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "build":
		if err := runBuildCmd(ctx, rest, env); err != nil {
			fmt.Fprintln(env.Stderr, withHints(err))
			return exitCodeFor(err)
		}
		return ExitSuccess
	case "serve":
		if err := runServeCmd(ctx, rest, env); err != nil {
			fmt.Fprintln(env.Stderr, withHints(err))
			return exitCodeFor(err)
		}
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "mdslides %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(rest, env)
		return ExitSuccess
	default:
		// Bare invocation: "mdslides lecture.md" builds without the
		// subcommand when the first argument names an existing input.
		if _, err := os.Stat(cmd); err == nil {
			if err := runBuildCmd(ctx, args, env); err != nil {
				fmt.Fprintln(env.Stderr, withHints(err))
				return exitCodeFor(err)
			}
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}
