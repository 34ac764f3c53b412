// Package cmd implements the strata CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (check, ids, layout, render, serve).
package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-drift/strata/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "strata",
	Short: "Strata - inspect and render component schemas",
	Long: `Strata loads component schemas, lays them out headlessly and renders
them without a native window.

Use "strata <command> --help" for more information about a command.`,
	Usage: "strata <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// stdout and stderr are swapped out by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	// Handle no arguments
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "strata version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--no-color":
			colorMode = colorNever
		default:
			if v, ok := strings.CutPrefix(arg, "--color="); ok {
				mode, err := parseColorMode(v)
				if err != nil {
					return err
				}
				colorMode = mode
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Reports from the schema loader and the engine go to the CLI's stderr.
	errors.SetHandler(&errors.LogHandler{Logger: log.New(stderr, "", 0)})

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --color=MODE         Color output: auto, always or never")
	fmt.Fprintln(stdout, "  --no-color           Same as --color=never")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  strata check ui/*.yaml              Validate schemas")
	fmt.Fprintln(stdout, "  strata render ui/counter.yaml -o counter.png")
	fmt.Fprintln(stdout, "  strata serve ui/counter.yaml --port 9930")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}

// report sends a command failure through the global error handler.
func report(err error) {
	var schemaErr *errors.SchemaError
	var runErr *errors.Error
	switch {
	case stderrors.As(err, &schemaErr):
		errors.ReportSchemaError(schemaErr)
	case stderrors.As(err, &runErr):
		errors.Report(runErr)
	default:
		fmt.Fprintln(stderr, err)
	}
}
