package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: texmath <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Convert markdown files to HTML with math wrapped for MathJax")
	fmt.Fprintln(w, "  detect     Report which markdown or HTML files contain math")
	fmt.Fprintln(w, "  macros     Resolve TeX macro files into one table")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'texmath help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: texmath render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to HTML. Math outside code is wrapped in")
	fmt.Fprintln(w, "<mathjax>...</mathjax> (or --wrap-tag) and left for a client-side renderer.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-file render timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Math:")
	fmt.Fprintln(w, "      --wrap-tag <s>        Element wrapping each span (default: mathjax)")
	fmt.Fprintln(w, "      --match-timeout <d>   Limit for a single pattern match (e.g., 2s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --standalone          Write complete HTML documents")
	fmt.Fprintln(w, "      --title <s>           Document title for --standalone")
	fmt.Fprintln(w, "      --hard-wraps          Render newlines as <br>")
	fmt.Fprintln(w, "      --unsafe-html         Pass raw HTML through")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style for code blocks (default: github)")
	fmt.Fprintln(w, "      --no-highlight        Disable syntax highlighting")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printDetectUsage prints usage for the detect command.
func printDetectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: texmath detect <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report whether each file contains math outside code regions.")
	fmt.Fprintln(w, "Markdown files skip fenced blocks and code spans; HTML files skip <pre> and <code>.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .md, .markdown, .html or .htm file, or a directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -l, --list                Print only files containing math")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --match-timeout <d>   Limit for a single pattern match (e.g., 2s)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show span counts")
}

// printMacrosUsage prints usage for the macros command.
func printMacrosUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: texmath macros [file.tex...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolve \\newcommand, \\renewcommand and \\providecommand definitions.")
	fmt.Fprintln(w, "Files are read in order; a later definition of a name replaces an")
	fmt.Fprintln(w, "earlier one but keeps its position. Malformed lines are reported")
	fmt.Fprintln(w, "as warnings. Without arguments, macros.files from the config is used.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: text, yaml (default: text)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Hide warnings")
	fmt.Fprintln(w, "  -v, --verbose             Show where each definition comes from")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "detect":
		printDetectUsage(env.Stdout)
	case "macros":
		printMacrosUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: texmath version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: texmath help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
