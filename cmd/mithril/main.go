// Command mithril is the compiler front end's command-line driver: lex,
// parse, and lower a source file, or serve either over a REPL or the
// Language Server Protocol.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/mithril-lang/mithril/internal/cst"
	"github.com/mithril-lang/mithril/internal/diagnostics"
	"github.com/mithril-lang/mithril/internal/errors"
	"github.com/mithril-lang/mithril/internal/lexer"
	"github.com/mithril-lang/mithril/internal/lower"
	"github.com/mithril-lang/mithril/internal/lspserver"
	"github.com/mithril-lang/mithril/internal/parser"
)

var (
	Version = "dev"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	command := flag.Arg(0)

	switch command {
	case "parse":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: mithril parse <file>")
			os.Exit(1)
		}
		cmdParse(flag.Arg(1))

	case "ast":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: mithril ast <file>")
			os.Exit(1)
		}
		cmdAST(flag.Arg(1))

	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: mithril check <file>")
			os.Exit(1)
		}
		cmdCheck(flag.Arg(1))

	case "repl":
		runREPL()

	case "lsp":
		runLSP()

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command '%s'\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("mithril %s\n", bold(Version))
	fmt.Println("A small statically-typed language's compiler front end")
}

func printHelp() {
	fmt.Println(bold("mithril - lexer, parser, and lowerer driver"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  mithril <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <file>   Print the concrete tree\n", cyan("parse"))
	fmt.Printf("  %s <file>     Print the lowered definitions\n", cyan("ast"))
	fmt.Printf("  %s <file>   Exit non-zero on any fatal diagnostic\n", cyan("check"))
	fmt.Printf("  %s            Start the interactive REPL\n", cyan("repl"))
	fmt.Printf("  %s             Start the Language Server Protocol server\n", cyan("lsp"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version   Print version information")
	fmt.Println("  --help      Show this help message")
}

func readFile(filename string) string {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file '%s': %v\n", red("Error"), filename, err)
		os.Exit(1)
	}
	return string(content)
}

func cmdParse(filename string) {
	src := readFile(filename)
	tree, err := parser.Parse(lexer.Lex(src))
	if err != nil {
		printDiagnostic(err)
		os.Exit(1)
	}
	fmt.Println(tree.String())
}

func cmdAST(filename string) {
	src := readFile(filename)
	tree, err := parser.Parse(lexer.Lex(src))
	if err != nil {
		printDiagnostic(err)
		os.Exit(1)
	}
	defs, err := lower.Lower([]*cst.Branch{tree})
	if err != nil {
		printDiagnostic(err)
		os.Exit(1)
	}
	for _, def := range defs {
		fmt.Printf("%+v\n", def)
	}
}

func cmdCheck(filename string) {
	src := readFile(filename)
	tree, err := parser.Parse(lexer.Lex(src))
	if err == nil {
		_, err = lower.Lower([]*cst.Branch{tree})
	}
	if err != nil {
		printDiagnostic(err)
		os.Exit(1)
	}
	fmt.Printf("%s No errors found in %s\n", green("✓"), filename)
}

func printDiagnostic(err error) {
	if d, ok := err.(*errors.Diagnostic); ok {
		fmt.Fprintf(os.Stderr, "%s %s\n", red("Error"), diagnostics.Render(d, true))
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
}

func runREPL() {
	fmt.Printf("%s %s\n", bold("mithril"), bold(Version))
	fmt.Println("Type :quit to exit")
	fmt.Println()

	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	for {
		input, err := line.Prompt("λ> ")
		if err == io.EOF {
			fmt.Println(green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			continue
		}

		if input == "" {
			continue
		}
		if input == ":quit" || input == ":q" {
			fmt.Println(green("Goodbye!"))
			break
		}

		line.AppendHistory(input)
		evalREPLLine(input)
	}
}

func evalREPLLine(src string) {
	tree, err := parser.Parse(lexer.Lex(src))
	if err != nil {
		printDiagnostic(err)
		return
	}
	defs, err := lower.Lower([]*cst.Branch{tree})
	if err != nil {
		printDiagnostic(err)
		return
	}
	for _, def := range defs {
		fmt.Printf("%s %+v\n", cyan("=>"), def)
	}
}

func runLSP() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	ctx := context.Background()
	stream := jsonrpc2.NewStream(&stdioReadWriteCloser{os.Stdin, os.Stdout})
	conn := jsonrpc2.NewConn(stream)
	client := protocol.ClientDispatcher(conn, logger)

	server := lspserver.NewServer(client, logger)
	conn.Go(ctx, protocol.ServerHandler(server, nil))

	<-conn.Done()
	if err := conn.Err(); err != nil && err != io.EOF {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
}

type stdioReadWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *stdioReadWriteCloser) Close() error {
	if c, ok := rwc.Writer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
