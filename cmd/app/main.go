package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lupuchard/inko/internal/ast"
	"github.com/lupuchard/inko/internal/log"
	"github.com/lupuchard/inko/internal/parser"
	"github.com/lupuchard/inko/internal/repl"
	"github.com/lupuchard/inko/internal/store"
	"github.com/lupuchard/inko/internal/util"
)

var (
	// Version is the current version of the binary, stamped at build time.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel string
	logFile  string
	// config vars
	configFile   string
	debugTxtAST  bool
	debugJsonAST bool
	// store vars
	storeDriver string
	storeDSN    string
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configFile, "config", "", "Path to a TOML configuration file")
	// parser config
	flag.BoolVar(&debugTxtAST, "debug-ast", false, "Render the AST as indented text")
	flag.BoolVar(&debugJsonAST, "debug-ast-json", false, "Render the AST as JSON")
	// store config
	flag.StringVar(&storeDriver, "store-driver", "", "Document store driver: sqlite3, mysql, or postgres")
	flag.StringVar(&storeDSN, "store-dsn", "", "Document store connection string")
	// log config
	flag.StringVar(&logLevel, "log-level", "NONE", "Log level: trace, debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {
	flag.Parse()

	if version {
		printVersion()
		return
	}

	if help {
		printHelp()
		return
	}

	config := util.Configuration{
		Version:   Version,
		BuildDate: BuildDate,
		Commit:    Commit,
	}
	if configFile != "" {
		if err := util.LoadConfig(configFile, &config); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	applyFlagOverrides(&config)

	log.Init(config.LogLevel, config.LogFile, true)
	defer log.Close()

	if flag.NArg() == 0 {
		fmt.Printf("inko literal toolchain v%s\n", Version)
		repl.Start(os.Stdin, os.Stdout)
		return
	}

	fileName := flag.Arg(0)
	source, err := os.ReadFile(fileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read '%s': %v\n", fileName, err)
		os.Exit(1)
	}

	program, err := parser.Parse(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: parse failed: %v\n", fileName, err)
		os.Exit(1)
	}
	log.Info("parsed '%s': %d top-level expression(s)", fileName, len(program.Expressions))

	if config.DebugTxtAST {
		fmt.Println(parser.RenderASTAsText(program, 0))
	}
	if config.DebugJsonAST {
		rendered, err := parser.RenderASTAsJSON(program)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Print(rendered)
	}

	if config.Store.Driver != "" {
		saveDocument(&config, fileName, string(source), program)
	}
}

func saveDocument(config *util.Configuration, fileName, source string, program *ast.Program) {
	ctx := context.Background()
	s, err := store.Open(ctx, config.Store.Driver, config.Store.DSN)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer s.Close()

	rec, err := s.Save(ctx, fileName, source, program)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("stored document %s\n", rec.ID)
}

func applyFlagOverrides(config *util.Configuration) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug-ast":
			config.DebugTxtAST = debugTxtAST
		case "debug-ast-json":
			config.DebugJsonAST = debugJsonAST
		case "store-driver":
			config.Store.Driver = storeDriver
		case "store-dsn":
			config.Store.DSN = storeDSN
		case "log-level":
			config.LogLevel = logLevel
		case "log-file":
			config.LogFile = logFile
		}
	})
	if config.LogLevel == "" {
		config.LogLevel = logLevel
	}
}

func printVersion() {
	fmt.Printf("inko version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: inko [options] [filename]

Options:
  -config <path>         Load settings from a TOML configuration file.
  -debug-ast             Render the AST as indented text.
  -debug-ast-json        Render the AST as JSON.
  -store-driver <name>   Persist parsed documents: sqlite3, mysql, or postgres.
  -store-dsn <dsn>       Connection string for the document store.
  -help                  Display this help information and exit.
  -version               Display version information and exit.
  -log-level <level>     Set the log level: trace, debug, info, warn, error, none.
  -log-file <path>       Specify a log file to write logs. Default is stderr.

Details:
This is the literal-value front end of the inko toolchain. Without a
filename it starts an interactive session.

Examples:
  inko -debug-ast values.ink        Parse a file and print the tree
  inko -store-driver=sqlite3 -store-dsn=docs.db values.ink
  inko                              Start the interactive session

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}
