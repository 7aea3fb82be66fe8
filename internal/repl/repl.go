package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/lupuchard/inko/internal/log"
	"github.com/lupuchard/inko/internal/parser"
)

const PROMPT = ">> "

// Start reads one line at a time, parses it, and prints the resulting tree
// or the parse error. Each line is an independent document.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprintf(out, PROMPT)
		scanned := scanner.Scan()
		if !scanned {
			return
		}

		line := scanner.Text()
		program, err := parser.Parse(line)
		if err != nil {
			printParserError(out, err)
			continue
		}

		log.Debug("parsed %d top-level expression(s)", len(program.Expressions))
		io.WriteString(out, parser.RenderASTAsText(program, 0))
		io.WriteString(out, "\n")
	}
}

func printParserError(out io.Writer, err error) {
	io.WriteString(out, " parser error:\n")
	io.WriteString(out, "\t"+err.Error()+"\n")
}
