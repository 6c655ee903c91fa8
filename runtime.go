// runtime.go
//
// Assembles a ready-to-use interpreter against the engine surface defined
// in interpreter.go: standard builtins installed in Core, I/O wired to the
// process streams. Hosts that want different streams or extra natives set
// In/Out and call RegisterBuiltin after construction.
package minirb

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// NewRuntime returns a fully-initialized interpreter with std builtins.
func NewRuntime() *Interpreter {
	ip := NewInterpreter()
	ip.In = NewLineReader(os.Stdin)
	ip.Out = os.Stdout
	registerCoreBuiltins(ip)
	return ip
}

// NewLineReader adapts an io.Reader into the LineReader surface gets()
// consumes. The trailing newline is stripped; a final unterminated line is
// still returned once before end of input.
func NewLineReader(r io.Reader) LineReader {
	return &bufLines{r: bufio.NewReader(r)}
}

type bufLines struct {
	r *bufio.Reader
}

func (b *bufLines) ReadLine() (string, bool) {
	line, err := b.r.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), true
}
