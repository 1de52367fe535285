package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/Pavelavl/btrees/btree"
	"github.com/Pavelavl/btrees/generator"
)

var (
	promptColor = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed)
)

type Cli struct {
	scanner    *bufio.Scanner
	out        io.Writer
	tree       *btree.Tree[int]
	visualizer *btree.Visualizer[int]
	generator  *generator.Generator
	log        logrus.FieldLogger
}

func NewCli(s *bufio.Scanner, out io.Writer, t *btree.Tree[int], g *generator.Generator, log logrus.FieldLogger) *Cli {
	c := &Cli{scanner: s, out: out, generator: g, log: log}
	c.setTree(t)
	return c
}

// Tree returns the tree the session currently works on; USE and GEN replace it.
func (c *Cli) Tree() *btree.Tree[int] {
	return c.tree
}

func (c *Cli) setTree(t *btree.Tree[int]) {
	c.tree = t
	c.visualizer = &btree.Visualizer[int]{Tree: t}
}

// Start reads commands until EXIT or the end of input.
func (c *Cli) Start() {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return
		}
		c.printPrompt()
	}
}

func (c *Cli) printHelp() {
	fmt.Fprintf(c.out, `
B-Tree CLI (%s, t=%d)

Available Commands:
  INSERT <key>...            Insert one or more keys
  DEL <key>                  Remove one occurrence of a key stored in a leaf
  GET <key>                  Show the node that holds a key
  SHOW                       Draw the tree
  KEYS                       List all keys in order
  USE <btree|bplus|bstar> [degree]
                             Switch to an empty tree of another structure
  GEN <n>                    Replace the tree with one holding n random keys
  CHECK                      Verify the tree invariants
  HELP                       Show this message
  EXIT                       Terminate this session
`, c.tree.Variant(), c.tree.Degree())
}

func (c *Cli) printPrompt() {
	promptColor.Fprint(c.out, "> ")
}

func (c *Cli) printError(format string, args ...interface{}) {
	errorColor.Fprintf(c.out, format+"\n", args...)
}

// processInput runs one command line and reports whether the session goes on.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	c.log.WithField("command", command).Debug("processing command")
	switch command {
	default:
		c.printError("Unknown command \"%s\"", command)
	case "insert", "ins", "set":
		c.processInsertCommand(fields[1:])
	case "del":
		c.processDeleteCommand(fields[1:])
	case "get":
		c.processGetCommand(fields[1:])
	case "show":
		fmt.Fprint(c.out, c.visualizer.Visualize())
	case "keys":
		c.processKeysCommand()
	case "use":
		c.processUseCommand(fields[1:])
	case "gen":
		c.processGenCommand(fields[1:])
	case "check":
		c.processCheckCommand()
	case "help":
		c.printHelp()
	case "exit":
		return false
	}
	return true
}

func (c *Cli) processInsertCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: INSERT <key>...")
		return
	}
	keys, ok := c.parseKeys(args)
	if !ok {
		return
	}
	for _, k := range keys {
		c.tree.Insert(k)
	}
	fmt.Fprint(c.out, c.visualizer.Visualize())
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: DEL <key>")
		return
	}
	keys, ok := c.parseKeys(args)
	if !ok {
		return
	}
	if !c.tree.Delete(keys[0]) {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprint(c.out, c.visualizer.Visualize())
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: GET <key>")
		return
	}
	keys, ok := c.parseKeys(args)
	if !ok {
		return
	}
	node, found := c.tree.Search(keys[0])
	if !found {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprintf(c.out, "Element found: %s\n", btree.FormatNode(node))
}

func (c *Cli) processKeysCommand() {
	keys := c.tree.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Itoa(k)
	}
	fmt.Fprintf(c.out, "%d keys: %s\n", len(keys), strings.Join(parts, " "))
}

func (c *Cli) processUseCommand(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(c.out, "Usage: USE <btree|bplus|bstar> [degree]")
		return
	}
	variant, err := btree.ParseVariant(args[0])
	if err != nil {
		c.printError("%v", err)
		return
	}
	degree := c.tree.Degree()
	if len(args) == 2 {
		if degree, err = strconv.Atoi(args[1]); err != nil {
			c.printError("Invalid degree %q", args[1])
			return
		}
	}
	t, err := btree.New[int](variant, degree, btree.WithLogger(c.log))
	if err != nil {
		c.printError("%v", err)
		return
	}
	c.setTree(t)
	c.log.WithFields(logrus.Fields{"variant": variant, "degree": degree}).Info("selected structure")
	fmt.Fprintf(c.out, "Selected structure: %s (t=%d)\n", variant, degree)
}

func (c *Cli) processGenCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: GEN <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		c.printError("Invalid number of elements %q", args[0])
		return
	}
	t, err := btree.New[int](c.tree.Variant(), c.tree.Degree(), btree.WithLogger(c.log))
	if err != nil {
		c.printError("%v", err)
		return
	}
	if err := c.generator.Populate(t, n); err != nil {
		c.printError("%v", err)
		return
	}
	c.setTree(t)
	c.log.WithField("records", n).Info("generated tree")
	fmt.Fprintf(c.out, "Tree was generated with %d elements.\n", n)
}

func (c *Cli) processCheckCommand() {
	if err := c.tree.Verify(); err != nil {
		c.printError("Invariant violated: %v", err)
		return
	}
	fmt.Fprintln(c.out, "OK")
}

func (c *Cli) parseKeys(args []string) ([]int, bool) {
	keys := make([]int, len(args))
	for i, a := range args {
		k, err := strconv.Atoi(a)
		if err != nil {
			c.printError("Invalid key %q", a)
			return nil, false
		}
		keys[i] = k
	}
	return keys, true
}
