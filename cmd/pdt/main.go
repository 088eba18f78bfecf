// Command pdt is a small playground around the AST core: an interactive
// session that builds a tree, records rewrites against it and shows the
// flattened result of the edited view next to the untouched base.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/nabice/pdt"
)

const (
	appName     = "pdt"
	historyFile = ".pdt_history"
	prompt      = "==> "
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	root := &cobra.Command{
		Use:           appName,
		Short:         "PHP AST playground: build trees, record rewrites, flatten",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the library version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(pdt.Version)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Start the interactive playground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl()
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(1)
	}
}

// session is the REPL state: one tree, a named set of declarations hanging
// off a program root, and a stack of rewrite layers.
type session struct {
	tree    *pdt.Tree
	program *pdt.Node
	classes map[string]*pdt.Node
	layers  []*pdt.RewriteStore
}

func newSession() (*session, error) {
	tree := pdt.NewTree(pdt.PHP82)
	prog, err := tree.NewProgram()
	if err != nil {
		return nil, err
	}
	if err := tree.SetRoot(prog); err != nil {
		return nil, err
	}
	return &session{
		tree:    tree,
		program: prog,
		classes: map[string]*pdt.Node{},
		layers:  []*pdt.RewriteStore{pdt.NewRewriteStore(tree, nil)},
	}, nil
}

func (s *session) store() *pdt.RewriteStore { return s.layers[len(s.layers)-1] }

func (s *session) class(name string) (*pdt.Node, error) {
	c, ok := s.classes[name]
	if !ok {
		return nil, fmt.Errorf("no class %q in this session", name)
	}
	return c, nil
}

const replHelp = `commands:
  class <Name>                 declare an empty class
  extends <Class> <Super>      record: set the superclass
  implements <Class> <I,...>   record: replace the interface list
  rename <Class> <NewName>     record: replace the name
  layer                        push a speculative rewrite layer
  drop                         discard the top layer
  flatten                      print the edited view
  base                         print the tree without edits
  dump <Class>                 structural dump of a declaration
  help                         this text
  quit                         leave`

func repl() error {
	fmt.Printf("pdt %s playground. Type help for commands, Ctrl+D exits.\n", pdt.Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sess, err := newSession()
	if err != nil {
		return err
	}

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if done, err := sess.exec(line); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		} else if done {
			return nil
		}
	}
}

func (s *session) exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", ":quit":
		return true, nil

	case "help":
		fmt.Println(replHelp)

	case "class":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: class <Name>")
		}
		body, err := s.tree.NewBlock(true)
		if err != nil {
			return false, err
		}
		c, err := s.tree.NewClassDeclaration(pdt.ModifierNone, args[0], nil, nil, body)
		if err != nil {
			return false, err
		}
		if err := s.program.List(pdt.PropStatements).Append(c); err != nil {
			return false, err
		}
		s.classes[args[0]] = c
		fmt.Println(green("declared " + args[0]))

	case "extends":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: extends <Class> <Super>")
		}
		c, err := s.class(args[0])
		if err != nil {
			return false, err
		}
		if err := s.store().RecordReplace(c, pdt.PropSuperClass, s.tree.NewIdentifier(args[1])); err != nil {
			return false, err
		}
		fmt.Println(green("recorded"))

	case "implements":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: implements <Class> <Iface,Iface,...>")
		}
		c, err := s.class(args[0])
		if err != nil {
			return false, err
		}
		var ifaces []*pdt.Node
		for _, name := range strings.Split(args[1], ",") {
			if name = strings.TrimSpace(name); name != "" {
				ifaces = append(ifaces, s.tree.NewIdentifier(name))
			}
		}
		if err := s.store().RecordListEdit(c, pdt.PropInterfaces, ifaces); err != nil {
			return false, err
		}
		fmt.Println(green("recorded"))

	case "rename":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: rename <Class> <NewName>")
		}
		c, err := s.class(args[0])
		if err != nil {
			return false, err
		}
		if err := s.store().RecordReplace(c, pdt.PropName, s.tree.NewIdentifier(args[1])); err != nil {
			return false, err
		}
		s.classes[args[1]] = c
		fmt.Println(green("recorded"))

	case "layer":
		s.layers = append(s.layers, pdt.NewRewriteStore(nil, s.store()))
		fmt.Println(green(fmt.Sprintf("layer pushed (depth %d)", len(s.layers))))

	case "drop":
		if len(s.layers) == 1 {
			return false, fmt.Errorf("the root layer cannot be dropped")
		}
		s.layers = s.layers[:len(s.layers)-1]
		fmt.Println(green(fmt.Sprintf("layer dropped (depth %d)", len(s.layers))))

	case "flatten":
		out, err := pdt.Flatten(s.program, s.store())
		if err != nil {
			return false, err
		}
		fmt.Print(blue(out))

	case "base":
		out, err := pdt.Flatten(s.program, nil)
		if err != nil {
			return false, err
		}
		fmt.Print(blue(out))

	case "dump":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: dump <Class>")
		}
		c, err := s.class(args[0])
		if err != nil {
			return false, err
		}
		fmt.Print(pdt.DumpString(c))

	default:
		return false, fmt.Errorf("unknown command %q; type help", cmd)
	}
	return false, nil
}
