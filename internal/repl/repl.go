// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package repl is an interactive browser over a loaded taxonomy.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/peterh/liner"

	"github.com/cayleygraph/skos"
	"github.com/cayleygraph/skos/clog"
)

const (
	ps1 = "skos> "

	history = ".skos_history"
)

// errExit is returned by Run for the exit command.
var errExit = errors.New("exit")

const help = `Help
	exit                  // exit
	help                  // this help
	ls                    // list entity URIs
	show <uri>            // print an entity
	concepts              // list concepts
	schemes               // list concept schemes
	collections           // list collections
	export [format]       // write the view as quads (default "nquads")
	:flat [t|f]           // switch between the root and the flat view
	:debug [t|f]
`

// Session holds the state of one browsing session.
type Session struct {
	loader *skos.Loader
	out    io.Writer
}

func NewSession(l *skos.Loader, out io.Writer) *Session {
	return &Session{loader: l, out: out}
}

func parseFlag(args string) (bool, error) {
	switch args = strings.TrimSpace(args); args {
	case "t":
		return true, nil
	case "f":
		return false, nil
	}
	v, err := strconv.ParseBool(args)
	if err != nil {
		return false, fmt.Errorf("cannot parse %q as a valid boolean - acceptable values: 't'|'true' or 'f'|'false'", args)
	}
	return v, nil
}

// Run executes one input line.
func (s *Session) Run(line string) error {
	cmd, args := splitLine(line)
	switch cmd {
	case "":
		return nil
	case "exit", "quit":
		return errExit
	case "help":
		fmt.Fprint(s.out, help)
	case ":debug":
		debug, err := parseFlag(args)
		if err != nil {
			return err
		}
		if debug {
			clog.SetV(2)
		} else {
			clog.SetV(0)
		}
		fmt.Fprintf(s.out, "Debug set to %t\n", debug)
	case ":flat":
		flat := !s.loader.Flat
		if strings.TrimSpace(args) != "" {
			var err error
			if flat, err = parseFlag(args); err != nil {
				return err
			}
		}
		s.loader.Flat = flat
		fmt.Fprintf(s.out, "Flat set to %t, %d entities\n", flat, s.loader.Len())
	case "ls":
		for _, k := range s.loader.Keys() {
			fmt.Fprintln(s.out, k)
		}
	case "show":
		uri := strings.TrimSpace(args)
		o, err := s.loader.Get(uri)
		if err != nil {
			return err
		}
		s.show(o)
	case "concepts":
		s.list(s.loader.Concepts().Values())
	case "schemes":
		s.list(s.loader.ConceptSchemes().Values())
	case "collections":
		s.list(s.loader.Collections().Values())
	case "export":
		name := strings.TrimSpace(args)
		if name == "" {
			name = "nquads"
		}
		format := quad.FormatByName(name)
		if format == nil || format.Writer == nil {
			return fmt.Errorf("unsupported format %q", name)
		}
		w := format.Writer(s.out)
		if err := skos.NewBuilder().WriteTo(w, s.loader.Values()...); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	default:
		return fmt.Errorf("unknown command: %q", cmd)
	}
	return nil
}

func (s *Session) list(values interface{}) {
	n := 0
	switch v := values.(type) {
	case []*skos.Concept:
		for _, c := range v {
			fmt.Fprintf(s.out, "%s\t%s\n", c.URI(), c.PrefLabel)
		}
		n = len(v)
	case []*skos.ConceptScheme:
		for _, cs := range v {
			fmt.Fprintf(s.out, "%s\t%s\n", cs.URI(), cs.Title)
		}
		n = len(v)
	case []*skos.Collection:
		for _, col := range v {
			fmt.Fprintf(s.out, "%s\t%s\n", col.URI(), col.Title)
		}
		n = len(v)
	}
	results := "Result"
	if n != 1 {
		results += "s"
	}
	fmt.Fprintf(s.out, "-----------\n%d %s\n", n, results)
}

func (s *Session) field(name, value string) {
	if value != "" {
		fmt.Fprintf(s.out, "  %-12s %s\n", name+":", value)
	}
}

func (s *Session) refs(name string, keys []string) {
	if len(keys) != 0 {
		s.field(name, strings.Join(keys, " "))
	}
}

func (s *Session) show(o skos.Object) {
	fmt.Fprintln(s.out, o)
	switch o := o.(type) {
	case *skos.Concept:
		s.field("prefLabel", o.PrefLabel)
		s.field("definition", o.Definition)
		s.field("notation", o.Notation)
		s.field("altLabel", o.AltLabel)
		s.refs("broader", o.Broader.Keys())
		s.refs("narrower", o.Narrower.Keys())
		s.refs("related", o.Related.Keys())
		s.refs("synonyms", o.Synonyms.Keys())
		s.refs("collections", o.Collections.Keys())
		s.refs("schemes", o.Schemes.Keys())
	case *skos.ConceptScheme:
		s.field("title", o.Title)
		s.field("description", o.Description)
		s.refs("concepts", o.Concepts.Keys())
	case *skos.Collection:
		s.field("title", o.Title)
		s.field("description", o.Description)
		if !o.Date.IsZero() {
			s.field("date", o.Date.Format("2006-01-02"))
		}
		s.refs("members", o.Members.Keys())
	}
}

// Repl reads commands from the terminal until exit, end of input or ctx is done.
func Repl(ctx context.Context, l *skos.Loader) error {
	term, err := terminal(history)
	if os.IsNotExist(err) {
		fmt.Printf("creating new history file: %q\n", history)
	}
	defer persist(term, history)

	ses := NewSession(l, os.Stdout)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line, err := term.Prompt(ps1)
		if err != nil {
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}

		term.AppendHistory(line)

		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if err = ses.Run(line); err == errExit {
			return nil
		} else if err != nil {
			fmt.Println("Error: ", err)
		}
	}
}

// Splits a line into a command and its arguments
// e.g. "show urn:a" will be split into "show" and " urn:a"
func splitLine(line string) (string, string) {
	var command, arguments string

	line = strings.TrimSpace(line)

	// An empty line/a line consisting of whitespace contains neither command nor arguments
	if len(line) > 0 {
		command = strings.Fields(line)[0]

		// A line containing only a command has no arguments
		if len(line) > len(command) {
			arguments = line[len(command):]
		}
	}

	return command, arguments
}

func terminal(path string) (*liner.State, error) {
	term := liner.NewLiner()

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, os.Kill)
		<-c

		err := persist(term, history)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to properly clean up terminal: %v\n", err)
			os.Exit(1)
		}

		os.Exit(0)
	}()

	f, err := os.Open(path)
	if err != nil {
		return term, err
	}
	defer f.Close()
	_, err = term.ReadHistory(f)
	return term, err
}

func persist(term *liner.State, path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return fmt.Errorf("could not open %q to append history: %v", path, err)
	}
	defer f.Close()
	_, err = term.WriteHistory(f)
	if err != nil {
		return fmt.Errorf("could not write history to %q: %v", path, err)
	}
	return term.Close()
}
