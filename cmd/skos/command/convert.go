package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/spf13/cobra"

	"github.com/cayleygraph/skos"
	"github.com/cayleygraph/skos/clog"
)

const (
	flagDump       = "dump"
	flagDumpFormat = "dump_format"

	defaultDumpFormat = "nquads"
)

func registerDumpFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagDump, "o", "", `file to write the entities to ("-" for stdout)`)
	var names []string
	for _, f := range quad.Formats() {
		if f.Writer != nil {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	cmd.Flags().String(flagDumpFormat, "", `quad format to use instead of auto-detection ("`+strings.Join(names, `", "`)+`")`)
}

func dumpFormat(name, path string) (*quad.Format, error) {
	var f *quad.Format
	if name != "" {
		f = quad.FormatByName(name)
	} else if path != "-" {
		f = quad.FormatByExt(filepath.Ext(path))
		if f == nil {
			clog.Warningf("file has unknown extension %v, defaulting to %v", path, defaultDumpFormat)
		}
	}
	if f == nil && name == "" {
		f = quad.FormatByName(defaultDumpFormat)
	}
	if f == nil || f.Writer == nil {
		return nil, fmt.Errorf("cannot write format %q", name)
	}
	return f, nil
}

// writeEntities builds the triples of objects and writes them to path.
func writeEntities(out io.Writer, path, format string, objects []skos.Object) error {
	f, err := dumpFormat(format, path)
	if err != nil {
		return err
	}
	w := out
	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	qw := f.Writer(w)
	if err = skos.NewBuilder().WriteTo(qw, objects...); err != nil {
		qw.Close()
		return err
	}
	return qw.Close()
}

func newConvertCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert",
		Aliases: []string{"conv"},
		Short:   "Load documents and write the entities found, with everything they reference, as quads.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dump, _ := cmd.Flags().GetString(flagDump)
			dumpf, _ := cmd.Flags().GetString(flagDumpFormat)
			if dump == "" && len(args) > 1 {
				i := len(args) - 1
				dump, args = args[i], args[:i]
			}
			if len(args) == 0 || dump == "" {
				return errors.New("both input and output files must be specified")
			}
			ctx, cancel := getContext()
			defer cancel()
			l, err := e.load(ctx, args)
			if err != nil {
				return err
			}
			return writeEntities(cmd.OutOrStdout(), dump, dumpf, l.Values())
		},
	}
	registerDumpFlags(cmd)
	return cmd
}
