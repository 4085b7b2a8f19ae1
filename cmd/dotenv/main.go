// FILE: lixenwraith/dotenv/cmd/dotenv/main.go
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lixenwraith/dotenv"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errUsage marks errors that should print usage and exit with exitUsage
var errUsage = errors.New("usage error")

const usage = `Usage: dotenv [--verbose] <command> [flags] [FILE]

Commands:
  parse   [--json] [FILE]                      list tokens, or the folded map as JSON
  fmt     [--diff] [--crlf] [FILE]             print canonical form
  get     KEY [FILE]                           print a value, exit 1 if absent
  expand  [flags] TEMPLATE [ARGS...]           expand a template
  convert --to FORMAT [--from FORMAT] [--prefix P] [FILE]

FILE defaults to standard input; "-" also reads standard input.
`

// cli holds the process collaborators so commands can run in tests
type cli struct {
	environ []string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	log     *logrus.Logger
}

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdin, os.Stdout, os.Stderr))
}

func run(args, environ []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(logrus.WarnLevel)

	c := &cli{environ: environ, stdin: stdin, stdout: stdout, stderr: stderr, log: logger}

	global := pflag.NewFlagSet("dotenv", pflag.ContinueOnError)
	global.SetOutput(io.Discard)
	global.SetInterspersed(false)
	verbose := global.BoolP("verbose", "v", false, "Verbose output")
	help := global.BoolP("help", "h", false, "Show help")

	if err := global.Parse(args); err != nil {
		fmt.Fprintf(stderr, "dotenv: %v\n\n%s", err, usage)
		return exitUsage
	}
	if *help {
		fmt.Fprint(stdout, usage)
		return exitOK
	}
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	rest := global.Args()
	if len(rest) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	commands := map[string]func([]string) error{
		"parse":   c.parse,
		"fmt":     c.format,
		"get":     c.get,
		"expand":  c.expand,
		"convert": c.convert,
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "dotenv: unknown command %q\n\n%s", rest[0], usage)
		return exitUsage
	}

	if err := cmd(rest[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "dotenv %s: %v\n\n%s", rest[0], err, usage)
			return exitUsage
		}
		logger.WithError(err).WithField("command", rest[0]).Error("command failed")
		return exitFailure
	}
	return exitOK
}

// flags returns a quiet flag set whose parse errors are usage errors
func flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

// readInput reads the named file, or stdin for "" and "-"
func (c *cli) readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		c.log.Debug("reading standard input")
		return io.ReadAll(c.stdin)
	}
	c.log.WithField("file", path).Debug("reading file")
	return os.ReadFile(path)
}

// loadDocument reads and parses the optional file argument
func (c *cli) loadDocument(args []string) (*dotenv.Document, []byte, error) {
	if len(args) > 1 {
		return nil, nil, fmt.Errorf("%w: too many arguments", errUsage)
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	data, err := c.readInput(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := dotenv.ParseBytes(data)
	if err != nil {
		return nil, nil, err
	}
	c.log.WithField("tokens", doc.Len()).Debug("parsed document")
	return doc, data, nil
}

func (c *cli) parse(args []string) error {
	fs := flags("parse")
	asJSON := fs.Bool("json", false, "Print the folded key/value map as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	doc, _, err := c.loadDocument(fs.Args())
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc.ToMap())
	}
	for _, t := range doc.All() {
		fmt.Fprintln(c.stdout, t.String())
	}
	return nil
}

func (c *cli) format(args []string) error {
	fs := flags("fmt")
	showDiff := fs.Bool("diff", false, "Print a line diff against the input instead")
	crlf := fs.Bool("crlf", false, "Use CRLF newlines")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	doc, input, err := c.loadDocument(fs.Args())
	if err != nil {
		return err
	}

	newline := dotenv.NewlineLF
	if *crlf {
		newline = dotenv.NewlineCRLF
	}
	out := dotenv.Stringify(doc, newline)

	if !*showDiff {
		_, err := fmt.Fprintln(c.stdout, out)
		return err
	}
	_, err = io.WriteString(c.stdout, lineDiff(string(input), out+newline))
	return err
}

// lineDiff renders a unified-style line diff with "-", "+" and " " prefixes
func lineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

func (c *cli) get(args []string) error {
	fs := flags("get")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: missing KEY", errUsage)
	}

	doc, _, err := c.loadDocument(fs.Args()[1:])
	if err != nil {
		return err
	}
	key := fs.Arg(0)
	value, ok := doc.Get(key)
	if !ok {
		return fmt.Errorf("%w: %s", dotenv.ErrKeyNotFound, key)
	}
	_, err = fmt.Fprintln(c.stdout, value)
	return err
}

func (c *cli) expand(args []string) error {
	fs := flags("expand")
	file := fs.StringP("file", "f", "", "Dotenv file whose values are visible to the template")
	windows := fs.Bool("windows", false, "Expand %NAME% placeholders")
	noUnix := fs.Bool("no-unix", false, "Disable ${NAME} and $NAME placeholders")
	noAssign := fs.Bool("no-assign", false, "Treat ${NAME:=default} like ${NAME:-default}")
	withArgs := fs.Bool("args", false, "Expand $1 and ${1} from the trailing arguments")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: missing TEMPLATE", errUsage)
	}

	builder := dotenv.NewBuilder().
		WithLogger(c.log).
		WithEnviron(c.environ)
	if *file != "" {
		data, err := c.readInput(*file)
		if err != nil {
			return err
		}
		builder = builder.WithText(string(data))
	}
	store, err := builder.Build()
	if err != nil {
		return err
	}

	opts := dotenv.DefaultExpandOptions()
	opts.WindowsExpansion = *windows
	opts.UnixExpansion = !*noUnix
	opts.UnixAssignment = !*noAssign
	opts.UnixArgsExpansion = *withArgs
	opts.Args = fs.Args()[1:]

	out, err := dotenv.Expand(fs.Arg(0), store, &opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, out)
	return err
}

func (c *cli) convert(args []string) error {
	fs := flags("convert")
	to := fs.String("to", "", "Output format: env, toml, yaml or json")
	from := fs.String("from", "", "Input format; detected from the file name or content when empty")
	prefix := fs.String("prefix", "", "Prefix added to imported keys")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *to == "" {
		return fmt.Errorf("%w: --to is required", errUsage)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: too many arguments", errUsage)
	}

	target, err := dotenv.ParseFormat(*to)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	path := fs.Arg(0)
	var source dotenv.Format
	switch {
	case *from != "":
		if source, err = dotenv.ParseFormat(*from); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
	case path != "" && path != "-":
		source = dotenv.DetectFormat(path)
	}

	data, err := c.readInput(path)
	if err != nil {
		return err
	}
	doc, err := dotenv.Import(data, source, *prefix)
	if err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{"from": source, "to": target, "items": doc.Len()}).Debug("converting")

	out, err := dotenv.Export(doc, target)
	if err != nil {
		return err
	}
	if target == dotenv.FormatEnv {
		out = append(out, '\n')
	}
	_, err = c.stdout.Write(out)
	return err
}
