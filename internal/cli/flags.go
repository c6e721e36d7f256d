package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/otherengine/other/internal/config"
	"github.com/otherengine/other/internal/other"
	"github.com/spf13/pflag"
)

// nargsAny marks a flag that takes zero or more values.
const nargsAny = -1

// flagSpec describes one command line flag. The short spellings are
// multi-letter single-dash words ("-gf", "-rdn") that pflag cannot express,
// so normalizeArgs rewrites every flag to its long form before cobra parses.
type flagSpec struct {
	short   string
	long    string
	nargs   int
	choices []string
	def     string
	metavar string
	help    string
}

var flagTable = []flagSpec{
	{short: "-lc", long: "--legacy-cmd", nargs: nargsAny, metavar: "CMD", help: "run legacy commands (build, buildsln, run, genfile, genother, genprojects, fnv)"},
	{short: "-v", long: "--verbose", help: "echo diagnostics and show tool output"},
	{short: "-e", long: "--edit", nargs: 1, metavar: "PROJECT", help: "open a project in the editor"},
	{short: "-b", long: "--build", nargs: nargsAny, metavar: "TARGET", help: "build targets, or the whole solution when none are given"},
	{short: "-t", long: "--test", nargs: nargsAny, metavar: "TEST", help: "run unit tests, optionally a subset (prefix with - to exclude)"},
	{short: "-r", long: "--run", nargs: nargsAny, metavar: "ARG", help: "run a project followed by arguments forwarded to it"},
	{short: "-rdn", long: "--run-dotnet", nargs: nargsAny, metavar: "ARG", help: "run a managed project followed by forwarded arguments"},
	{short: "-c", long: "--config", nargs: 1, choices: []string{"debug", "release"}, def: "debug", metavar: "CONFIG", help: "build configuration"},
	{short: "-gf", long: "--generate-files", nargs: 3, metavar: "PROJECT DIR FILE", help: "generate a .hpp/.cpp pair"},
	{short: "-gp", long: "--generate-projects", help: "regenerate solution and project files"},
	{short: "-fnv", long: "--fnv", nargs: 1, metavar: "ITEM", help: "hash an item with the engine's fnv tool"},
	{short: "-vp", long: "--view-platform", help: "print the detected platform"},
	{long: "--pipeline-config", nargs: 1, def: "other.toml", metavar: "PATH", help: "pipeline configuration file"},
	{long: "--color", nargs: 1, choices: []string{"auto", "always", "never"}, def: "auto", metavar: "WHEN", help: "color output"},
}

func (f flagSpec) name() string { return strings.TrimPrefix(f.long, "--") }

func (f flagSpec) display() string {
	if f.short == "" {
		return f.long
	}
	return f.short + "/" + f.long
}

// lookupFlag matches an exact short or long spelling, or --long=value.
func lookupFlag(tok string) (spec flagSpec, value string, inline bool, ok bool) {
	name, val, hasEq := strings.Cut(tok, "=")
	for _, f := range flagTable {
		if tok == f.short || tok == f.long {
			return f, "", false, true
		}
		if hasEq && name == f.long {
			return f, val, true, true
		}
	}
	return flagSpec{}, "", false, false
}

// isFlagToken reports whether tok is a recognized flag spelling.
func isFlagToken(tok string) bool {
	_, _, _, ok := lookupFlag(tok)
	return ok
}

// legacyFlagArity drops a flag and its fixed values from the legacy token
// stream. Variadic flags keep their values: those are the legacy commands.
func legacyFlagArity(tok string) (int, bool) {
	spec, _, inline, ok := lookupFlag(tok)
	if !ok {
		return 0, false
	}
	if inline || spec.nargs <= 0 {
		return 0, true
	}
	return spec.nargs, true
}

func isHelpToken(tok string) bool { return tok == "-h" || tok == "--help" }

// normalizeArgs rewrites args into --long=value form. Variadic flags take
// every following token up to the next recognized flag, including unknown
// dash-prefixed tokens; a variadic flag with no values becomes "--long=".
func normalizeArgs(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	var unrecognized []string
	for i := 0; i < len(args); {
		tok := args[i]
		i++
		if isHelpToken(tok) {
			out = append(out, tok)
			continue
		}
		spec, val, inline, ok := lookupFlag(tok)
		if !ok {
			unrecognized = append(unrecognized, tok)
			continue
		}
		if inline {
			if spec.nargs == 0 {
				return nil, fmt.Errorf("argument %s: ignored explicit argument '%s'", spec.display(), val)
			}
			if err := spec.checkChoice(val); err != nil {
				return nil, err
			}
			out = append(out, spec.long+"="+val)
			continue
		}

		switch spec.nargs {
		case 0:
			out = append(out, spec.long)
		case nargsAny:
			n := 0
			for ; i < len(args) && !isFlagToken(args[i]) && !isHelpToken(args[i]); i++ {
				out = append(out, spec.long+"="+args[i])
				n++
			}
			if n == 0 {
				out = append(out, spec.long+"=")
			}
		default:
			n := 0
			for ; n < spec.nargs && i < len(args) && !isFlagToken(args[i]) && !isHelpToken(args[i]); i++ {
				if err := spec.checkChoice(args[i]); err != nil {
					return nil, err
				}
				out = append(out, spec.long+"="+args[i])
				n++
			}
			if n < spec.nargs {
				return nil, fmt.Errorf("argument %s: %s", spec.display(), expected(spec.nargs))
			}
		}
	}
	if len(unrecognized) > 0 {
		return nil, fmt.Errorf("unrecognized arguments: %s", strings.Join(unrecognized, " "))
	}
	return out, nil
}

func expected(n int) string {
	if n == 1 {
		return "expected one argument"
	}
	return fmt.Sprintf("expected %d arguments", n)
}

func (f flagSpec) checkChoice(v string) error {
	if len(f.choices) == 0 {
		return nil
	}
	for _, c := range f.choices {
		if v == c {
			return nil
		}
	}
	quoted := make([]string, len(f.choices))
	for i, c := range f.choices {
		quoted[i] = "'" + c + "'"
	}
	return fmt.Errorf("argument %s: invalid choice: '%s' (choose from %s)", f.display(), v, strings.Join(quoted, ", "))
}

// registerFlags adds the table to fs under long names only.
func registerFlags(fs *pflag.FlagSet) {
	for _, f := range flagTable {
		switch f.nargs {
		case 0:
			fs.Bool(f.name(), false, f.help)
		case 1:
			fs.String(f.name(), f.def, f.help)
		default:
			fs.StringArray(f.name(), nil, f.help)
		}
	}
}

// targets reads a variadic flag. Presence is what matters, so the empty
// placeholder left by a bare flag is dropped.
func targets(fs *pflag.FlagSet, name string) other.Targets {
	if !fs.Changed(name) {
		return other.Targets{}
	}
	vals, _ := fs.GetStringArray(name)
	names := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			names = append(names, v)
		}
	}
	return other.Targets{Requested: true, Names: names}
}

// rawFlags collects the parsed flag set for settings resolution.
func rawFlags(fs *pflag.FlagSet, args []string) other.RawFlags {
	b := func(name string) bool { v, _ := fs.GetBool(name); return v }
	str := func(name string) string { v, _ := fs.GetString(name); return v }

	raw := other.RawFlags{
		NoArgs:           len(args) == 0,
		Verbose:          b("verbose"),
		Build:            targets(fs, "build"),
		Test:             targets(fs, "test"),
		Run:              targets(fs, "run"),
		RunDotnet:        targets(fs, "run-dotnet"),
		Config:           str("config"),
		GenerateProjects: b("generate-projects"),
		ViewPlatform:     b("view-platform"),
	}
	if lc := targets(fs, "legacy-cmd"); lc.Requested {
		raw.Legacy = true
		raw.LegacyCommands = lc.Names
	}
	if fs.Changed("edit") {
		raw.Edit = []string{str("edit")}
	}
	if fs.Changed("fnv") {
		raw.FNV = []string{str("fnv")}
	}
	if fs.Changed("generate-files") {
		gf, _ := fs.GetStringArray("generate-files")
		// A repeated flag keeps its last occurrence.
		if len(gf) > 3 {
			gf = gf[len(gf)-3:]
		}
		raw.GenerateFiles = gf
	}
	return raw
}

func (f flagSpec) usageArgs() string {
	switch {
	case f.nargs == 0:
		return ""
	case f.nargs == nargsAny:
		return " [" + f.metavar + " ...]"
	case len(f.choices) > 0:
		return " {" + strings.Join(f.choices, ",") + "}"
	}
	return " " + f.metavar
}

// renderUsage prints the help screen from flagTable.
func renderUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "usage: %s [-h] [flags]\n\n", prog)
	fmt.Fprintln(w, "OtherEngine Tools Pipeline")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "options:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  -h, --help\tshow this help message and exit\n")
	for _, f := range flagTable {
		names := f.long
		if f.short != "" {
			names = f.short + ", " + f.long
		}
		help := f.help
		if f.def != "" {
			help += " (default: " + f.def + ")"
		}
		fmt.Fprintf(tw, "  %s%s\t%s\n", names, f.usageArgs(), help)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\npipeline configuration (--pipeline-config):%s", config.DefaultConfigTemplate)
}
