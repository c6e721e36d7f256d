package other

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// LegacyCommand is one of the commands reachable through --legacy-cmd.
type LegacyCommand int

const (
	LegacyBuild LegacyCommand = iota + 1
	LegacyBuildSolution
	LegacyRun
	LegacyGenFile
	LegacyGenOther
	LegacyGenProjects
	LegacyHash
)

var legacyCommandNames = map[string]LegacyCommand{
	"build":       LegacyBuild,
	"buildsln":    LegacyBuildSolution,
	"run":         LegacyRun,
	"genfile":     LegacyGenFile,
	"genother":    LegacyGenOther,
	"genprojects": LegacyGenProjects,
	"fnv":         LegacyHash,
}

func (c LegacyCommand) String() string {
	for name, v := range legacyCommandNames {
		if v == c {
			return name
		}
	}
	return fmt.Sprintf("LegacyCommand(%d)", int(c))
}

// LegacyCommandNames lists the registered names in sorted order.
func LegacyCommandNames() []string {
	names := make([]string, 0, len(legacyCommandNames))
	for n := range legacyCommandNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func LookupLegacyCommand(name string) (LegacyCommand, error) {
	if c, ok := legacyCommandNames[name]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLegacyCommand, name)
}

func IsLegacyCommand(tok string) bool {
	_, ok := legacyCommandNames[tok]
	return ok
}

// FlagArity reports whether tok is a command line flag and how many of the
// following tokens it takes as values.
type FlagArity func(tok string) (values int, ok bool)

// PartitionLegacyArgs removes every recognized command line flag, together
// with the values it takes, and returns the rest in its original order.
func PartitionLegacyArgs(raw []string, arity FlagArity) []string {
	out := make([]string, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if n, ok := arity(raw[i]); ok {
			i += n
			continue
		}
		out = append(out, raw[i])
	}
	return out
}

// GroupLegacyArgs splits tokens into command groups. A group starts at a
// token and takes every following token up to the next registered command name.
func GroupLegacyArgs(tokens []string) [][]string {
	var groups [][]string
	for i := 0; i < len(tokens); {
		group := []string{tokens[i]}
		i++
		for i < len(tokens) && !IsLegacyCommand(tokens[i]) {
			group = append(group, tokens[i])
			i++
		}
		groups = append(groups, group)
	}
	return groups
}

// legacyArgs holds a group's arguments in the legacy "-k=value" convention.
type legacyArgs struct {
	values     map[string]string
	positional []string
}

func parseLegacyArgs(args []string) legacyArgs {
	a := legacyArgs{values: map[string]string{}}
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(k, "-") {
			a.values[k] = v
			continue
		}
		a.positional = append(a.positional, arg)
	}
	return a
}

func (a legacyArgs) get(key, def string) string {
	if v, ok := a.values[key]; ok && v != "" {
		return v
	}
	return def
}

type legacyHandler func(ctx context.Context, a legacyArgs) int

// LegacyRouter runs legacy command groups in-process, in order, stopping at
// the first failure.
type LegacyRouter struct {
	ws       *Workspace
	settings Settings
	handlers map[LegacyCommand]legacyHandler
}

func NewLegacyRouter(ws *Workspace, s Settings) *LegacyRouter {
	r := &LegacyRouter{ws: ws, settings: s}
	r.handlers = map[LegacyCommand]legacyHandler{
		LegacyBuild:         r.build,
		LegacyBuildSolution: r.buildSolution,
		LegacyRun:           r.run,
		LegacyGenFile:       r.genFile,
		LegacyGenOther:      r.genOther,
		LegacyGenProjects:   r.genProjects,
		LegacyHash:          r.hash,
	}
	return r
}

// Run partitions raw, groups the remainder and dispatches every group.
// It returns 1 as soon as a group fails and 0 when all succeed.
func (r *LegacyRouter) Run(ctx context.Context, raw []string, arity FlagArity) int {
	groups := GroupLegacyArgs(PartitionLegacyArgs(raw, arity))
	r.ws.Log.Debug("legacy commands", "groups", groups)
	for _, g := range groups {
		r.ws.Console.Printf("\n---------------------------")
		r.ws.Console.Headerf("[Executing Command] -> %s", g[0])
		if len(g) > 1 {
			r.ws.Console.Printf("\t[Flags] -> %s\n", strings.Join(g[1:], " , "))
		}
		if r.Dispatch(ctx, g) != 0 {
			return 1
		}
		r.ws.Console.Printf("")
	}
	return 0
}

// Dispatch runs one group. An unknown command name yields -1.
func (r *LegacyRouter) Dispatch(ctx context.Context, group []string) int {
	if len(group) == 0 {
		return 0
	}
	cmd, err := LookupLegacyCommand(group[0])
	if err != nil {
		r.ws.Console.Failf("Invalid Commands [%s]", strings.Join(group, " "))
		return -1
	}
	return r.handlers[cmd](ctx, parseLegacyArgs(group[1:]))
}

func (r *LegacyRouter) configuration(a legacyArgs) Configuration {
	if v := a.get("-c", ""); v != "" {
		return NormalizeConfiguration(v)
	}
	return r.settings.Configuration
}

func (r *LegacyRouter) build(ctx context.Context, a legacyArgs) int {
	s := Settings{
		Verbose:       r.settings.Verbose,
		Configuration: r.configuration(a),
		Build:         Targets{Requested: true, Names: a.positional},
	}
	return NewBuilder(r.ws).Dispatch(ctx, s)
}

func (r *LegacyRouter) buildSolution(ctx context.Context, a legacyArgs) int {
	return NewBuilder(r.ws).FullBuild(ctx, r.configuration(a), r.settings.Verbose)
}

func (r *LegacyRouter) run(ctx context.Context, a legacyArgs) int {
	name := a.get("-n", "")
	rest := a.positional
	if name == "" && len(rest) > 0 {
		name, rest = rest[0], rest[1:]
	}
	if name == "" {
		r.ws.Console.Failf("Must provide a project to run (-n=<name>)")
		return 1
	}
	s := Settings{
		Verbose:       r.settings.Verbose,
		Configuration: r.configuration(a),
		Run:           Targets{Requested: true, Names: append([]string{name}, rest...)},
	}
	return NewLauncher(r.ws).Run(ctx, s)
}

func (r *LegacyRouter) genFile(_ context.Context, a legacyArgs) int {
	name := a.get("-n", "")
	dir := a.get("-d", "")
	if name == "" {
		r.ws.Console.Failf("Must provide a name for the .cpp/.hpp file pair you wish to generate (-n=<pairname>)")
		return 1
	}
	if dir == "" {
		r.ws.Console.Failf("Must provide a subdirectory for the files (-d=<directory>)")
		r.ws.Console.Printf(" > Note this directory will be placed under OtherEngine/src if it does not already exist there")
		return 1
	}
	return NewGenerator(r.ws).GenerateFiles(FileSpec{
		Project:   a.get("-p", "OtherEngine"),
		Directory: dir,
		Filename:  name,
	})
}

func (r *LegacyRouter) genOther(_ context.Context, a legacyArgs) int {
	return NewGenerator(r.ws).GenerateProjectDescriptor(a.get("-n", ""), a.get("-p", ""))
}

func (r *LegacyRouter) genProjects(ctx context.Context, _ legacyArgs) int {
	return NewGenerator(r.ws).GenerateProjects(ctx, r.settings.Verbose)
}

func (r *LegacyRouter) hash(ctx context.Context, a legacyArgs) int {
	input := a.get("-i", "")
	if input == "" && len(a.positional) > 0 {
		input = a.positional[0]
	}
	if input == "" {
		r.ws.Console.Failf("Must provide an item to hash (-i=<item>)")
		return 1
	}
	return Hash(ctx, r.ws, input, r.configuration(a))
}
