// Package deps computes the packages a generated project needs and installs
// them with the selected package manager.
package deps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tsx-labs/create-tsx-app/internal/manifest"
	"github.com/tsx-labs/create-tsx-app/internal/probe"
	"github.com/tsx-labs/create-tsx-app/internal/report"
	"github.com/tsx-labs/create-tsx-app/internal/shell"
)

// StepName labels the install outcome.
const StepName = "Dependency installation"

// Plan holds the runtime and development packages, ordered and without
// duplicates.
type Plan struct {
	Runtime []string
	Dev     []string
}

// Len is the total number of packages.
func (p Plan) Len() int { return len(p.Runtime) + len(p.Dev) }

// NewPlan collects the baseline, template, feature and combo dependencies
// in that order.
func NewPlan(m *manifest.Manifest, template string, enabled manifest.Enabled) Plan {
	var runtime, dev set
	runtime.add(m.Baseline.Dependencies...)
	dev.add(m.Baseline.DevDependencies...)

	if t, ok := m.Template(template); ok {
		runtime.add(t.Dependencies...)
		dev.add(t.DevDependencies...)
	}
	for _, f := range manifest.Features {
		if !enabled[f] {
			continue
		}
		spec := m.Features[f]
		runtime.add(spec.Dependencies...)
		dev.add(spec.DevDependencies...)
	}
	for _, c := range m.Combos {
		if enabled.All(c.Features) {
			runtime.add(c.Dependencies...)
			dev.add(c.DevDependencies...)
		}
	}
	return Plan{Runtime: runtime.items, Dev: dev.items}
}

type set struct {
	items []string
	seen  map[string]bool
}

func (s *set) add(names ...string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	for _, n := range names {
		if !s.seen[n] {
			s.seen[n] = true
			s.items = append(s.items, n)
		}
	}
}

// Command is one install invocation.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return shell.CommandLine(c.Name, c.Args...)
}

// Commands returns the install invocations for pm: the runtime group when
// it is not empty, then the development group.
func Commands(pm probe.PackageManager, plan Plan) []Command {
	verb, devFlag := "add", "-D"
	switch pm {
	case probe.PNPM, probe.Yarn, probe.Bun:
	case probe.NPM:
		verb = "install"
	default:
		slog.Warn("unknown package manager, using npm syntax", "pm", pm)
		pm, verb = probe.NPM, "install"
	}

	name := string(pm)
	var cmds []Command
	if len(plan.Runtime) > 0 {
		args := append([]string{verb}, plan.Runtime...)
		cmds = append(cmds, Command{Name: name, Args: append(args, "--silent")})
	}
	if len(plan.Dev) > 0 {
		args := append([]string{verb, devFlag}, plan.Dev...)
		cmds = append(cmds, Command{Name: name, Args: append(args, "--silent")})
	}
	return cmds
}

// Install runs the install commands in dir. The first failing command stops
// the sequence; the returned outcome then carries every command as the
// manual remedy.
func Install(ctx context.Context, r shell.Runner, dir string, pm probe.PackageManager, plan Plan) report.Outcome {
	cmds := Commands(pm, plan)
	outcome := report.Outcome{Step: StepName}

	for _, c := range cmds {
		if _, err := shell.Check(ctx, r, dir, c.Name, c.Args...); err != nil {
			slog.Debug("install failed", "cmd", c.String(), "err", err)
			outcome.Err = fmt.Errorf("installing dependencies: %w", err)
			for _, c := range cmds {
				outcome.Remedy = append(outcome.Remedy, c.String())
			}
			return outcome
		}
	}
	return outcome
}
