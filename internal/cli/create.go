package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsx-labs/create-tsx-app/internal/branding"
	"github.com/tsx-labs/create-tsx-app/internal/config"
	"github.com/tsx-labs/create-tsx-app/internal/deps"
	"github.com/tsx-labs/create-tsx-app/internal/probe"
	"github.com/tsx-labs/create-tsx-app/internal/prompt"
	"github.com/tsx-labs/create-tsx-app/internal/report"
	"github.com/tsx-labs/create-tsx-app/internal/resolve"
	"github.com/tsx-labs/create-tsx-app/internal/scaffold"
	"github.com/tsx-labs/create-tsx-app/internal/shell"
	"github.com/tsx-labs/create-tsx-app/internal/target"
	"github.com/tsx-labs/create-tsx-app/internal/vcs"
)

// runCreate is the scaffolding pipeline. Every fatal check happens before
// the target directory is touched.
func runCreate(ctx context.Context, cmd *cobra.Command, env Env, f *flags, args []string) error {
	config.Load()
	settings := config.Current()
	rep := report.New(env.Stdout)

	src, err := scaffold.OpenSource(pick(f.templatesDir, settings.TemplatesDir))
	if err != nil {
		return err
	}
	if f.listTemplates {
		listTemplates(env, src)
		return nil
	}

	runner := env.Runner
	if f.verbose {
		if ex, ok := runner.(*shell.Exec); ok {
			ex.Stdout, ex.Stderr = env.Stderr, env.Stderr
		}
	}

	facts := probe.Probe(ctx, runner, env.Probe, probe.Options{
		MinNodeVersion: settings.MinNodeVersion,
		PackageManager: pick(f.packageManager, settings.PackageManager),
	})
	if err := facts.Validate(); err != nil {
		return err
	}

	templateName := pick(f.template, settings.Template)
	if err := src.Check(templateName); err != nil {
		return err
	}

	rep.Intro(fmt.Sprintf("Welcome to %s! This tool will help you set up a new TypeScript project with tsx.", branding.DisplayName()))
	for _, w := range facts.Warnings {
		rep.Warn(w)
	}

	prompter := env.Prompter
	if prompter == nil {
		prompter = terminalPrompter(env.Stdout)
	}
	resolver := &resolve.Resolver{
		Prompter:     prompter,
		Fs:           env.Fs,
		GitAvailable: facts.GitAvailable,
		Templates:    src.Manifest.Templates,
	}
	cfg, err := resolver.Resolve(ctx, resolve.Input{
		Args:             args,
		Cwd:              env.Cwd,
		Overwrite:        f.overwrite || f.force,
		Interactive:      f.interactive,
		Template:         templateName,
		TemplateSet:      cmd.Flags().Changed("template"),
		Features:         f.features(cmd, settings),
		Install:          f.installDeps(cmd, settings.Install),
		DefaultTargetDir: settings.DefaultTargetDir,
	})
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings {
		rep.Warn(w)
	}
	for _, h := range cfg.Hints {
		rep.Info(h)
	}
	if err := src.Check(cfg.Template); err != nil {
		return err
	}

	if !f.dryRun {
		if err := target.Prepare(env.Fs, cfg.Root, cfg.Overwrite); err != nil {
			return err
		}
	}

	rep.Step(fmt.Sprintf("Scaffolding project in %s...", cfg.Root))
	res, err := scaffold.Generate(ctx, scaffold.Options{
		Source:      src,
		Template:    cfg.Template,
		PackageName: cfg.PackageName,
		Features:    cfg.Features.Enabled(),
		Fs:          env.Fs,
		Root:        cfg.Root,
		DryRun:      f.dryRun,
	})
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		rep.Warn(w)
	}

	plan := deps.NewPlan(src.Manifest, cfg.Template, cfg.Features.Enabled())
	if f.dryRun {
		printDryRun(rep, facts.PackageManager, cfg, res, plan)
		return nil
	}

	var outcomes []report.Outcome
	if cfg.Install {
		outcomes = append(outcomes, install(ctx, rep, runner, cfg.Root, facts.PackageManager, plan))
	}
	if cfg.Features.Git {
		rep.Step("Initializing Git repository...")
		o := vcs.Init(ctx, runner, cfg.Root)
		rep.Outcome(o)
		outcomes = append(outcomes, o)
	}

	rep.Summary(cfg.TargetDir, string(facts.PackageManager), outcomes)
	return nil
}

func install(ctx context.Context, rep *report.Reporter, r shell.Runner, dir string, pm probe.PackageManager, plan deps.Plan) report.Outcome {
	rep.Step(fmt.Sprintf("Installing %d dependencies using %s...", plan.Len(), pm))
	spin := rep.Spinner("Downloading packages...")
	spin.Start()
	o := deps.Install(ctx, r, dir, pm, plan)
	if o.OK() {
		spin.Stop("Dependencies installed successfully.", true)
		return o
	}
	spin.Stop("Failed to install dependencies.", false)
	rep.Outcome(o)
	return o
}

func printDryRun(rep *report.Reporter, pm probe.PackageManager, cfg *resolve.Config, res *scaffold.Result, plan deps.Plan) {
	rep.Info(fmt.Sprintf("Dry run: %d files would be written to %s", len(res.Files), res.Root))
	for _, f := range res.Files {
		rep.Info("  " + f)
	}
	if cfg.Install {
		for _, c := range deps.Commands(pm, plan) {
			rep.Info("Would run: " + c.String())
		}
	}
	if cfg.Features.Git {
		rep.Info("Would run: " + vcs.Remedy)
	}
	rep.Outro("Nothing was written.")
}

func listTemplates(env Env, src *scaffold.Source) {
	width := 0
	for _, t := range src.Manifest.Templates {
		width = max(width, len(t.Name))
	}
	for _, t := range src.Manifest.Templates {
		line := t.Name
		if t.Description != "" {
			line += strings.Repeat(" ", width-len(t.Name)) + "  " + t.Description
		}
		fmt.Fprintln(env.Stdout, line)
	}
}

// terminalPrompter picks the prompt UI for the process stdin and w.
func terminalPrompter(w io.Writer) prompt.Prompter {
	if f, ok := w.(*os.File); ok {
		return prompt.ForTerminal(os.Stdin, f)
	}
	return prompt.NewLine(os.Stdin, w)
}
