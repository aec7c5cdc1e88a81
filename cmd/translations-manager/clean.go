package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carlhashmi/translations-manager/internal/cleaner"
	"github.com/carlhashmi/translations-manager/internal/diagnostic"
	"github.com/carlhashmi/translations-manager/internal/diffview"
)

type cleanOptions struct {
	write   bool
	check   bool
	diff    bool
	verbose bool
	indent  int
	jobs    int
}

type cleanResult struct {
	path     string
	original []byte
	cleaned  []byte
	report   *cleaner.Report
	err      error
}

func cleanCmd(a *app) *cobra.Command {
	var opts cleanOptions

	c := &cobra.Command{
		Use:   "clean [flags] <file> [file...]",
		Short: "Remove empty translations, empty groups and dangling aliases",
		Long: `Remove keys with empty translations, groups without translations and
aliases to removed anchors, and normalize whitespace inside translations.

Without --write, --check or --diff the cleaned files are printed to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("indent") {
				opts.indent = a.cfg.Indent
			}

			if !cmd.Flags().Changed("jobs") {
				opts.jobs = a.cfg.Jobs
			}

			return runClean(cmd, a, opts, args)
		},
	}

	c.Flags().BoolVarP(&opts.write, "write", "w", false, "write cleaned content back to the files")
	c.Flags().BoolVar(&opts.check, "check", false, "exit with an error when any file would change")
	c.Flags().BoolVar(&opts.diff, "diff", false, "print a diff of the changes")
	c.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "list every removed key and rewritten translation")
	c.Flags().IntVar(&opts.indent, "indent", 2, "spaces per nesting level in the output")
	c.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "number of files cleaned concurrently (default from config)")

	return c
}

func runClean(cmd *cobra.Command, a *app, opts cleanOptions, paths []string) error {
	if opts.write && opts.check {
		return errors.New("clean: --write cannot be used with --check")
	}

	if opts.indent < 1 || opts.indent > 9 {
		return fmt.Errorf("clean: --indent must be between 1 and 9, got %d", opts.indent)
	}

	cleanOpts := cleaner.Options{Indent: opts.indent, Logger: a.log}
	results := make([]cleanResult, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(1, min(opts.jobs, len(paths))))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = cleanOne(path, cleanOpts, opts.write)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return report(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, results)
}

func cleanOne(path string, opts cleaner.Options, write bool) cleanResult {
	res := cleanResult{path: path}

	out, rep, err := cleaner.CleanFile(path, opts)
	if err != nil {
		res.err = err
		return res
	}

	res.original = rep.Source
	res.cleaned = out
	res.report = rep

	if write && rep.Changed {
		res.err = cleaner.WriteFile(path, out)
	}

	return res
}

func report(stdout, stderr io.Writer, opts cleanOptions, results []cleanResult) error {
	var (
		failures diagnostic.Diagnostics
		changed  int
	)

	printer := diffview.NewPrinter()
	warn := color.New(color.FgYellow)

	for _, res := range results {
		if res.err != nil {
			recordFailure(&failures, res.path, res.err)
			fmt.Fprintf(stderr, "clean: %s\n", failures.Errors[len(failures.Errors)-1])

			continue
		}

		for _, w := range res.report.Diagnostics.Warnings {
			warn.Fprintf(stderr, "warning: %s\n", w)
		}

		if res.report.Changed {
			changed++
		}

		if opts.diff {
			if _, err := printer.Print(stdout, res.path, res.original, res.cleaned); err != nil {
				return err
			}
		}

		if opts.verbose {
			for _, d := range res.report.Diagnostics.Infos {
				fmt.Fprintln(stderr, d)
			}
		}

		switch {
		case opts.check:
			if res.report.Changed {
				fmt.Fprintf(stdout, "would clean %s (%s)\n", res.path, summary(res.report))
			}
		case opts.write:
			if res.report.Changed {
				fmt.Fprintf(stdout, "cleaned %s (%s)\n", res.path, summary(res.report))
			}
		case !opts.diff:
			if _, err := stdout.Write(res.cleaned); err != nil {
				return err
			}
		}
	}

	if failures.HasErrors() {
		return fmt.Errorf("clean: failed to clean %d of %d files", len(failures.Errors), len(results))
	}

	if opts.check && changed > 0 {
		return fmt.Errorf("clean: %d of %d files need cleaning", changed, len(results))
	}

	return nil
}

// recordFailure adds err as an error diagnostic for path, coded by the
// failed stage when known.
func recordFailure(d *diagnostic.Diagnostics, path string, err error) {
	code, msg := "error", err.Error()

	var cerr *cleaner.Error
	if errors.As(err, &cerr) {
		code, msg = cerr.Op, cerr.Err.Error()
	}

	d.AddError(code, msg, path, "")
}

func summary(r *cleaner.Report) string {
	return fmt.Sprintf("%d removed, %d rewritten", r.Removed, r.Rewritten)
}
