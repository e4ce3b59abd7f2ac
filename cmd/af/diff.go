package main

import (
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/anyform/go-anyform/form"
	"github.com/anyform/go-anyform/treediff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Loop == "" {
		if len(args) != 2 {
			return fmt.Errorf("%w: diff (without -loop) requires 2 args, got %v", cli.ErrUsage, args)
		}
		as, err := cfg.readArg(cc, args[0])
		if err != nil {
			return err
		}
		bs, err := cfg.readArg(cc, args[1])
		if err != nil {
			return err
		}
		differs, err := diffInputs(cfg, cc, as, bs, false)
		if err != nil {
			return err
		}
		if differs {
			return cli.ExitCodeErr(1)
		}
		return nil
	}

	return diffLoop(cfg, cc)
}

// diffLoop runs the -loop command repeatedly and prints how each run's
// output differs from the previous one. The first run diffs against
// nothing, so it prints the initial state as additions.
func diffLoop(cfg *DiffConfig, cc *cli.Context) error {
	i := 0
	var last []*form.Node
	ticker := time.NewTicker(cfg.LoopEvery)
	defer ticker.Stop()
	diffCount := 0
	for {
		if i == cfg.LoopLim {
			break
		}
		cmd := exec.Command("sh", "-c", cfg.Loop)
		r, err := cmd.StdoutPipe()
		if err != nil {
			return fmt.Errorf("unable to create pipe for command %q: %w", cfg.Loop, err)
		}
		cmd.WaitDelay = cfg.LoopEvery
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("unable to start %q: %w", cfg.Loop, err)
		}
		d, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		next, err := readDocs(d, cfg.inputFormat("-"))
		if err != nil {
			return fmt.Errorf("error decoding command output: %w", err)
		}
		differs, err := diffInputs(cfg, cc, last, next, diffCount > 0)
		if err != nil {
			return err
		}
		if differs {
			diffCount++
		}
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("command %q exited with an error: %w", cfg.Loop, err)
		}
		last = next
		<-ticker.C
		i++
	}
	return nil
}

// diffInputs prints the edits between two document streams, pairing the
// streams by position, and reports whether anything differed.
func diffInputs(cfg *DiffConfig, cc *cli.Context, as, bs []*form.Node, sep bool) (bool, error) {
	col := newDiffColors(cfg.colorEnabled(cc.Out))
	n := max(len(as), len(bs))
	differs := false
	for i := 0; i < n; i++ {
		var a, b *form.Node
		if i < len(as) {
			a = as[i]
		}
		if i < len(bs) {
			b = bs[i]
		}
		edits := treediff.Diff(a, b)
		if len(edits) == 0 {
			continue
		}
		if !differs {
			if sep {
				if _, err := cc.Out.Write([]byte("---\n")); err != nil {
					return false, fmt.Errorf("unable to write separator: %w", err)
				}
			}
			if cfg.Loop != "" {
				when := time.Now().Format(time.RFC3339Nano)
				if _, err := fmt.Fprintf(cc.Out, "# difference found at %s\n", when); err != nil {
					return false, err
				}
			}
		}
		differs = true
		if n > 1 {
			fmt.Fprintf(cc.Out, "# document %d\n", i)
		}
		for _, e := range edits {
			printEdit(cc.Out, e, col, cfg.Quiet)
		}
	}
	return differs, nil
}
