// Command lockerdemo drives a rental locker machine through a scripted
// sequence of button presses and prints the resulting states, the machine
// layout and the recorded journal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/comalice/hfsm"
	"github.com/comalice/hfsm/actor"
	"github.com/comalice/hfsm/internal/production"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to a built-in script)")
	dump := flag.String("dump", "", "override the dump format: text, dot, json, yaml or none")
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if *dump != "" {
		cfg.Format = *dump
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, out, logOut io.Writer) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	journal, err := OpenJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer journal.Close()

	m, err := hfsm.New(NotLoaned, declareLocker(logger),
		hfsm.WithName(cfg.Name),
		hfsm.WithLogger(logger),
		hfsm.WithJournal(journal),
	)
	if err != nil {
		return err
	}

	a := actor.New(m, actor.Config{Logger: logger})
	if err := a.Start(ctx); err != nil {
		return err
	}
	defer a.Stop()

	fmt.Fprintf(out, "%s starts in %v\n", cfg.Name, a.Current())
	for _, line := range cfg.Script {
		evt, err := parseEvent(line)
		if err != nil {
			return err
		}
		state, err := a.Send(ctx, evt)
		if err != nil {
			return fmt.Errorf("send %s: %w", line, err)
		}
		fmt.Fprintf(out, "%-18s -> %v\n", line, state)
	}
	if err := a.Stop(); err != nil {
		return err
	}

	if err := dump(out, cfg.Format, m.Describe()); err != nil {
		return err
	}

	entries, err := journal.Entries(ctx, cfg.Name)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	fmt.Fprintf(out, "journal: %d entries\n", len(entries))
	for _, e := range entries {
		mark := " "
		if !e.Matched {
			mark = "-"
		}
		fmt.Fprintf(out, "%s %3d %-12s %s -> %s\n", mark, e.Seq, e.Event, e.From, e.To)
	}
	return nil
}

func dump(out io.Writer, format string, d production.Description) error {
	switch format {
	case "none":
		return nil
	case "dot":
		_, err := io.WriteString(out, production.ExportDOT(d))
		return err
	case "json":
		data, err := production.ExportJSON(d)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	case "yaml":
		data, err := production.ExportYAML(d)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	_, err := io.WriteString(out, production.Text(d))
	return err
}
