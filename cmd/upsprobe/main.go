// Command upsprobe is a one-shot SNMP health probe for RFC 1628 UPS devices.
//
// It fetches the UPS-MIB battery, input, output, bypass, alarm, and self-test
// groups from the target agent, reduces them to a single verdict, and prints
// one monitoring-plugin output line. The exit code follows the standard
// four-level convention: 0 OK, 1 warning, 2 critical, 3 unknown.
//
// Usage:
//
//	upsprobe -host ups1.example.net [flags]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/vpbank/ups_probe/format/nagios"
	"github.com/vpbank/ups_probe/models"
	"github.com/vpbank/ups_probe/pkg/upsprobe/config"
	"github.com/vpbank/ups_probe/pkg/upsprobe/probe"
	"github.com/vpbank/ups_probe/snmp/session"
)

func main() {
	result, err := run(os.Args[1:])
	if err != nil {
		// Both fatal classes (configuration and data errors) terminate with
		// the unknown verdict and no report body.
		fmt.Println("UPS UNKNOWN:", err)
		os.Exit(models.Unknown.ExitCode())
	}

	fmt.Println(result.Output)
	os.Exit(result.Severity.ExitCode())
}

func run(args []string) (models.Result, error) {
	cfg, err := config.FromArgs(args, os.Stderr)
	if err != nil {
		return models.Result{}, err
	}

	logger, err := buildLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return models.Result{}, err
	}

	conn, err := session.New(cfg.Session)
	if err != nil {
		return models.Result{}, err
	}
	defer conn.Conn.Close()

	p := probe.New(session.NewFetcher(conn, logger), cfg, logger)
	result, err := p.Run(context.Background())
	if err != nil {
		return models.Result{}, err
	}

	formatter := nagios.New(nagios.Config{NoPerfData: cfg.NoPerfData})
	result.Output = formatter.Format(result)
	return result, nil
}

// buildLogger mirrors the -log.level / -log.fmt flags. Diagnostics go to
// stderr: stdout carries only the plugin output line.
func buildLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q (expected debug|info|warn|error)", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler

	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (expected json|text)", format)
	}

	return slog.New(handler), nil
}
