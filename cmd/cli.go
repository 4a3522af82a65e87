package cmd

import (
	"fmt"
	"io"
	"log/slog"

	sqlinsert "github.com/Infisical/sql-insert-parser"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// RunApp parses args, prints the parsed statement and returns the process exit code.
func RunApp(version string, args []string, stdout, stderr io.Writer) int {
	options := &Options{}
	parser := flags.NewParser(options, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS] statement..."
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return 0
		}
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 2
	}

	if options.Version {
		fmt.Fprintf(stdout, "sqlinsert: version: %v\n", version)
		return 0
	}

	logger := NewLogger(options.LogLevel, stderr)
	if err := run(options, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	return 0
}

func run(options *Options, stdout io.Writer, logger *slog.Logger) error {
	chunks := options.Args.Statement
	if len(chunks) == 0 {
		return errors.New("missing INSERT statement argument")
	}

	var parsed *sqlinsert.ParsedInsert
	var err error
	if len(chunks) == 1 {
		parsed, err = sqlinsert.ParseWithOptions(chunks[0], options.ParseOptions())
	} else {
		logger.Debug("statement split across arguments", "chunks", len(chunks))
		parsed, err = sqlinsert.ParseChunks(chunks, options.ParseOptions())
	}
	if err != nil {
		var parseErr *sqlinsert.ParseError
		if errors.As(err, &parseErr) {
			logger.Debug("parse failed", "kind", string(parseErr.Kind), "offset", parseErr.Offset, "found", parseErr.Found)
		}
		return errors.Wrap(err, "failed to parse statement")
	}

	logger.Debug("parsed statement", "table", parsed.TableName, "columns", len(parsed.Columns))
	return errors.Wrapf(sqlinsert.Write(stdout, parsed, sqlinsert.Format(options.Output)), "failed to write %v output", options.Output)
}
