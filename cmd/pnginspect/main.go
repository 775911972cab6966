package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	getopt "github.com/pborman/getopt/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/chronos-tachyon/pnginspect"
	"github.com/chronos-tachyon/pnginspect/inflate"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitIOError = 2
)

var (
	flagVersion   = false
	flagDebug     = false
	flagTrace     = false
	flagLogStderr = false

	flagFormat      = OutputFormatFlag{TextFormat}
	flagErrorsOnly  = false
	flagSummary     = false
	flagMaxText     = ByteSizeFlag{1 << 24}
	flagConcurrency = 4

	flagCPUProfile = ""
)

func init() {
	getopt.SetParameters("[<file>...]")

	getopt.FlagLong(&flagVersion, "version", 'V', "print version and exit")

	getopt.FlagLong(&flagDebug, "verbose", 'v', "enable debug logging")
	getopt.FlagLong(&flagTrace, "debug", 'D', "enable debug and trace logging")
	getopt.FlagLong(&flagLogStderr, "log-stderr", 'L', "log JSON to stderr")

	getopt.FlagLong(&flagCPUProfile, "cpu-profile", 0, "CPU profile output file")

	getopt.FlagLong(&flagFormat, "format", 'F', "output format; one of text or json")
	getopt.FlagLong(&flagErrorsOnly, "errors-only", 'e', "only show parts that have errors")
	getopt.FlagLong(&flagSummary, "summary", 's', "only show the chunk summary of each file")
	getopt.FlagLong(&flagMaxText, "max-text-bytes", 0, "limit on decompressed zTXt/iTXt text; 0 for no limit")
	getopt.FlagLong(&flagConcurrency, "jobs", 'j', "number of files to inspect in parallel")
}

func main() {
	getopt.Parse()

	if flagVersion {
		fmt.Println(strings.TrimSpace(version))
		os.Exit(exitOK)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.DurationFieldUnit = time.Second
	zerolog.DurationFieldInteger = false
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if flagDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if flagTrace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	switch {
	case flagLogStderr:
		// do nothing

	default:
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)

	if flagConcurrency < 1 {
		flagConcurrency = 1
	}

	names := getopt.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}

	if flagCPUProfile != "" {
		f, err := os.OpenFile(flagCPUProfile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
		if err != nil {
			log.Logger.Fatal().
				Str("filename", flagCPUProfile).
				Err(err).
				Msg("os.OpenFile(O_WRONLY|O_CREATE|O_TRUNC) failed")
		}

		defer func() {
			err := f.Close()
			if err != nil {
				log.Logger.Error().
					Str("filename", flagCPUProfile).
					Err(err).
					Msg("failed to Close CPU profiling output file")
			}
		}()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Logger.Fatal().
				Err(err).
				Msg("pprof.StartCPUProfile failed")
		}

		defer pprof.StopCPUProfile()
	}

	code := run(context.Background(), os.Stdout, names)
	if code != exitOK {
		pprof.StopCPUProfile()
		os.Exit(code)
	}
}

// run inspects every named file and writes the reports to w.  It returns
// the process exit status.
func run(ctx context.Context, w io.Writer, names []string) int {
	reports := make([]fileReport, len(names))
	failed := make([]bool, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(flagConcurrency)
	for index, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := inspectFile(name)
			if err != nil {
				log.Logger.Error().
					Str("filename", name).
					Err(err).
					Msg("failed to read input file")
				failed[index] = true
				return nil
			}
			reports[index] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Logger.Error().
			Err(err).
			Msg("inspection was interrupted")
		return exitIOError
	}

	ok := make([]fileReport, 0, len(reports))
	code := exitOK
	for index, report := range reports {
		if failed[index] {
			code = exitIOError
			continue
		}
		if report.Errors != 0 && code == exitOK {
			code = exitInvalid
		}
		ok = append(ok, report)
	}

	var err error
	switch flagFormat.Value {
	case JSONFormat:
		err = writeJSON(w, ok)
	default:
		err = writeText(w, ok, flagSummary)
	}
	if err != nil {
		log.Logger.Error().
			Err(err).
			Msg("failed to write report")
		return exitIOError
	}
	return code
}

func inspectFile(name string) (fileReport, error) {
	raw, err := readInput(name)
	if err != nil {
		return fileReport{}, err
	}

	logger := log.Logger.With().Str("filename", name).Logger()
	inflateOpts := []inflate.Option{
		inflate.WithTracers(inflate.Log(logger)),
		inflate.WithOutputLimit(flagMaxText.Value),
	}
	result := pnginspect.Inspect(
		raw,
		pnginspect.WithTracers(pnginspect.Log(logger)),
		pnginspect.WithInflateOptions(inflateOpts...))

	logger.Debug().
		Int("size", len(raw)).
		Int("parts", len(result.Parts)).
		Int("errors", result.NumErrors()).
		Msg("inspected")

	return newFileReport(name, len(raw), result, flagErrorsOnly), nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}
