// cmd/decode.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asterixgo/gobelix/asterix"
	"github.com/asterixgo/gobelix/internal/asxio"
	"github.com/asterixgo/gobelix/internal/stats"
	"github.com/spf13/cobra"
)

var (
	inputFile  string
	outputFile string
	formatFlag string
	followFlag bool
	strictFlag bool
	statsEvery int
)

func init() {
	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode ASTERIX data from a file or stdin",
		Long: `Decode reads CAT/LEN-framed ASTERIX DataBlocks from a file (or stdin when
no file is given) and writes the rendered result to stdout or a file.

Example: idefix decode -i sample.ast --format json`,
		RunE: runDecode,
	}

	decodeCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	decodeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	decodeCmd.Flags().StringVar(&formatFlag, "format", "text", "Output format: text, line, json, jsonh, xml")
	decodeCmd.Flags().BoolVar(&followFlag, "follow", false, "Keep reading as more data arrives (stdin streaming), stop on SIGINT/SIGTERM")
	decodeCmd.Flags().BoolVar(&strictFlag, "strict", false, "Reject trailing bytes left over in a DataBlock instead of warning")
	decodeCmd.Flags().IntVar(&statsEvery, "stats", 0, "Print running statistics every N seconds (0 = only at exit)")

	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	logger := ConfigureLogger(Verbose, JsonLogs)

	def, err := loadDefinition(DefsDir)
	if err != nil {
		return err
	}

	in := os.Stdin
	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	format, err := asterix.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if followFlag {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			logger.Info("received shutdown signal, terminating")
			cancel()
		}()
	}

	msgStats := stats.New()
	if statsEvery > 0 {
		ticker := time.NewTicker(time.Duration(statsEvery) * time.Second)
		defer ticker.Stop()
		go func() {
			for {
				select {
				case <-ticker.C:
					msgStats.Log(logger, false)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	reader := asxio.New(in)
	runErr := processBlocks(ctx, reader, def, out, format, logger, msgStats)
	msgStats.Log(logger, true)
	return runErr
}

func processBlocks(ctx context.Context, reader *asxio.Reader, def *asterix.Definition, out io.Writer,
	format asterix.Format, logger *slog.Logger, msgStats *stats.MessageStats) error {

	opts := asterix.Options{
		Strict: strictFlag,
		Observability: func(e asterix.Event) {
			switch e.Kind {
			case asterix.EventDecodeWarning:
				logger.Warn("decode warning", "category", e.Category, "detail", e.Detail, "position", e.Position)
			case asterix.EventDecodeError:
				logger.Debug("decode error", "category", e.Category, "detail", e.Detail, "position", e.Position)
			case asterix.EventRecordDecoded:
				logger.Debug("record decoded", "category", e.Category, "items", e.ItemsN)
			}
		},
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		block, err := reader.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			if !followFlag {
				return fmt.Errorf("reading block: %w", err)
			}
			logger.Error("reading block", "error", err)
			continue
		}

		tree, _, status, err := asterix.Decode(def, block, opts)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		if status.Kind != asterix.StatusOK {
			logger.Warn("decode status", "status", status.Kind.String(), "position", status.Position)
		}
		for _, e := range status.Errors {
			if errors.Is(e, asterix.ErrSchemaMismatch) && !Verbose {
				continue
			}
			logger.Debug("recoverable decode error", "error", e)
		}

		for _, db := range tree.Blocks {
			msgStats.Record(db.Category, editionOf(def, db.Category))
		}

		rendered, err := asterix.Render(tree, format, nil)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if len(rendered) > 0 {
			fmt.Fprintln(out, string(rendered))
		}
	}
}

func editionOf(def *asterix.Definition, cat uint8) string {
	c, ok := def.Category(cat)
	if !ok {
		return "unknown"
	}
	return c.Edition
}
