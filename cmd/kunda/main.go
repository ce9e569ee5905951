// Command kunda packs a file or directory into a single
// maximum-compression archive, and extracts such archives.
//
// Usage:
//
//	kunda create <path> [output] [preset]
//	kunda extract <archive> [outputDir]
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/meigma/kunda"
)

const (
	defaultOutput = "archive.kun"
	defaultDir    = "extracted"
)

func main() {
	app := cli.App{
		Name:  "kunda",
		Usage: "Pack a file or directory into a single maximum-compression archive",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create an archive from a file or directory",
				ArgsUsage: "PATH [OUTPUT] [PRESET]",
				Action:    createAction,
			},
			{
				Name:      "extract",
				Usage:     "Extract an archive into a directory",
				ArgsUsage: "ARCHIVE [OUTPUT_DIR]",
				Action:    extractAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "kunda:", err)
		os.Exit(1)
	}
}

func logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

func createAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("create needs a file or directory to pack")
	}
	input := c.Args().Get(0)
	output := defaultOutput
	if c.NArg() > 1 {
		output = c.Args().Get(1)
	}
	preset := kunda.DefaultPreset
	if c.NArg() > 2 {
		preset = c.Args().Get(2)
	}

	stats, err := kunda.Create(c.Context, input, output,
		kunda.CreateWithPreset(preset),
		kunda.CreateWithLogger(logger()),
		kunda.CreateWithProgress(printProgress))
	if err != nil {
		return err
	}

	fmt.Printf("\ncreated %s\n", output)
	fmt.Printf("  files:      %d (%d text, %d binary, %d pre-compressed, %d empty)\n",
		stats.Files, stats.TextFiles, stats.BinaryFiles, stats.CompressedFiles, stats.EmptyFiles)
	fmt.Printf("  prefixes:   %d\n", stats.Prefixes)
	fmt.Printf("  container:  %s\n", humanSize(stats.ContainerBytes))
	fmt.Printf("  archive:    %s (%.1f%%)\n", humanSize(stats.ArchiveBytes), stats.Ratio()*100)
	fmt.Printf("  elapsed:    %s\n", stats.Elapsed.Round(time.Millisecond))
	return nil
}

func extractAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("extract needs an archive file")
	}
	archive := c.Args().Get(0)
	outputDir := defaultDir
	if c.NArg() > 1 {
		outputDir = c.Args().Get(1)
	}

	stats, err := kunda.Extract(c.Context, archive, outputDir,
		kunda.ExtractWithLogger(logger()))
	if err != nil {
		return err
	}

	fmt.Printf("extracted %d files (%s) to %s in %s\n",
		stats.Files, humanSize(stats.Bytes), outputDir, stats.Elapsed.Round(time.Millisecond))
	return nil
}

// printProgress echoes per-file scan lines and phase transitions, in the
// order the pipeline runs them.
func printProgress(ev kunda.ProgressEvent) {
	if ev.Path != "" && ev.Stage == kunda.StageScanning {
		fmt.Printf("  %s (%s, %s)\n", ev.Path, humanSize(ev.Size), ev.Type)
		return
	}
	if ev.Path == "" {
		fmt.Printf("%s...\n", ev.Stage)
	}
}

func humanSize(n uint64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.2f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.2f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
