package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/ps1db/internal/scanner"
	"github.com/vmunix/ps1db/pkg/title"
)

var (
	scanRoot        string
	scanInteractive bool
	scanThreshold   float64
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a directory of disc dumps against the catalog",
	Long: `Walks the library root, identifies every supported dump (filename,
image contents, cue sheet), matches it against the catalog and records
the result. Files that disappeared since the last scan are pruned.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		root := scanRoot
		if root == "" {
			root = env.cfg.Library.Root
		}
		if root == "" {
			return fmt.Errorf("no library root; set library.root in the config or pass --root")
		}
		threshold := scanThreshold
		if threshold == 0 {
			threshold = env.cfg.Matching.Threshold
		}

		var confirm scanner.ConfirmFunc
		if scanInteractive {
			if !isTerminal(os.Stdin) {
				return fmt.Errorf("--interactive needs a terminal on stdin")
			}
			confirm = promptConfirm(bufio.NewReader(os.Stdin))
		}

		probe := scanner.NewFileProbe(env.cfg.Probe.Binary,
			time.Duration(env.cfg.Probe.TimeoutSeconds)*time.Second)

		s := scanner.New(env.catalog, env.collection, scanner.Options{
			Probe:      probe,
			Logger:     env.log,
			Threshold:  threshold,
			Extensions: env.cfg.Library.Extensions,
			Confirm:    confirm,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		stats, err := s.Scan(ctx, root)
		if stats != nil {
			printScanStats(stats)
		}
		return err
	},
}

func printScanStats(stats *scanner.Stats) {
	rows := [][]string{
		{"Processed", strconv.Itoa(stats.Processed)},
		{"Matched", strconv.Itoa(stats.Matched)},
		{"Ambiguous", strconv.Itoa(stats.Ambiguous)},
		{"Unmatched", strconv.Itoa(stats.Unmatched)},
		{"Serials found", strconv.Itoa(stats.SerialsFound)},
		{"Serials updated", strconv.Itoa(stats.Updated)},
		{"Pruned", strconv.FormatInt(stats.Pruned, 10)},
	}
	fmt.Println(renderTable([]string{"Metric", "Count"}, rows,
		[]columnAlignment{alignLeft, alignRight}))
}

// promptConfirm reviews each sub-exact match on the terminal:
// y accepts, n rejects, s accepts this and everything after.
func promptConfirm(r *bufio.Reader) scanner.ConfirmFunc {
	return func(cand title.Candidate, match title.Scored) scanner.Decision {
		fmt.Printf("%s -> %s (%.0f%% confidence)? [y/n/s] ",
			cand.Filename, match.Entry.Title, match.Confidence*100)
		line, err := r.ReadString('\n')
		if err != nil {
			return scanner.DecisionAccept
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "n":
			return scanner.DecisionReject
		case "s":
			return scanner.DecisionAcceptRest
		default:
			return scanner.DecisionAccept
		}
	}
}

func init() {
	scanCmd.Flags().StringVar(&scanRoot, "root", "", "Directory to scan (default: library.root from config)")
	scanCmd.Flags().BoolVar(&scanInteractive, "interactive", false, "Confirm sub-exact matches on the terminal")
	scanCmd.Flags().Float64Var(&scanThreshold, "threshold", 0, "Minimum fuzzy match confidence (default: matching.threshold from config)")
	rootCmd.AddCommand(scanCmd)
}
