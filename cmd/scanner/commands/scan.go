package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"SignalScanner/internal/api"
	"SignalScanner/internal/model"
	"SignalScanner/internal/notifier"
	"SignalScanner/internal/strategy"
)

var (
	scanSymbols string
	scanJSON    bool
	scanNotify  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Score the watchlist once and print the ranking",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanSymbols, "symbols", "", "comma-separated symbols (default: configured symbols)")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print JSON instead of a table")
	scanCmd.Flags().BoolVar(&scanNotify, "notify", false, "also send the ranking to Telegram")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	a := newApp(cfg, log)
	defer a.Close()

	symbols := api.ParseSymbols(scanSymbols)
	if len(symbols) == 0 {
		symbols = cfg.Symbols
	}

	reports := a.collector.AnalyzeAll(cmd.Context(), symbols)
	strategy.Rank(reports)

	if scanNotify {
		if !cfg.TelegramEnabled() {
			return fmt.Errorf("--notify requires telegram.bot_token and telegram.chat_id")
		}
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		if err := tn.SendWithRetry(cmd.Context(), notifier.FormatRanking(reports, cfg.Scan.TopN, time.Now()), 3); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if scanJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(api.AnalyzeResponse{Results: reports})
	}
	return printTable(out, reports)
}

func printTable(w io.Writer, reports []model.ScoreReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSYMBOL\tSCORE\tCLOSE\tAS OF\tCONDITIONS")
	for i := range reports {
		r := &reports[i]
		if !r.OK() {
			fmt.Fprintf(tw, "-\t%s\t-\t-\t-\t%s\n", r.Symbol, strings.TrimSpace(r.Error+" "+r.Detail))
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%d/7\t%.2f\t%s\t%s\n",
			i+1, r.Symbol, r.Score, r.Price, r.AsOf.Format("2006-01-02"), notifier.FormatConditions(r.Conditions))
	}
	return tw.Flush()
}
