package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zary0/domainscout/internal/analyzer"
	"github.com/zary0/domainscout/internal/types"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// analyzeCmd runs the assessment pipeline for domains given on the command line
var analyzeCmd = &cobra.Command{
	Use:   "analyze <domain> [domain...]",
	Short: "analyze one or more domains and print the assessment",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return analyze(cmd.Context(), cmd.OutOrStdout(), args)
	},
}

// init registers the analyze command and its flags on the root command
func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	analyzeCmd.Flags().Bool("notify", false, "post each analysis summary to the configured slack webhook")
}

// analyze runs the pipeline for every domain and writes the results in order
func analyze(ctx context.Context, w io.Writer, domains []string) error {
	output := k.String("output")
	if output != outputText && output != outputJSON {
		return fmt.Errorf("%w: %q", ErrUnsupportedOutput, output)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, intelManager, err := setupAnalyzer(cfg)
	if err != nil {
		return fmt.Errorf("setting up analyzer: %w", err)
	}

	if intelManager != nil && cfg.Intel.AutoHydrate {
		hydrateIntel(ctx, intelManager)
	}

	results := a.AnalyzeBatch(ctx, domains)

	if k.Bool("notify") {
		if notifier := setupSlack(cfg); notifier != nil {
			for _, analysis := range analyzer.Succeeded(results) {
				if err := notifier.NotifyAnalysis(ctx, analysis); err != nil {
					log.Warn().Err(err).Str("domain", analysis.Domain).Msg("failed to send analysis notification")
				}
			}
		}
	}

	if output == outputJSON {
		if err := writeResultsJSON(w, results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			renderResult(w, res)
		}
	}

	if failed := len(results) - len(analyzer.Succeeded(results)); failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrAnalysisFailed, failed, len(results))
	}

	return nil
}

// writeResultsJSON prints one analysis as an object and several as an array
func writeResultsJSON(w io.Writer, results []analyzer.BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	for _, res := range results {
		if res.Err != nil {
			log.Error().Err(res.Err).Str("input", res.Input).Msg("analysis failed")
		}
	}

	succeeded := analyzer.Succeeded(results)

	var payload any = succeeded
	if len(results) == 1 && len(succeeded) == 1 {
		payload = succeeded[0]
	}

	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	return nil
}

// renderResult writes a human readable summary of one batch result
func renderResult(w io.Writer, res analyzer.BatchResult) {
	if res.Err != nil {
		fmt.Fprintf(w, "%s %s: %v\n\n", color.RedString("✗"), res.Input, res.Err)
		return
	}

	renderAnalysis(w, res.Analysis)
}

// renderAnalysis writes the score, signals and findings of an analysis
func renderAnalysis(w io.Writer, a *types.Analysis) {
	bold := color.New(color.Bold)
	band := statusColor(a.Result.Status)

	bold.Fprintf(w, "%s\n", a.Domain)
	fmt.Fprintf(w, "  score:      %s\n", band.Sprintf("%.1f (%s)", a.Result.Score, a.Result.Status))
	fmt.Fprintf(w, "  available:  %t\n", a.DomainInfo.IsAvailable)

	if !a.DomainInfo.IsAvailable {
		fmt.Fprintf(w, "  http:       %s\n", optionalValue(a.DomainInfo.HTTPStatus, "%d"))
		fmt.Fprintf(w, "  tls:        %s\n", optionalValue(a.DomainInfo.SSLValid, "%t"))
		fmt.Fprintf(w, "  latency:    %s\n", optionalValue(a.DomainInfo.ResponseTimeSeconds, "%.2fs"))

		for _, rt := range types.RecordTypes {
			if values := a.DomainInfo.DNSRecords[rt]; len(values) > 0 {
				fmt.Fprintf(w, "  %-11s %s\n", string(rt)+":", strings.Join(values, ", "))
			}
		}

		if a.DomainInfo.WhoisText != nil {
			fmt.Fprintf(w, "  whois:      %s\n", *a.DomainInfo.WhoisText)
		}
	}

	fmt.Fprintf(w, "  reputation: %s\n", optionalValue(a.Security.ReputationScore, "%.0f"))

	if a.Value.DomainAgeYears != nil {
		fmt.Fprintf(w, "  age:        %.1f years\n", *a.Value.DomainAgeYears)
	}

	for _, risk := range a.Result.Risks {
		fmt.Fprintf(w, "  %s %s\n", color.RedString("!"), risk)
	}

	for _, rec := range a.Result.Recommendations {
		fmt.Fprintf(w, "  %s %s\n", color.CyanString("→"), rec)
	}

	fmt.Fprintln(w)
}

// statusColor maps a score band to its display colour
func statusColor(status types.Status) *color.Color {
	switch status {
	case types.StatusExcellent:
		return color.New(color.FgGreen, color.Bold)
	case types.StatusGood:
		return color.New(color.FgGreen)
	case types.StatusFair:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// optionalValue formats a present value or a dash when absent
func optionalValue[T any](v *T, format string) string {
	if v == nil {
		return "-"
	}

	return fmt.Sprintf(format, *v)
}
