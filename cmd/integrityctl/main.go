// integrityctl is the control CLI for the content-integrity pipeline.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"integrityd/internal/auditlog"
	"integrityd/internal/behavior"
	"integrityd/internal/config"
	"integrityd/internal/event"
	"integrityd/internal/logging"
	"integrityd/internal/policy"
	"integrityd/internal/signer"
	"integrityd/internal/similarity"
	"integrityd/internal/stylometry"
)

var configPath = flag.String("config", "", "path to config file")

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("load config: %v", err)
	}

	switch cmd := flag.Arg(0); cmd {
	case "validate":
		cmdValidate(cfg, flag.Args()[1:])
	case "audit":
		cmdAudit(cfg, flag.Args()[1:])
	case "keygen":
		cmdKeygen(cfg, flag.Args()[1:])
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `integrityctl - Control utility for the content-integrity pipeline

Usage: integrityctl [options] <command> [args]

Commands:
  validate <file>  Validate a text sample and print the integrity report
  audit            List stored audit records
  keygen           Generate an Ed25519 audit signing key
  help             Show this help message

Options:
  -config <path>   Path to config file (TOML, YAML, or JSON)`)
}

func cmdValidate(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	eventsPath := fs.String("events", "", "path to interaction event log (JSON)")
	priorTrust := fs.Int("prior", 100, "caller's prior trust in the author (0-100)")
	docID := fs.String("doc", "", "document identifier for the audit record")
	actor := fs.String("actor", "", "actor identifier for the audit record")
	record := fs.Bool("record", false, "append the report to the audit store")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fatal("usage: integrityctl validate [flags] <file>")
	}

	text, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fatal("read sample: %v", err)
	}

	var events []event.Event
	if *eventsPath != "" {
		data, err := os.ReadFile(*eventsPath)
		if err != nil {
			fatal("read event log: %v", err)
		}
		events, err = event.DecodeLog(data)
		if err != nil {
			fatal("decode event log: %v", err)
		}
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Output:    cfg.Logging.Output,
		Component: "integrityctl",
	})
	if err != nil {
		fatal("logging: %v", err)
	}

	orc := newOrchestrator(cfg, logger)
	report := orc.Validate(string(text), events, *priorTrust)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fatal("encode report: %v", err)
	}
	fmt.Println(string(out))

	if *record {
		if err := appendAudit(cfg, *docID, *actor, string(text), report); err != nil {
			fatal("record audit: %v", err)
		}
	}

	if report.Verdict == policy.VerdictRejected {
		os.Exit(1)
	}
}

func cmdAudit(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	docID := fs.String("doc", "", "filter by document identifier")
	limit := fs.Int("n", 20, "maximum records to list")
	fs.Parse(args)

	store, err := auditlog.Open(cfg.Audit.Path)
	if err != nil {
		fatal("open audit store: %v", err)
	}
	defer store.Close()

	var records []auditlog.Record
	if *docID != "" {
		records, err = store.ByDocument(*docID)
	} else {
		records, err = store.Recent(*limit)
	}
	if err != nil {
		fatal("list audit records: %v", err)
	}

	for _, rec := range records {
		signed := ""
		if len(rec.Signature) > 0 {
			signed = " signed"
		}
		fmt.Printf("%s  %-8s  doc=%s actor=%s reasons=%d%s\n",
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.Verdict, rec.DocumentID, rec.Actor, len(rec.Report.Reasons), signed)
	}
}

func cmdKeygen(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	out := fs.String("out", cfg.Audit.KeyPath, "path to write the key seed")
	fs.Parse(args)

	if *out == "" {
		fatal("keygen: no output path (set -out or audit.key_path in config)")
	}
	pub, err := signer.GenerateKeyFile(*out)
	if err != nil {
		fatal("keygen: %v", err)
	}
	fmt.Printf("wrote %s (public key %x)\n", *out, pub)
}

// newOrchestrator wires threshold-tuned analyzers from the configuration.
func newOrchestrator(cfg *config.Config, logger *slog.Logger) *policy.Orchestrator {
	return policy.New(
		policy.WithTrustFloor(cfg.Policy.TrustFloor),
		policy.WithLogger(logger),
		policy.WithAnalyzers(
			stylometry.NewWithThresholds(stylometry.Thresholds{
				MinTextLen:             cfg.Stylometry.MinTextLen,
				UniformCoV:             cfg.Stylometry.UniformCoV,
				ModerateCoV:            cfg.Stylometry.ModerateCoV,
				TransitionDenseRate:    cfg.Stylometry.TransitionDenseRate,
				TransitionModerateRate: cfg.Stylometry.TransitionModerateRate,
				AvgWordLen:             cfg.Stylometry.AvgWordLen,
				LikelyAIScore:          cfg.Stylometry.LikelyAIScore,
				HighConfidenceScore:    cfg.Stylometry.HighConfidenceScore,
			}),
			similarity.NewWithThresholds(similarity.Thresholds{
				MinTextLen:      cfg.Similarity.MinTextLen,
				ShingleSize:     cfg.Similarity.ShingleSize,
				ReportPct:       cfg.Similarity.ReportPct,
				MatchScore:      cfg.Similarity.MatchScore,
				ExactPrefixLen:  cfg.Similarity.ExactPrefixLen,
				ExactMinTextLen: cfg.Similarity.ExactMinTextLen,
			}),
			behavior.NewWithThresholds(behavior.Thresholds{
				BulkPasteChars:        cfg.Behavior.BulkPasteChars,
				BulkPasteMaxEvents:    cfg.Behavior.BulkPasteMaxEvents,
				BulkPasteChunkChars:   cfg.Behavior.BulkPasteChunkChars,
				RapidPasteMinEvents:   cfg.Behavior.RapidPasteMinEvents,
				RapidPasteWindowMs:    cfg.Behavior.RapidPasteWindowMs,
				CadenceMinKeystrokes:  cfg.Behavior.CadenceMinKeystrokes,
				CadenceMeanIntervalMs: cfg.Behavior.CadenceMeanIntervalMs,
				SuspiciousTrust:       cfg.Behavior.SuspiciousTrust,
			}),
		),
	)
}

// appendAudit stores the report, signing it when a key is configured.
func appendAudit(cfg *config.Config, docID, actor, text string, report policy.Report) error {
	if actor == "" {
		actor = cfg.Audit.Actor
	}

	rec := &auditlog.Record{
		DocumentID: docID,
		Actor:      actor,
		Excerpt:    excerpt(text, 120),
		Verdict:    report.Verdict,
		Report:     report,
	}

	if cfg.Audit.KeyPath != "" {
		key, err := signer.LoadPrivateKey(cfg.Audit.KeyPath)
		if err != nil {
			return fmt.Errorf("load signing key: %w", err)
		}
		payload, err := rec.Payload()
		if err != nil {
			return err
		}
		rec.Signature = signer.SignRecord(key, payload)
	}

	store, err := auditlog.Open(cfg.Audit.Path)
	if err != nil {
		return fmt.Errorf("open audit store: %w", err)
	}
	defer store.Close()

	if _, err := store.Append(rec); err != nil {
		return err
	}
	return nil
}

func excerpt(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n] + "…"
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
