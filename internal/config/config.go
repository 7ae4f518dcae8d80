// Package config handles configuration loading and validation for the
// content-integrity pipeline. Defaults reproduce the production thresholds;
// a config file only needs to name the values it overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Version is the current configuration schema version.
const Version = 1

// Config holds the complete pipeline configuration.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version" json:"version" yaml:"version"`

	// Stylometry configures the AI-likelihood analyzer.
	Stylometry StylometryConfig `toml:"stylometry" json:"stylometry" yaml:"stylometry"`

	// Similarity configures the shingle similarity scanner.
	Similarity SimilarityConfig `toml:"similarity" json:"similarity" yaml:"similarity"`

	// Behavior configures the behavior trust analyzer.
	Behavior BehaviorConfig `toml:"behavior" json:"behavior" yaml:"behavior"`

	// Policy configures the orchestrator's rejection rules.
	Policy PolicyConfig `toml:"policy" json:"policy" yaml:"policy"`

	// Audit configures the audit record store and signing.
	Audit AuditConfig `toml:"audit" json:"audit" yaml:"audit"`

	// Logging configures structured log output.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// StylometryConfig holds AI-likelihood scoring bands.
type StylometryConfig struct {
	MinTextLen             int     `toml:"min_text_len" json:"min_text_len" yaml:"min_text_len"`
	UniformCoV             float64 `toml:"uniform_cov" json:"uniform_cov" yaml:"uniform_cov"`
	ModerateCoV            float64 `toml:"moderate_cov" json:"moderate_cov" yaml:"moderate_cov"`
	TransitionDenseRate    float64 `toml:"transition_dense_rate" json:"transition_dense_rate" yaml:"transition_dense_rate"`
	TransitionModerateRate float64 `toml:"transition_moderate_rate" json:"transition_moderate_rate" yaml:"transition_moderate_rate"`
	AvgWordLen             float64 `toml:"avg_word_len" json:"avg_word_len" yaml:"avg_word_len"`
	LikelyAIScore          int     `toml:"likely_ai_score" json:"likely_ai_score" yaml:"likely_ai_score"`
	HighConfidenceScore    int     `toml:"high_confidence_score" json:"high_confidence_score" yaml:"high_confidence_score"`
}

// SimilarityConfig holds shingle scan parameters.
type SimilarityConfig struct {
	MinTextLen      int     `toml:"min_text_len" json:"min_text_len" yaml:"min_text_len"`
	ShingleSize     int     `toml:"shingle_size" json:"shingle_size" yaml:"shingle_size"`
	ReportPct       float64 `toml:"report_pct" json:"report_pct" yaml:"report_pct"`
	MatchScore      int     `toml:"match_score" json:"match_score" yaml:"match_score"`
	ExactPrefixLen  int     `toml:"exact_prefix_len" json:"exact_prefix_len" yaml:"exact_prefix_len"`
	ExactMinTextLen int     `toml:"exact_min_text_len" json:"exact_min_text_len" yaml:"exact_min_text_len"`
}

// BehaviorConfig holds behavior penalty rules.
type BehaviorConfig struct {
	BulkPasteChars        int     `toml:"bulk_paste_chars" json:"bulk_paste_chars" yaml:"bulk_paste_chars"`
	BulkPasteMaxEvents    int     `toml:"bulk_paste_max_events" json:"bulk_paste_max_events" yaml:"bulk_paste_max_events"`
	BulkPasteChunkChars   int     `toml:"bulk_paste_chunk_chars" json:"bulk_paste_chunk_chars" yaml:"bulk_paste_chunk_chars"`
	RapidPasteMinEvents   int     `toml:"rapid_paste_min_events" json:"rapid_paste_min_events" yaml:"rapid_paste_min_events"`
	RapidPasteWindowMs    int64   `toml:"rapid_paste_window_ms" json:"rapid_paste_window_ms" yaml:"rapid_paste_window_ms"`
	CadenceMinKeystrokes  int     `toml:"cadence_min_keystrokes" json:"cadence_min_keystrokes" yaml:"cadence_min_keystrokes"`
	CadenceMeanIntervalMs float64 `toml:"cadence_mean_interval_ms" json:"cadence_mean_interval_ms" yaml:"cadence_mean_interval_ms"`
	SuspiciousTrust       int     `toml:"suspicious_trust" json:"suspicious_trust" yaml:"suspicious_trust"`
}

// PolicyConfig holds orchestrator rejection rules.
type PolicyConfig struct {
	// TrustFloor is the behavior trust score at or below which content is
	// rejected outright.
	TrustFloor int `toml:"trust_floor" json:"trust_floor" yaml:"trust_floor"`
}

// AuditConfig holds audit store and signing settings.
type AuditConfig struct {
	// Path is the SQLite database file for audit records.
	Path string `toml:"path" json:"path" yaml:"path"`

	// KeyPath is the Ed25519 private key used to sign audit records.
	// Empty disables signing.
	KeyPath string `toml:"key_path" json:"key_path" yaml:"key_path"`

	// Actor identifies the submitting principal recorded with each entry
	// when the caller does not supply one.
	Actor string `toml:"actor" json:"actor" yaml:"actor"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is text or json.
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is stdout or stderr.
	Output string `toml:"output" json:"output" yaml:"output"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: Version,
		Stylometry: StylometryConfig{
			MinTextLen:             50,
			UniformCoV:             0.35,
			ModerateCoV:            0.5,
			TransitionDenseRate:    0.25,
			TransitionModerateRate: 0.15,
			AvgWordLen:             6.5,
			LikelyAIScore:          40,
			HighConfidenceScore:    70,
		},
		Similarity: SimilarityConfig{
			MinTextLen:      20,
			ShingleSize:     3,
			ReportPct:       5,
			MatchScore:      15,
			ExactPrefixLen:  30,
			ExactMinTextLen: 50,
		},
		Behavior: BehaviorConfig{
			BulkPasteChars:        500,
			BulkPasteMaxEvents:    3,
			BulkPasteChunkChars:   100,
			RapidPasteMinEvents:   5,
			RapidPasteWindowMs:    10_000,
			CadenceMinKeystrokes:  10,
			CadenceMeanIntervalMs: 30,
			SuspiciousTrust:       70,
		},
		Policy: PolicyConfig{
			TrustFloor: 50,
		},
		Audit: AuditConfig{
			Path:  defaultAuditPath(),
			Actor: "integrityctl",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// defaultAuditPath returns the platform-specific default audit database path.
func defaultAuditPath() string {
	switch runtime.GOOS {
	case "darwin":
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "Library", "Application Support", "integrityd", "audit.db")
	case "windows":
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}
		return filepath.Join(appData, "integrityd", "audit.db")
	default:
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			homeDir, _ := os.UserHomeDir()
			dataHome = filepath.Join(homeDir, ".local", "share")
		}
		return filepath.Join(dataHome, "integrityd", "audit.db")
	}
}

// Validation errors.
var (
	ErrScoreOutOfRange = errors.New("config: score threshold outside [0,100]")
	ErrBadThreshold    = errors.New("config: invalid threshold")
)

// Validate checks the configuration for internally consistent thresholds.
func (c *Config) Validate() error {
	for name, v := range map[string]int{
		"stylometry.likely_ai_score":       c.Stylometry.LikelyAIScore,
		"stylometry.high_confidence_score": c.Stylometry.HighConfidenceScore,
		"similarity.match_score":           c.Similarity.MatchScore,
		"behavior.suspicious_trust":        c.Behavior.SuspiciousTrust,
		"policy.trust_floor":               c.Policy.TrustFloor,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: %s = %d", ErrScoreOutOfRange, name, v)
		}
	}
	if c.Similarity.ReportPct < 0 || c.Similarity.ReportPct > 100 {
		return fmt.Errorf("%w: similarity.report_pct = %v", ErrScoreOutOfRange, c.Similarity.ReportPct)
	}
	if c.Similarity.ShingleSize < 1 {
		return fmt.Errorf("%w: similarity.shingle_size must be at least 1", ErrBadThreshold)
	}
	if c.Stylometry.UniformCoV > c.Stylometry.ModerateCoV {
		return fmt.Errorf("%w: stylometry.uniform_cov exceeds moderate_cov", ErrBadThreshold)
	}
	if c.Stylometry.TransitionModerateRate > c.Stylometry.TransitionDenseRate {
		return fmt.Errorf("%w: stylometry.transition_moderate_rate exceeds dense rate", ErrBadThreshold)
	}
	if c.Behavior.RapidPasteWindowMs < 0 || c.Behavior.CadenceMeanIntervalMs < 0 {
		return fmt.Errorf("%w: behavior intervals must be non-negative", ErrBadThreshold)
	}
	if c.Policy.TrustFloor > c.Behavior.SuspiciousTrust {
		return fmt.Errorf("%w: policy.trust_floor exceeds behavior.suspicious_trust", ErrBadThreshold)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrBadThreshold, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrBadThreshold, c.Logging.Format)
	}
	return nil
}
