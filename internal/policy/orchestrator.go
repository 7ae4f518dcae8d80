// Package policy merges the three content analyzers into one integrity
// report and applies the rejection rules.
package policy

import (
	"fmt"
	"log/slog"
	"time"

	"integrityd/internal/behavior"
	"integrityd/internal/event"
	"integrityd/internal/similarity"
	"integrityd/internal/stylometry"
)

// Verdict is the binary outcome of policy evaluation.
type Verdict string

// Verdicts.
const (
	VerdictApproved Verdict = "APPROVED"
	VerdictRejected Verdict = "REJECTED"
)

// DefaultTrustFloor is the behavior trust score at or below which content is
// rejected outright. Between the floor and the suspicion threshold the
// report carries reasons but the verdict stays APPROVED — softly flagged,
// not blocking.
const DefaultTrustFloor = 50

// Report is the merged analysis output consumed by the caller to gate a save
// operation and by the audit log.
type Report struct {
	Timestamp  time.Time           `json:"timestamp"`
	AI         stylometry.Findings `json:"ai"`
	Similarity similarity.Findings `json:"similarity"`
	Behavior   behavior.Findings   `json:"behavior"`
	PriorTrust int                 `json:"prior_trust"`
	Verdict    Verdict             `json:"verdict"`
	Reasons    []string            `json:"reasons"`

	// Degraded names analyzers that panicked and were replaced with a
	// neutral result. A degraded analysis never silently blocks content and
	// never stands in for a rejection another analyzer would have produced.
	Degraded []string `json:"degraded,omitempty"`
}

// Analyzer interfaces let tests substitute failing implementations; the
// production constructors wire the concrete analyzers.
type (
	aiAnalyzer interface {
		Analyze(text string) stylometry.Findings
	}
	similarityScanner interface {
		Scan(text string) similarity.Findings
	}
	behaviorAnalyzer interface {
		Analyze(events []event.Event) behavior.Findings
	}
)

// Orchestrator invokes the three analyzers and applies policy. Safe for
// concurrent use: all state is read-only after construction.
type Orchestrator struct {
	ai         aiAnalyzer
	similarity similarityScanner
	behavior   behaviorAnalyzer
	trustFloor int
	log        *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTrustFloor overrides the hard rejection floor for behavior trust.
func WithTrustFloor(floor int) Option {
	return func(o *Orchestrator) { o.trustFloor = floor }
}

// WithLogger attaches a structured logger for verdict logging.
func WithLogger(log *slog.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// WithAnalyzers replaces the default analyzers. Used by the config layer to
// install threshold-tuned instances, and by tests.
func WithAnalyzers(ai aiAnalyzer, sim similarityScanner, beh behaviorAnalyzer) Option {
	return func(o *Orchestrator) {
		o.ai = ai
		o.similarity = sim
		o.behavior = beh
	}
}

// New returns an orchestrator over the default analyzers.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		ai:         stylometry.New(),
		similarity: similarity.New(),
		behavior:   behavior.New(),
		trustFloor: DefaultTrustFloor,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate runs the three analyzers over the sample and applies the
// rejection rules in fixed precedence: AI likelihood, then source
// similarity, then behavior trust. The verdict starts APPROVED and can only
// latch to REJECTED; it is never reset once rejected.
//
// priorTrust is the caller's standing trust in the author, recorded in the
// report for auditors; it does not gate any rule here. Callers without a
// trust model pass 100.
func (o *Orchestrator) Validate(text string, events []event.Event, priorTrust int) Report {
	report := Report{
		Timestamp:  time.Now().UTC(),
		PriorTrust: priorTrust,
		Verdict:    VerdictApproved,
		Reasons:    []string{},
	}

	// Each analyzer runs isolated: a panic in one degrades that analysis to
	// a neutral result instead of crashing the validation or suppressing the
	// other analyzers' findings.
	report.AI = o.runAI(text, &report)
	report.Similarity = o.runSimilarity(text, &report)
	report.Behavior = o.runBehavior(events, &report)

	if report.AI.IsLikelyAI {
		report.Reasons = append(report.Reasons, fmt.Sprintf("AI content detected (%d%%)", report.AI.Score))
		report.Verdict = VerdictRejected
	}

	if report.Similarity.IsMatch {
		report.Reasons = append(report.Reasons, fmt.Sprintf("High similarity to known source (%d%%)", report.Similarity.Score))
		report.Verdict = VerdictRejected
	}

	if report.Behavior.IsSuspicious {
		report.Reasons = append(report.Reasons, behavior.Describe(report.Behavior))
		if report.Behavior.TrustScore <= o.trustFloor {
			report.Reasons = append(report.Reasons, "trust score below minimum")
			report.Verdict = VerdictRejected
		}
	}

	if o.log != nil {
		o.log.Info("content validated",
			"verdict", report.Verdict,
			"ai_score", report.AI.Score,
			"similarity_score", report.Similarity.Score,
			"trust_score", report.Behavior.TrustScore,
			"reasons", len(report.Reasons),
			"degraded", len(report.Degraded),
		)
	}
	return report
}

func (o *Orchestrator) runAI(text string, report *Report) (f stylometry.Findings) {
	defer o.recoverAnalyzer("ai", report, func() {
		f = stylometry.Findings{Confidence: stylometry.ConfidenceMedium, Factors: []string{}}
	})
	return o.ai.Analyze(text)
}

func (o *Orchestrator) runSimilarity(text string, report *Report) (f similarity.Findings) {
	defer o.recoverAnalyzer("similarity", report, func() {
		f = similarity.Findings{Matches: []similarity.Match{}}
	})
	return o.similarity.Scan(text)
}

func (o *Orchestrator) runBehavior(events []event.Event, report *Report) (f behavior.Findings) {
	defer o.recoverAnalyzer("behavior", report, func() {
		f = behavior.Findings{TrustScore: 100, Flags: []string{}}
	})
	return o.behavior.Analyze(events)
}

// recoverAnalyzer converts an analyzer panic into a neutral result plus a
// degraded-analysis record.
func (o *Orchestrator) recoverAnalyzer(name string, report *Report, neutral func()) {
	r := recover()
	if r == nil {
		return
	}
	neutral()
	report.Degraded = append(report.Degraded, name)
	if o.log != nil {
		o.log.Error("analyzer failed, substituting neutral result", "analyzer", name, "panic", fmt.Sprint(r))
	}
}
