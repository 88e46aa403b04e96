// Package chatbot implements the natural-language query interpretation
// engine over the personnel record store.
//
// A query flows through an ordered rule table (see intent.go): the first
// matching rule's executor builds filter criteria, reads the record store,
// and formats a textual response, optionally routing the result through the
// export collaborator. Every invocation is independent; the only process-
// wide state is the read-only lexicon and gazetteer.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/adarshkumar7463/army-chatbot/internal/export"
	"github.com/adarshkumar7463/army-chatbot/internal/log"
	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

// RecordStore is the read surface of the record store the engine consumes.
// Both records.PostgresStore and records.MemoryStore satisfy it.
type RecordStore interface {
	GetOfficer(ctx context.Context, armyNumber string) (*records.Officer, error)
	ListOfficers(ctx context.Context, f records.OfficerFilter) ([]records.Officer, error)
	CountOfficers(ctx context.Context, f records.OfficerFilter) (int, error)
	ListFamily(ctx context.Context, armyNumber string) ([]records.FamilyMember, error)
	ListEducation(ctx context.Context, armyNumber string) ([]records.EducationRecord, error)
	ListAwards(ctx context.Context, armyNumber string) ([]records.AwardRecord, error)
	ListAwardsByName(ctx context.Context, name string) ([]records.AwardWithOfficer, error)
	CountAwards(ctx context.Context, name string) (int, error)
	DistinctAwardNames(ctx context.Context) ([]string, error)
	SearchRecords(ctx context.Context, query string, limit int) ([]records.SearchHit, error)
}

// Exporter renders a record table into a downloadable artifact.
type Exporter interface {
	Export(t export.Table, title, base, format string) (string, error)
}

// fallbackResultLimit caps how many full-text hits the fallback executor
// formats.
const fallbackResultLimit = 5

// Engine interprets free-text queries against the record store.
// It never mutates records and holds no per-request state, so a single
// Engine serves concurrent requests.
type Engine struct {
	store    RecordStore
	exporter Exporter
	logger   log.Logger
	metrics  *Metrics
	rules    []rule
}

// New creates an Engine. metrics may be nil to disable instrumentation.
func New(store RecordStore, exporter Exporter, logger log.Logger, metrics *Metrics) *Engine {
	if logger == nil {
		logger = log.NewNop()
	}
	e := &Engine{
		store:    store,
		exporter: exporter,
		logger:   logger.With("component", "chatbot"),
		metrics:  metrics,
	}

	// Dispatch order is load-bearing: a query matching both a count cue and
	// a listing cue must count.
	e.rules = []rule{
		{
			intent: IntentMultiField,
			match: func(_ context.Context, q *query) (bool, error) {
				return multiFieldPattern.MatchString(q.lowered), nil
			},
			handle: e.handleMultiField,
		},
		{
			intent: IntentCount,
			match: func(_ context.Context, q *query) (bool, error) {
				return countCuePattern.MatchString(q.lowered), nil
			},
			handle: e.handleCount,
		},
		{
			intent: IntentBulk,
			match: func(_ context.Context, q *query) (bool, error) {
				return listCuePattern.MatchString(q.lowered), nil
			},
			handle: e.handleBulk,
		},
		{
			intent: IntentDetail,
			match: func(ctx context.Context, q *query) (bool, error) {
				officer, err := e.extractTargetOfficer(ctx, q.lowered)
				if err != nil {
					return false, err
				}
				q.officer = officer
				return officer != nil, nil
			},
			handle: e.handleDetail,
		},
		{
			intent: IntentFallback,
			match: func(context.Context, *query) (bool, error) {
				return true, nil
			},
			handle: e.handleFallback,
		},
	}
	return e
}

// HandleQuery interprets one utterance and returns the response string
// (plain text, or an HTML fragment for export results).
//
// Ordinary misses (nothing actionable, unknown subject, empty result sets)
// come back as human-readable messages, never as errors. A non-nil error
// means a collaborator failed; callers translate it into a generic
// user-facing message.
func (e *Engine) HandleQuery(ctx context.Context, raw string) (string, error) {
	q := &query{
		raw:     raw,
		lowered: strings.ToLower(raw),
	}
	q.exportFormat = detectExportFormat(q.lowered)

	for _, r := range e.rules {
		ok, err := r.match(ctx, q)
		if err != nil {
			return "", fmt.Errorf("classifying query: %w", err)
		}
		if !ok {
			continue
		}

		e.metrics.IncQuery(string(r.intent))
		e.logger.Debug("query classified",
			"intent", r.intent, "export", q.exportFormat, "query_len", len(raw))

		resp, err := r.handle(ctx, q)
		if err != nil {
			return "", fmt.Errorf("executing %s query: %w", r.intent, err)
		}
		return resp, nil
	}

	// Unreachable: the fallback rule always matches.
	return msgCouldNotUnderstand, nil
}

// exportResult runs a table through the export collaborator and formats the
// download block.
func (e *Engine) exportResult(t export.Table, title, base, format string) (string, error) {
	fileURL, err := e.exporter.Export(t, title, base, format)
	if err != nil {
		return "", fmt.Errorf("exporting %q: %w", title, err)
	}
	e.metrics.IncExport(format)
	return renderExportBlock(title, fileURL, format), nil
}
