package quality

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Engine orchestrates the five dimension scorers and the suggestion
// generator over a wardrobe snapshot and owns the score history.
//
// Scoring itself is pure in-memory computation; the only failure modes are
// snapshot reads and the atomic score+suggestions write, both of which are
// propagated to the caller unretried. Two concurrent computes for the same
// user are not coordinated and may both append a history row.
type Engine struct {
	store     Store
	log       *zap.Logger
	generator SuggestionGenerator
}

func NewEngine(store Store, log *zap.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// Compute scores the user's wardrobe and persists the score together with
// its suggestion batch.
func (e *Engine) Compute(ctx context.Context, userID uuid.UUID) (*ScoreRecord, []SuggestionRecord, error) {
	prefs, err := e.store.LoadPreferences(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load preferences: %w", err)
	}

	snap, err := e.store.LoadSnapshot(ctx, userID, prefs.Diversity)
	if err != nil {
		return nil, nil, fmt.Errorf("load snapshot: %w", err)
	}

	score, suggestions := BuildScore(snap)

	records := make([]SuggestionRecord, 0, len(suggestions))
	for _, sug := range suggestions {
		records = append(records, suggestionRecord(userID, sug))
	}

	if err := e.store.SaveScore(ctx, score, records); err != nil {
		return nil, nil, fmt.Errorf("save score: %w", err)
	}

	e.log.Info("quality score computed",
		zap.String("user_id", userID.String()),
		zap.Float64("total_score", score.TotalScore),
		zap.Float64("confidence", score.Confidence),
		zap.Int("suggestions", len(records)),
	)
	return score, records, nil
}

// BuildScore is the pure scoring pass: it runs every scorer over the
// snapshot, aggregates the weighted total and confidence, and generates
// the suggestion batch. No I/O.
func BuildScore(snap *Snapshot) (*ScoreRecord, []Suggestion) {
	byDim := make(map[Dimension]DimensionResult, 5)
	explanations := make(map[Dimension]Explanation, 5)
	dims := make([]scoredDimension, 0, 5)

	totalScore := 0.0
	totalConfidence := 0.0
	for _, entry := range Scorers() {
		result := entry.Scorer.Score(snap)
		dim := entry.Scorer.Dimension()

		byDim[dim] = result
		dims = append(dims, scoredDimension{Dimension: dim, Result: result, Weight: entry.Weight})
		totalScore += result.Score * entry.Weight
		totalConfidence += result.Confidence * entry.Weight
		explanations[dim] = Explanation{
			Why:                 result.Why,
			Confidence:          result.Confidence,
			ContributingFactors: result.Factors,
		}
	}

	score := &ScoreRecord{
		UserID:                  snap.UserID,
		TotalScore:              totalScore,
		VersatilityScore:        byDim[DimVersatility].Score,
		UtilizationScore:        byDim[DimUtilization].Score,
		CompletenessScore:       byDim[DimCompleteness].Score,
		BalanceScore:            byDim[DimBalance].Score,
		DiversityScore:          byDim[DimDiversity].Score,
		Confidence:              totalConfidence,
		Explanations:            mustJSON(explanations),
		ItemsCount:              snap.ItemsCount(),
		OutfitsCount:            snap.OutfitsCount(),
		WearLogsCount:           snap.WearLogsCount(),
		DiversityConfigSnapshot: mustJSON(snap.Diversity),
		ComputedAt:              time.Now().UTC(),
	}

	suggestions := SuggestionGenerator{}.Generate(snap, dims)
	return score, suggestions
}

// Latest returns the most recently computed score, or nil when the user
// has never been scored.
func (e *Engine) Latest(ctx context.Context, userID uuid.UUID) (*ScoreRecord, error) {
	return e.store.Latest(ctx, userID)
}

// History returns up to limit scores, most recent first.
func (e *Engine) History(ctx context.Context, userID uuid.UUID, limit int) ([]ScoreRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return e.store.History(ctx, userID, limit)
}

// Cleanup deletes score+suggestion batches older than the retention
// horizon and returns the number of scores removed.
func (e *Engine) Cleanup(ctx context.Context, userID uuid.UUID, retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	n, err := e.store.DeleteOlderThan(ctx, userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup scores: %w", err)
	}
	if n > 0 {
		e.log.Info("quality history cleaned up",
			zap.String("user_id", userID.String()),
			zap.Int64("deleted", n),
			zap.Int("retention_days", retentionDays),
		)
	}
	return n, nil
}

func suggestionRecord(userID uuid.UUID, sug Suggestion) SuggestionRecord {
	related := make([]string, 0, len(sug.RelatedItemIDs))
	for _, id := range sug.RelatedItemIDs {
		related = append(related, id.String())
	}
	return SuggestionRecord{
		UserID:         userID,
		Type:           sug.Type,
		Dimension:      sug.Dimension,
		Priority:       sug.Priority,
		Title:          sug.Title,
		Description:    sug.Description,
		Why:            sug.Why,
		Confidence:     sug.Confidence,
		ExpectedImpact: sug.ExpectedImpact,
		RelatedItemIDs: related,
		Status:         StatusPending,
	}
}

// mustJSON encodes values built from in-memory structs; these cannot fail
// to marshal.
func mustJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(b)
}
