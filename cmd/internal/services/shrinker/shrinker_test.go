package shrinker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhukovvlad/matcher-go/cmd/internal/api_models"
	"github.com/zhukovvlad/matcher-go/cmd/internal/attrs"
	"github.com/zhukovvlad/matcher-go/cmd/internal/compare"
	db "github.com/zhukovvlad/matcher-go/cmd/internal/db/sqlc"
	"github.com/zhukovvlad/matcher-go/cmd/internal/lemma"
	"github.com/zhukovvlad/matcher-go/cmd/internal/ngram"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

/*
BEHAVIORAL SCENARIOS FOR CANDIDATE SCORING

GIVEN / WHEN / THEN Scenarios:
================================================================================

SCENARIO 1: Value filter then one semantic batch
- GIVEN a position attribute with value-compatible candidate attributes
  WHEN the candidate is scored
  THEN exactly one batch call per position attribute ranks the survivors
       and the best name above 0.73 wins

- GIVEN the best name score is below 0.73
  WHEN the candidate is scored
  THEN the attribute stays unmatched despite the value match

SCENARIO 2: Thresholds
- GIVEN 10 position attributes and CANDIDATES_TRASHOLD_SCORE=0.7
  WHEN only 6 attributes match
  THEN minRequired=7 and the candidate is dropped

- GIVEN 2 raw attributes of which only 1 parses
  WHEN the ratio is 0.7
  THEN minRequired=1 counts the raw attributes and a zero-point
       candidate is dropped

SCENARIO 3: Degradation
- GIVEN the semantic service fails for one attribute and recovers
  WHEN the candidate is scored
  THEN the failed attribute counts as unmatched and scoring continues

SCENARIO 4: Early exit
- GIVEN a candidate with zero matches after 4 of 10 attributes
  WHEN points(0) + remaining(6) < minRequired(7)
  THEN scoring is abandoned and the candidate returns nil

SCENARIO 5: Position orchestration
- GIVEN a position with zero parsed attributes
  WHEN the position is processed
  THEN no candidates are scored but the processed counter transaction
       still runs exactly once

- GIVEN several passing candidates
  WHEN the position is processed
  THEN results are sorted by points descending
*/

type fakeStandardizer struct {
	responses map[string][]api_models.StandardizedAttribute
}

func (f *fakeStandardizer) ExtractAttrData(_ context.Context, raw string) ([]api_models.StandardizedAttribute, error) {
	return f.responses[raw], nil
}

type fakeUnits struct{}

func (f *fakeUnits) NormalizeUnit(_ context.Context, _, _ string) (api_models.UnitNormalization, error) {
	return api_models.UnitNormalization{}, nil
}

type fakeSemantic struct {
	mu     sync.Mutex
	calls  int
	scores map[string]float64
}

func (f *fakeSemantic) CompareStringsBatch(_ context.Context, pairs [][2]string) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls += 1
	out := make([]float64, len(pairs))
	for i, pair := range pairs {
		out[i] = f.scores[pair[0]+"|"+pair[1]]
	}
	return out, nil
}

// flakySemantic падает на первых failures батчах, затем работает как
// обычный fakeSemantic.
type flakySemantic struct {
	fakeSemantic
	failures int
}

func (f *flakySemantic) CompareStringsBatch(ctx context.Context, pairs [][2]string) ([]float64, error) {
	f.mu.Lock()
	if f.failures > 0 {
		f.failures--
		f.calls++
		f.mu.Unlock()
		return nil, errors.New("semantic service unavailable")
	}
	f.mu.Unlock()
	return f.fakeSemantic.CompareStringsBatch(ctx, pairs)
}

// fakeStore считает транзакции, не трогая базу: ExecTx не вызывает fn,
// потому что *db.Queries требует живого соединения.
type fakeStore struct {
	mu          sync.Mutex
	execTxCalls int
}

func (s *fakeStore) ExecTx(_ context.Context, _ func(*db.Queries) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.execTxCalls++
	return nil
}

func (s *fakeStore) CreateTenderMatch(_ context.Context, _ db.CreateTenderMatchParams) (db.TenderMatch, error) {
	return db.TenderMatch{}, nil
}

func (s *fakeStore) CreateTenderPositionAttributeMatch(_ context.Context, _ db.CreateTenderPositionAttributeMatchParams) error {
	return nil
}

func (s *fakeStore) GetTenderInfo(_ context.Context, id int64) (db.TendersInfo, error) {
	return db.TendersInfo{ID: id, CompanyID: 1}, nil
}

func (s *fakeStore) IncrementProcessedPositions(_ context.Context, _ int64) error {
	return nil
}

func (s *fakeStore) ListPositionAttributes(_ context.Context, _ int64) ([]db.TendersPositionAttribute, error) {
	return nil, nil
}

func (s *fakeStore) ListPositionsForTender(_ context.Context, _ int64) ([]db.TendersPosition, error) {
	return nil, nil
}

func newTestScorer(semantic SemanticComparer) *CandidateScorer {
	logger := logging.GetLogger()
	parser := attrs.NewParser(&fakeStandardizer{}, &fakeUnits{}, logger)
	comparator := compare.NewComparator(
		ngram.NewTrigrammer(),
		&fakeUnits{},
		lemma.NewStemmer(),
		0.85,
		0.1,
		logger,
	)
	return NewCandidateScorer(parser, comparator, semantic, 0.73, logger)
}

func numericPositionAttr(id int64, name string, value float64) attrs.ParsedAttribute {
	return attrs.ParsedAttribute{
		PositionAttrID: id,
		OriginalName:   name,
		OriginalValue:  attrs.FormatFloat(value),
		Name:           name,
		Value:          attrs.NumericValue(value, ""),
	}
}

func numericProductAttr(name string, value float64) api_models.ProductAttribute {
	raw, _ := json.Marshal(value)
	return api_models.ProductAttribute{
		OriginalName:      name,
		OriginalValue:     value,
		StandardizedName:  name,
		StandardizedValue: json.RawMessage(raw),
		AttributeType:     "simple",
	}
}

func TestCandidateScorerScore(t *testing.T) {
	ctx := context.Background()

	t.Run("совпадение значения и имени дает очко", func(t *testing.T) {
		semantic := &fakeSemantic{scores: map[string]float64{
			"длина|длина": 0.95,
		}}
		scorer := newTestScorer(semantic)

		hit := api_models.ProductHit{Source: api_models.ProductSource{
			ID:         "p1",
			Attributes: []api_models.ProductAttribute{numericProductAttr("длина", 100)},
		}}
		position := []attrs.ParsedAttribute{numericPositionAttr(1, "длина", 100)}

		score, err := scorer.Score(ctx, hit, position, 1)
		require.NoError(t, err)
		require.NotNil(t, score)
		assert.Equal(t, 1, score.Points)
		require.Len(t, score.Matched, 1)
		assert.Equal(t, int64(1), score.Matched[0].PositionAttrID)
		assert.Equal(t, 0.95, score.Matched[0].NameScore)
		assert.Equal(t, 1, semantic.calls, "один батч на атрибут позиции")
	})

	t.Run("имя ниже порога 0.73 не засчитывается", func(t *testing.T) {
		semantic := &fakeSemantic{scores: map[string]float64{
			"длина|длина": 0.5,
		}}
		scorer := newTestScorer(semantic)

		hit := api_models.ProductHit{Source: api_models.ProductSource{
			ID:         "p1",
			Attributes: []api_models.ProductAttribute{numericProductAttr("длина", 100)},
		}}
		position := []attrs.ParsedAttribute{numericPositionAttr(1, "длина", 100)}

		score, err := scorer.Score(ctx, hit, position, 0)
		require.NoError(t, err)
		require.NotNil(t, score)
		assert.Equal(t, 0, score.Points)
		assert.Equal(t, []string{"длина"}, score.Unmatched)
	})

	t.Run("из выживших выбирается лучший по имени", func(t *testing.T) {
		semantic := &fakeSemantic{scores: map[string]float64{
			"длина|длина":        0.9,
			"длина|длина кабеля": 0.8,
		}}
		scorer := newTestScorer(semantic)

		hit := api_models.ProductHit{Source: api_models.ProductSource{
			ID: "p1",
			Attributes: []api_models.ProductAttribute{
				numericProductAttr("длина кабеля", 100),
				numericProductAttr("длина", 100),
			},
		}}
		position := []attrs.ParsedAttribute{numericPositionAttr(1, "длина", 100)}

		score, err := scorer.Score(ctx, hit, position, 1)
		require.NoError(t, err)
		require.NotNil(t, score)
		require.Len(t, score.Matched, 1)
		assert.Equal(t, "длина", score.Matched[0].ProductAttrName)
		assert.Equal(t, 0.9, score.Matched[0].NameScore)
	})

	t.Run("без совпадения значений семантика не вызывается", func(t *testing.T) {
		semantic := &fakeSemantic{scores: map[string]float64{}}
		scorer := newTestScorer(semantic)

		hit := api_models.ProductHit{Source: api_models.ProductSource{
			ID:         "p1",
			Attributes: []api_models.ProductAttribute{numericProductAttr("длина", 500)},
		}}
		position := []attrs.ParsedAttribute{numericPositionAttr(1, "длина", 100)}

		score, err := scorer.Score(ctx, hit, position, 0)
		require.NoError(t, err)
		require.NotNil(t, score)
		assert.Equal(t, 0, score.Points)
		assert.Equal(t, 0, semantic.calls)
	})

	t.Run("кандидат ниже minRequired отбрасывается", func(t *testing.T) {
		// 10 атрибутов, порог 7, совпадают только 6.
		semantic := &fakeSemantic{scores: map[string]float64{}}
		position := make([]attrs.ParsedAttribute, 0, 10)
		candidateAttrs := make([]api_models.ProductAttribute, 0, 6)
		for i := 0; i < 10; i++ {
			name := "атрибут" + string(rune('а'+i))
			position = append(position, numericPositionAttr(int64(i+1), name, 10))
			if i < 6 {
				candidateAttrs = append(candidateAttrs, numericProductAttr(name, 10))
				semantic.scores[name+"|"+name] = 0.9
			}
		}
		scorer := newTestScorer(semantic)

		hit := api_models.ProductHit{Source: api_models.ProductSource{ID: "p1", Attributes: candidateAttrs}}

		score, err := scorer.Score(ctx, hit, position, 7)
		require.NoError(t, err)
		assert.Nil(t, score)
	})

	t.Run("отказ семантики деградирует атрибут, а не кандидата", func(t *testing.T) {
		// Первый батч падает, второй отвечает: кандидат остается в игре
		// с очком за второй атрибут, первый уходит в несовпавшие.
		semantic := &flakySemantic{
			fakeSemantic: fakeSemantic{scores: map[string]float64{
				"длина|длина":   0.9,
				"ширина|ширина": 0.9,
			}},
			failures: 1,
		}
		scorer := newTestScorer(semantic)

		hit := api_models.ProductHit{Source: api_models.ProductSource{
			ID: "p1",
			Attributes: []api_models.ProductAttribute{
				numericProductAttr("длина", 100),
				numericProductAttr("ширина", 50),
			},
		}}
		position := []attrs.ParsedAttribute{
			numericPositionAttr(1, "длина", 100),
			numericPositionAttr(2, "ширина", 50),
		}

		score, err := scorer.Score(ctx, hit, position, 1)
		require.NoError(t, err)
		require.NotNil(t, score)
		assert.Equal(t, 1, score.Points)
		assert.Equal(t, []string{"длина"}, score.Unmatched)
		require.Len(t, score.Matched, 1)
		assert.Equal(t, "ширина", score.Matched[0].PositionAttrName)
		assert.Equal(t, 2, semantic.calls)
	})

	t.Run("досрочный выход при недостижимом пороге", func(t *testing.T) {
		// Кандидат без единого совпадения: после 4-го атрибута
		// 0 очков + 6 оставшихся < 7 — скоринг прерывается.
		semantic := &fakeSemantic{scores: map[string]float64{}}
		position := make([]attrs.ParsedAttribute, 0, 10)
		for i := 0; i < 10; i++ {
			name := "атрибут" + string(rune('а'+i))
			position = append(position, numericPositionAttr(int64(i+1), name, 10))
		}
		scorer := newTestScorer(semantic)

		hit := api_models.ProductHit{Source: api_models.ProductSource{ID: "p1"}}

		score, err := scorer.Score(ctx, hit, position, 7)
		require.NoError(t, err)
		assert.Nil(t, score)
		assert.Equal(t, 0, semantic.calls)
	})
}

func TestPositionMatcherProcess(t *testing.T) {
	ctx := context.Background()
	logger := logging.GetLogger()

	newMatcher := func(standardizer attrs.Standardizer, semantic SemanticComparer, store db.Store) *PositionMatcher {
		parser := attrs.NewParser(standardizer, &fakeUnits{}, logger)
		comparator := compare.NewComparator(
			ngram.NewTrigrammer(),
			&fakeUnits{},
			lemma.NewStemmer(),
			0.85,
			0.1,
			logger,
		)
		scorer := NewCandidateScorer(parser, comparator, semantic, 0.73, logger)
		return NewPositionMatcher(parser, scorer, store, 100, 0.7, logger)
	}

	t.Run("пустая позиция: без скоринга, но с транзакцией счетчика", func(t *testing.T) {
		store := &fakeStore{}
		matcher := newMatcher(&fakeStandardizer{}, &fakeSemantic{}, store)

		scored, err := matcher.Process(ctx, 10, db.TendersPosition{ID: 1, Title: "Кабель"}, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, scored)
		assert.Equal(t, 1, store.execTxCalls)
	})

	t.Run("порог считается от исходного числа атрибутов", func(t *testing.T) {
		// Из двух атрибутов парсится только первый: порог остается
		// int(2 * 0.7) = 1, и кандидат без единого совпадения отсеивается.
		standardizer := &fakeStandardizer{responses: map[string][]api_models.StandardizedAttribute{
			"Длина: 100": {{
				Name: "длина", Type: "simple",
				Value: json.RawMessage(`{"value": 100, "unit": null}`),
			}},
		}}
		semantic := &fakeSemantic{scores: map[string]float64{
			"длина|длина": 0.9,
		}}
		store := &fakeStore{}
		matcher := newMatcher(standardizer, semantic, store)

		attributes := []db.TendersPositionAttribute{
			{ID: 1, Name: "Длина", Value: "100"},
			{ID: 2, Name: "Гарантия", Value: "по договору"},
		}
		candidates := []api_models.ProductHit{
			{Source: api_models.ProductSource{ID: "no-match", Attributes: []api_models.ProductAttribute{
				numericProductAttr("длина", 500),
			}}},
			{Source: api_models.ProductSource{ID: "match", Attributes: []api_models.ProductAttribute{
				numericProductAttr("длина", 100),
			}}},
		}

		scored, err := matcher.Process(ctx, 10, db.TendersPosition{ID: 1, Title: "Кабель"}, attributes, candidates)
		require.NoError(t, err)
		require.Len(t, scored, 1)
		assert.Equal(t, "match", scored[0].Candidate.Source.ID)
		assert.Equal(t, 1, scored[0].Points)
	})

	t.Run("результаты сортируются по убыванию очков", func(t *testing.T) {
		standardizer := &fakeStandardizer{responses: map[string][]api_models.StandardizedAttribute{
			"Длина: 100": {{
				Name: "длина", Type: "simple",
				Value: json.RawMessage(`{"value": 100, "unit": null}`),
			}},
			"Ширина: 50": {{
				Name: "ширина", Type: "simple",
				Value: json.RawMessage(`{"value": 50, "unit": null}`),
			}},
		}}
		semantic := &fakeSemantic{scores: map[string]float64{
			"длина|длина":   0.9,
			"ширина|ширина": 0.9,
		}}
		store := &fakeStore{}
		matcher := newMatcher(standardizer, semantic, store)

		attributes := []db.TendersPositionAttribute{
			{ID: 1, Name: "Длина", Value: "100"},
			{ID: 2, Name: "Ширина", Value: "50"},
		}
		candidates := []api_models.ProductHit{
			{Source: api_models.ProductSource{ID: "one-attr", Attributes: []api_models.ProductAttribute{
				numericProductAttr("длина", 100),
			}}},
			{Source: api_models.ProductSource{ID: "both-attrs", Attributes: []api_models.ProductAttribute{
				numericProductAttr("длина", 100),
				numericProductAttr("ширина", 50),
			}}},
		}

		scored, err := matcher.Process(ctx, 10, db.TendersPosition{ID: 1, Title: "Кабель"}, attributes, candidates)
		require.NoError(t, err)
		require.Len(t, scored, 2)
		assert.Equal(t, "both-attrs", scored[0].Candidate.Source.ID)
		assert.Equal(t, 2, scored[0].Points)
		assert.Equal(t, "one-attr", scored[1].Candidate.Source.ID)
		assert.Equal(t, 1, scored[1].Points)
		assert.Equal(t, 1, store.execTxCalls)
	})
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 100.0, percentage(3, 3))
	assert.Equal(t, 66.7, percentage(2, 3))
	assert.Equal(t, 33.3, percentage(1, 3))
	assert.Equal(t, 0.0, percentage(0, 3))
	assert.Equal(t, 0.0, percentage(0, 0))
}
