package shrinker

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/zhukovvlad/matcher-go/cmd/internal/api_models"
	"github.com/zhukovvlad/matcher-go/cmd/internal/attrs"
	db "github.com/zhukovvlad/matcher-go/cmd/internal/db/sqlc"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

// PositionMatcher оркестрирует мэтчинг одной позиции: парсинг атрибутов,
// параллельный скоринг кандидатов под семафором, сортировка и запись
// результатов. Счетчик обработанных позиций тендера инкрементируется в
// той же транзакции, что и вставки.
type PositionMatcher struct {
	parser *attrs.Parser
	scorer *CandidateScorer
	store  db.Store

	semaphoreSize int64
	trasholdScore float64

	logger *logging.Logger
}

func NewPositionMatcher(
	parser *attrs.Parser,
	scorer *CandidateScorer,
	store db.Store,
	semaphoreSize int64,
	trasholdScore float64,
	logger *logging.Logger,
) *PositionMatcher {
	return &PositionMatcher{
		parser:        parser,
		scorer:        scorer,
		store:         store,
		semaphoreSize: semaphoreSize,
		trasholdScore: trasholdScore,
		logger:        logger,
	}
}

// Process обрабатывает одну позицию тендера: возвращает прошедших порог
// кандидатов по убыванию очков. Счетчик processed_positions
// инкрементируется ровно один раз независимо от исхода.
func (m *PositionMatcher) Process(
	ctx context.Context,
	tenderID int64,
	position db.TendersPosition,
	attributes []db.TendersPositionAttribute,
	candidates []api_models.ProductHit,
) ([]*CandidateScore, error) {
	logger := m.logger
	logger.Infof("позиция %d '%s': %d атрибутов, %d кандидатов",
		position.ID, position.Title, len(attributes), len(candidates))

	rawAttrs := make([]attrs.PositionAttribute, 0, len(attributes))
	for _, a := range attributes {
		rawAttrs = append(rawAttrs, attrs.PositionAttribute{
			ID:    a.ID,
			Name:  a.Name,
			Value: a.Value,
			Unit:  a.Unit.String,
		})
	}

	parsed := m.parser.ParsePositionAttributes(ctx, rawAttrs)
	if len(parsed) == 0 {
		logger.Warnf("позиция %d без распаршенных атрибутов, мэтчинг пропущен", position.ID)
		if err := m.persist(ctx, tenderID, position, nil, 0); err != nil {
			logger.Errorf("ошибка записи результатов позиции %d: %v", position.ID, err)
		}
		return nil, nil
	}

	// Порог и максимум считаются от исходного числа атрибутов позиции:
	// атрибут, который не удалось распарсить, все равно понижает шансы
	// кандидата, а не исчезает из знаменателя.
	minRequired := int(float64(len(attributes)) * m.trasholdScore)
	logger.Infof("позиция %d: порог прохождения %d из %d атрибутов", position.ID, minRequired, len(attributes))

	scored := m.scoreCandidates(ctx, candidates, parsed, minRequired)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Points > scored[j].Points
	})

	if err := m.persist(ctx, tenderID, position, scored, len(attributes)); err != nil {
		logger.Errorf("ошибка записи результатов позиции %d: %v", position.ID, err)
	}

	logger.Infof("позиция %d: порог прошли %d из %d кандидатов", position.ID, len(scored), len(candidates))
	return scored, nil
}

// scoreCandidates запускает скоринг кандидатов параллельно, ограничивая
// число одновременных задач семафором. Ошибка одного кандидата никогда
// не прерывает скоринг остальных.
func (m *PositionMatcher) scoreCandidates(
	ctx context.Context,
	candidates []api_models.ProductHit,
	parsed []attrs.ParsedAttribute,
	minRequired int,
) []*CandidateScore {
	sem := semaphore.NewWeighted(m.semaphoreSize)
	var wg sync.WaitGroup
	var mu sync.Mutex
	scored := make([]*CandidateScore, 0, len(candidates))

	for _, hit := range candidates {
		if err := sem.Acquire(ctx, 1); err != nil {
			m.logger.Errorf("семафор скоринга: %v", err)
			break
		}

		wg.Add(1)
		go func(hit api_models.ProductHit) {
			defer wg.Done()
			defer sem.Release(1)

			score, err := m.scorer.Score(ctx, hit, parsed, minRequired)
			if err != nil {
				m.logger.Errorf("ошибка скоринга кандидата %s: %v", hit.Source.ID, err)
				return
			}
			if score == nil {
				return
			}

			mu.Lock()
			scored = append(scored, score)
			mu.Unlock()
		}(hit)
	}

	wg.Wait()
	return scored
}
