package shrinker

import (
	"context"

	"github.com/zhukovvlad/matcher-go/cmd/internal/api_models"
	"github.com/zhukovvlad/matcher-go/cmd/internal/attrs"
	"github.com/zhukovvlad/matcher-go/cmd/internal/compare"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

// SemanticComparer — сервис семантического сравнения названий атрибутов.
type SemanticComparer interface {
	CompareStringsBatch(ctx context.Context, pairs [][2]string) ([]float64, error)
}

// compatibleGroups — какие группы атрибутов кандидата имеет смысл
// сравнивать с атрибутом позиции данного типа. Порядок групп фиксирует
// порядок обхода.
var compatibleGroups = map[attrs.Kind][]attrs.Kind{
	attrs.KindNumeric:  {attrs.KindRange, attrs.KindNumeric},
	attrs.KindRange:    {attrs.KindNumeric, attrs.KindRange},
	attrs.KindString:   {attrs.KindMultiple, attrs.KindBoolean, attrs.KindString},
	attrs.KindMultiple: {attrs.KindString, attrs.KindBoolean, attrs.KindMultiple},
	attrs.KindBoolean:  {attrs.KindString, attrs.KindMultiple, attrs.KindBoolean},
}

// MatchedAttribute — совпадение атрибута позиции с атрибутом кандидата,
// несет исходные имена/значения обеих сторон и семантическую оценку имен.
type MatchedAttribute struct {
	PositionAttrID    int64
	PositionAttrName  string
	PositionAttrValue string
	PositionAttrUnit  string
	ProductAttrName   string
	ProductAttrValue  string
	NameScore         float64
}

// CandidateScore — результат скоринга одного кандидата.
type CandidateScore struct {
	Candidate api_models.ProductHit
	Points    int
	Matched   []MatchedAttribute
	Unmatched []string
}

// CandidateScorer прогоняет атрибуты позиции по атрибутам одного
// кандидата: сперва дешевый фильтр по значениям, затем один пакетный
// запрос к семантическому сервису на выживших кандидатов.
type CandidateScorer struct {
	parser     *attrs.Parser
	comparator *compare.Comparator
	semantic   SemanticComparer

	thresholdAttributeMatch float64

	logger *logging.Logger
}

func NewCandidateScorer(
	parser *attrs.Parser,
	comparator *compare.Comparator,
	semantic SemanticComparer,
	thresholdAttributeMatch float64,
	logger *logging.Logger,
) *CandidateScorer {
	return &CandidateScorer{
		parser:                  parser,
		comparator:              comparator,
		semantic:                semantic,
		thresholdAttributeMatch: thresholdAttributeMatch,
		logger:                  logger,
	}
}

// Score оценивает кандидата против атрибутов позиции. Возвращает nil,
// когда кандидат не добрал minRequired очков, в том числе при досрочном
// выходе, когда оставшихся атрибутов уже не хватает до порога.
func (s *CandidateScorer) Score(
	ctx context.Context,
	hit api_models.ProductHit,
	positionAttrs []attrs.ParsedAttribute,
	minRequired int,
) (*CandidateScore, error) {
	grouped := s.parser.ParseCandidateAttributes(ctx, hit.Source.Attributes)

	score := &CandidateScore{Candidate: hit}
	total := len(positionAttrs)

	for i, posAttr := range positionAttrs {
		remaining := total - i - 1

		matched, err := s.matchAttribute(ctx, posAttr, grouped)
		if err != nil {
			// Отказ семантического сервиса не роняет кандидата: атрибут
			// считается несовпавшим, остальные атрибуты проверяются дальше.
			s.logger.Errorf("семантическое сравнение атрибута '%s' для кандидата %s: %v",
				posAttr.Name, hit.Source.ID, err)
			matched = nil
		}

		if matched != nil {
			score.Points++
			score.Matched = append(score.Matched, *matched)
		} else {
			score.Unmatched = append(score.Unmatched, posAttr.Name)
		}

		// Досрочный выход: даже при совпадении всех оставшихся
		// атрибутов порог уже недостижим.
		if score.Points+remaining < minRequired {
			s.logger.Debugf("кандидат %s отброшен досрочно: %d очков, осталось %d атрибутов, нужно %d",
				hit.Source.ID, score.Points, remaining, minRequired)
			return nil, nil
		}
	}

	if score.Points < minRequired {
		return nil, nil
	}
	return score, nil
}

// matchAttribute ищет лучший атрибут кандидата для одного атрибута
// позиции: фильтр по значению в совместимых группах, затем выбор по
// максимальной семантической оценке имен.
func (s *CandidateScorer) matchAttribute(
	ctx context.Context,
	posAttr attrs.ParsedAttribute,
	grouped *attrs.Grouped,
) (*MatchedAttribute, error) {
	var survivors []attrs.ParsedAttribute
	for _, kind := range compatibleGroups[posAttr.Kind()] {
		for _, candAttr := range grouped.Group(kind) {
			if s.comparator.Match(ctx, posAttr, candAttr) {
				survivors = append(survivors, candAttr)
			}
		}
	}
	if len(survivors) == 0 {
		return nil, nil
	}

	pairs := make([][2]string, 0, len(survivors))
	for _, candAttr := range survivors {
		pairs = append(pairs, [2]string{posAttr.Name, candAttr.Name})
	}

	scores, err := s.semantic.CompareStringsBatch(ctx, pairs)
	if err != nil {
		return nil, err
	}

	bestIdx := -1
	bestScore := 0.0
	for i, nameScore := range scores {
		if bestIdx == -1 || nameScore > bestScore {
			bestIdx = i
			bestScore = nameScore
		}
	}

	if bestScore < s.thresholdAttributeMatch {
		return nil, nil
	}

	best := survivors[bestIdx]
	return &MatchedAttribute{
		PositionAttrID:    posAttr.PositionAttrID,
		PositionAttrName:  posAttr.OriginalName,
		PositionAttrValue: posAttr.OriginalValue,
		PositionAttrUnit:  posAttr.OriginalUnit,
		ProductAttrName:   best.OriginalName,
		ProductAttrValue:  best.OriginalValue,
		NameScore:         bestScore,
	}, nil
}
