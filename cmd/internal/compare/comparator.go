package compare

import (
	"context"
	"strings"

	"github.com/zhukovvlad/matcher-go/cmd/internal/attrs"
	"github.com/zhukovvlad/matcher-go/cmd/internal/lemma"
	"github.com/zhukovvlad/matcher-go/cmd/internal/ngram"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

// Порог n-граммного совпадения названий для булевых атрибутов.
// Булевые атрибуты сознательно сравниваются только по названиям:
// два "да/нет"-атрибута совпадают, когда совпадают их имена.
const nameNGramThreshold = 0.7

// Comparator решает, совпадают ли два типизированных значения.
// Диспетчеризация идет по паре (тип позиции, тип кандидата); все пары,
// не покрытые таблицей, отклоняются.
type Comparator struct {
	trigrammer *ngram.Trigrammer
	units      attrs.UnitNormalizer
	normalizer lemma.Normalizer

	valueMatchThreshold float64
	numericTolerance    float64

	logger *logging.Logger
}

func NewComparator(
	trigrammer *ngram.Trigrammer,
	units attrs.UnitNormalizer,
	normalizer lemma.Normalizer,
	valueMatchThreshold float64,
	numericTolerance float64,
	logger *logging.Logger,
) *Comparator {
	return &Comparator{
		trigrammer:          trigrammer,
		units:               units,
		normalizer:          normalizer,
		valueMatchThreshold: valueMatchThreshold,
		numericTolerance:    numericTolerance,
		logger:              logger,
	}
}

// Match — таблица диспетчеризации по паре типов.
func (c *Comparator) Match(ctx context.Context, pos, cand attrs.ParsedAttribute) bool {
	posKind := pos.Kind()
	candKind := cand.Kind()

	switch {
	case posKind == attrs.KindBoolean && candKind == attrs.KindBoolean:
		return c.compareNamesNGram(pos.Name, cand.Name)
	case posKind == attrs.KindBoolean && (candKind == attrs.KindString || candKind == attrs.KindMultiple):
		return c.compareNamesNGram(pos.Name, cand.Name)
	case (posKind == attrs.KindString || posKind == attrs.KindMultiple) && candKind == attrs.KindBoolean:
		return c.compareNamesNGram(pos.Name, cand.Name)

	case posKind == attrs.KindNumeric && candKind == attrs.KindNumeric:
		return c.compareNumeric(ctx, pos.Value, cand.Value)
	case posKind == attrs.KindNumeric && candKind == attrs.KindRange:
		return c.numericInRange(ctx, pos.Value, cand.Value)
	case posKind == attrs.KindRange && candKind == attrs.KindNumeric:
		return c.numericInRange(ctx, cand.Value, pos.Value)
	case posKind == attrs.KindRange && candKind == attrs.KindRange:
		return c.rangesIntersect(ctx, pos.Value, cand.Value)

	case posKind == attrs.KindString && candKind == attrs.KindString:
		return c.compareStringsLemma(pos, cand)
	case posKind == attrs.KindString && candKind == attrs.KindMultiple,
		posKind == attrs.KindMultiple && candKind == attrs.KindString,
		posKind == attrs.KindMultiple && candKind == attrs.KindMultiple:
		return c.compareMultipleTextual(pos.Value, cand.Value)

	default:
		return false
	}
}

// compareNamesNGram сравнивает названия атрибутов по сумме n-граммных
// оценок Жаккара.
func (c *Comparator) compareNamesNGram(posName, candName string) bool {
	if posName == "" || candName == "" {
		return false
	}
	if strings.EqualFold(posName, candName) {
		return true
	}
	return c.trigrammer.CompareTwoStrings(posName, candName) >= nameNGramThreshold
}

// compareStringsLemma сравнивает строковые значения по леммам: равенство
// предвычисленной леммы кандидата с нормализованным значением позиции.
// Без нормализатора откат на регистронезависимое равенство.
func (c *Comparator) compareStringsLemma(pos, cand attrs.ParsedAttribute) bool {
	posText := strings.TrimSpace(pos.Value.Text)
	candText := strings.TrimSpace(cand.Value.Text)

	if c.normalizer != nil {
		if cand.ValueLemma != "" {
			return c.normalizer.Normalize(posText) == cand.ValueLemma
		}
		return c.normalizer.Normalize(posText) == c.normalizer.Normalize(candText)
	}

	return strings.EqualFold(posText, candText)
}

// compareNumeric сравнивает числовые значения с учетом единиц измерения.
// При совпадающих юнитах применяется относительный допуск; при разных —
// обе стороны нормализуются через сервис юнитов.
func (c *Comparator) compareNumeric(ctx context.Context, pos, cand attrs.TypedValue) bool {
	if pos.Unit == cand.Unit {
		return c.withinTolerance(pos.Number, cand.Number)
	}

	if pos.Unit == "" || cand.Unit == "" {
		return false
	}

	posNorm, ok := c.normalizedNumber(ctx, pos.Number, pos.Unit)
	if !ok {
		return false
	}
	candNorm, ok := c.normalizedNumber(ctx, cand.Number, cand.Unit)
	if !ok {
		return false
	}

	return c.withinTolerance(posNorm, candNorm)
}

func (c *Comparator) withinTolerance(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	denom := abs(a)
	if abs(b) > denom {
		denom = abs(b)
	}
	if denom < 1 {
		denom = 1
	}
	return diff/denom <= c.numericTolerance
}

// numericInRange проверяет, входит ли значение в диапазон (закрытый
// интервал). Бесконечные границы трактуются как неограниченные.
func (c *Comparator) numericInRange(ctx context.Context, value, rng attrs.TypedValue) bool {
	number := value.Number
	lower, upper := rng.Lower, rng.Upper

	if value.Unit != rng.Unit && value.Unit != "" && rng.Unit != "" {
		normalized, ok := c.normalizedNumber(ctx, number, value.Unit)
		if ok {
			number = normalized
		}
		lower = c.normalizedBound(ctx, lower, rng.Unit)
		upper = c.normalizedBound(ctx, upper, rng.Unit)
	}

	return lower.LTE(number) && upper.GTE(number)
}

// rangesIntersect: после выравнивания юнитов диапазоны пересекаются, когда
// a.lower <= b.upper и b.lower <= a.upper.
func (c *Comparator) rangesIntersect(ctx context.Context, a, b attrs.TypedValue) bool {
	aLower, aUpper := a.Lower, a.Upper
	bLower, bUpper := b.Lower, b.Upper

	if a.Unit != b.Unit && a.Unit != "" && b.Unit != "" {
		aLower = c.normalizedBound(ctx, aLower, a.Unit)
		aUpper = c.normalizedBound(ctx, aUpper, a.Unit)
		bLower = c.normalizedBound(ctx, bLower, b.Unit)
		bUpper = c.normalizedBound(ctx, bUpper, b.Unit)
	}

	return aLower.LTEBound(bUpper) && bLower.LTEBound(aUpper)
}

// compareMultipleTextual: кросс-пары текстовых элементов, совпадение при
// любой паре с n-граммной оценкой не ниже порога.
func (c *Comparator) compareMultipleTextual(pos, cand attrs.TypedValue) bool {
	posItems := textualItems(pos)
	candItems := textualItems(cand)

	for _, posItem := range posItems {
		for _, candItem := range candItems {
			if c.trigrammer.CompareTwoStrings(posItem, candItem) >= c.valueMatchThreshold {
				return true
			}
		}
	}
	return false
}

func (c *Comparator) normalizedNumber(ctx context.Context, number float64, unit string) (float64, bool) {
	result, err := c.units.NormalizeUnit(ctx, attrs.FormatFloat(number), unit)
	if err != nil {
		c.logger.Errorf("ошибка нормализации юнита %v %s: %v", number, unit, err)
		return 0, false
	}
	if !result.Success {
		return 0, false
	}
	if result.NormalizedValue != nil {
		return *result.NormalizedValue, true
	}
	if result.BaseValue != nil {
		return *result.BaseValue, true
	}
	return 0, false
}

func (c *Comparator) normalizedBound(ctx context.Context, bound attrs.Bound, unit string) attrs.Bound {
	if bound.Kind != attrs.BoundFinite {
		return bound
	}
	normalized, ok := c.normalizedNumber(ctx, bound.Value, unit)
	if !ok {
		return bound
	}
	return attrs.FiniteBound(normalized)
}

// textualItems собирает текстовые представления простых элементов значения.
func textualItems(value attrs.TypedValue) []string {
	switch value.Kind {
	case attrs.KindMultiple:
		items := make([]string, 0, len(value.Items))
		for _, item := range value.Items {
			items = append(items, strings.ToLower(itemText(item)))
		}
		return items
	default:
		return []string{strings.ToLower(itemText(value))}
	}
}

func itemText(value attrs.TypedValue) string {
	switch value.Kind {
	case attrs.KindNumeric:
		return attrs.FormatFloat(value.Number)
	case attrs.KindBoolean:
		if value.Bool {
			return "true"
		}
		return "false"
	default:
		return value.Text
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
