package attrs

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/zhukovvlad/matcher-go/cmd/internal/api_models"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

// Standardizer — сервис разбора сырой строки характеристики на
// имя/тип/значение.
type Standardizer interface {
	ExtractAttrData(ctx context.Context, raw string) ([]api_models.StandardizedAttribute, error)
}

// UnitNormalizer — сервис приведения пары (значение, юнит) к базовой единице.
type UnitNormalizer interface {
	NormalizeUnit(ctx context.Context, value, unit string) (api_models.UnitNormalization, error)
}

// PositionAttribute — сырой атрибут позиции тендера из реляционной БД.
type PositionAttribute struct {
	ID    int64
	Name  string
	Value string
	Unit  string
}

// Parser разбирает атрибуты позиций и кандидатов в ParsedAttribute.
// Ошибки внешних сервисов деградируют до пропуска атрибута: один
// неразобранный атрибут никогда не прерывает разбор остальных.
type Parser struct {
	standardizer Standardizer
	units        UnitNormalizer
	logger       *logging.Logger
}

func NewParser(standardizer Standardizer, units UnitNormalizer, logger *logging.Logger) *Parser {
	return &Parser{
		standardizer: standardizer,
		units:        units,
		logger:       logger,
	}
}

// ParsePositionAttributes — этап 1/3: парсинг атрибутов позиции.
// Каждый атрибут склеивается в строку "{имя}: {значение} {юнит}",
// отправляется в сервис стандартизации, затем для simple-значений
// вычисляется подтип и нормализуются единицы измерения.
func (p *Parser) ParsePositionAttributes(ctx context.Context, attributes []PositionAttribute) []ParsedAttribute {
	parsed := make([]ParsedAttribute, 0, len(attributes))

	for i, attr := range attributes {
		raw := strings.TrimSpace(fmt.Sprintf("%s: %s %s", attr.Name, attr.Value, attr.Unit))

		blobs, err := p.standardizer.ExtractAttrData(ctx, raw)
		if err != nil {
			p.logger.Errorf("ошибка разбора атрибута позиции '%s': %v", attr.Name, err)
			continue
		}
		if len(blobs) == 0 {
			p.logger.Warnf("атрибут позиции %d/%d не распаршен: %s", i+1, len(attributes), raw)
			continue
		}

		value, err := p.valueFromBlob(blobs[0])
		if err != nil {
			p.logger.Errorf("некорректное значение атрибута '%s': %v", attr.Name, err)
			continue
		}

		value = p.normalizeUnits(ctx, value)

		parsed = append(parsed, ParsedAttribute{
			PositionAttrID: attr.ID,
			OriginalName:   attr.Name,
			OriginalValue:  attr.Value,
			OriginalUnit:   attr.Unit,
			Name:           blobs[0].Name,
			Value:          value,
		})
	}

	p.logger.Infof("атрибуты позиции: всего %d, успешно распаршено %d", len(attributes), len(parsed))
	return parsed
}

// ParseCandidateAttributes разбирает предстандартизированные атрибуты
// кандидата и группирует их по итоговому типу. Поход во внешний
// стандартизатор не нужен: предпочитаются standardized_* поля с откатом
// на original_*.
func (p *Parser) ParseCandidateAttributes(ctx context.Context, attributes []api_models.ProductAttribute) *Grouped {
	grouped := &Grouped{}

	for _, attr := range attributes {
		parsed, err := p.parseCandidateAttribute(ctx, attr)
		if err != nil {
			p.logger.Errorf("ошибка конвертации атрибута кандидата '%s': %v", attr.OriginalName, err)
			continue
		}
		grouped.Add(parsed)
	}

	return grouped
}

func (p *Parser) parseCandidateAttribute(ctx context.Context, attr api_models.ProductAttribute) (ParsedAttribute, error) {
	name := attr.StandardizedName
	if name == "" {
		name = attr.OriginalName
	}

	attrType := attr.AttributeType
	if attrType == "" {
		attrType = "unknown"
	}

	rawValue := attr.StandardizedValue
	if len(rawValue) == 0 || string(rawValue) == "null" {
		encoded, err := json.Marshal(attr.OriginalValue)
		if err != nil {
			return ParsedAttribute{}, fmt.Errorf("кодирование original_value: %w", err)
		}
		rawValue = encoded
	}

	var value TypedValue
	switch attrType {
	case "simple":
		scalar, err := decodeScalar(rawValue)
		if err != nil {
			return ParsedAttribute{}, err
		}
		value = scalarToTypedValue(scalar, attr.StandardizedUnit)
		if value.Kind == KindNumeric && value.Unit != "" {
			value = p.normalizeUnits(ctx, value)
		}
	case "range":
		items, err := decodeValueItems(rawValue, attr.StandardizedUnit)
		if err != nil {
			return ParsedAttribute{}, err
		}
		value, err = rangeFromItems(items)
		if err != nil {
			return ParsedAttribute{}, err
		}
	case "multiple":
		items, err := decodeValueItems(rawValue, attr.StandardizedUnit)
		if err != nil {
			return ParsedAttribute{}, err
		}
		value = multipleFromItems(items)
	default:
		scalar, _ := decodeScalar(rawValue)
		value = TypedValue{Kind: KindUnknown, Text: stringifyScalar(scalar)}
	}

	return ParsedAttribute{
		OriginalName:  attr.OriginalName,
		OriginalValue: stringifyScalar(attr.OriginalValue),
		OriginalUnit:  attr.StandardizedUnit,
		Name:          name,
		Value:         value,
		ValueLemma:    attr.ValueLemma,
	}, nil
}

// valueFromBlob строит TypedValue из ответа стандартизатора.
func (p *Parser) valueFromBlob(blob api_models.StandardizedAttribute) (TypedValue, error) {
	switch blob.Type {
	case "simple":
		var item api_models.ValueItem
		if err := json.Unmarshal(blob.Value, &item); err != nil {
			return TypedValue{}, fmt.Errorf("декодирование simple-значения: %w", err)
		}
		return scalarToTypedValue(item.Value, derefUnit(item.Unit)), nil

	case "range":
		var items []api_models.ValueItem
		if err := json.Unmarshal(blob.Value, &items); err != nil {
			return TypedValue{}, fmt.Errorf("декодирование range-значения: %w", err)
		}
		return rangeFromItems(items)

	case "multiple":
		var items []api_models.ValueItem
		if err := json.Unmarshal(blob.Value, &items); err != nil {
			return TypedValue{}, fmt.Errorf("декодирование multiple-значения: %w", err)
		}
		return multipleFromItems(items), nil

	default:
		return TypedValue{}, fmt.Errorf("неизвестный тип атрибута: %s", blob.Type)
	}
}

// normalizeUnits приводит значение к базовой единице через сервис
// стандартизации юнитов. Для бесконечных границ диапазона нормализуется
// только единица (запрос со значением "1"), тег бесконечности сохраняется.
func (p *Parser) normalizeUnits(ctx context.Context, value TypedValue) TypedValue {
	switch value.Kind {
	case KindNumeric:
		if value.Unit == "" {
			return value
		}
		baseValue, baseUnit, ok := p.normalizeOne(ctx, value.Number, value.Unit)
		if !ok {
			p.logger.Warnf("нормализация юнита не удалась: %v %s", value.Number, value.Unit)
			return value
		}
		value.Number = baseValue
		value.Unit = baseUnit
		return value

	case KindRange:
		if value.Unit == "" {
			return value
		}
		unit := value.Unit
		for _, bound := range []*Bound{&value.Lower, &value.Upper} {
			if bound.Kind == BoundFinite {
				baseValue, baseUnit, ok := p.normalizeOne(ctx, bound.Value, unit)
				if ok {
					bound.Value = baseValue
					value.Unit = baseUnit
				}
				continue
			}
			baseValue, baseUnit, ok := p.normalizeOne(ctx, 1, unit)
			_ = baseValue
			if ok {
				value.Unit = baseUnit
			}
		}
		return value

	case KindMultiple:
		for i, item := range value.Items {
			if item.Kind == KindNumeric && item.Unit != "" {
				value.Items[i] = p.normalizeUnits(ctx, item)
			}
		}
		return value

	default:
		return value
	}
}

func (p *Parser) normalizeOne(ctx context.Context, number float64, unit string) (float64, string, bool) {
	result, err := p.units.NormalizeUnit(ctx, FormatFloat(number), unit)
	if err != nil {
		p.logger.Errorf("ошибка нормализации юнита %v %s: %v", number, unit, err)
		return 0, "", false
	}
	if !result.Success || result.BaseValue == nil || result.BaseUnit == nil {
		return 0, "", false
	}
	return *result.BaseValue, *result.BaseUnit, true
}

// scalarToTypedValue применяет правило подтипа к простому значению.
func scalarToTypedValue(scalar any, unit string) TypedValue {
	switch DetermineValueSubtype(scalar) {
	case KindBoolean:
		b, _ := normalizeBooleanValue(scalar)
		return BooleanValue(b)
	case KindNumeric:
		number, _ := scalarToFloat(scalar)
		return NumericValue(number, unit)
	default:
		return StringValue(stringifyScalar(scalar))
	}
}

func rangeFromItems(items []api_models.ValueItem) (TypedValue, error) {
	if len(items) != 2 {
		return TypedValue{}, fmt.Errorf("диапазон должен содержать две границы, получено %d", len(items))
	}
	lower, err := boundFromScalar(items[0].Value)
	if err != nil {
		return TypedValue{}, err
	}
	upper, err := boundFromScalar(items[1].Value)
	if err != nil {
		return TypedValue{}, err
	}
	unit := derefUnit(items[0].Unit)
	if unit == "" {
		unit = derefUnit(items[1].Unit)
	}
	return RangeValue(lower, upper, unit), nil
}

func multipleFromItems(items []api_models.ValueItem) TypedValue {
	values := make([]TypedValue, 0, len(items))
	for _, item := range items {
		values = append(values, scalarToTypedValue(item.Value, derefUnit(item.Unit)))
	}
	return MultipleValue(values)
}

func boundFromScalar(scalar any) (Bound, error) {
	if s, ok := scalar.(string); ok {
		switch s {
		case "_inf-":
			return NegInfBound(), nil
		case "_inf+":
			return PosInfBound(), nil
		}
	}
	number, err := scalarToFloat(scalar)
	if err != nil {
		return Bound{}, fmt.Errorf("некорректная граница диапазона %v: %w", scalar, err)
	}
	return FiniteBound(number), nil
}

func scalarToFloat(scalar any) (float64, error) {
	switch v := scalar.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return parseDecimal(v)
	default:
		return 0, fmt.Errorf("значение %v (%T) не является числом", scalar, scalar)
	}
}

func stringifyScalar(scalar any) string {
	switch v := scalar.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return FormatFloat(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func derefUnit(unit *string) string {
	if unit == nil {
		return ""
	}
	return *unit
}

// decodeScalar декодирует произвольный JSON-скаляр.
func decodeScalar(raw json.RawMessage) (any, error) {
	var scalar any
	if err := json.Unmarshal(raw, &scalar); err != nil {
		return nil, fmt.Errorf("декодирование значения: %w", err)
	}
	return scalar, nil
}

// decodeValueItems декодирует список элементов значения, допуская как
// объекты {"value", "unit"}, так и голые скаляры (юнит берется из
// атрибута).
func decodeValueItems(raw json.RawMessage, fallbackUnit string) ([]api_models.ValueItem, error) {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(raw, &rawItems); err != nil {
		// Одиночный скаляр трактуем как список из одного элемента.
		scalar, scalarErr := decodeScalar(raw)
		if scalarErr != nil {
			return nil, fmt.Errorf("декодирование списка значений: %w", err)
		}
		unit := fallbackUnit
		return []api_models.ValueItem{{Value: scalar, Unit: &unit}}, nil
	}

	items := make([]api_models.ValueItem, 0, len(rawItems))
	for _, rawItem := range rawItems {
		var item api_models.ValueItem
		if err := json.Unmarshal(rawItem, &item); err == nil && (item.Value != nil || item.Unit != nil) {
			if item.Unit == nil {
				unit := fallbackUnit
				item.Unit = &unit
			}
			items = append(items, item)
			continue
		}
		scalar, err := decodeScalar(rawItem)
		if err != nil {
			return nil, err
		}
		unit := fallbackUnit
		items = append(items, api_models.ValueItem{Value: scalar, Unit: &unit})
	}
	return items, nil
}
