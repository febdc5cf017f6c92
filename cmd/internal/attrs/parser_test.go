package attrs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhukovvlad/matcher-go/cmd/internal/api_models"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

/*
BEHAVIORAL SCENARIOS FOR ATTRIBUTE PARSING

GIVEN / WHEN / THEN Scenarios:
================================================================================

SCENARIO 1: Position attribute parsing
- GIVEN a raw position attribute with a unit
  WHEN it is standardized and normalized
  THEN the typed value carries the base unit and converted number

- GIVEN the standardizer returns an empty response for one attribute
  WHEN the position is parsed
  THEN the attribute is skipped and its siblings survive

SCENARIO 2: Range and multiple values
- GIVEN a range with an infinite upper bound
  WHEN parsed
  THEN the bound keeps its infinity tag

SCENARIO 3: Candidate attribute parsing
- GIVEN pre-standardized product attributes of mixed types
  WHEN parsed
  THEN they are grouped by the final type tag, falling back to
       original_* fields when standardized_* are empty
*/

type fakeStandardizer struct {
	responses map[string][]api_models.StandardizedAttribute
}

func (f *fakeStandardizer) ExtractAttrData(_ context.Context, raw string) ([]api_models.StandardizedAttribute, error) {
	return f.responses[raw], nil
}

type fakeUnits struct {
	normalizations map[string]api_models.UnitNormalization
}

func (f *fakeUnits) NormalizeUnit(_ context.Context, value, unit string) (api_models.UnitNormalization, error) {
	if result, ok := f.normalizations[value+" "+unit]; ok {
		return result, nil
	}
	return api_models.UnitNormalization{}, nil
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

func TestParsePositionAttributes(t *testing.T) {
	logger := logging.GetLogger()

	t.Run("числовой атрибут с конвертацией юнита", func(t *testing.T) {
		standardizer := &fakeStandardizer{responses: map[string][]api_models.StandardizedAttribute{
			"Длина: 100 см": {{
				Name:  "длина",
				Type:  "simple",
				Value: json.RawMessage(`{"value": "100", "unit": "см"}`),
			}},
		}}
		units := &fakeUnits{normalizations: map[string]api_models.UnitNormalization{
			"100 см": {Success: true, BaseValue: floatPtr(1), BaseUnit: strPtr("м")},
		}}
		parser := NewParser(standardizer, units, logger)

		parsed := parser.ParsePositionAttributes(context.Background(), []PositionAttribute{
			{ID: 7, Name: "Длина", Value: "100", Unit: "см"},
		})

		require.Len(t, parsed, 1)
		assert.Equal(t, int64(7), parsed[0].PositionAttrID)
		assert.Equal(t, "длина", parsed[0].Name)
		assert.Equal(t, KindNumeric, parsed[0].Kind())
		assert.Equal(t, 1.0, parsed[0].Value.Number)
		assert.Equal(t, "м", parsed[0].Value.Unit)
	})

	t.Run("нераспаршенный атрибут пропускается, соседи выживают", func(t *testing.T) {
		standardizer := &fakeStandardizer{responses: map[string][]api_models.StandardizedAttribute{
			"Цвет: синий": {{
				Name:  "цвет",
				Type:  "simple",
				Value: json.RawMessage(`{"value": "синий", "unit": null}`),
			}},
		}}
		parser := NewParser(standardizer, &fakeUnits{}, logger)

		parsed := parser.ParsePositionAttributes(context.Background(), []PositionAttribute{
			{ID: 1, Name: "Неизвестно", Value: "???"},
			{ID: 2, Name: "Цвет", Value: "синий"},
		})

		require.Len(t, parsed, 1)
		assert.Equal(t, int64(2), parsed[0].PositionAttrID)
		assert.Equal(t, KindString, parsed[0].Kind())
		assert.Equal(t, "синий", parsed[0].Value.Text)
	})

	t.Run("диапазон с бесконечной верхней границей", func(t *testing.T) {
		standardizer := &fakeStandardizer{responses: map[string][]api_models.StandardizedAttribute{
			"Температура: от -40": {{
				Name:  "температура",
				Type:  "range",
				Value: json.RawMessage(`[{"value": -40, "unit": null}, {"value": "_inf+", "unit": null}]`),
			}},
		}}
		parser := NewParser(standardizer, &fakeUnits{}, logger)

		parsed := parser.ParsePositionAttributes(context.Background(), []PositionAttribute{
			{ID: 3, Name: "Температура", Value: "от -40"},
		})

		require.Len(t, parsed, 1)
		assert.Equal(t, KindRange, parsed[0].Kind())
		assert.Equal(t, FiniteBound(-40), parsed[0].Value.Lower)
		assert.Equal(t, PosInfBound(), parsed[0].Value.Upper)
	})

	t.Run("multiple значение", func(t *testing.T) {
		standardizer := &fakeStandardizer{responses: map[string][]api_models.StandardizedAttribute{
			"Материал: сталь, алюминий": {{
				Name:  "материал",
				Type:  "multiple",
				Value: json.RawMessage(`[{"value": "сталь", "unit": null}, {"value": "алюминий", "unit": null}]`),
			}},
		}}
		parser := NewParser(standardizer, &fakeUnits{}, logger)

		parsed := parser.ParsePositionAttributes(context.Background(), []PositionAttribute{
			{ID: 4, Name: "Материал", Value: "сталь, алюминий"},
		})

		require.Len(t, parsed, 1)
		require.Equal(t, KindMultiple, parsed[0].Kind())
		require.Len(t, parsed[0].Value.Items, 2)
		assert.Equal(t, "сталь", parsed[0].Value.Items[0].Text)
		assert.Equal(t, "алюминий", parsed[0].Value.Items[1].Text)
	})
}

func TestParseCandidateAttributes(t *testing.T) {
	logger := logging.GetLogger()
	parser := NewParser(&fakeStandardizer{}, &fakeUnits{}, logger)

	t.Run("группировка по итоговому типу", func(t *testing.T) {
		grouped := parser.ParseCandidateAttributes(context.Background(), []api_models.ProductAttribute{
			{
				OriginalName:      "Длина",
				StandardizedName:  "длина",
				AttributeType:     "simple",
				StandardizedValue: json.RawMessage(`100`),
				StandardizedUnit:  "",
			},
			{
				OriginalName:      "Съемная батарея",
				StandardizedName:  "съемная батарея",
				AttributeType:     "simple",
				StandardizedValue: json.RawMessage(`"да"`),
			},
			{
				OriginalName:      "Рабочее напряжение",
				StandardizedName:  "рабочее напряжение",
				AttributeType:     "range",
				StandardizedValue: json.RawMessage(`[{"value": 1, "unit": "В"}, {"value": 12, "unit": "В"}]`),
			},
		})

		assert.Equal(t, 3, grouped.Total())
		require.Len(t, grouped.Numeric, 1)
		assert.Equal(t, 100.0, grouped.Numeric[0].Value.Number)
		require.Len(t, grouped.Boolean, 1)
		assert.True(t, grouped.Boolean[0].Value.Bool)
		require.Len(t, grouped.Range, 1)
		assert.Equal(t, "В", grouped.Range[0].Value.Unit)
	})

	t.Run("откат на original_* поля", func(t *testing.T) {
		grouped := parser.ParseCandidateAttributes(context.Background(), []api_models.ProductAttribute{
			{
				OriginalName:  "Цвет",
				OriginalValue: "красный",
				AttributeType: "simple",
			},
		})

		require.Len(t, grouped.String, 1)
		assert.Equal(t, "Цвет", grouped.String[0].Name)
		assert.Equal(t, "красный", grouped.String[0].Value.Text)
	})

	t.Run("неизвестный тип уходит в unknown", func(t *testing.T) {
		grouped := parser.ParseCandidateAttributes(context.Background(), []api_models.ProductAttribute{
			{
				OriginalName:      "Комплектация",
				StandardizedValue: json.RawMessage(`"кабель"`),
			},
		})

		assert.Len(t, grouped.Unknown, 1)
		assert.Empty(t, grouped.String)
	})
}
