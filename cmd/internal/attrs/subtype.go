package attrs

import (
	"strconv"
	"strings"
)

// Лексикон текстовых булевых значений (ru/en), по которому строковое
// значение simple-атрибута классифицируется как boolean.
var booleanLexicon = map[string]bool{
	"да":        true,
	"нет":       false,
	"true":      true,
	"false":     false,
	"yes":       true,
	"no":        false,
	"есть":      true,
	"отсутствует": false,
	"имеется":   true,
	"не имеется": false,
	"1":         true,
	"0":         false,
	"вкл":       true,
	"выкл":      false,
	"включено":  true,
	"выключено": false,
}

// DetermineValueSubtype определяет подтип простого значения:
// boolean, numeric или string.
func DetermineValueSubtype(value any) Kind {
	switch v := value.(type) {
	case bool:
		return KindBoolean
	case float64:
		return KindNumeric
	case int, int64:
		return KindNumeric
	case string:
		if _, err := parseDecimal(v); err == nil {
			return KindNumeric
		}
		if _, ok := booleanLexicon[strings.ToLower(strings.TrimSpace(v))]; ok {
			return KindBoolean
		}
		return KindString
	case nil:
		return KindString
	default:
		return KindString
	}
}

// parseDecimal разбирает десятичное число с точкой или запятой.
func parseDecimal(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(cleaned, 64)
}

// ParseDecimal — экспортированный вариант parseDecimal для компаратора.
func ParseDecimal(s string) (float64, error) {
	return parseDecimal(s)
}

// normalizeBooleanValue переводит скалярное значение в bool по лексикону.
// Второй результат false, если значение не распознано как булево.
func normalizeBooleanValue(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case float64:
		return v != 0, true
	case string:
		b, ok := booleanLexicon[strings.ToLower(strings.TrimSpace(v))]
		return b, ok
	default:
		return false, false
	}
}
