package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineValueSubtype(t *testing.T) {
	t.Run("нативный bool", func(t *testing.T) {
		assert.Equal(t, KindBoolean, DetermineValueSubtype(true))
	})

	t.Run("число", func(t *testing.T) {
		assert.Equal(t, KindNumeric, DetermineValueSubtype(42.5))
	})

	t.Run("строка с числом", func(t *testing.T) {
		assert.Equal(t, KindNumeric, DetermineValueSubtype("12"))
	})

	t.Run("число с запятой как разделителем", func(t *testing.T) {
		assert.Equal(t, KindNumeric, DetermineValueSubtype("12,5"))
	})

	// "1" и "0" есть в булевом лексиконе, но числовая проверка идет первой.
	t.Run("строка 1 трактуется как число", func(t *testing.T) {
		assert.Equal(t, KindNumeric, DetermineValueSubtype("1"))
	})

	t.Run("булев лексикон ru", func(t *testing.T) {
		assert.Equal(t, KindBoolean, DetermineValueSubtype("да"))
		assert.Equal(t, KindBoolean, DetermineValueSubtype("Нет"))
		assert.Equal(t, KindBoolean, DetermineValueSubtype(" отсутствует "))
	})

	t.Run("булев лексикон en", func(t *testing.T) {
		assert.Equal(t, KindBoolean, DetermineValueSubtype("yes"))
		assert.Equal(t, KindBoolean, DetermineValueSubtype("FALSE"))
	})

	t.Run("обычная строка", func(t *testing.T) {
		assert.Equal(t, KindString, DetermineValueSubtype("нержавеющая сталь"))
	})

	t.Run("nil дает строку", func(t *testing.T) {
		assert.Equal(t, KindString, DetermineValueSubtype(nil))
	})
}

func TestNormalizeBooleanValue(t *testing.T) {
	t.Run("позитивные значения лексикона", func(t *testing.T) {
		for _, raw := range []string{"да", "есть", "имеется", "вкл", "включено", "true", "yes"} {
			b, ok := normalizeBooleanValue(raw)
			assert.True(t, ok, raw)
			assert.True(t, b, raw)
		}
	})

	t.Run("негативные значения лексикона", func(t *testing.T) {
		for _, raw := range []string{"нет", "отсутствует", "не имеется", "выкл", "выключено", "false", "no"} {
			b, ok := normalizeBooleanValue(raw)
			assert.True(t, ok, raw)
			assert.False(t, b, raw)
		}
	})

	t.Run("нераспознанная строка", func(t *testing.T) {
		_, ok := normalizeBooleanValue("синий")
		assert.False(t, ok)
	})
}

func TestParseDecimal(t *testing.T) {
	t.Run("точка", func(t *testing.T) {
		v, err := ParseDecimal("3.14")
		assert.NoError(t, err)
		assert.Equal(t, 3.14, v)
	})

	t.Run("запятая", func(t *testing.T) {
		v, err := ParseDecimal(" 3,14 ")
		assert.NoError(t, err)
		assert.Equal(t, 3.14, v)
	})

	t.Run("не число", func(t *testing.T) {
		_, err := ParseDecimal("алюминий")
		assert.Error(t, err)
	})
}
