package ngram

import (
	"strings"
	"unicode"
)

// Trigrammer — локальное сравнение строк по n-граммам.
// Используется как дешевый первый фильтр вместо похода в семантический
// сервис: сумма шести коэффициентов Жаккара (биграммы и триграммы в трех
// кодировках), диапазон [0, 6].
type Trigrammer struct{}

func NewTrigrammer() *Trigrammer {
	return &Trigrammer{}
}

// CleanText очищает текст от знаков препинания, оставляя только буквы,
// цифры и пробелы, сводит повторные пробелы к одному и приводит к нижнему
// регистру. separator подставляется вместо пробелов.
func (t *Trigrammer) CleanText(text string, separator string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Join(strings.Fields(b.String()), " ")
	cleaned = strings.ToLower(cleaned)
	if separator != " " {
		cleaned = strings.ReplaceAll(cleaned, " ", separator)
	}
	return cleaned
}

// NGramSet строит множество n-грамм текста. Для строк короче n возвращается
// пустое множество. При padding текст дополняется '_' x (n-1) с обеих сторон.
func (t *Trigrammer) NGramSet(text string, n int, padding bool) map[string]struct{} {
	set := make(map[string]struct{})
	runes := []rune(text)
	if len(runes) < n {
		return set
	}
	if padding {
		pad := []rune(strings.Repeat("_", n-1))
		padded := make([]rune, 0, len(runes)+2*len(pad))
		padded = append(padded, pad...)
		padded = append(padded, runes...)
		padded = append(padded, pad...)
		runes = padded
	}
	for i := 0; i+n <= len(runes); i++ {
		set[string(runes[i:i+n])] = struct{}{}
	}
	return set
}

// Jaccard вычисляет коэффициент схожести Жаккара между двумя множествами.
// Два пустых множества считаются полностью совпадающими.
func (t *Trigrammer) Jaccard(set1, set2 map[string]struct{}) float64 {
	if len(set1) == 0 && len(set2) == 0 {
		return 1.0
	}
	if len(set1) == 0 || len(set2) == 0 {
		return 0.0
	}

	intersection := 0
	for gram := range set1 {
		if _, ok := set2[gram]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection

	return float64(intersection) / float64(union)
}

// CompareTwoStrings сравнивает две строки как сумму шести оценок Жаккара:
// биграммы и триграммы по трем кодировкам (с пробелами, с подчеркиваниями,
// с подчеркиваниями и паддингом). Результат в диапазоне [0, 6].
func (t *Trigrammer) CompareTwoStrings(string1, string2 string) float64 {
	spaced1 := t.CleanText(string1, " ")
	joined1 := t.CleanText(string1, "_")
	spaced2 := t.CleanText(string2, " ")
	joined2 := t.CleanText(string2, "_")

	total := 0.0
	for _, n := range []int{2, 3} {
		total += t.Jaccard(t.NGramSet(spaced1, n, false), t.NGramSet(spaced2, n, false))
		total += t.Jaccard(t.NGramSet(joined1, n, false), t.NGramSet(joined2, n, false))
		total += t.Jaccard(t.NGramSet(joined1, n, true), t.NGramSet(joined2, n, true))
	}
	return total
}
