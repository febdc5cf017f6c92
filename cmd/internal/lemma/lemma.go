package lemma

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// Normalizer приводит строку к канонической форме для сравнения
// строковых значений. Реализация может отсутствовать: вызывающая сторона
// обязана откатываться на регистронезависимое равенство.
type Normalizer interface {
	Normalize(text string) string
}

var (
	cyrillicPattern = regexp.MustCompile(`[а-яА-ЯёЁ]`)
	latinPattern    = regexp.MustCompile(`[a-zA-Z]`)
	tokenPattern    = regexp.MustCompile(`[\p{L}\p{N}]+`)
)

// Stemmer — нормализатор на основе стеммера Snowball. Работает локально и
// служит откатом, когда предвычисленная лемма значения недоступна.
type Stemmer struct{}

func NewStemmer() *Stemmer {
	return &Stemmer{}
}

// Normalize токенизирует строку, определяет язык каждого слова и стеммит
// его. Слова на смешанном или неопознанном языке остаются как есть.
func (s *Stemmer) Normalize(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}

	lowered := strings.ToLower(trimmed)
	if lowered == "true" || lowered == "false" {
		return lowered
	}

	words := tokenPattern.FindAllString(strings.ReplaceAll(lowered, "-", " "), -1)
	stems := make([]string, 0, len(words))
	for _, word := range words {
		stems = append(stems, stemWord(word))
	}
	return strings.Join(stems, " ")
}

func stemWord(word string) string {
	var language string
	switch detectLanguage(word) {
	case "ru":
		language = "russian"
	case "en":
		language = "english"
	default:
		return word
	}

	stemmed, err := snowball.Stem(word, language, false)
	if err != nil {
		return word
	}
	return stemmed
}

// detectLanguage определяет язык текста по наличию кириллицы и латиницы.
func detectLanguage(text string) string {
	hasCyrillic := cyrillicPattern.MatchString(text)
	hasLatin := latinPattern.MatchString(text)

	switch {
	case hasCyrillic && !hasLatin:
		return "ru"
	case hasLatin && !hasCyrillic:
		return "en"
	case hasCyrillic && hasLatin:
		return "mixed"
	default:
		return "unknown"
	}
}
