package clients

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/zhukovvlad/matcher-go/cmd/internal/api_models"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

// SemanticMatcher — клиент сервиса семантического сравнения строк.
type SemanticMatcher struct {
	apiURL string
	client *http.Client
	logger *logging.Logger
}

func NewSemanticMatcher(apiURL string, pool *Pool, logger *logging.Logger) *SemanticMatcher {
	return &SemanticMatcher{
		apiURL: apiURL,
		client: pool.HTTPClient("semantic_matcher"),
		logger: logger,
	}
}

// CompareTwoStrings возвращает семантическую близость пары строк в
// диапазоне [0, 1]. Строки приводятся к нижнему регистру перед отправкой.
func (s *SemanticMatcher) CompareTwoStrings(ctx context.Context, s1, s2 string) (float64, error) {
	payload := []string{strings.ToLower(s1), strings.ToLower(s2)}

	var result api_models.SemanticScore
	err := doWithRetry(ctx, func(ctx context.Context) error {
		result = api_models.SemanticScore{}
		return postJSON(ctx, s.client, s.apiURL+"/api/v1/comparsion/strings", payload, &result)
	})
	if err != nil {
		s.logger.Errorf("ошибка при семантическом сравнении строк: %v", err)
		return 0, err
	}

	return result.Score, nil
}

// CompareStringsBatch сравнивает пачку пар одним запросом и возвращает
// оценки в порядке пар. Размер ответа обязан совпадать с размером пачки.
func (s *SemanticMatcher) CompareStringsBatch(ctx context.Context, pairs [][2]string) ([]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	payload := make([][]string, 0, len(pairs))
	for _, pair := range pairs {
		payload = append(payload, []string{strings.ToLower(pair[0]), strings.ToLower(pair[1])})
	}

	var scores []float64
	err := doWithRetry(ctx, func(ctx context.Context) error {
		scores = scores[:0]
		return postJSON(ctx, s.client, s.apiURL+"/api/v1/comparsion/strings/batch", payload, &scores)
	})
	if err != nil {
		s.logger.Errorf("ошибка при пакетном семантическом сравнении: %v", err)
		return nil, err
	}

	if len(scores) != len(pairs) {
		return nil, fmt.Errorf("размер ответа %d не совпадает с размером пачки %d", len(scores), len(pairs))
	}

	return scores, nil
}
