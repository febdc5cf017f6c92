package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"github.com/zhukovvlad/matcher-go/cmd/internal/api_models"
	"github.com/zhukovvlad/matcher-go/cmd/internal/config"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

// ElasticRepository — выборка товаров-кандидатов из поискового индекса.
type ElasticRepository struct {
	es     *elasticsearch.Client
	index  string
	size   int
	logger *logging.Logger
}

func NewElasticRepository(cfg config.ElasticConfig, logger *logging.Logger) (*ElasticRepository, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:  []string{cfg.DSN},
		MaxRetries: cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("создание клиента elasticsearch: %w", err)
	}

	return &ElasticRepository{
		es:     es,
		index:  cfg.Index,
		size:   cfg.CandidatesQty,
		logger: logger,
	}, nil
}

// candidatesQuery строит bool-запрос первой версии отбора: обязательный
// match по названию и опциональный буст по категории — точным термом и
// мягким match одновременно.
func candidatesQuery(title, yandexCategory string, size int) map[string]any {
	boolQuery := map[string]any{
		"must": []any{
			map[string]any{
				"match": map[string]any{
					"title": map[string]any{
						"query":    title,
						"operator": "or",
					},
				},
			},
		},
	}

	if yandexCategory != "" {
		boolQuery["should"] = []any{
			map[string]any{
				"term": map[string]any{
					"yandex_category.exact": yandexCategory,
				},
			},
			map[string]any{
				"match": map[string]any{
					"yandex_category": yandexCategory,
				},
			},
		}
	}

	return map[string]any{
		"size":  size,
		"query": map[string]any{"bool": boolQuery},
	}
}

// SelectCandidates возвращает до ES_CANDIDATES_QTY товаров, релевантных
// названию позиции. index пустой — используется индекс из конфигурации,
// size <= 0 — лимит из конфигурации.
func (r *ElasticRepository) SelectCandidates(ctx context.Context, index, title, yandexCategory string, size int) ([]api_models.ProductHit, error) {
	if index == "" {
		index = r.index
	}
	if size <= 0 {
		size = r.size
	}

	body, err := json.Marshal(candidatesQuery(title, yandexCategory, size))
	if err != nil {
		return nil, fmt.Errorf("кодирование поискового запроса: %w", err)
	}

	res, err := r.es.Search(
		r.es.Search.WithContext(ctx),
		r.es.Search.WithIndex(index),
		r.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("поиск кандидатов: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("поисковый индекс вернул ошибку %s: %s", res.Status(), msg)
	}

	var response api_models.CandidatesResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("декодирование выдачи кандидатов: %w", err)
	}

	return response.Hits.Hits, nil
}

// Ping проверяет доступность кластера при старте приложения.
func (r *ElasticRepository) Ping(ctx context.Context) error {
	res, err := r.es.Ping(r.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("пинг elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch недоступен: %s", res.Status())
	}
	return nil
}
