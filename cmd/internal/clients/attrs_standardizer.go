package clients

import (
	"context"
	"net/http"

	"github.com/zhukovvlad/matcher-go/cmd/internal/api_models"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

// AttrsStandardizer — клиент сервиса разбора сырых строк характеристик.
type AttrsStandardizer struct {
	apiURL string
	client *http.Client
	logger *logging.Logger
}

func NewAttrsStandardizer(apiURL string, pool *Pool, logger *logging.Logger) *AttrsStandardizer {
	return &AttrsStandardizer{
		apiURL: apiURL,
		client: pool.HTTPClient("attrs_standardizer"),
		logger: logger,
	}
}

// ExtractAttrData вычленяет имя, тип и значение из сырой строки
// характеристики. Пустой или отклоненный ответ деградирует до пустого
// результата: атрибут выпадает из мэтчинга, конвейер не прерывается.
func (s *AttrsStandardizer) ExtractAttrData(ctx context.Context, raw string) ([]api_models.StandardizedAttribute, error) {
	var result []api_models.StandardizedAttribute

	err := doWithRetry(ctx, func(ctx context.Context) error {
		result = result[:0]
		return postJSON(ctx, s.client, s.apiURL+"/standardize", []string{raw}, &result)
	})
	if err != nil {
		if IsDegraded(err) {
			return nil, nil
		}
		s.logger.Errorf("ошибка при вычленении сущностей из характеристики: %v", err)
		return nil, err
	}

	return result, nil
}
