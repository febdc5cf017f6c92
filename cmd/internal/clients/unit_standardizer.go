package clients

import (
	"context"
	"net/http"

	"github.com/zhukovvlad/matcher-go/cmd/internal/api_models"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

// UnitStandardizer — клиент сервиса приведения единиц измерения к базовым.
type UnitStandardizer struct {
	apiURL string
	client *http.Client
	logger *logging.Logger
}

func NewUnitStandardizer(apiURL string, pool *Pool, logger *logging.Logger) *UnitStandardizer {
	return &UnitStandardizer{
		apiURL: apiURL,
		client: pool.HTTPClient("unit_standardizer"),
		logger: logger,
	}
}

// NormalizeUnit приводит пару (значение, юнит) к базовой единице.
// При отказе сервиса возвращается результат с Success=false — вызывающая
// сторона оставляет исходные значение и юнит.
func (s *UnitStandardizer) NormalizeUnit(ctx context.Context, value, unit string) (api_models.UnitNormalization, error) {
	var result api_models.UnitNormalization

	payload := map[string]string{"value": value, "unit": unit}

	err := doWithRetry(ctx, func(ctx context.Context) error {
		result = api_models.UnitNormalization{}
		return postJSON(ctx, s.client, s.apiURL+"/api/v1/normalize", payload, &result)
	})
	if err != nil {
		if IsDegraded(err) {
			return api_models.UnitNormalization{}, nil
		}
		s.logger.Errorf("ошибка при стандартизации юнитов: %v", err)
		return api_models.UnitNormalization{}, err
	}

	return result, nil
}
