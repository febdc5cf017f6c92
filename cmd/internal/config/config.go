package config

import (
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

// ServicesConfig — адреса внешних NLP-сервисов.
type ServicesConfig struct {
	AttrsStandardizerURL string `yaml:"attrs_standardizer_url" env:"ATTRS_STANDARDIZER_URL" env-required:"true"`
	UnitStandardizerURL  string `yaml:"unit_standardizer_url" env:"UNIT_STANDARDIZER_URL" env-required:"true"`
	SemanticMatcherURL   string `yaml:"semantic_matcher_url" env:"SEMANTIC_MATCHER_URL" env-required:"true"`
}

// MatchingConfig — пороги и лимиты пайплайна отбора кандидатов.
type MatchingConfig struct {
	SemaphoreSize           int64   `yaml:"shrinker_semaphore_size" env:"SHRINKER_SEMAPHORE_SIZE" env-default:"100"`
	CandidatesTrasholdScore float64 `yaml:"candidates_trashold_score" env:"CANDIDATES_TRASHOLD_SCORE" env-default:"0.7"`
	ThresholdAttributeMatch float64 `yaml:"threshold_attribute_match" env:"THRESHOLD_ATTRIBUTE_MATCH" env-default:"0.73"`
	ThresholdValueMatch     float64 `yaml:"threshold_value_match" env:"THRESHOLD_VALUE_MATCH" env-default:"0.85"`
	NumericTolerance        float64 `yaml:"numeric_tolerance" env:"NUMERIC_TOLERANCE" env-default:"0.1"`
}

// ElasticConfig — подключение к поисковому индексу товаров.
type ElasticConfig struct {
	DSN           string `yaml:"dsn" env:"ES_DSN" env-default:"http://elasticsearch:9200"`
	Index         string `yaml:"index" env:"ES_INDEX" env-default:"products_v1"`
	CandidatesQty int    `yaml:"candidates_qty" env:"ES_CANDIDATES_QTY" env-default:"100"`
	MaxRetries    int    `yaml:"max_retries" env:"ES_MAX_RETRIES" env-default:"3"`
}

type Config struct {
	IsDebug *bool `yaml:"is_debug" env:"IS_DEBUG" env-required:"true"`
	Listen  struct {
		BindIP string `yaml:"bind_ip" env:"API_HOST" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env:"API_PORT" env-default:"8011"`
	} `yaml:"listen"`
	LogLevel    string         `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat   string         `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`
	PostgresDSN string         `yaml:"postgres_dsn" env:"POSTGRES_DSN" env-required:"true"`
	RabbitDSN   string         `yaml:"rabbitmq_dsn" env:"RABBITMQ_DSN" env-required:"true"`
	Elastic     ElasticConfig  `yaml:"elastic"`
	Matching    MatchingConfig `yaml:"matching"`
	Services    ServicesConfig `yaml:"services"`
}

var instance *Config
var once sync.Once

func GetConfig() *Config {
	once.Do(func() {
		logger := logging.GetLogger()
		logger.Info("read application configuration")
		instance = &Config{}
		if err := cleanenv.ReadConfig("./cmd/config/config.yml", instance); err != nil {
			help, _ := cleanenv.GetDescription(instance, nil)
			logger.Info(help)
			logger.Fatal(err)
		}
	})

	return instance
}
