package server

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/zhukovvlad/matcher-go/cmd/internal/config"
	"github.com/zhukovvlad/matcher-go/cmd/internal/ngram"
	"github.com/zhukovvlad/matcher-go/cmd/internal/services/consumer"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

// SemanticComparer — внешний сервис семантического сравнения пары строк.
type SemanticComparer interface {
	CompareTwoStrings(ctx context.Context, s1, s2 string) (float64, error)
}

// Server — отладочный HTTP-интерфейс сервиса мэтчинга: health-чек и
// ручки для проверки n-граммного и семантического сравнения и выборки
// кандидатов без брокера.
type Server struct {
	router     *gin.Engine
	logger     *logging.Logger
	trigrammer *ngram.Trigrammer
	semantic   SemanticComparer
	candidates consumer.CandidateSource
	config     *config.Config
}

func NewServer(
	trigrammer *ngram.Trigrammer,
	semantic SemanticComparer,
	candidates consumer.CandidateSource,
	cfg *config.Config,
	logger *logging.Logger,
) *Server {
	server := &Server{
		logger:     logger,
		trigrammer: trigrammer,
		semantic:   semantic,
		candidates: candidates,
		config:     cfg,
	}

	if cfg.IsDebug == nil || !*cfg.IsDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Настройка CORS
	corsConfig := cors.DefaultConfig()
	if cfg.IsDebug != nil && *cfg.IsDebug {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With"}
	} else {
		// Отладочные ручки наружу не выставляются, в production CORS закрыт
		corsConfig.AllowOrigins = []string{}
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", server.healthzHandler)

	v1 := router.Group("/api/v1")
	v1.Use(DebugRateLimitMiddleware(50, 100))
	{
		v1.POST("/compare/strings", server.compareStringsHandler)
		v1.POST("/compare/strings/semantic", server.compareStringsSemanticHandler)
		v1.POST("/select/es_1", server.selectCandidatesHandler)
	}

	server.router = router
	return server
}

func (s *Server) Start(address string) error {
	return s.router.Run(address)
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
