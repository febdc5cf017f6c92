package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zhukovvlad/matcher-go/cmd/internal/api_models"
)

func (s *Server) healthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// compareStringsHandler считает локальную n-граммную близость пары строк.
// Оценка — сумма шести коэффициентов Жаккара, диапазон [0, 6].
func (s *Server) compareStringsHandler(c *gin.Context) {
	var req api_models.CompareStringsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	score := s.trigrammer.CompareTwoStrings(req.String1, req.String2)
	c.JSON(http.StatusOK, gin.H{"score": score})
}

// compareStringsSemanticHandler проксирует пару строк во внешний сервис
// семантического сравнения. Оценка в диапазоне [0, 1].
func (s *Server) compareStringsSemanticHandler(c *gin.Context) {
	var req api_models.CompareStringsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	score, err := s.semantic.CompareTwoStrings(c.Request.Context(), req.String1, req.String2)
	if err != nil {
		s.logger.Errorf("отладочное семантическое сравнение: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": score})
}

// selectCandidatesHandler выполняет выборку кандидатов из поискового
// индекса напрямую, минуя брокер. Используется для отладки запроса.
func (s *Server) selectCandidatesHandler(c *gin.Context) {
	var req api_models.ESCandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	hits, err := s.candidates.SelectCandidates(
		c.Request.Context(),
		req.IndexName,
		req.PositionTitle,
		req.PositionYandexCategory,
		req.Size,
	)
	if err != nil {
		s.logger.Errorf("отладочная выборка кандидатов: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(hits),
		"hits":  hits,
	})
}
