package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetFormat(t *testing.T) {
	logger := GetLogger()
	t.Cleanup(func() { SetFormat("text") })

	t.Run("json переключает форматтер", func(t *testing.T) {
		SetFormat("json")
		assert.IsType(t, &logrus.JSONFormatter{}, logger.Logger.Formatter)
	})

	t.Run("text возвращает текстовый формат", func(t *testing.T) {
		SetFormat("json")
		SetFormat("text")
		assert.IsType(t, &logrus.TextFormatter{}, logger.Logger.Formatter)
	})

	t.Run("неизвестный формат не меняет текущий", func(t *testing.T) {
		SetFormat("text")
		SetFormat("xml")
		assert.IsType(t, &logrus.TextFormatter{}, logger.Logger.Formatter)
	})
}

func TestSetLevel(t *testing.T) {
	logger := GetLogger()
	t.Cleanup(func() { SetLevel("info") })

	SetLevel("debug")
	assert.Equal(t, logrus.DebugLevel, logger.Logger.GetLevel())

	// Опечатка в конфигурации не роняет сервис и не трогает уровень.
	SetLevel("loud")
	assert.Equal(t, logrus.DebugLevel, logger.Logger.GetLevel())
}
