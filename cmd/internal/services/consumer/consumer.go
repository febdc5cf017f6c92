package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/zhukovvlad/matcher-go/cmd/internal/api_models"
	db "github.com/zhukovvlad/matcher-go/cmd/internal/db/sqlc"
	"github.com/zhukovvlad/matcher-go/cmd/internal/services/shrinker"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

const (
	exchangeName = "tender.events"
	queueName    = "matching_queue"
	routingKey   = "tender.ready_for_matching"
)

// CandidateSource — поисковый индекс товаров как непрозрачный источник
// кандидатов.
type CandidateSource interface {
	SelectCandidates(ctx context.Context, index, title, yandexCategory string, size int) ([]api_models.ProductHit, error)
}

// TenderConsumer читает события о готовых к мэтчингу тендерах и
// прогоняет позиции тендера через PositionMatcher. Позиции одного
// тендера обрабатываются последовательно; ошибка одной позиции
// логируется и не прерывает остальные.
type TenderConsumer struct {
	dsn        string
	store      db.Store
	candidates CandidateSource
	matcher    *shrinker.PositionMatcher
	logger     *logging.Logger
}

func NewTenderConsumer(
	dsn string,
	store db.Store,
	candidates CandidateSource,
	matcher *shrinker.PositionMatcher,
	logger *logging.Logger,
) *TenderConsumer {
	return &TenderConsumer{
		dsn:        dsn,
		store:      store,
		candidates: candidates,
		matcher:    matcher,
		logger:     logger,
	}
}

// Run подключается к брокеру, объявляет топологию и обрабатывает
// сообщения до отмены контекста.
func (c *TenderConsumer) Run(ctx context.Context) error {
	conn, err := amqp.Dial(c.dsn)
	if err != nil {
		return fmt.Errorf("подключение к брокеру: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("открытие канала: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("объявление обменника %s: %w", exchangeName, err)
	}

	queue, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("объявление очереди %s: %w", queueName, err)
	}

	if err := ch.QueueBind(queue.Name, routingKey, exchangeName, false, nil); err != nil {
		return fmt.Errorf("привязка очереди %s: %w", queue.Name, err)
	}

	deliveries, err := ch.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("подписка на очередь %s: %w", queue.Name, err)
	}

	c.logger.Infof("консьюмер запущен: очередь %s, ключ маршрутизации %s", queue.Name, routingKey)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("канал доставки закрыт брокером")
			}
			c.handleDelivery(ctx, delivery)
		}
	}
}

// handleDelivery обрабатывает одно сообщение и подтверждает его
// независимо от исхода: повторная доставка не спасет от ошибки данных,
// а транзиентные ошибки уже поглощены ретраями клиентов.
func (c *TenderConsumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	defer func() {
		if err := delivery.Ack(false); err != nil {
			c.logger.Errorf("подтверждение сообщения: %v", err)
		}
	}()

	var msg api_models.TenderReadyMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		c.logger.Errorf("некорректное тело сообщения: %v", err)
		return
	}

	if err := c.ProcessTender(ctx, msg); err != nil {
		c.logger.Errorf("ошибка обработки тендера %d: %v", msg.TenderID, err)
	}
}

// ProcessTender прогоняет все позиции тендера через мэтчинг.
func (c *TenderConsumer) ProcessTender(ctx context.Context, msg api_models.TenderReadyMessage) error {
	logger := c.logger.GetLoggerWithField("tender_id", msg.TenderID)
	logger.Info("начата обработка тендера")

	tender, err := c.store.GetTenderInfo(ctx, msg.TenderID)
	if err != nil {
		return fmt.Errorf("загрузка тендера %d: %w", msg.TenderID, err)
	}

	positions, err := c.store.ListPositionsForTender(ctx, msg.TenderID)
	if err != nil {
		return fmt.Errorf("загрузка позиций тендера %d: %w", msg.TenderID, err)
	}

	logger.Infof("компания %d, позиций к обработке: %d", tender.CompanyID, len(positions))

	for _, position := range positions {
		if err := c.processPosition(ctx, tender, position); err != nil {
			logger.Errorf("позиция %d не обработана: %v", position.ID, err)
			continue
		}
	}

	logger.Info("обработка тендера завершена")
	return nil
}

func (c *TenderConsumer) processPosition(ctx context.Context, tender db.TendersInfo, position db.TendersPosition) error {
	attributes, err := c.store.ListPositionAttributes(ctx, position.ID)
	if err != nil {
		return fmt.Errorf("загрузка атрибутов позиции: %w", err)
	}

	candidates, err := c.candidates.SelectCandidates(ctx, "", position.Title, position.YandexCategory.String, 0)
	if err != nil {
		return fmt.Errorf("выборка кандидатов: %w", err)
	}

	_, err = c.matcher.Process(ctx, tender.ID, position, attributes, candidates)
	return err
}
