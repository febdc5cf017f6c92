package clients

import (
	"net/http"
	"sync"
	"time"

	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"
)

const (
	poolMaxConns        = 30
	poolMaxConnsPerHost = 15
	poolKeepAlive       = 60 * time.Second
	requestTimeout      = 30 * time.Second
)

// Pool — общий пул HTTP-клиентов процесса. Клиент на сервис создается
// лениво под мьютексом и дальше переиспользуется; соединения ограничены
// суммарно и на хост, с keep-alive.
type Pool struct {
	mu      sync.Mutex
	clients map[string]*http.Client
	logger  *logging.Logger
}

func NewPool(logger *logging.Logger) *Pool {
	return &Pool{
		clients: make(map[string]*http.Client),
		logger:  logger,
	}
}

// HTTPClient возвращает клиент для сервиса, создавая его при первом
// обращении.
func (p *Pool) HTTPClient(serviceName string) *http.Client {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[serviceName]; ok {
		return client
	}

	transport := &http.Transport{
		MaxConnsPerHost:     poolMaxConnsPerHost,
		MaxIdleConns:        poolMaxConns,
		MaxIdleConnsPerHost: poolMaxConnsPerHost,
		IdleConnTimeout:     poolKeepAlive,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   requestTimeout,
	}

	p.clients[serviceName] = client
	p.logger.Infof("создан HTTP-клиент для сервиса %s", serviceName)

	return client
}

// CloseIdle закрывает неиспользуемые соединения всех клиентов пула.
func (p *Pool) CloseIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, client := range p.clients {
		if transport, ok := client.Transport.(*http.Transport); ok {
			transport.CloseIdleConnections()
		}
	}
	p.logger.Info("все соединения пула закрыты")
}
