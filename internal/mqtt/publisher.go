package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/wellband/bracelet/internal/engine"
)

// TopicReading - топик потока показаний
const TopicReading = "wellband/bracelet/reading"

// TopicEvent - топик служебных событий (запуск, остановка, разряд)
const TopicEvent = "wellband/bracelet/event"

// Publisher публикует телеметрию брокеру.
// Ошибка публикации не должна останавливать эмулятор.
type Publisher interface {
	PublishReading(reading engine.Reading) error
	PublishEvent(event Event) error
	Close() error
}

// Event представляет служебное событие браслета
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
	Detail    string    `json:"detail,omitempty"`
	Level     float64   `json:"level,omitempty"`
}

// ===== Реальный брокер =====

// RealPublisher публикует в настоящий MQTT брокер
type RealPublisher struct {
	client paho.Client
}

// NewRealPublisher подключается к брокеру и возвращает издателя
func NewRealPublisher(broker, clientID string) (*RealPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	return &RealPublisher{client: client}, nil
}

// PublishReading отправляет показание. QoS 0: потеря отдельного
// показания допустима, следующее придет через тик
func (p *RealPublisher) PublishReading(reading engine.Reading) error {
	payload, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	token := p.client.Publish(TopicReading, 0, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish reading: %w", err)
	}

	return nil
}

// PublishEvent отправляет служебное событие. QoS 1: события редкие,
// доставка важнее дубликата
func (p *RealPublisher) PublishEvent(event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	token := p.client.Publish(TopicEvent, 1, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish event timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close отключается от брокера
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}

// ===== Заглушка =====

// NoopPublisher используется, когда брокер не настроен
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishReading(reading engine.Reading) error {
	return nil
}

func (p *NoopPublisher) PublishEvent(event Event) error {
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
