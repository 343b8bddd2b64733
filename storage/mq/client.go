package mq

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"GongKe/config"
)

var (
	conn   *amqp.Connection
	connMu sync.RWMutex
)

// Init 建立 RabbitMQ 连接并声明操作日志用的 exchange / queue。
// RABBITMQ_ENABLED=false 时跳过，操作日志走直写兜底。
func Init() error {
	if !config.Cfg.RabbitMQEnabled {
		return nil
	}

	url := config.Cfg.GetRabbitMQURL()
	c, err := amqp.Dial(url)
	if err != nil {
		return err
	}

	ch, err := c.Channel()
	if err != nil {
		_ = c.Close()
		return err
	}
	defer ch.Close()

	if err := declareTopology(ch); err != nil {
		_ = c.Close()
		return err
	}

	connMu.Lock()
	conn = c
	connMu.Unlock()

	return nil
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(
		OplogExchange, "topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(
		OplogQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	return ch.QueueBind(OplogQueue, OplogRoutingKey, OplogExchange, false, nil)
}

// Enabled 返回 MQ 是否可用
func Enabled() bool {
	connMu.RLock()
	defer connMu.RUnlock()
	return conn != nil && !conn.IsClosed()
}

func Connection() *amqp.Connection {
	connMu.RLock()
	defer connMu.RUnlock()
	return conn
}

func Close(ctx context.Context) error {
	connMu.Lock()
	defer connMu.Unlock()

	if conn == nil {
		return nil
	}

	err := conn.Close()
	conn = nil
	return err
}
