package mq

import (
	"github.com/streadway/amqp"
)

const (
	transactionsExchangeName = "transactions"
	transactionQueueName     = "transaction-requests"
	kind                     = "topic"
	transactionRouteKey      = "txn"
)

func (conn Conn) DeclareQueues(concurrency int) (amqp.Queue, error) {
	err := conn.Channel.ExchangeDeclare(transactionsExchangeName, kind, true, false, false, false, nil)
	if err != nil {
		return amqp.Queue{}, err
	}

	transactions, err := conn.Channel.QueueDeclare(transactionQueueName, true, false, false, false, nil)
	if err != nil {
		return amqp.Queue{}, err
	}

	err = conn.Channel.QueueBind(transactionQueueName, transactionRouteKey, transactionsExchangeName, false, nil)
	if err != nil {
		return amqp.Queue{}, err
	}

	prefetchCount := concurrency * 4
	err = conn.Channel.Qos(prefetchCount, 0, false)
	if err != nil {
		return amqp.Queue{}, err
	}

	return transactions, nil
}
