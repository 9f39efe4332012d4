package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"github.com/txnbank/transactions-api/internal/mq"
)

const (
	exchangeName = "transaction-notifications"
	routeKey     = "settled"
)

// Notification is the fire-and-forget event published after a
// transaction settles. It is not a stored audit trail.
type Notification struct {
	AccountNumber int       `json:"accountNumber"`
	Method        string    `json:"method"`
	Amount        float64   `json:"amount"`
	Fee           float64   `json:"fee"`
	Balance       float64   `json:"balance"`
	CreatedAt     time.Time `json:"createdAt"`
}

func PublishSettledTransaction(conn mq.Conn, n Notification) {
	body, err := json.Marshal(n)
	if err != nil {
		log.Warnf("failed to marshal notification: %v", err)
		return
	}

	_ = conn.Channel.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil)

	err = conn.Channel.Publish(exchangeName, routeKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    uuid.New().String(),
		Body:         body,
		DeliveryMode: amqp.Transient,
	})
	if err != nil {
		log.Errorf("error sending notification to transaction-notifications topic: %v", err)
	}
}
