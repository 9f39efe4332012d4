package consumer

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/avast/retry-go"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"github.com/txnbank/transactions-api/cmd/api/account"
	"github.com/txnbank/transactions-api/cmd/api/bank"
	"github.com/txnbank/transactions-api/cmd/api/fee"
	"github.com/txnbank/transactions-api/cmd/api/notification"
	"github.com/txnbank/transactions-api/internal/mq"
)

// TransactionConsumer executes transaction requests arriving on the
// queue, as an asynchronous alternative to the HTTP surface.
type TransactionConsumer struct {
	Requests    amqp.Queue
	Concurrency int
}

func (tc TransactionConsumer) StartConsume(conn mq.Conn, db *sqlx.DB) error {
	requests, err := conn.Channel.Consume(tc.Requests.Name, "transaction-consumer", false, false,
		false, false, nil,
	)
	if err != nil {
		return err
	}

	for i := 0; i < tc.Concurrency; i++ {
		go func() {
			for d := range requests {
				ok, err2 := handleTransaction(d, db, conn)
				if err2 != nil {
					_ = d.Nack(false, false)
				} else if !ok {
					_ = d.Nack(false, true)
				} else {
					_ = d.Ack(false)
				}
			}
		}()
	}

	forever := make(chan bool)
	<-forever

	return nil
}

func (tc TransactionConsumer) ClosedConnectionListener(cfg mq.Config, db *sqlx.DB, closed <-chan *amqp.Error) {
	err := <-closed
	if err == nil {
		log.Info("mq connection closed normally, will not reconnect")
		os.Exit(0)
	}

	log.Errorf("closed mq connection: %v", err)

	retryErr := retry.Do(
		func() error {
			log.Info("attempting to reconnect to mq")

			conn, err := mq.NewConnection(cfg)
			if err != nil {
				return err
			}

			if _, err = conn.DeclareQueues(cfg.Concurrency); err != nil {
				return err
			}

			log.Info("reconnected to mq")
			return tc.StartConsume(conn, db)
		},
		retry.Attempts(uint(cfg.MaxReconnect)),
		retry.Delay(1*time.Second),
	)
	if retryErr != nil {
		log.Error("reached max attempts, unable to reconnect to mq")
	}
}

// handleTransaction returns (false, err) for requests that can never
// succeed and (false, nil) for transient failures worth a redelivery.
func handleTransaction(d amqp.Delivery, db *sqlx.DB, conn mq.Conn) (bool, error) {
	payload, err := decodeMessage(d)
	if err != nil {
		return false, err
	}

	if err = validateAmount(payload.Amount); err != nil {
		return false, err
	}

	policy, err := fee.Resolve(payload.Method)
	if err != nil {
		return false, err
	}

	charge, err := policy.Fee(payload.Amount)
	if err != nil {
		return false, err
	}

	acc, err := bank.ExecuteTransaction(db, payload)
	if err != nil {
		var notFound *account.NotFoundError
		var funds *account.FundsError
		if errors.As(err, &notFound) || errors.As(err, &funds) {
			return false, err
		}
		return false, nil
	}

	log.Infof("successfully executed transaction of %.2f on account %d", payload.Amount, payload.Number)

	notification.PublishSettledTransaction(conn, notification.Notification{
		AccountNumber: acc.Number,
		Method:        payload.Method,
		Amount:        payload.Amount,
		Fee:           charge,
		Balance:       acc.Balance,
		CreatedAt:     acc.ModifiedAt,
	})

	return true, nil
}

func decodeMessage(d amqp.Delivery) (account.TxRequest, error) {
	var payload account.TxRequest

	r := bytes.NewReader(d.Body)
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return account.TxRequest{}, errors.New("invalid message payload, unable to parse")
	}

	return payload, nil
}

func validateAmount(amount float64) error {
	if amount < 0 {
		return errors.New("transaction amount can't be negative")
	}
	return nil
}
