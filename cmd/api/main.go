package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"github.com/txnbank/transactions-api/cmd/api/consumer"
	"github.com/txnbank/transactions-api/cmd/api/handler"
	"github.com/txnbank/transactions-api/internal/cache"
	"github.com/txnbank/transactions-api/internal/db"
	"github.com/txnbank/transactions-api/internal/env"
	"github.com/txnbank/transactions-api/internal/mq"
)

func main() {
	log.SetFormatter(&log.TextFormatter{TimestampFormat: time.RFC3339, FullTimestamp: true})

	envCfg, err := env.GetEnvCfg()
	if err != nil {
		log.Errorf("error parsing env vars: %v", err)
		return
	}

	dbCfg := db.Config{
		User: envCfg.DBUser,
		Pass: envCfg.DBPass,
		Host: envCfg.DBHost,
		Name: envCfg.DBName,
		Port: envCfg.DBPort,
	}
	dbc, err := db.NewConnection(dbCfg)
	if err != nil {
		log.Errorf("error connecting to db: %v", err)
		return
	}

	defer func() {
		if err := dbc.Close(); err != nil {
			log.Errorf("error closing db: %v", err)
		}
	}()

	redis, err := cache.NewConnection(cache.Config{
		Host: envCfg.RedisHost,
		Pass: envCfg.RedisPass,
		Port: envCfg.RedisPort,
	})
	if err != nil {
		log.Errorf("error connecting to redis: %v", err)
		return
	}

	mqCfg := mq.Config{
		User:         envCfg.MQUser,
		Pass:         envCfg.MQPass,
		Host:         envCfg.MQHost,
		Port:         envCfg.MQPort,
		Concurrency:  5,
		MaxReconnect: 5,
	}
	conn, err := mq.NewConnection(mqCfg)
	if err != nil {
		log.Errorf("error connecting to mq: %v", err)
		return
	}

	defer func() {
		if err := conn.Channel.Close(); err != nil {
			log.Errorf("error closing mq channel: %v", err)
		}
	}()

	requests, err := conn.DeclareQueues(mqCfg.Concurrency)
	if err != nil {
		log.Errorf("error declaring queues: %v", err)
		return
	}
	tc := consumer.TransactionConsumer{
		Requests:    requests,
		Concurrency: mqCfg.Concurrency,
	}

	server := http.Server{
		Addr:           fmt.Sprintf(":%d", 8080),
		Handler:        handler.NewApplication(dbc, redis),
		ReadTimeout:    envCfg.ReadTimeout,
		WriteTimeout:   envCfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Infof("server started successfully, listening on %s", server.Addr)
		err = server.ListenAndServe()
		if err != nil {
			log.Errorf("server failed to start: %v", err)
			return
		}
	}()

	go tc.ClosedConnectionListener(mqCfg, dbc, conn.Channel.NotifyClose(make(chan *amqp.Error)))

	err = tc.StartConsume(conn, dbc)
	if err != nil {
		log.Errorf("error starting consumers: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), envCfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Warnf("shutdown: Graceful shutdown did not complete in %v : %v", envCfg.ShutdownTimeout, err)

		if err := server.Close(); err != nil {
			log.Warnf("shutdown: Error killing server : %v", err)
		}
	}
}
