package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"staycal/internal/app/commands"
	availabilityapp "staycal/internal/app/handlers/availability"
	reservationapp "staycal/internal/app/handlers/reservation"
	selectionapp "staycal/internal/app/handlers/selection"
	"staycal/internal/app/middleware"
	"staycal/internal/app/outbox"
	"staycal/internal/app/queries"
	"staycal/internal/app/support"
	"staycal/internal/app/uow"
	"staycal/internal/infra/broker/kafka"
	"staycal/internal/infra/config"
	mongostore "staycal/internal/infra/db/mongo"
	ginserver "staycal/internal/infra/http/gin"
	"staycal/internal/infra/inbox"
	outboxworker "staycal/internal/infra/outbox"
	"staycal/internal/infra/storage/memory"
)

type backgroundTask struct {
	name string
	fn   func(ctx context.Context) error
}

type application struct {
	handlers   ginserver.Handlers
	commands   commands.Bus
	checks     map[string]func(ctx context.Context) error
	background []backgroundTask
	closers    []func(ctx context.Context) error
}

// storage is the persistence side chosen from configuration.
type storage struct {
	factory     uow.UoWFactory
	idempotency middleware.IdempotencyStore
	outbox      outbox.Outbox
	inbox       kafka.Inbox
	// outboxStore is set when records are queued in Mongo for the worker.
	outboxStore *outboxworker.Store
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{checks: map[string]func(ctx context.Context) error{}}

	var producer *kafka.Producer
	if cfg.UseKafka() {
		p, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		producer = p
		app.closers = append(app.closers, func(context.Context) error { return p.Close() })
	}

	store, err := app.buildStorage(ctx, cfg, producer, logger)
	if err != nil {
		app.close(logger)
		return nil, err
	}

	clock := support.Clock{Now: time.Now, Location: cfg.CalendarTZ}
	encoder := outbox.JSONEventEncoder{}

	commandBus := commands.NewInMemoryBus()
	selectionHandler := &selectionapp.Handler{UoWFactory: store.factory, Clock: clock, Logger: logger}
	commands.RegisterHandler(commandBus, selectionapp.SelectDateCommand{}.Key(), selectionapp.SelectHandler{Handler: selectionHandler})
	commands.RegisterHandler(commandBus, selectionapp.ClearCommand{}.Key(), selectionapp.ClearHandler{Handler: selectionHandler})
	commands.RegisterHandler(commandBus, availabilityapp.PutRecordsCommand{}.Key(), &availabilityapp.PutRecordsHandler{
		UoWFactory: store.factory,
		Clock:      clock,
		Outbox:     store.outbox,
		Encoder:    encoder,
		Logger:     logger,
	})
	commands.RegisterHandler(commandBus, reservationapp.SubmitIntentCommand{}.Key(), &reservationapp.SubmitIntentHandler{
		UoWFactory:   store.factory,
		Clock:        clock,
		Outbox:       store.outbox,
		Encoder:      encoder,
		ContactPhone: cfg.ContactWhatsApp,
		Logger:       logger,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{
		UoWFactory: store.factory,
		Clock:      clock,
		Logger:     logger,
	})
	queries.RegisterHandler(queryBus, selectionapp.GetSelectionQuery{}.Key(), &selectionapp.GetSelectionHandler{
		UoWFactory: store.factory,
		Clock:      clock,
	})

	validator, err := middleware.NewStructValidator()
	if err != nil {
		app.close(logger)
		return nil, err
	}
	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.CommandLogging(logger),
		middleware.Validation(validator),
		middleware.Idempotency(store.idempotency, middleware.IdempotencyOptions{TTL: cfg.IdempotencyTTL}),
		middleware.OutboxFlush(store.outbox),
		middleware.Transaction(store.factory, nil),
	)
	queryBusWithMiddleware := middleware.ChainQueries(
		queryBus,
		middleware.QueryLogging(logger),
		middleware.QueryValidation(validator),
	)
	app.commands = commandBusWithMiddleware

	app.handlers = ginserver.Handlers{
		Calendar:     ginserver.CalendarHandler{Queries: queryBusWithMiddleware},
		Selection:    ginserver.SelectionHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
		Reservation:  ginserver.ReservationHandler{Commands: commandBusWithMiddleware},
		Availability: ginserver.AvailabilityHandler{Commands: commandBusWithMiddleware},
	}

	if store.outboxStore != nil {
		var publish outboxworker.Producer = logProducer{logger: logger}
		if producer != nil {
			publish = producer
		}
		worker := &outboxworker.Worker{
			Store:       store.outboxStore,
			Producer:    publish,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Backoff:     cfg.RetryBackoff,
			Logger:      logger,
		}
		app.background = append(app.background, backgroundTask{name: "outbox", fn: worker.Run})
	}

	if cfg.UseKafka() {
		handler := &kafka.RecordsHandler{Bus: commandBusWithMiddleware, Inbox: store.inbox, Logger: logger}
		consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaConsumerGroup, nil, handler, logger)
		if err != nil {
			app.close(logger)
			return nil, fmt.Errorf("kafka consumer: %w", err)
		}
		consumer.Backoff = cfg.RetryBackoff
		app.closers = append(app.closers, func(context.Context) error { return consumer.Close() })
		topics := []string{cfg.KafkaTopicPrefix + kafka.RecordsTopic}
		app.background = append(app.background, backgroundTask{name: "records-consumer", fn: func(ctx context.Context) error {
			return consumer.Run(ctx, topics)
		}})
	}
	return app, nil
}

func (a *application) buildStorage(ctx context.Context, cfg config.Config, producer *kafka.Producer, logger *slog.Logger) (storage, error) {
	if !cfg.UseMongo() {
		logger.Warn("MONGO_URI not set, using in-memory storage")
		availabilityRepo := memory.NewAvailabilityRepository()
		selectionRepo := memory.NewSelectionRepository()
		var publisher memory.Publisher
		if producer != nil {
			publisher = outboxworker.DirectPublisher{Producer: producer, TopicPrefix: cfg.KafkaTopicPrefix}
		}
		return storage{
			factory:     memory.NewFactory(availabilityRepo, selectionRepo),
			idempotency: memory.NewIdempotencyStore(),
			outbox:      memory.NewOutbox(publisher, logger),
			inbox:       memory.NewInbox(),
		}, nil
	}

	client, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return storage{}, fmt.Errorf("mongo connect: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	a.checks["mongo"] = client.Ping

	availabilityRepo, err := mongostore.NewAvailabilityRepository(ctx, client.DB)
	if err != nil {
		return storage{}, fmt.Errorf("availability repository: %w", err)
	}
	selectionRepo, err := mongostore.NewSelectionRepository(ctx, client.DB)
	if err != nil {
		return storage{}, fmt.Errorf("selection repository: %w", err)
	}
	idempotency, err := mongostore.NewIdempotencyStore(ctx, client.DB, cfg.IdempotencyTTL)
	if err != nil {
		return storage{}, fmt.Errorf("idempotency store: %w", err)
	}
	outboxStore, err := outboxworker.NewStore(ctx, client.DB)
	if err != nil {
		return storage{}, fmt.Errorf("outbox store: %w", err)
	}
	inboxStore, err := inbox.NewStore(ctx, client.DB, cfg.KafkaConsumerGroup)
	if err != nil {
		return storage{}, fmt.Errorf("inbox store: %w", err)
	}
	return storage{
		factory: mongostore.Factory{
			DB:               client.DB,
			AvailabilityRepo: availabilityRepo,
			SelectionRepo:    selectionRepo,
		},
		idempotency: idempotency,
		outbox:      outboxStore,
		inbox:       inboxStore,
		outboxStore: outboxStore,
	}, nil
}

func (a *application) close(logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

// logProducer stands in for Kafka when only Mongo is configured, so queued events drain.
type logProducer struct {
	logger *slog.Logger
}

func (p logProducer) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	p.logger.InfoContext(ctx, "event published", "topic", topic, "key", key, "bytes", len(payload))
	return nil
}
