// Package worker consumes ranking requests from RabbitMQ and replies with ranked candidates.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/ranking"
	"github.com/jonathan/candidate-ranker/internal/screening"
	"github.com/jonathan/candidate-ranker/internal/types"
)

var (
	// ErrMalformedRequest marks a message that can never be processed.
	ErrMalformedRequest = errors.New("malformed ranking request")

	errDeliveriesClosed = errors.New("delivery channel closed")
)

// Ranker is the screening behaviour a worker needs.
type Ranker interface {
	Screen(ctx context.Context, raw types.RawCriteria) (*types.RankedCandidates, error)
	ScreenForJob(ctx context.Context, id uuid.UUID, limit int) (*types.JobShortlist, error)
}

// Publisher sends replies. *amqp.Channel satisfies it.
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RankRequest is the body of a ranking request message. When JobDescriptionID
// is set the criteria fields are ignored and the job's requirements are used.
type RankRequest struct {
	types.RawCriteria
	JobDescriptionID string `json:"job_description_id" validate:"omitempty,uuid"`
	Limit            int    `json:"limit" validate:"omitempty,min=1,max=500"`
}

// Reply is published to the request's ReplyTo queue.
type Reply struct {
	Ranked    *types.RankedCandidates `json:"ranked,omitempty"`
	Shortlist *types.JobShortlist     `json:"shortlist,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

// Config holds consumer settings.
type Config struct {
	URL      string
	Queue    string
	Workers  int
	Prefetch int
}

// Consumer runs a pool of workers over one AMQP channel.
type Consumer struct {
	cfg       Config
	ranker    Ranker
	validator *validator.Validate
	logger    *zap.Logger

	publishMu sync.Mutex
}

// New creates a Consumer.
func New(cfg Config, ranker Ranker, log *zap.Logger) *Consumer {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Consumer{
		cfg:       cfg,
		ranker:    ranker,
		validator: validator.New(),
		logger:    logger.OrNop(log),
	}
}

// Run consumes until ctx is cancelled or the broker closes the channel.
func (c *Consumer) Run(ctx context.Context) error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if c.cfg.Prefetch > 0 {
		if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
			return fmt.Errorf("failed to set prefetch: %w", err)
		}
	}

	_, err = ch.QueueDeclare(
		c.cfg.Queue, // queue name
		true,        // durable
		false,       // auto-delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", c.cfg.Queue, err)
	}

	msgs, err := ch.Consume(
		c.cfg.Queue, // queue name
		"",          // consumer tag
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to consume queue %s: %w", c.cfg.Queue, err)
	}

	c.logger.Info("worker pool started",
		zap.String("queue", c.cfg.Queue),
		zap.Int("workers", c.cfg.Workers),
		zap.Int("prefetch", c.cfg.Prefetch))

	g, gctx := errgroup.WithContext(ctx)
	for i := range c.cfg.Workers {
		g.Go(func() error {
			return c.loop(gctx, i+1, ch, msgs)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	c.logger.Info("worker pool stopped")
	return nil
}

func (c *Consumer) loop(ctx context.Context, id int, pub Publisher, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errDeliveriesClosed
			}
			c.handle(ctx, id, pub, d)
		}
	}
}

// handle processes one delivery, replies if asked to, and settles it.
// Malformed requests are dropped; other failures are requeued once.
func (c *Consumer) handle(ctx context.Context, workerID int, pub Publisher, d amqp.Delivery) {
	start := time.Now()
	log := c.logger.With(
		zap.Int("worker", workerID),
		zap.String("correlation_id", d.CorrelationId),
	)

	reply, err := c.process(ctx, d.Body)
	if err != nil && !errors.Is(err, ErrMalformedRequest) && !errors.Is(err, screening.ErrJobNotFound) && !d.Redelivered {
		log.Warn("ranking failed, requeueing", zap.Error(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", zap.Error(nackErr))
		}
		return
	}

	if d.ReplyTo != "" {
		if pubErr := c.publish(pub, d, reply); pubErr != nil {
			log.Error("failed to publish reply", zap.String("reply_to", d.ReplyTo), zap.Error(pubErr))
		}
	}

	switch {
	case err == nil:
		log.Info("ranking request processed", zap.Duration("duration", time.Since(start)))
		err = d.Ack(false)
	case errors.Is(err, screening.ErrJobNotFound):
		log.Warn("ranking request for unknown job description", zap.Error(err))
		err = d.Ack(false)
	default:
		log.Warn("dropping ranking request", zap.Error(err))
		err = d.Nack(false, false)
	}
	if err != nil {
		log.Error("failed to settle message", zap.Error(err))
	}
}

// process decodes, validates and answers one request body. The returned reply
// carries the error text when err is non-nil.
func (c *Consumer) process(ctx context.Context, body []byte) (*Reply, error) {
	var req RankRequest
	if err := json.Unmarshal(body, &req); err != nil {
		err = fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		return &Reply{Error: err.Error()}, err
	}
	if err := c.validator.Struct(req); err != nil {
		err = fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		return &Reply{Error: err.Error()}, err
	}

	if req.JobDescriptionID != "" {
		id, err := uuid.Parse(req.JobDescriptionID)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrMalformedRequest, err)
			return &Reply{Error: err.Error()}, err
		}
		shortlist, err := c.ranker.ScreenForJob(ctx, id, req.Limit)
		if err != nil {
			return &Reply{Error: err.Error()}, err
		}
		return &Reply{Shortlist: shortlist}, nil
	}

	ranked, err := c.ranker.Screen(ctx, req.RawCriteria)
	if err != nil {
		return &Reply{Error: err.Error()}, err
	}
	if req.Limit > 0 {
		ranked.Candidates = ranking.Top(ranked, req.Limit)
	}
	return &Reply{Ranked: ranked}, nil
}

func (c *Consumer) publish(pub Publisher, d amqp.Delivery, reply *Reply) error {
	body, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}

	c.publishMu.Lock()
	defer c.publishMu.Unlock()
	return pub.Publish(
		"",        // default exchange
		d.ReplyTo, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: d.CorrelationId,
			Timestamp:     time.Now(),
			Body:          body,
		},
	)
}
