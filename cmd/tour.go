package cmd

import (
	"travel-ties/common/constant"
	commonJetstream "travel-ties/common/jetstream"
	"travel-ties/inbound/event"
	"context"
	"github.com/nats-io/nats.go/jetstream"
	"log"
	"log/slog"
	"time"
)

func runQueueTourCmd(ctx context.Context) {
	cfg := newCfg("env")

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	commonJetstream.CreateQueueStream(ctx, js)

	st, err := js.Stream(ctx, constant.QueueStreamName)
	if err != nil {
		log.Fatalln("failed to get stream", err)
	}

	tourEvent := event.TourEvent{
		Cache:   cacheClient,
		Timeout: cfg.GetDuration("queue.tour.timeout"),
	}

	cons, err := st.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       "consumer:tour",
		FilterSubject: constant.TourWildcard,
		MaxDeliver:    cfg.GetInt("queue.tour.max_deliver"),
		AckWait:       cfg.GetDuration("queue.tour.ack_wait"),
	})
	if err != nil {
		log.Fatalln("failed to create consumer", err)
	}

	iter, err := cons.Messages()
	if err != nil {
		panic(err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := iter.Next()
				if err != nil && err != jetstream.ErrMsgIteratorClosed {
					slog.ErrorContext(ctx, "Error fetching message", slog.Any(constant.LogFieldErr, err))
					continue
				}

				if msg == nil {
					continue
				}

				var eventErr error
				switch msg.Subject() {
				case constant.SubjectAdjustTourSeats:
					eventErr = tourEvent.AdjustSeatsHandler(ctx, msg.Data())
				}

				if eventErr != nil {
					msg.NakWithDelay(1 * time.Second)
					continue
				}

				if err := msg.Ack(); err != nil {
					slog.ErrorContext(ctx, "Error acknowledging message",
						slog.Any(constant.LogFieldErr, err),
						slog.Any(constant.LogFieldPayload, string(msg.Data())),
						slog.String("subject", msg.Subject()),
					)
					continue
				}
			}
		}
	}()

	slog.InfoContext(ctx, "tour queue consumer started")

	<-ctx.Done()

	iter.Stop()

	slog.InfoContext(ctx, "tour queue consumer stopped")
}
