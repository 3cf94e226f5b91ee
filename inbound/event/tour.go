package event

import (
	"travel-ties/common"
	"travel-ties/common/constant"
	"travel-ties/common/otel"
	"travel-ties/model"
	"context"
	"encoding/json"
	"fmt"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"time"
)

type TourEvent struct {
	Cache   *redis.Client
	Timeout time.Duration
}

// AdjustSeatsHandler applies a booked-seat delta to the per-tour counter.
// Deltas are published on every booking and cancellation, so the counter
// tracks the database sum without querying it on the hot path.
func (in TourEvent) AdjustSeatsHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.AdjustTourSeatsEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "adjust tour seats event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	ctx, span := otel.Tracer.Start(ctx, "TourEvent.AdjustSeatsHandler")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	slog.InfoContext(ctx, "adjust tour seats event receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	err = in.Cache.IncrBy(ctx, fmt.Sprintf(constant.EachTourBookedSeatsKey, req.TourId), int64(req.Seats)).Err()
	if err != nil {
		slog.ErrorContext(ctx, "failed to adjust booked seats", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return err
	}

	slog.DebugContext(ctx, "adjust tour seats event success", traceIdAttr)

	return nil
}
