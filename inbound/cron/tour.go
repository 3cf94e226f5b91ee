package cron

import (
	"travel-ties/common"
	"travel-ties/common/constant"
	"travel-ties/common/vars"
	"travel-ties/model"
	"travel-ties/outbound/sqlgen"
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"log/slog"
	"strconv"
	"time"
)

type TourCron struct {
	Cfg     *viper.Viper
	Cache   *redis.Client
	Querier *sqlgen.Queries
}

func (in TourCron) Start(ctx context.Context) {
	refreshTicker := time.NewTicker(in.Cfg.GetDuration("cron.tour.refresh.interval"))
	defer refreshTicker.Stop()

	// Run initial refresh
	in.refresh(ctx)

	slog.Info("tour cron started")

	// Block in the main function, not in a goroutine
	for {
		select {
		case <-refreshTicker.C:
			in.refresh(ctx)
		case <-ctx.Done():
			slog.Info("tour cron stopped")
			return
		}
	}
}

func (in TourCron) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, in.Cfg.GetDuration("cron.tour.refresh.timeout"))
	defer cancel()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	slog.DebugContext(ctx, "refreshing tours", traceIdAttr)

	tours, err := in.Querier.FindAllTours(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find tours", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return
	}

	if len(tours) == 0 {
		vars.SetTours(nil)
		return
	}

	bookedSeatsCacheKeys := make([]string, 0, len(tours))
	for _, tour := range tours {
		bookedSeatsCacheKeys = append(bookedSeatsCacheKeys, fmt.Sprintf(constant.EachTourBookedSeatsKey, tour.ID))
	}

	bookedSeats, err := in.Cache.MGet(ctx, bookedSeatsCacheKeys...).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to get booked seats from cache", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return
	}

	responses := make([]model.TourResponse, 0, len(tours))
	for i, tour := range tours {
		booked := 0
		if raw, ok := bookedSeats[i].(string); ok && raw != "" {
			booked, err = strconv.Atoi(raw)
			if err != nil {
				slog.ErrorContext(ctx, "failed to convert booked seats to int", traceIdAttr, slog.Any(constant.LogFieldErr, err))
				return
			}
		}

		remaining := tour.Capacity - int32(booked)
		if remaining < 0 {
			remaining = 0
		}

		responses = append(responses, model.TourResponse{
			Id:              tour.ID,
			Name:            tour.Name,
			Destination:     tour.Destination,
			PricePerSeat:    tour.PricePerSeat,
			Capacity:        tour.Capacity,
			BookedSeats:     int32(booked),
			RemainingSeats:  remaining,
			StartDate:       tour.StartDate.Time.Format(time.DateOnly),
			EndDate:         tour.EndDate.Time.Format(time.DateOnly),
			DiscountPercent: tour.DiscountPercent,
		})
	}

	vars.SetTours(responses)

	slog.DebugContext(ctx, "tours refreshed successfully", traceIdAttr)
}

func (in TourCron) InitSeatCache(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	bookedSeats, err := in.Querier.FindBookedSeatsByTour(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find booked seats", slog.Any(constant.LogFieldErr, err))
		return fmt.Errorf("find booked seats: %w", err)
	}

	if len(bookedSeats) == 0 {
		slog.InfoContext(ctx, "no booked seats found to initialize")
		return nil
	}

	pipe := in.Cache.TxPipeline()
	for _, row := range bookedSeats {
		pipe.SetNX(ctx, fmt.Sprintf(constant.EachTourBookedSeatsKey, row.TourID), row.BookedSeats, 0)
	}

	if _, err = pipe.Exec(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to initialize booked seats in cache", slog.Any(constant.LogFieldErr, err))
		return fmt.Errorf("execute pipeline: %w", err)
	}

	slog.InfoContext(ctx, "tour booked seats initialized successfully")
	return nil
}
