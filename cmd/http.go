package cmd

import (
	"travel-ties/common/coupon"
	commonJetstream "travel-ties/common/jetstream"
	inboundCron "travel-ties/inbound/cron"
	inboundHttp "travel-ties/inbound/http"
	"travel-ties/outbound/payos"
	"travel-ties/outbound/sqlgen"
	"context"
	"fmt"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"log"
	"log/slog"
	"net/http"
	"os"
	"runtime/pprof"
	"time"
)

func runHttpServerCmd(ctx context.Context) {
	cfg := newCfg("env")

	if cfg.GetString("env") == "dev" {
		cpu, err := os.Create("http-cpu.prof")
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		defer cpu.Close()

		err = pprof.StartCPUProfile(cpu)
		if err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()

		mem, err := os.Create("http-mem.prof")
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer mem.Close()

		err = pprof.WriteHeapProfile(mem)
		if err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
		defer mem.Close()
	}

	shutdownTracer := initTracer(ctx, cfg)
	defer shutdownTracer(context.Background())

	validate := validator.New()

	db := newDb(cfg)
	defer db.Close()

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	commonJetstream.CreateQueueStream(ctx, js)

	querier := sqlgen.New(db)

	couponCodes := make(map[string]int)
	for code := range cfg.GetStringMap("coupon.codes") {
		couponCodes[code] = cfg.GetInt("coupon.codes." + code)
	}
	coupons := coupon.NewTable(couponCodes)

	gateway := payos.NewRestClient(
		cfg.GetString("payos.base_url"),
		cfg.GetString("payos.client_id"),
		cfg.GetString("payos.api_key"),
		cfg.GetString("payos.checksum_key"),
		&http.Client{Timeout: 10 * time.Second},
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		slog.DebugContext(r.Context(), "health check")
		w.WriteHeader(http.StatusOK)
	})

	timeoutMiddleware := inboundHttp.TimeoutMiddleware(20 * time.Second)

	inboundHttp.RegisterTourHttp(mux)
	inboundHttp.RegisterBookingHttp(mux, cfg, querier, cacheClient, js, validate, coupons)
	inboundHttp.RegisterPaymentHttp(mux, cfg, querier, cacheClient, js, gateway, validate, message.NewPrinter(language.Vietnamese))

	tourCron := &inboundCron.TourCron{
		Cfg:     cfg,
		Cache:   cacheClient,
		Querier: querier,
	}

	err := tourCron.InitSeatCache(ctx)
	if err != nil {
		log.Fatalln("unable to init tour seat cache", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetInt("server.port")),
		Handler:           timeoutMiddleware(inboundHttp.CorsMiddleware(mux)),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("unable to start server", err)
		}
	}()

	slog.Info("http server started")

	go func() {
		tourCron.Start(ctx)
	}()

	<-ctx.Done()

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatalln("unable to shutdown server", err)
	}

	slog.Info("http server stopped")
}
