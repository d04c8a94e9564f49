package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	phttp "github.com/radieske/prediction-pool-service/internal/pool-service/http"
	"github.com/radieske/prediction-pool-service/internal/pool-service/invite"
	kpub "github.com/radieske/prediction-pool-service/internal/pool-service/producer"
	"github.com/radieske/prediction-pool-service/internal/pool-service/repo"
	"github.com/radieske/prediction-pool-service/internal/pool-service/service"
	"github.com/radieske/prediction-pool-service/internal/pool-service/validate"
	"github.com/radieske/prediction-pool-service/internal/shared/cache"
	"github.com/radieske/prediction-pool-service/internal/shared/config"
	"github.com/radieske/prediction-pool-service/internal/shared/db"
	"github.com/radieske/prediction-pool-service/internal/shared/logger"
	"github.com/radieske/prediction-pool-service/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	// Redis (cache de convites)
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	// Kafka writer (topic member_registered)
	writer := kafkago.NewWriter(kafkago.WriterConfig{
		Brokers:  strings.Split(cfg.KafkaBrokers, ","),
		Topic:    cfg.TopicMemberRegistered,
		Balancer: &kafkago.LeastBytes{},
	})
	defer writer.Close()

	// Métricas Prometheus por operação e status final
	results := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "pool_requests_total", Help: "requisições por operação e status"},
		[]string{"op", "status"},
	)
	prometheus.MustRegister(results)

	// deps
	repository := repo.NewPostgres(pg)
	pipe := validate.New(repository, cfg.CampaignStart, cfg.CampaignEnd)
	ledger := invite.NewLedger(repository, repository, rdb, cfg.InviteCacheTTL)
	notifier := kpub.NewKafkaNotifier(writer)

	reg := service.NewRegistration(log, repository, pipe, ledger, notifier, cfg.RegistrationOpen)
	reg.OnResult = func(st string) { results.WithLabelValues("register", st).Inc() }

	upd := service.NewUpdate(log, repository, pipe, cfg.ChangesOpen)
	upd.OnResult = func(st string) { results.WithLabelValues("update", st).Inc() }

	look := service.NewLookup(repository, pipe)
	look.OnResult = func(st string) { results.WithLabelValues("lookup", st).Inc() }

	// HTTP público
	api := phttp.NewServer(log, reg, upd, look)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	log.Info("pool-service listening",
		zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)),
		zap.Bool("registrationOpen", cfg.RegistrationOpen),
		zap.Bool("changesOpen", cfg.ChangesOpen),
	)
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
