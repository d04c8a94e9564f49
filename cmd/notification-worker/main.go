package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/prediction-pool-service/internal/shared/config"
	"github.com/radieske/prediction-pool-service/internal/shared/kafka"
	"github.com/radieske/prediction-pool-service/internal/shared/logger"
	"github.com/radieske/prediction-pool-service/internal/shared/metrics"
	ev "github.com/radieske/prediction-pool-service/pkg/contracts/events"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Kafka consumer: consome eventos member_registered para envio de e-mail
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicMemberRegistered, "notification-worker")
	defer reader.Close()

	// DLQ para eventos cujo envio falhou após as tentativas
	var dlqWriter *kafkago.Writer
	if cfg.TopicMemberRegisteredDLQ != "" {
		dlqWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMemberRegisteredDLQ)
		defer dlqWriter.Close()
	}

	// Métricas Prometheus do worker
	delivered := prometheus.NewCounter(prometheus.CounterOpts{Name: "notification_mails_delivered_total", Help: "e-mails entregues ao relay"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{Name: "notification_mails_failed_total", Help: "eventos enviados para a DLQ"})
	prometheus.MustRegister(delivered, failed)

	// Servidor HTTP para métricas e healthcheck
	metrics.StartMetricsServer(cfg.MetricsPort, func(context.Context) error { return nil })
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	log.Info("notification-worker started",
		zap.String("consume", cfg.TopicMemberRegistered),
		zap.String("mailer", cfg.MailerURL),
	)

	ctx := context.Background()

	// Loop principal: consome eventos e entrega ao relay de e-mail
	for {
		key, value, err := kafka.ReadNext(ctx, reader)
		if err != nil {
			log.Warn("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		var reg ev.MemberRegistered
		if jerr := json.Unmarshal(value, &reg); jerr != nil {
			log.Error("unmarshal member_registered", zap.Error(jerr))
			continue
		}

		if err := deliverOne(ctx, cfg, &reg); err != nil {
			log.Error("deliver mail", zap.String("passcode", reg.Passcode), zap.Error(err))
			failed.Inc()
			if dlqWriter != nil {
				_ = kafka.WriteJSON(ctx, dlqWriter, string(key), value)
			}
			continue
		}
		delivered.Inc()
	}
}

// deliverOne envia o e-mail de boas-vindas via relay HTTP, com retry simples
// antes de desistir (o chamador manda o evento para a DLQ)
func deliverOne(ctx context.Context, cfg config.Config, reg *ev.MemberRegistered) error {
	err := callMailer(ctx, cfg, reg)
	if err == nil {
		return nil
	}
	const retries = 3
	for i := 0; i < retries; i++ {
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
		if err = callMailer(ctx, cfg, reg); err == nil {
			return nil
		}
	}
	return err
}

// callMailer monta a mensagem de boas-vindas e posta no relay de e-mail
func callMailer(ctx context.Context, cfg config.Config, reg *ev.MemberRegistered) error {
	body, _ := json.Marshal(map[string]any{
		"to":      reg.Email,
		"subject": "Your bet is in",
		"body": fmt.Sprintf(
			"Hello %s,\n\nyour bet was registered: spread %d on %s.\nYour passcode is %q. Keep it safe, it is the only way to view or change your bet.\n",
			reg.Name, reg.Spread, reg.TargetDate, reg.Passcode,
		),
	})

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, cfg.MailerURL, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errors.New("mailer http " + resp.Status)
	}
	return nil
}
