package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/prediction-pool-service/pkg/contracts/events"
)

// KafkaNotifier publica eventos member_registered para o notification-worker
type KafkaNotifier struct {
	Writer *kafka.Writer
}

func NewKafkaNotifier(w *kafka.Writer) *KafkaNotifier {
	return &KafkaNotifier{Writer: w}
}

func (p *KafkaNotifier) MemberRegistered(ctx context.Context, e events.MemberRegistered) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(e.Passcode), Value: b})
}
