package nats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/config"
)

func TestNewNATSPublisher_Unreachable(t *testing.T) {
	_, err := NewNATSPublisher(&config.NATSConfig{URL: "nats://127.0.0.1:1", ConnectTimeout: 200 * time.Millisecond}, zap.NewNop())
	assert.Error(t, err)
}

func TestPublish_UnencodablePayload(t *testing.T) {
	p := &Publisher{logger: zap.NewNop()}
	err := p.Publish(context.Background(), "safetails.post.created", map[string]any{"ch": make(chan int)})
	assert.ErrorContains(t, err, "safetails.post.created")
}

func TestClose_NilConn(t *testing.T) {
	p := &Publisher{logger: zap.NewNop()}
	assert.NotPanics(t, p.Close)
}
