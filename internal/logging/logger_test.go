package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFromContextFallsBack(t *testing.T) {
	var buf bytes.Buffer
	fallback := zerolog.New(&buf)

	logger := FromContext(context.Background(), fallback)
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
}

func TestWithRequestIDTagsLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx, _ := WithRequestID(context.Background(), base, "req-123")
	logger := FromContext(ctx, zerolog.Nop())
	logger.Info().Msg("handled")

	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Contains(t, buf.String(), "handled")
}
