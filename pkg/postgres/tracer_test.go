package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer() (*QueryTracer, *tracetest.SpanRecorder) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	return NewQueryTracer(tp), rec
}

func TestQueryTracer(t *testing.T) {
	t.Run("records a span per statement", func(t *testing.T) {
		qt, rec := newRecordingTracer()
		sql := "  select id from profiles where user_id = $1"

		ctx := qt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: sql})
		qt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})

		spans := rec.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "postgres SELECT", spans[0].Name())
		assert.Contains(t, spans[0].Attributes(), attribute.String("db.statement", sql))
		assert.Contains(t, spans[0].Attributes(), attribute.Int64("db.rows_affected", 1))
		assert.Equal(t, codes.Unset, spans[0].Status().Code)
	})

	t.Run("marks failures", func(t *testing.T) {
		qt, rec := newRecordingTracer()

		ctx := qt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "INSERT INTO x VALUES (1)"})
		qt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("unique violation")})

		spans := rec.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
	})

	t.Run("no rows is not an error", func(t *testing.T) {
		qt, rec := newRecordingTracer()

		ctx := qt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
		qt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: pgx.ErrNoRows})

		assert.Equal(t, codes.Unset, rec.Ended()[0].Status().Code)
	})
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "UPDATE", operation("update applications set status = $1"))
	assert.Equal(t, "QUERY", operation("   "))
}
