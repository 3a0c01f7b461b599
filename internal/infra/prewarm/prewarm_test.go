package prewarm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"headlines/internal/domain/entity"
	"headlines/internal/observability/metrics"
)

type stubService struct {
	calls atomic.Int32
	err   error
	last  atomic.Value
}

func (s *stubService) Headlines(ctx context.Context, in entity.QueryInput) (entity.Query, []entity.Article, error) {
	s.calls.Add(1)
	s.last.Store(in)
	if _, ok := ctx.Deadline(); !ok {
		return entity.Query{}, nil, errors.New("expected a deadline")
	}
	if s.err != nil {
		return entity.Query{}, nil, s.err
	}
	return entity.Query{}, []entity.Article{{Title: "a"}}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var input = entity.QueryInput{Language: "en", Limit: 10}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New(&stubService{}, input, "every tuesday", time.Second, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every tuesday")
}

func TestRun_Success(t *testing.T) {
	svc := &stubService{}
	job, err := New(svc, input, "*/5 * * * *", time.Second, quietLogger())
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.PrewarmRunsTotal.WithLabelValues("success"))
	assert.True(t, job.Run(context.Background()))

	assert.Equal(t, int32(1), svc.calls.Load())
	assert.Equal(t, input, svc.last.Load())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PrewarmRunsTotal.WithLabelValues("success")))
}

func TestRun_FailureIsNotFatal(t *testing.T) {
	svc := &stubService{err: &entity.NetworkError{Op: "GET /latest"}}
	job, err := New(svc, input, "@hourly", time.Second, quietLogger())
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.PrewarmRunsTotal.WithLabelValues("failure"))
	assert.False(t, job.Run(context.Background()))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PrewarmRunsTotal.WithLabelValues("failure")))
}

func TestStartStop(t *testing.T) {
	svc := &stubService{}
	job, err := New(svc, input, "@every 1s", time.Second, quietLogger())
	require.NoError(t, err)

	job.Start()
	require.Eventually(t, func() bool { return svc.calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	job.Stop(ctx)
}
