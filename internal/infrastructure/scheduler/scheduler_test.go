package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/budgetledger/internal/infrastructure/metrics"
)

type countingJob struct {
	mu   sync.Mutex
	runs int
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs++
	return j.err
}

func (j *countingJob) count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.runs
}

// heldLocker simulates another instance owning every lock.
type heldLocker struct{}

func (heldLocker) WithLock(context.Context, string, time.Duration, func(context.Context) error) error {
	return errors.New("lock held by another instance")
}

type freeLocker struct{ names []string }

func (l *freeLocker) WithLock(ctx context.Context, name string, _ time.Duration, fn func(context.Context) error) error {
	l.names = append(l.names, name)
	return fn(ctx)
}

func TestRunNow(t *testing.T) {
	jobErr := errors.New("store down")

	tests := []struct {
		name       string
		locker     Locker
		jobErr     error
		wantErr    error
		wantRuns   int
		wantResult string
	}{
		{name: "no locker", wantRuns: 1, wantResult: "ok"},
		{name: "lock acquired", locker: &freeLocker{}, wantRuns: 1, wantResult: "ok"},
		{name: "lock held elsewhere", locker: heldLocker{}, wantRuns: 0, wantResult: "skipped"},
		{name: "job error", locker: &freeLocker{}, jobErr: jobErr, wantErr: jobErr, wantRuns: 1, wantResult: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.NewWith(prometheus.NewRegistry())
			opts := []Option{WithMetrics(m)}
			if tt.locker != nil {
				opts = append(opts, WithLocker(tt.locker, time.Minute))
			}
			s := New(zerolog.Nop(), opts...)
			job := &countingJob{err: tt.jobErr}

			err := s.RunNow(context.Background(), job)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantRuns, job.count())
			assert.Equal(t, float64(1), testutil.ToFloat64(m.JobRuns.WithLabelValues("counting", tt.wantResult)))
		})
	}
}

func TestRunNowLocksPerJob(t *testing.T) {
	locker := &freeLocker{}
	s := New(zerolog.Nop(), WithLocker(locker, time.Minute))

	require.NoError(t, s.RunNow(context.Background(), &countingJob{}))
	assert.Equal(t, []string{"job:counting"}, locker.names)
}

func TestAddJobRunsOnSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{}

	require.NoError(t, s.AddJob("@every 1s", job))
	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return job.count() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestAddJobRejectsBadSpec(t *testing.T) {
	s := New(zerolog.Nop())
	assert.Error(t, s.AddJob("every now and then", &countingJob{}))
}
