package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rahmadjon0038/new-lms/app/blobs"
	"github.com/Rahmadjon0038/new-lms/app/client"
)

type countSweeper struct{ calls int }

func (s *countSweeper) Sweep() int {
	s.calls++
	return 2
}

func TestRunSweeps(t *testing.T) {
	s := &countSweeper{}
	assert.Equal(t, 2, run(zap.NewNop(), Job{Name: "test", Sweeper: s}))
	assert.Equal(t, 1, s.calls)
}

func TestRunSweepsRegistry(t *testing.T) {
	r := blobs.NewRegistry(time.Nanosecond)
	r.Open(blobs.Viewer{Owner: "1", Lesson: 1}, "pdfs", &client.Blob{})
	time.Sleep(time.Millisecond)

	assert.Equal(t, 1, run(zap.NewNop(), Job{Name: "blobs", Sweeper: r}))
	assert.Equal(t, 0, r.Live())
}

func TestStartSchedulerRejectsBadSpec(t *testing.T) {
	_, err := StartScheduler(zap.NewNop(), Job{Name: "bad", Spec: "every so often", Sweeper: &countSweeper{}})
	assert.Error(t, err)
}

func TestStartScheduler(t *testing.T) {
	c, err := StartScheduler(zap.NewNop(), Job{Name: "blobs", Spec: "@every 1m", Sweeper: &countSweeper{}})
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}
