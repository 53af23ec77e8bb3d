package fns

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_WaitFromManyGoroutines(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"document":{"receipt":{"totalSum":100}}}`))
	}))
	defer server.Close()

	task := newTestClient(t, server.URL).Start(context.Background(), testParams)

	var wg sync.WaitGroup
	outcomes := make([]Outcome, 8)
	for i := range outcomes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = task.Wait()
		}(i)
	}
	wg.Wait()

	for _, out := range outcomes {
		require.True(t, out.OK())
		assert.Same(t, outcomes[0].Envelope, out.Envelope)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestTask_RunsOnce(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	task := newTestClient(t, server.URL).NewTask(testParams)
	first := task.Run(context.Background())
	second := task.Run(context.Background())
	task.Start(context.Background())
	third := task.Wait()

	assert.Same(t, first.Err, second.Err)
	assert.Same(t, first.Err, third.Err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestTask_Done(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	task := newTestClient(t, server.URL).Start(context.Background(), testParams)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, testParams, task.Params())

	select {
	case <-task.Done():
		t.Fatal("task finished before the server answered")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)

	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for task")
	}
	assert.True(t, task.Wait().OK())
}

func TestTask_DistinctIDs(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	assert.NotEqual(t, client.NewTask(testParams).ID, client.NewTask(testParams).ID)
}
