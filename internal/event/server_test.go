package event

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlab/formlab/internal/eventbus"
)

func TestStreamDeliversEvents(t *testing.T) {
	bus := eventbus.New()
	srv := httptest.NewServer(http.HandlerFunc(NewServer(bus).HandleStream))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// The subscriber attaches asynchronously; keep publishing until the
	// event shows up on the stream.
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				bus.PublishNew(eventbus.TypeProjectSaved, "my_section")
			}
		}
	}()

	buf := make([]byte, 4096)
	var received strings.Builder
	for !strings.Contains(received.String(), "event: project.saved") {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			received.Write(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				t.Logf("read error: %v", err)
			}
			break
		}
	}

	assert.Contains(t, received.String(), "event: project.saved")
	assert.Contains(t, received.String(), `"resource":"my_section"`)
}
