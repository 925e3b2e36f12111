package metrics

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/reusee/dscope"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/modes"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Requests.WithLabelValues("time", "set_widget").Inc()
	m.Requests.WithLabelValues("time", "set_widget").Inc()
	m.DroppedEvents.WithLabelValues("load").Inc()
	if got := testutil.ToFloat64(m.Requests.WithLabelValues("time", "set_widget")); got != 2 {
		t.Fatalf("got %v", got)
	}
	if got := testutil.CollectAndCount(m.DroppedEvents); got != 1 {
		t.Fatalf("got %v", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.Faults.WithLabelValues("custom").Inc()
	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `taibar_block_faults_total{block="custom"} 1`) {
		t.Fatalf("got %s", body)
	}
}

func TestServeDisabled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// returns at once
	New().Serve(ctx, "", slog.New(slog.DiscardHandler))
}

func TestServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		New().Serve(ctx, "127.0.0.1:0", slog.New(slog.DiscardHandler))
	}()
	cancel()
	<-done
}

func TestModule(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoaderFromSources([]configs.Source{
			{Path: "test.cue", Content: []byte(`metrics_addr: "127.0.0.1:9099"`)},
		}, "")),
	).Call(func(
		addr Addr,
		m *Metrics,
	) {
		if addr != "127.0.0.1:9099" {
			t.Fatalf("got %v", addr)
		}
		if m.Registry == nil {
			t.Fatal()
		}
	})
}
