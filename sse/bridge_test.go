package sse

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kbukum/streamkit/stream"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func serve(t *testing.T, src stream.Observable[int], opts Options) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.GET("/events", Bridge(src, opts))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events", nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestBridge_StreamsValuesUntilCompletion(t *testing.T) {
	rec := serve(t, stream.Just(1, 2, 3), Options{})

	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", got)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "event: connected") {
		t.Errorf("body missing connected event:\n%s", body)
	}
	wantOrder := []string{"data: 1\n\n", "data: 2\n\n", "data: 3\n\n"}
	last := strings.Index(body, "data: {") // connected payload
	for _, want := range wantOrder {
		idx := strings.Index(body, want)
		if idx < 0 {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
		if idx < last {
			t.Errorf("%q arrived out of order:\n%s", want, body)
		}
		last = idx
	}
}

func TestBridge_StreamErrorBecomesErrorEvent(t *testing.T) {
	boom := errors.New("boom")
	rec := serve(t, stream.Concat(stream.Just(1), stream.Throw[int](boom)), Options{})

	body := rec.Body.String()
	if !strings.Contains(body, "data: 1\n\n") {
		t.Errorf("body missing value frame:\n%s", body)
	}
	if !strings.Contains(body, "event: error\ndata: {\"error\":\"boom\"}\n\n") {
		t.Errorf("body missing error event:\n%s", body)
	}
}

func TestBridge_SlowClientDropsFrames(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)

	// The source delivers synchronously on subscribe, before the write
	// loop drains anything, so only one frame fits the buffer.
	rec := serve(t, stream.Just(1, 2, 3), Options{BufferSize: 1, Log: log})

	body := rec.Body.String()
	if !strings.Contains(body, "data: 1\n\n") {
		t.Errorf("body missing the buffered frame:\n%s", body)
	}
	if strings.Contains(body, "data: 2") || strings.Contains(body, "data: 3") {
		t.Errorf("dropped frames still reached the client:\n%s", body)
	}
	if !strings.Contains(logs.String(), "client buffer full, dropping frame") {
		t.Errorf("drop was not logged:\n%s", logs.String())
	}
}

func TestBridge_EachClientGetsOwnSubscription(t *testing.T) {
	subscriptions := 0
	src := stream.Defer(func() stream.Observable[int] {
		subscriptions++
		return stream.Just(subscriptions)
	})

	first := serve(t, src, Options{})
	second := serve(t, src, Options{})

	if subscriptions != 2 {
		t.Fatalf("subscriptions = %d, want one per client", subscriptions)
	}
	if !strings.Contains(first.Body.String(), "data: 1\n\n") ||
		!strings.Contains(second.Body.String(), "data: 2\n\n") {
		t.Errorf("clients shared a subscription:\nfirst: %s\nsecond: %s",
			first.Body.String(), second.Body.String())
	}
}

func TestBridge_ValueEncodingFailureEndsConnection(t *testing.T) {
	// NaN is not representable in JSON, so encoding the second value
	// fails and the connection must end with an error event.
	rec := serveFloats(t, stream.Just(1.5, math.NaN(), 2.5), Options{})

	body := rec.Body.String()
	if !strings.Contains(body, "data: 1.5\n\n") {
		t.Errorf("body missing the value before the failure:\n%s", body)
	}
	if !strings.Contains(body, "event: error\n") {
		t.Errorf("body missing error event:\n%s", body)
	}
	if strings.Contains(body, "data: 2.5") {
		t.Errorf("values still delivered after the encoding failure:\n%s", body)
	}
}

func serveFloats(t *testing.T, src stream.Observable[float64], opts Options) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.GET("/events", Bridge(src, opts))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events", nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestBridge_SendsHeartbeatsAtConfiguredInterval(t *testing.T) {
	subject := stream.NewSubject[int]()
	router := gin.New()
	router.GET("/events", Bridge(subject.AsObservable(), Options{Heartbeat: 5 * time.Millisecond}))
	srv := httptest.NewServer(router)
	defer srv.Close()

	// The default interval is 30s, so receiving two keep-alive comments
	// within the client timeout proves Options.Heartbeat drives the
	// ticker.
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(srv.URL + "/events")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	keepalives := 0
	for keepalives < 2 {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("stream ended after %d keep-alives: %v", keepalives, err)
		}
		if strings.HasPrefix(line, ": "+EventKeepAlive) {
			keepalives++
		}
	}

	resp.Body.Close()
	waitFor(t, func() bool { return subject.SubscriberCount() == 0 })
}

func TestBridge_DisconnectReleasesSubscription(t *testing.T) {
	subject := stream.NewSubject[int]()
	router := gin.New()
	router.GET("/events", Bridge(subject.AsObservable(), Options{Heartbeat: 10 * time.Millisecond}))

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		router.ServeHTTP(rec, req)
		close(done)
	}()

	waitFor(t, func() bool { return subject.SubscriberCount() == 1 })
	cancel()
	<-done

	if subject.SubscriberCount() != 0 {
		t.Errorf("subscribers = %d after disconnect, want 0", subject.SubscriberCount())
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}
