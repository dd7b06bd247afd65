package cbr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dan9191/finsight/internal/config"
	"github.com/sirupsen/logrus"
)

const keyRateResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <KeyRateResponse xmlns="http://web.cbr.ru/">
      <KeyRateResult>
        <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
          <KeyRate xmlns="">
            <KR diffgr:id="KR1"><DT>2024-02-15T00:00:00+03:00</DT><Rate>16.00</Rate></KR>
            <KR diffgr:id="KR2"><DT>2024-01-15T00:00:00+03:00</DT><Rate>15.00</Rate></KR>
          </KeyRate>
        </diffgr:diffgram>
      </KeyRateResult>
    </KeyRateResponse>
  </soap:Body>
</soap:Envelope>`

func newTestClient(t *testing.T, handler http.HandlerFunc, ttl time.Duration) *CBRClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	client, err := NewCBRClient(&config.Config{CBRURL: srv.URL, RateCacheTTL: ttl}, log)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

func TestGetKeyRateCachesResult(t *testing.T) {
	t.Parallel()

	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "<KeyRate xmlns=\"http://web.cbr.ru/\">") {
			t.Errorf("unexpected SOAP body %s", body)
		}
		if r.Header.Get("SOAPAction") != "http://web.cbr.ru/KeyRate" {
			t.Errorf("missing SOAPAction header")
		}
		_, _ = io.WriteString(w, keyRateResponse)
	}, time.Hour)

	for i := 0; i < 3; i++ {
		rate, err := client.GetKeyRate(context.Background())
		if err != nil {
			t.Fatalf("get key rate: %v", err)
		}
		if rate != 16 {
			t.Fatalf("expected latest rate 16, got %v", rate)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected one upstream call, got %d", n)
	}
}

func TestGetKeyRateWithoutCache(t *testing.T) {
	t.Parallel()

	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = io.WriteString(w, keyRateResponse)
	}, 0)

	for i := 0; i < 2; i++ {
		if _, err := client.GetKeyRate(context.Background()); err != nil {
			t.Fatalf("get key rate: %v", err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected every call to reach upstream, got %d", n)
	}
}

func TestGetKeyRateErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }},
		{"not xml", func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, "<<<") }},
		{"no rates", func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, "<Envelope/>") }},
	}
	for _, c := range cases {
		client := newTestClient(t, c.handler, time.Hour)
		if _, err := client.GetKeyRate(context.Background()); err == nil {
			t.Fatalf("%s: expected an error", c.name)
		}
	}
}

func TestBuildSOAPRequestRange(t *testing.T) {
	t.Parallel()

	c := &CBRClient{}
	body := c.buildSOAPRequest(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	if !strings.Contains(body, "<fromDate>2024-02-09</fromDate>") || !strings.Contains(body, "<ToDate>2024-03-10</ToDate>") {
		t.Fatalf("unexpected request body %s", body)
	}
}
