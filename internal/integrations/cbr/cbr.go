package cbr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/finsight/internal/config"
	"github.com/beevik/etree"
	"github.com/dgraph-io/ristretto"
	"github.com/sirupsen/logrus"
)

const (
	keyRateCacheKey = "key_rate"
	lookbackDays    = 30
)

// CBRClient handles integration with Central Bank of Russia
type CBRClient struct {
	url    string
	client *http.Client
	cache  *ristretto.Cache
	ttl    time.Duration
	log    *logrus.Logger
}

// NewCBRClient initializes a new CBR client with a key rate cache
func NewCBRClient(cfg *config.Config, log *logrus.Logger) (*CBRClient, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100,
		MaxCost:     10,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rate cache: %w", err)
	}
	return &CBRClient{
		url: cfg.CBRURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache,
		ttl:   cfg.RateCacheTTL,
		log:   log,
	}, nil
}

// Close releases the cache
func (c *CBRClient) Close() {
	c.cache.Close()
}

// buildSOAPRequest creates a SOAP request for the key rate over the last month
func (c *CBRClient) buildSOAPRequest(now time.Time) string {
	fromDate := now.AddDate(0, 0, -lookbackDays).Format("2006-01-02")
	toDate := now.Format("2006-01-02")
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<KeyRate xmlns="http://web.cbr.ru/">
					<fromDate>%s</fromDate>
					<ToDate>%s</ToDate>
				</KeyRate>
			</soap12:Body>
		</soap12:Envelope>`, fromDate, toDate)
}

// sendRequest sends SOAP request to CBR
func (c *CBRClient) sendRequest(ctx context.Context, soapRequest string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBufferString(soapRequest))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("CBR XML response: %s", string(body))
	return body, nil
}

// parseXMLResponse extracts the latest key rate from the response
func parseXMLResponse(rawBody []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %w", err)
	}

	krElements := doc.FindElements("//diffgram/KeyRate/KR")
	if len(krElements) == 0 {
		return 0, fmt.Errorf("no key rate data found in XML")
	}

	// The service lists the most recent rate first
	rateElement := krElements[0].FindElement("./Rate")
	if rateElement == nil {
		return 0, fmt.Errorf("rate element not found in XML")
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(rateElement.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rate: %w", err)
	}
	return rate, nil
}

// GetKeyRate returns the current key rate, served from cache while fresh
func (c *CBRClient) GetKeyRate(ctx context.Context) (float64, error) {
	if cached, ok := c.cache.Get(keyRateCacheKey); ok {
		return cached.(float64), nil
	}

	body, err := c.sendRequest(ctx, c.buildSOAPRequest(time.Now()))
	if err != nil {
		return 0, err
	}
	rate, err := parseXMLResponse(body)
	if err != nil {
		return 0, err
	}

	if c.ttl > 0 {
		c.cache.SetWithTTL(keyRateCacheKey, rate, 1, c.ttl)
		c.cache.Wait()
	}

	c.log.Infof("Retrieved key rate: %.2f%%", rate)
	return rate, nil
}
