package shopsync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saarathi-n/eshopzz/internal/domain"
)

const livePayload = `{
	"success": true,
	"query": "iphone 15",
	"count": 2,
	"is_fallback": false,
	"products": [
		{"id": 1, "title": "iPhone 15", "amazon_price": 79900, "flipkart_price": 78999, "rating": 4.6, "is_prime": true},
		{"id": 2, "title": "iPhone 15 Plus", "amazon_price": 89900, "flipkart_price": null, "rating": 4.5, "is_prime": false}
	]
}`

const mockPayload = `{
	"success": true,
	"is_fallback": true,
	"products": [
		{"id": 1, "title": "Demo Phone", "amazon_price": 49999, "flipkart_price": 48999, "rating": 4.2, "is_prime": true}
	]
}`

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:5002/", 30*time.Second)

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:5002", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestSearch_PrimarySuccess(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "iphone 15", r.URL.Query().Get("q"))
		assert.Empty(t, r.URL.Query().Get("mock"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(livePayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, 10*time.Second)

	result, err := client.Search(context.Background(), "iphone 15")

	require.NoError(t, err)
	assert.False(t, result.IsFallback)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
	require.Len(t, result.Products, 2)
	assert.Equal(t, "iPhone 15", result.Products[0].Title)
	require.NotNil(t, result.Products[0].AmazonPrice)
	assert.Equal(t, 79900.0, *result.Products[0].AmazonPrice)
	assert.Nil(t, result.Products[1].FlipkartPrice)
}

func TestSearch_PrimarySelfReportsFallback(t *testing.T) {
	// A successful call may still carry demo data; the payload flag is
	// passed through as-is.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("mock"))
		w.Write([]byte(mockPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, 10*time.Second)

	result, err := client.Search(context.Background(), "iphone 15")

	require.NoError(t, err)
	assert.True(t, result.IsFallback)
}

func TestSearch_PrimaryHTTPErrorTriggersFallback(t *testing.T) {
	var fallbackRequests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("mock") == "true" {
			atomic.AddInt32(&fallbackRequests, 1)
			assert.Equal(t, "phone", r.URL.Query().Get("q"))
			w.Write([]byte(mockPayload))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 10*time.Second)

	result, err := client.Search(context.Background(), "phone")

	require.NoError(t, err, "primary failure must be suppressed once the fallback succeeds")
	assert.True(t, result.IsFallback)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fallbackRequests), "exactly one fallback request")
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Demo Phone", result.Products[0].Title)
}

func TestSearch_PrimaryPayloadFailureTriggersFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("mock") == "true" {
			w.Write([]byte(mockPayload))
			return
		}
		w.Write([]byte(`{"success": false, "error": "scraper crashed"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 10*time.Second)

	result, err := client.Search(context.Background(), "phone")

	require.NoError(t, err)
	assert.True(t, result.IsFallback)
}

func TestSearch_PrimaryMalformedJSONTriggersFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("mock") == "true" {
			w.Write([]byte(mockPayload))
			return
		}
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 10*time.Second)

	result, err := client.Search(context.Background(), "phone")

	require.NoError(t, err)
	assert.True(t, result.IsFallback)
}

func TestSearch_BothTiersFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("mock") == "true" {
			w.Write([]byte(`{"success": false, "error": "fallback data unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 10*time.Second)

	result, err := client.Search(context.Background(), "phone")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
	assert.Contains(t, err.Error(), "fallback data unavailable")
}

func TestSearch_TransportFailureBothTiers(t *testing.T) {
	// Point at a closed server so both attempts fail at the transport level
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, 1*time.Second)

	result, err := client.Search(context.Background(), "phone")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
}

func TestSearch_EmptyQuery(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer server.Close()

	client := NewClient(server.URL, 10*time.Second)

	result, err := client.Search(context.Background(), "   ")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	assert.Equal(t, int32(0), atomic.LoadInt32(&requests), "no request for a blank query")
}

func TestSearch_EmptySuccessfulResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "products": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 10*time.Second)

	result, err := client.Search(context.Background(), "obscure gadget")

	// Zero products with success=true is a valid empty result, not a failure
	require.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.False(t, result.IsFallback)
}

func TestSearch_ProductsFieldAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 10*time.Second)

	result, err := client.Search(context.Background(), "phone")

	require.NoError(t, err)
	assert.NotNil(t, result.Products)
	assert.Empty(t, result.Products)
}
