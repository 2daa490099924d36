package fx

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const intraday = `{"series":{"intraday":{"data":[[1718870400000,1.0712],[1718870460000,1.0825]]}}}`

func newTestRates(t *testing.T, body string, status int) (*Rates, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	r := New(false)
	r.client = srv.Client()
	r.baseURL = srv.URL
	r.referenceURL = srv.URL
	return r, &calls
}

func TestRates_FactorEURTo(t *testing.T) {
	r, calls := newTestRates(t, intraday, http.StatusOK)

	f, ok := r.FactorEURTo("USD")
	require.True(t, ok)
	assert.InDelta(t, 1.0825, f, 1e-12, "the last intraday quote")

	f, ok = r.FactorEURTo("USD")
	require.True(t, ok)
	assert.InDelta(t, 1.0825, f, 1e-12)
	assert.EqualValues(t, 1, calls.Load(), "fetched once per run")

	f, ok = r.FactorEURTo("EUR")
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)

	_, ok = r.FactorEURTo("CHF")
	assert.False(t, ok, "no rate for CHF in the response")
}

func TestRates_Inverse(t *testing.T) {
	r, _ := newTestRates(t, `{"series":{"intraday":{"data":[[0,1.25]]}}}`, http.StatusOK)
	r.Register("GBP", "12345", true)
	f, ok := r.FactorEURTo("GBP")
	require.True(t, ok)
	assert.InDelta(t, 0.8, f, 1e-12)
}

func TestRates_Reference(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"amount":1.0,"base":"EUR","date":"2024-06-20","rates":{"GBP":0.8453}}`))
	}))
	defer srv.Close()
	r := New(false)
	r.client = srv.Client()
	r.referenceURL = srv.URL

	f, ok := r.FactorEURTo("GBP")
	require.True(t, ok, "GBP falls back to the ECB reference rate")
	assert.InDelta(t, 0.8453, f, 1e-12)
	assert.Equal(t, "from=EUR&to=GBP", query)

	_, ok = r.FactorEURTo("XYZ")
	assert.False(t, ok, "unknown currency")
}

func TestRates_Failures(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"http error", "", http.StatusInternalServerError},
		{"invalid json", "{", http.StatusOK},
		{"no data", `{"series":{"intraday":{"data":[]}}}`, http.StatusOK},
		{"not a number", `{"series":{"intraday":{"data":[[0,"x"]]}}}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRates(t, tt.body, tt.status)
			if f, ok := r.FactorEURTo("USD"); ok {
				t.Errorf("FactorEURTo(USD) = %v, want no rate", f)
			}
		})
	}
}

func TestRates_Offline(t *testing.T) {
	r, calls := newTestRates(t, intraday, http.StatusOK)
	r.offline = true
	_, ok := r.FactorEURTo("USD")
	assert.False(t, ok)
	assert.EqualValues(t, 0, calls.Load())

	r.Set("USD", 1.1)
	f, ok := r.FactorEURTo("USD")
	assert.True(t, ok)
	assert.Equal(t, 1.1, f)
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		input   string
		cur     string
		factor  float64
		wantErr bool
	}{
		{"USD=1.08", "USD", 1.08, false},
		{" gbp = 0.85 ", "GBP", 0.85, false},
		{"USD", "", 0, true},
		{"=1.2", "", 0, true},
		{"USD=abc", "", 0, true},
		{"USD=0", "", 0, true},
	}
	for _, tt := range tests {
		cur, factor, err := ParseRate(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if cur != tt.cur || factor != tt.factor {
			t.Errorf("ParseRate(%q) = %q, %v, want %q, %v", tt.input, cur, factor, tt.cur, tt.factor)
		}
	}
}

func TestDiskCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	day := time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC)
	cache := &diskCache{base: http.DefaultTransport, dir: t.TempDir(), now: func() time.Time { return day }}
	client := &http.Client{Transport: cache}

	var v struct{ OK bool }
	require.NoError(t, jwget(client, srv.URL, &v))
	require.NoError(t, jwget(client, srv.URL, &v))
	assert.True(t, v.OK)
	assert.EqualValues(t, 1, calls.Load(), "second call served from the cache")

	day = day.AddDate(0, 0, 1)
	require.NoError(t, jwget(client, srv.URL, &v))
	assert.EqualValues(t, 2, calls.Load(), "the cache expires every day")
}
