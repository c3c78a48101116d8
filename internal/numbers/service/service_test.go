package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"phonekit/internal/lookup"
	"phonekit/internal/metadata"
	"phonekit/internal/numbers/transport"
	"phonekit/internal/phonenumber"
	"phonekit/platform/apperr"
	"phonekit/platform/cache"
	"phonekit/platform/logger"
	"phonekit/platform/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type numbersConfig struct {
	region      string
	max         int
	concurrency int
}

func (c numbersConfig) GetDefaultRegion() string { return c.region }
func (c numbersConfig) GetBatchMaxItems() int    { return c.max }
func (c numbersConfig) GetBatchConcurrency() int { return c.concurrency }

type memoryCache struct {
	mu     sync.Mutex
	values map[string]transport.InspectResponse
	getErr error
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]transport.InspectResponse{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dst any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return c.getErr
	}
	v, ok := c.values[key]
	if !ok {
		return cache.ErrMiss
	}
	*dst.(*transport.InspectResponse) = v
	return nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.values[key] = value.(transport.InspectResponse)
	return nil
}

type fakeTables struct{}

func (fakeTables) AreaDescription(e164, _ string) (string, error) {
	if e164 == "+6433316005" {
		return "Christchurch", nil
	}
	return "", nil
}

func (fakeTables) CarrierName(e164, _ string) (string, error) {
	if e164 == "+447912345678" {
		return "Vodafone", nil
	}
	return "", nil
}

func (fakeTables) TimeZones(e164 string) ([]string, error) {
	if e164 == "+6433316005" {
		return []string{"Pacific/Auckland"}, nil
	}
	return []string{"Etc/Unknown"}, nil
}

type fixture struct {
	svc     *Service
	cache   *memoryCache
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, cfg numbersConfig) fixture {
	t.Helper()
	store, err := metadata.LoadYAMLFile("../../metadata/testdata/regions.yaml")
	require.NoError(t, err)

	engine := phonenumber.New(store, phonenumber.Options{})
	c := newMemoryCache()
	m := metrics.New(prometheus.NewRegistry())
	log := logger.NewWithWriter("production", io.Discard)

	return fixture{
		svc:     New(engine, lookup.New(engine, fakeTables{}), c, m, log, cfg),
		cache:   c,
		metrics: m,
	}
}

func defaultConfig() numbersConfig {
	return numbersConfig{region: "NZ", max: 10, concurrency: 3}
}

func TestInspect(t *testing.T) {
	f := newFixture(t, defaultConfig())

	got, err := f.svc.Inspect(context.Background(), "03-331 6005", "")
	require.NoError(t, err)

	assert.Equal(t, "03-331 6005", got.Input)
	assert.Equal(t, "+6433316005", got.E164)
	assert.Equal(t, 64, got.CountryCallingCode)
	assert.Equal(t, "33316005", got.NationalNumber)
	require.NotNil(t, got.Region)
	assert.Equal(t, "NZ", *got.Region)
	assert.Equal(t, "FIXED_LINE", got.Type)
	assert.True(t, got.Valid)
	assert.True(t, got.Possible)
	assert.Equal(t, "IS_POSSIBLE", got.Possibility)
	assert.Equal(t, "3", got.AreaCode)
	assert.Equal(t, transport.Formats{
		E164:          "+6433316005",
		International: "+64 3 331 6005",
		National:      "03-331 6005",
		RFC3966:       "tel:+64-3-331-6005",
	}, got.Formats)
}

func TestInspectLocalOnlyIsPossible(t *testing.T) {
	f := newFixture(t, defaultConfig())

	got, err := f.svc.Inspect(context.Background(), "+1 253 0000", "")
	require.NoError(t, err)
	assert.True(t, got.Possible)
	assert.Equal(t, "IS_POSSIBLE_LOCAL_ONLY", got.Possibility)
	assert.False(t, got.Valid)
}

func TestInspectNonGeographicalHasNoRegion(t *testing.T) {
	f := newFixture(t, defaultConfig())

	got, err := f.svc.Inspect(context.Background(), "+800 1234 5678", "")
	require.NoError(t, err)
	assert.Nil(t, got.Region)
	assert.Equal(t, "TOLL_FREE", got.Type)
}

func TestInspectParseError(t *testing.T) {
	f := newFixture(t, defaultConfig())

	_, err := f.svc.Inspect(context.Background(), "call me", "NZ")
	require.Error(t, err)

	domainErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, domainErr.Kind)
	assert.Equal(t, map[string]string{"kind": "NOT_A_NUMBER"}, domainErr.Details)

	kind, ok := phonenumber.ParseErrorKindOf(err)
	require.True(t, ok)
	assert.Equal(t, phonenumber.NotANumber, kind)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ParseOutcome.WithLabelValues("NOT_A_NUMBER")))
}

func TestInspectUsesCache(t *testing.T) {
	f := newFixture(t, defaultConfig())
	ctx := context.Background()

	first, err := f.svc.Inspect(ctx, "+44 20 7031 3000", "")
	require.NoError(t, err)
	second, err := f.svc.Inspect(ctx, "+44 20 7031 3000", "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.cache.sets)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookup.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookup.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ParseOutcome.WithLabelValues("ok")))

	// A different default region is a different question.
	_, err = f.svc.Inspect(ctx, "+44 20 7031 3000", "GB")
	require.NoError(t, err)
	assert.Equal(t, 2, f.cache.sets)
}

func TestInspectSurvivesCacheFailure(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.cache.getErr = errors.New("connection refused")

	got, err := f.svc.Inspect(context.Background(), "+44 20 7031 3000", "")
	require.NoError(t, err)
	assert.Equal(t, "+442070313000", got.E164)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookup.WithLabelValues("error")))
}

func TestBatch(t *testing.T) {
	f := newFixture(t, defaultConfig())

	resp, err := f.svc.Batch(context.Background(), transport.BatchRequest{
		Region: "GB",
		Items: []transport.BatchItem{
			{Text: "020 7031 3000"},
			{Text: "nothing here"},
			{Text: "03-331 6005", Region: "NZ"},
			{Text: "+1 650 253 0000"},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 4)
	assert.Equal(t, 1, resp.Failed)
	for i, item := range resp.Items {
		assert.Equal(t, i, item.Index)
	}
	assert.Equal(t, "+442070313000", resp.Items[0].Result.E164)
	require.NotNil(t, resp.Items[1].Error)
	assert.Equal(t, "NOT_A_NUMBER", resp.Items[1].Error.Kind)
	assert.Nil(t, resp.Items[1].Result)
	assert.Equal(t, "+6433316005", resp.Items[2].Result.E164)
	assert.Equal(t, "FIXED_LINE_OR_MOBILE", resp.Items[3].Result.Type)
}

func TestBatchTooLarge(t *testing.T) {
	f := newFixture(t, numbersConfig{max: 2, concurrency: 1})

	_, err := f.svc.Batch(context.Background(), transport.BatchRequest{
		Items: []transport.BatchItem{{Text: "1"}, {Text: "2"}, {Text: "3"}},
	})
	assert.True(t, apperr.Is(err, apperr.KindTooLarge))
}

func TestBatchCancelled(t *testing.T) {
	f := newFixture(t, defaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Batch(ctx, transport.BatchRequest{
		Items: []transport.BatchItem{{Text: "+6433316005"}, {Text: "+442070313000"}},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormat(t *testing.T) {
	f := newFixture(t, defaultConfig())
	ctx := context.Background()

	tests := []struct {
		name      string
		req       transport.FormatRequest
		format    string
		formatted string
		available bool
	}{
		{"default international", transport.FormatRequest{Text: "+16502530000"},
			"INTERNATIONAL", "+1 650-253-0000", true},
		{"national", transport.FormatRequest{Text: "+16502530000", Format: "national"},
			"NATIONAL", "(650) 253-0000", true},
		{"calling from", transport.FormatRequest{Text: "+33123456789", CallingFrom: "US"},
			"CALLING_FROM", "011 33 1 23 45 67 89", true},
		{"mobile dialling", transport.FormatRequest{Text: "01 23 45 67 89", Region: "FR", Mobile: true, CallingFrom: "FR", WithFormatting: true},
			"MOBILE_DIALING", "01 23 45 67 89", true},
		{"mobile dialling defaults to default region", transport.FormatRequest{Text: "+33123456789", Mobile: true},
			"MOBILE_DIALING", "+33123456789", true},
		{"not dialable from abroad", transport.FormatRequest{Text: "+558001234567", Mobile: true, CallingFrom: "US"},
			"MOBILE_DIALING", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.Format(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.format, got.Format)
			assert.Equal(t, tt.formatted, got.Formatted)
			assert.Equal(t, tt.available, got.Available)
		})
	}
}

func TestFormatMobileNeedsRegion(t *testing.T) {
	f := newFixture(t, numbersConfig{max: 1, concurrency: 1})

	_, err := f.svc.Format(context.Background(), transport.FormatRequest{Text: "+33123456789", Mobile: true})
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
}

func TestDescribe(t *testing.T) {
	f := newFixture(t, defaultConfig())
	ctx := context.Background()

	got, err := f.svc.Describe(ctx, transport.DescribeRequest{Text: "03-331 6005"})
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Christchurch", *got.Description)
	assert.Nil(t, got.Carrier)
	assert.Equal(t, []string{"Pacific/Auckland"}, got.TimeZones)

	got, err = f.svc.Describe(ctx, transport.DescribeRequest{Text: "+447912345678", UserRegion: "NZ", CarrierMode: "mobile_only"})
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "United Kingdom", *got.Description)
	require.NotNil(t, got.Carrier)
	assert.Equal(t, "Vodafone", *got.Carrier)
	assert.Empty(t, got.TimeZones)

	got, err = f.svc.Describe(ctx, transport.DescribeRequest{Text: "+6433316005", Locale: "!!"})
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Christchurch", *got.Description)

	got, err = f.svc.Describe(ctx, transport.DescribeRequest{Text: "+447912345678", UserRegion: "XX"})
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "United Kingdom", *got.Description)
}

func TestRegionsAndExamples(t *testing.T) {
	f := newFixture(t, defaultConfig())

	regions := f.svc.Regions()
	assert.Equal(t, "test-plans-1", regions.MetadataVersion)
	assert.Equal(t, []int{800, 979}, regions.GlobalNetworks)
	assert.Contains(t, regions.Regions, transport.RegionResponse{Region: "NZ", CallingCode: 64, Name: "New Zealand"})

	ex, err := f.svc.Example(transport.ExampleRequest{Region: "FR", Type: "mobile"})
	require.NoError(t, err)
	assert.Equal(t, "+33612345678", ex.E164)
	assert.Equal(t, "MOBILE", ex.Type)
	assert.Equal(t, "06 12 34 56 78", ex.National)

	ex, err = f.svc.Example(transport.ExampleRequest{Region: "FR"})
	require.NoError(t, err)
	assert.Equal(t, "FIXED_LINE", ex.Type)

	_, err = f.svc.Example(transport.ExampleRequest{Region: "GB", Type: "PAGER"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	net, err := f.svc.NetworkExample(800)
	require.NoError(t, err)
	assert.Equal(t, "+80012345678", net.E164)
	assert.Nil(t, net.Region)

	_, err = f.svc.NetworkExample(44)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
