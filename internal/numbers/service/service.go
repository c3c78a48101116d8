package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"phonekit/internal/lookup"
	"phonekit/internal/numbers/transport"
	"phonekit/internal/phonenumber"
	"phonekit/platform/apperr"
	"phonekit/platform/cache"
	"phonekit/platform/config"
	"phonekit/platform/logger"
	"phonekit/platform/metrics"
)

const (
	formatCallingFrom   = "CALLING_FROM"
	formatMobileDialing = "MOBILE_DIALING"
)

// Cache memoises inspection results. Get returns cache.ErrMiss for absent keys.
type Cache interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any) error
}

// Service provides the phone number operations behind the numbers API.
type Service struct {
	engine        *phonenumber.Engine
	lookup        *lookup.Service
	cache         Cache
	metrics       *metrics.Metrics
	log           *logger.Logger
	defaultRegion string
	batchMax      int
	concurrency   int
}

// New creates a numbers service. cache and m may be nil.
func New(engine *phonenumber.Engine, lookupSvc *lookup.Service, c Cache, m *metrics.Metrics, log *logger.Logger, cfg config.NumbersConfig) *Service {
	return &Service{
		engine:        engine,
		lookup:        lookupSvc,
		cache:         c,
		metrics:       m,
		log:           log,
		defaultRegion: cfg.GetDefaultRegion(),
		batchMax:      cfg.GetBatchMaxItems(),
		concurrency:   cfg.GetBatchConcurrency(),
	}
}

// MetadataVersion identifies the numbering plans in use.
func (s *Service) MetadataVersion() string {
	return s.engine.Store().Version()
}

// Inspect parses text and reports everything the engine knows about it.
func (s *Service) Inspect(ctx context.Context, text, region string) (transport.InspectResponse, error) {
	if err := ctx.Err(); err != nil {
		return transport.InspectResponse{}, err
	}
	region = s.region(region)

	key := s.cacheKey(text, region)
	if resp, ok := s.cached(ctx, key); ok {
		return resp, nil
	}

	p, err := s.parse(ctx, text, region)
	if err != nil {
		return transport.InspectResponse{}, err
	}
	resp := s.inspect(p, text)
	s.store(ctx, key, resp)
	return resp, nil
}

// Batch inspects many numbers concurrently. Unparseable items are reported
// per item; the batch only fails as a whole on cancellation.
func (s *Service) Batch(ctx context.Context, req transport.BatchRequest) (transport.BatchResponse, error) {
	if len(req.Items) > s.batchMax {
		return transport.BatchResponse{}, apperr.TooLarge(
			fmt.Sprintf("batch holds %d items, the limit is %d", len(req.Items), s.batchMax))
	}
	start := time.Now()
	s.metrics.ObserveBatchSize(len(req.Items))

	results := make([]transport.BatchResult, len(req.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, item := range req.Items {
		g.Go(func() error {
			region := item.Region
			if region == "" {
				region = req.Region
			}
			results[i] = transport.BatchResult{Index: i, Input: item.Text}

			resp, err := s.Inspect(gctx, item.Text, region)
			if err != nil {
				itemErr, ok := toItemError(err)
				if !ok {
					return err
				}
				results[i].Error = itemErr
				return nil
			}
			results[i].Result = &resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return transport.BatchResponse{}, err
	}

	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
		}
	}
	s.log.WithContext(ctx).BatchCompleted(len(results), failed, float64(time.Since(start).Microseconds())/1000)
	return transport.BatchResponse{Items: results, Failed: failed}, nil
}

// Format renders a number in one format, for dialling from another region
// or for dialling from a mobile phone.
func (s *Service) Format(ctx context.Context, req transport.FormatRequest) (transport.FormatResponse, error) {
	p, err := s.parse(ctx, req.Text, s.region(req.Region))
	if err != nil {
		return transport.FormatResponse{}, err
	}
	resp := transport.FormatResponse{E164: s.engine.Format(p, phonenumber.E164), Available: true}

	switch {
	case req.Mobile:
		from := s.region(req.CallingFrom)
		if from == "" {
			return transport.FormatResponse{}, apperr.BadRequest("callingFrom is required for mobile dialling")
		}
		resp.Format = formatMobileDialing
		resp.Formatted, resp.Available = s.engine.FormatForMobileDialing(p, from, req.WithFormatting)
	case req.CallingFrom != "":
		resp.Format = formatCallingFrom
		resp.Formatted = s.engine.FormatForCallingFrom(p, req.CallingFrom)
	default:
		f := phonenumber.International
		if req.Format != "" {
			f, err = phonenumber.ParseFormat(req.Format)
			if err != nil {
				return transport.FormatResponse{}, apperr.Validation(err.Error())
			}
		}
		resp.Format = f.String()
		resp.Formatted = s.engine.Format(p, f)
	}
	return resp, nil
}

// Describe returns the location, carrier and time zones of a number.
func (s *Service) Describe(ctx context.Context, req transport.DescribeRequest) (transport.DescribeResponse, error) {
	locale := req.Locale
	if locale == "" {
		locale = "en"
	}
	mode, err := lookup.ParseCarrierNameMode(req.CarrierMode)
	if err != nil {
		return transport.DescribeResponse{}, apperr.Validation(err.Error())
	}

	p, err := s.parse(ctx, req.Text, s.region(req.Region))
	if err != nil {
		return transport.DescribeResponse{}, err
	}

	description, err := s.lookup.Description(p, locale, req.UserRegion)
	if err != nil {
		return transport.DescribeResponse{}, apperr.Wrap(apperr.KindInternal, "description lookup failed", err).WithOp("numbers.Describe")
	}
	carrier, err := s.lookup.CarrierName(p, locale, mode)
	if err != nil {
		return transport.DescribeResponse{}, apperr.Wrap(apperr.KindInternal, "carrier lookup failed", err).WithOp("numbers.Describe")
	}
	zones, err := s.lookup.TimeZones(p)
	if err != nil {
		return transport.DescribeResponse{}, apperr.Wrap(apperr.KindInternal, "time zone lookup failed", err).WithOp("numbers.Describe")
	}

	return transport.DescribeResponse{
		E164:        p.String(),
		Description: optional(description),
		Carrier:     optional(carrier),
		TimeZones:   zones,
	}, nil
}

// Regions lists the supported regions and global network calling codes.
func (s *Service) Regions() transport.RegionListResponse {
	store := s.engine.Store()
	codes := store.SupportedRegions()

	regions := make([]transport.RegionResponse, 0, len(codes))
	for _, code := range codes {
		regions = append(regions, transport.RegionResponse{
			Region:      code,
			CallingCode: store.CallingCodeForRegion(code),
			Name:        lookup.RegionName(code, language.English),
		})
	}
	return transport.RegionListResponse{
		MetadataVersion: store.Version(),
		Regions:         regions,
		GlobalNetworks:  store.GlobalNetworkCallingCodes(),
	}
}

// Example returns the example number of a region for a number type,
// FIXED_LINE by default.
func (s *Service) Example(req transport.ExampleRequest) (transport.ExampleResponse, error) {
	t := phonenumber.FixedLine
	if req.Type != "" {
		var err error
		if t, err = phonenumber.ParseNumberType(req.Type); err != nil {
			return transport.ExampleResponse{}, apperr.Validation(err.Error())
		}
	}

	p, err := s.engine.ExampleNumber(req.Region, t)
	if errors.Is(err, phonenumber.ErrNoExampleNumber) {
		return transport.ExampleResponse{}, apperr.NotFound(
			fmt.Sprintf("no %s example number for region %s", t, req.Region))
	}
	if err != nil {
		return transport.ExampleResponse{}, err
	}
	return s.example(p), nil
}

// NetworkExample returns the example number of a global network calling code.
func (s *Service) NetworkExample(callingCode int) (transport.ExampleResponse, error) {
	p, err := s.engine.ExampleNumberForNonGeoEntity(callingCode)
	if errors.Is(err, phonenumber.ErrNoExampleNumber) {
		return transport.ExampleResponse{}, apperr.NotFound(
			fmt.Sprintf("no example number for global network +%d", callingCode))
	}
	if err != nil {
		return transport.ExampleResponse{}, err
	}
	return s.example(p), nil
}

func (s *Service) region(region string) string {
	if region == "" {
		return s.defaultRegion
	}
	return region
}

func (s *Service) parse(ctx context.Context, text, region string) (phonenumber.ParsedNumber, error) {
	p, err := s.engine.Parse(text, region)
	if err != nil {
		var pe *phonenumber.ParseError
		if !errors.As(err, &pe) {
			return phonenumber.ParsedNumber{}, err
		}
		s.metrics.IncrementParse(pe.Kind.String())
		s.log.WithContext(ctx).ParseRejected(pe.Kind.String(), region)
		return phonenumber.ParsedNumber{}, apperr.Wrap(apperr.KindValidation, pe.Message, pe).
			WithDetails(map[string]string{"kind": pe.Kind.String()})
	}
	s.metrics.IncrementParse("ok")
	return p, nil
}

func (s *Service) inspect(p phonenumber.ParsedNumber, input string) transport.InspectResponse {
	t := s.engine.NumberType(p)
	s.metrics.IncrementNumberType(t.String())

	possibility := s.engine.PossibleWithReason(p)
	return transport.InspectResponse{
		Input:              input,
		E164:               s.engine.Format(p, phonenumber.E164),
		CountryCallingCode: p.CountryCallingCode(),
		NationalNumber:     p.NationalSignificantNumber(),
		Extension:          p.Extension(),
		Region:             optional(s.engine.RegionCode(p)),
		Type:               t.String(),
		Possible:           s.engine.IsPossible(p),
		Possibility:        possibility.String(),
		Valid:              s.engine.IsValid(p),
		AreaCode:           s.engine.GeographicalAreaCode(p),
		Formats: transport.Formats{
			E164:          s.engine.Format(p, phonenumber.E164),
			International: s.engine.Format(p, phonenumber.International),
			National:      s.engine.Format(p, phonenumber.National),
			RFC3966:       s.engine.Format(p, phonenumber.RFC3966),
		},
	}
}

func (s *Service) example(p phonenumber.ParsedNumber) transport.ExampleResponse {
	return transport.ExampleResponse{
		Region:        optional(s.engine.RegionCode(p)),
		Type:          s.engine.NumberType(p).String(),
		E164:          s.engine.Format(p, phonenumber.E164),
		International: s.engine.Format(p, phonenumber.International),
		National:      s.engine.Format(p, phonenumber.National),
	}
}

// cacheKey scopes entries to the metadata version so a plan update never
// serves stale classifications.
func (s *Service) cacheKey(text, region string) string {
	sum := sha256.Sum256([]byte(s.engine.Store().Version() + "\x00" + region + "\x00" + text))
	return "inspect:" + hex.EncodeToString(sum[:])
}

func (s *Service) cached(ctx context.Context, key string) (transport.InspectResponse, bool) {
	if s.cache == nil {
		return transport.InspectResponse{}, false
	}
	var resp transport.InspectResponse
	err := s.cache.Get(ctx, key, &resp)
	switch {
	case err == nil:
		s.metrics.IncrementCache("hit")
		return resp, true
	case errors.Is(err, cache.ErrMiss):
		s.metrics.IncrementCache("miss")
	default:
		s.metrics.IncrementCache("error")
		s.log.CacheError("get", err)
	}
	return transport.InspectResponse{}, false
}

func (s *Service) store(ctx context.Context, key string, resp transport.InspectResponse) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, resp); err != nil {
		s.log.CacheError("set", err)
	}
}

func toItemError(err error) (*transport.ItemError, bool) {
	var pe *phonenumber.ParseError
	if !errors.As(err, &pe) {
		return nil, false
	}
	return &transport.ItemError{Kind: pe.Kind.String(), Message: pe.Message}, true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
