package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"tripsync/internal/metrics"
	"tripsync/internal/models/request_models"
	"tripsync/internal/models/response_models"
	mem "tripsync/pkg/memcache"
	"tripsync/pkg/utils"
)

const tracerName = "tripsync/internal/services"

type TripServiceInterface interface {
	GenerateTrips(ctx context.Context, req request_models.PreferenceRequest) (*TripResult, error)
}

// TripResult is what the pipeline hands back to the transport layer. Trips is
// never nil.
type TripResult struct {
	Trips  []response_models.TripCandidate
	Cached bool
}

type TripService struct {
	builder   PromptBuilderInterface
	generator utils.TextGeneratorInterface
	extractor ResponseExtractorInterface
	validator TripValidatorInterface
	enricher  TripEnricherInterface
	cache     mem.TripCache

	inflight        singleflight.Group
	timeout         time.Duration
	maxResultsLimit int
	tracer          trace.Tracer
	logger          *zap.Logger
}

type TripServiceDeps struct {
	Builder   PromptBuilderInterface
	Generator utils.TextGeneratorInterface
	Extractor ResponseExtractorInterface
	Validator TripValidatorInterface
	Enricher  TripEnricherInterface
	Cache     mem.TripCache

	Timeout         time.Duration
	MaxResultsLimit int
	Logger          *zap.Logger
}

func NewTripService(deps TripServiceDeps) *TripService {
	return &TripService{
		builder:         deps.Builder,
		generator:       deps.Generator,
		extractor:       deps.Extractor,
		validator:       deps.Validator,
		enricher:        deps.Enricher,
		cache:           deps.Cache,
		timeout:         deps.Timeout,
		maxResultsLimit: deps.MaxResultsLimit,
		tracer:          otel.Tracer(tracerName),
		logger:          deps.Logger,
	}
}

// GenerateTrips runs one request through the pipeline. A cache hit returns
// the stored list untouched; a miss runs generation, extraction, validation
// and enrichment, and caches the result only when every step succeeded.
func (s *TripService) GenerateTrips(ctx context.Context, req request_models.PreferenceRequest) (*TripResult, error) {
	ctx, span := s.tracer.Start(ctx, "TripService.GenerateTrips",
		trace.WithAttributes(
			attribute.String("trip.destination", req.Destination),
			attribute.Int("trip.max_results", req.MaxResults),
		))
	defer span.End()

	if err := req.Validate(s.maxResultsLimit); err != nil {
		metrics.TripRequestsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	key := req.CanonicalKey()
	if trips, ok := s.cache.Get(ctx, key); ok {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		metrics.TripRequestsTotal.WithLabelValues(metrics.OutcomeCached).Inc()
		span.SetAttributes(attribute.Bool("trip.cached", true), attribute.Int("trip.count", len(trips)))
		s.logger.Info("trip request served from cache", zap.Int("trips", len(trips)))
		return &TripResult{Trips: nonNil(trips), Cached: true}, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	// Identical concurrent misses share one upstream call. The shared run is
	// detached from any single caller so one disconnect cannot fail the rest.
	v, err, shared := s.inflight.Do(key, func() (any, error) {
		return s.run(context.WithoutCancel(ctx), req, key)
	})
	if err != nil {
		metrics.TripRequestsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, utils.ErrorKind(err))
		return nil, err
	}

	trips := v.([]response_models.TripCandidate)
	if shared {
		trips = response_models.CloneTrips(trips)
	}
	metrics.TripRequestsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	span.SetAttributes(attribute.Bool("trip.cached", false), attribute.Int("trip.count", len(trips)))
	return &TripResult{Trips: nonNil(trips), Cached: false}, nil
}

func (s *TripService) run(ctx context.Context, req request_models.PreferenceRequest, key string) ([]response_models.TripCandidate, error) {
	prompt := s.builder.Build(req)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	candidates, err := s.extractor.Extract(raw)
	if err != nil {
		s.logger.Warn("could not extract trips from model output",
			zap.String("kind", utils.ErrorKind(err)),
			zap.Int("raw_length", len(raw)),
			zap.Error(err))
		return nil, err
	}

	survivors := s.validator.Validate(candidates, req)
	trips := nonNil(s.enricher.Enrich(survivors, req))

	s.logger.Info("trip pipeline finished",
		zap.Int("extracted", len(candidates)),
		zap.Int("returned", len(trips)),
		zap.String("destination", req.Destination))

	s.cache.Put(ctx, key, trips)
	return trips, nil
}

// generate calls the model under the configured deadline and maps its
// failures onto the pipeline's error kinds.
func (s *TripService) generate(ctx context.Context, prompt utils.Prompt) (string, error) {
	ctx, span := s.tracer.Start(ctx, "TextGenerator.Generate",
		trace.WithAttributes(attribute.String("llm.provider", s.generator.Provider())))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.generator.Generate(ctx, prompt)
	elapsed := time.Since(start)

	status := "ok"
	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)):
		status = "timeout"
		err = utils.NewGenerationError(utils.ErrUpstreamTimeout, "", err)
	case err != nil:
		status = "error"
		err = utils.NewGenerationError(utils.ErrUpstreamFailure, "", err)
	case strings.TrimSpace(raw) == "":
		status = "empty"
		err = utils.NewGenerationError(utils.ErrNoTextualOutput, raw, nil)
	}
	metrics.UpstreamDuration.WithLabelValues(s.generator.Provider(), status).Observe(elapsed.Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		s.logger.Error("text generation failed",
			zap.String("provider", s.generator.Provider()),
			zap.String("status", status),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return "", err
	}

	s.logger.Debug("text generation finished",
		zap.String("provider", s.generator.Provider()),
		zap.Duration("elapsed", elapsed),
		zap.Int("length", len(raw)))
	return raw, nil
}

func nonNil(trips []response_models.TripCandidate) []response_models.TripCandidate {
	if trips == nil {
		return []response_models.TripCandidate{}
	}
	return trips
}
