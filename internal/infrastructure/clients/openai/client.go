package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	"github.com/zatekoja/travelplanner/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultModel = "gpt-4o-mini"

// Client implements providers.ItineraryGenerator on the Chat Completions API
type Client struct {
	sdk         openai.Client
	model       string
	temperature float64
	limiter     *tokenBucket
}

// NewClient creates a new OpenAI client.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &Client{
		sdk:         openai.NewClient(opts...),
		model:       model,
		temperature: cfg.Temperature,
		limiter:     newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
	}, nil
}

// GenerateItinerary asks the model for a JSON itinerary built around promptCtx
func (c *Client) GenerateItinerary(ctx context.Context, prompt string, promptCtx *entities.PromptContext) (*entities.Itinerary, error) {
	if promptCtx == nil {
		promptCtx = &entities.PromptContext{}
	}

	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			recordOpenAIMetric(ctx, c.model, 0, 0, err)
			return nil, fmt.Errorf("%w: %v", providers.ErrItineraryUpstream, err)
		}
		recordOpenAIRateLimitWait(ctx, c.model, time.Since(waitStart))
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(itinerarySystemPrompt),
			openai.UserMessage(buildItineraryUserPrompt(prompt, promptCtx)),
		},
		Temperature: openai.Float(c.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	start := time.Now()
	resp, err := c.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		status := 0
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		recordOpenAIMetric(ctx, c.model, status, time.Since(start), err)
		log.Ctx(ctx).Warn().Err(err).Int("status", status).Str("model", c.model).Msg("Itinerary completion failed")
		return nil, fmt.Errorf("%w: %v", providers.ErrItineraryUpstream, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		err := errors.New("completion returned no content")
		recordOpenAIMetric(ctx, c.model, 200, time.Since(start), err)
		return nil, fmt.Errorf("%w: %v", providers.ErrItineraryUpstream, err)
	}

	itinerary, err := parseItinerary(resp.Choices[0].Message.Content, promptCtx.RegionID)
	if err != nil {
		recordOpenAIMetric(ctx, c.model, 200, time.Since(start), err)
		return nil, err
	}

	recordOpenAIMetric(ctx, c.model, 200, time.Since(start), nil)
	return itinerary, nil
}

// newTokenBucket returns nil when rpm is not positive, which disables limiting
func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}
	return newTokenBucketWithRate(rpm, burst)
}

type tokenBucket struct {
	tokens chan struct{}
}

func newTokenBucketWithRate(rpm int, burst int) *tokenBucket {
	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}

	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type openAIMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var (
	openaiMetricsOnce sync.Once
	openaiMetrics     *openAIMetrics
)

// loadOpenAIMetrics builds the instruments once. It returns nil if any could not be created.
func loadOpenAIMetrics() *openAIMetrics {
	openaiMetricsOnce.Do(func() {
		openaiMetrics = newOpenAIMetrics()
	})
	return openaiMetrics
}

func newOpenAIMetrics() *openAIMetrics {
	meter := otel.Meter("github.com/zatekoja/travelplanner/openai")

	requestCount, err := meter.Int64Counter(
		"ai.openai.request.count",
		metric.WithDescription("Number of itinerary completion requests"),
	)
	if err != nil {
		return nil
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.openai.request.duration",
		metric.WithDescription("Itinerary completion duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil
	}
	requestErrors, err := meter.Int64Counter(
		"ai.openai.request.errors",
		metric.WithDescription("Number of failed itinerary completions"),
	)
	if err != nil {
		return nil
	}
	rateLimitWait, err := meter.Float64Histogram(
		"ai.openai.rate_limit.wait",
		metric.WithDescription("Time spent waiting for the completion rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil
	}

	return &openAIMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		rateLimitWait:   rateLimitWait,
	}
}

func recordOpenAIMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	m := loadOpenAIMetrics()
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	m.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		m.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordOpenAIRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	m := loadOpenAIMetrics()
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	m.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(attrs...))
}
