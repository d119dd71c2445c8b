package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	"github.com/zatekoja/travelplanner/pkg/config"
)

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	})
	require.NoError(t, err)
	return body
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.OpenAIConfig{
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		BaseURL:     server.URL + "/",
		Temperature: 0.3,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.OpenAIConfig{})
	assert.Error(t, err)
}

func TestGenerateItinerary_SendsJSONModeRequest(t *testing.T) {
	var captured map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionBody(t, `{"title":"Đà Lạt 2 ngày","region_id":99,"budget_summary":{"total_per_person":"1500000","note":"ước tính"},"itinerary":[{"day":1,"items":[{"time":"08:00","activity":"Ăn sáng","location":"Quán A","item_id":12,"type":"restaurant","price":50000.0}]}]}`))
	})

	regionID := int64(2)
	rating := 4.5
	promptCtx := &entities.PromptContext{
		RegionID:    &regionID,
		RegionName:  "Đà Lạt",
		Hotels:      []*entities.Hotel{{ID: 7, Name: "Dalat Palace", PricePerNight: 2000000, Rating: &rating}},
		Restaurants: []*entities.Restaurant{{ID: 12, Name: "Quán A"}},
	}

	itinerary, err := client.GenerateItinerary(context.Background(), "2 ngày ở Đà Lạt", promptCtx)

	require.NoError(t, err)
	assert.Equal(t, "Đà Lạt 2 ngày", itinerary.Title)
	require.NotNil(t, itinerary.RegionID)
	assert.Equal(t, int64(2), *itinerary.RegionID)
	assert.Equal(t, int64(1500000), itinerary.BudgetSummary.TotalPerPerson)
	require.Len(t, itinerary.Itinerary, 1)
	assert.Equal(t, int64(12), *itinerary.Itinerary[0].Items[0].ItemID)
	assert.Equal(t, int64(50000), itinerary.Itinerary[0].Items[0].Price)

	assert.Equal(t, "gpt-4o-mini", captured["model"])
	assert.InDelta(t, 0.3, captured["temperature"], 0.0001)
	format, ok := captured["response_format"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])

	messages, ok := captured["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	user, _ := messages[1].(map[string]interface{})
	content, _ := user["content"].(string)
	assert.Contains(t, content, "[ID: 7] Dalat Palace")
	assert.Contains(t, content, "[ID: 12] Quán A")
}

func TestGenerateItinerary_UpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	})

	_, err := client.GenerateItinerary(context.Background(), "Huế", nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, providers.ErrItineraryUpstream))
}

func TestGenerateItinerary_EmptyContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionBody(t, "  "))
	})

	_, err := client.GenerateItinerary(context.Background(), "Huế", nil)

	assert.True(t, errors.Is(err, providers.ErrItineraryUpstream))
}

func TestGenerateItinerary_MalformedContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionBody(t, "Xin lỗi, tôi không thể giúp."))
	})

	_, err := client.GenerateItinerary(context.Background(), "Huế", nil)

	assert.True(t, errors.Is(err, providers.ErrItineraryMalformed))
}

func TestBuildItineraryUserPrompt_NoCandidates(t *testing.T) {
	prompt := buildItineraryUserPrompt("đi biển", &entities.PromptContext{})

	assert.True(t, strings.HasPrefix(prompt, "Traveller request: đi biển"))
	assert.Equal(t, 2, strings.Count(prompt, "- none"))
	assert.NotContains(t, prompt, "Region:")
}

func TestNewTokenBucket(t *testing.T) {
	assert.Nil(t, newTokenBucket(0, 5))
	assert.Nil(t, newTokenBucket(-1, 5))

	bucket := newTokenBucket(60, 2)
	require.NotNil(t, bucket)
	assert.NoError(t, bucket.Wait(context.Background()))
	assert.NoError(t, bucket.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, bucket.Wait(ctx))
}

func TestRecordOpenAIMetric_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recordOpenAIMetric(context.Background(), "gpt-4o-mini", http.StatusOK, time.Millisecond, nil)
			recordOpenAIRateLimitWait(context.Background(), "gpt-4o-mini", time.Millisecond)
		}()
	}
	wg.Wait()

	assert.NotNil(t, loadOpenAIMetrics())
	assert.Same(t, loadOpenAIMetrics(), loadOpenAIMetrics())
}
