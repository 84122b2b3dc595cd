package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alebedeva/cardforge/internal/moderation"
)

func testPolicy() moderation.Policy {
	return moderation.NewBlocklistPolicy([]string{"forbidden"})
}

func TestClient_GenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/card-text", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req TextRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "birthday", req.Occasion)

		json.NewEncoder(w).Encode(TextResult{
			FrontText:  "Happy Birthday!",
			InsideText: "Wishing you the best year yet.",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second, testPolicy())

	result, err := client.GenerateText(context.Background(), TextRequest{
		Occasion: "birthday",
		Prompt:   "for my sister who loves hiking",
		Tone:     "warm",
	})
	require.NoError(t, err)
	assert.Equal(t, "Happy Birthday!", result.FrontText)
	assert.Equal(t, "Wishing you the best year yet.", result.InsideText)
}

func TestClient_PolicyGateRunsBeforeNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second, testPolicy())

	_, err := client.GenerateText(context.Background(), TextRequest{Prompt: "something forbidden"})
	assert.ErrorIs(t, err, moderation.ErrContentPolicy)
	assert.False(t, called, "no request must be made for rejected prompts")

	_, err = client.GenerateImage(context.Background(), ImageRequest{Prompt: "forbidden again"})
	assert.ErrorIs(t, err, moderation.ErrContentPolicy)
	assert.False(t, called)
}

func TestClient_ImageRefinementChaining(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/card-image":
			json.NewEncoder(w).Encode(ImageResult{ImageURL: "https://img/1.png", ResponseID: "resp-1"})
		case "/v1/card-image/refine":
			var req RefineRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "resp-1", req.PreviousResponseID)
			json.NewEncoder(w).Encode(ImageResult{ImageURL: "https://img/2.png", ResponseID: "resp-2"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second, testPolicy())

	first, err := client.GenerateImage(context.Background(), ImageRequest{Occasion: "wedding", Style: "watercolor", Prompt: "two swans"})
	require.NoError(t, err)

	refined, err := client.RefineImage(context.Background(), RefineRequest{
		PreviousResponseID: first.ResponseID,
		RefinementPrompt:   "add golden rings",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://img/2.png", refined.ImageURL)
	assert.Equal(t, "resp-2", refined.ResponseID)
}

func TestClient_RefineRequiresPreviousID(t *testing.T) {
	client := NewClient("http://unused", "", time.Second, testPolicy())
	_, err := client.RefineImage(context.Background(), RefineRequest{RefinementPrompt: "more sparkle"})
	assert.ErrorIs(t, err, ErrExternalService)
}

func TestClient_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second, testPolicy())

	_, err := client.GenerateText(context.Background(), TextRequest{Prompt: "fine prompt"})
	require.ErrorIs(t, err, ErrExternalService)
	assert.Contains(t, err.Error(), "503")
}
