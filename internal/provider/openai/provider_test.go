package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/tailor/internal/design"
	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/require"
)

type staticKey string

func (k staticKey) Key() string { return string(k) }

type flatQuote float64

func (q flatQuote) Quote(design.Request) float64 { return float64(q) }

type imagesCall struct {
	Auth   string
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
	Size   string `json:"size"`
}

// imagesServer answers /images/generations with reply(view), where view is
// taken from the prompt.
func imagesServer(t *testing.T, reply func(view string) (int, string)) (*httptest.Server, func() []imagesCall) {
	t.Helper()
	var mu sync.Mutex
	var calls []imagesCall

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/images/generations") {
			http.NotFound(w, r)
			return
		}
		var call imagesCall
		if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		call.Auth = r.Header.Get("Authorization")
		mu.Lock()
		calls = append(calls, call)
		mu.Unlock()

		view := "front"
		for _, v := range []string{"side", "back"} {
			if strings.Contains(call.Prompt, v+" view") {
				view = v
			}
		}
		status, body := reply(view)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, func() []imagesCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]imagesCall(nil), calls...)
	}
}

func urlBody(u string) string {
	return `{"created":1,"data":[{"url":"` + u + `"}]}`
}

func scenarioRequest() design.Request {
	return design.Request{
		FabricName: "Premium Cotton",
		StyleName:  "Basic T-Shirt",
		Size:       "M",
		FitType:    "Regular Fit",
		Gender:     "Female",
		BustCm:     90,
		HipsCm:     95,
		FabricID:   "cotton",
		StyleID:    "tshirt",
	}
}

func newTestProvider(t *testing.T, baseURL string, q Quoter) *Provider {
	t.Helper()
	p, err := NewProvider(Options{
		BaseURL: baseURL,
		Model:   "test-image-model",
		Size:    "1536x2048",
		Keys:    staticKey("sk-test"),
		Quoter:  q,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider(Options{Model: "m"})
	require.Error(t, err)
	_, err = NewProvider(Options{Keys: staticKey("k")})
	require.Error(t, err)
}

func TestGenerate_AllViews(t *testing.T) {
	srv, calls := imagesServer(t, func(view string) (int, string) {
		return http.StatusOK, urlBody("https://cdn.example/" + view + ".png")
	})

	resp, err := newTestProvider(t, srv.URL+"/v1", flatQuote(180)).Generate(context.Background(), scenarioRequest())
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/front.png", *resp.Front)
	require.Equal(t, "https://cdn.example/side.png", *resp.Side)
	require.Equal(t, "https://cdn.example/back.png", *resp.Back)
	require.NotNil(t, resp.Price)
	require.Equal(t, 180.0, *resp.Price)

	got := calls()
	require.Len(t, got, 3)
	for _, c := range got {
		require.Equal(t, "Bearer sk-test", c.Auth)
		require.Equal(t, "test-image-model", c.Model)
		require.Equal(t, "1536x2048", c.Size)
		require.Contains(t, c.Prompt, "Basic T-Shirt made of Premium Cotton")
	}
	require.Contains(t, got[0].Prompt, "front view")
}

func TestGenerate_Base64Image(t *testing.T) {
	srv, _ := imagesServer(t, func(view string) (int, string) {
		return http.StatusOK, `{"created":1,"data":[{"b64_json":"aGVsbG8="}]}`
	})

	resp, err := newTestProvider(t, srv.URL, nil).Generate(context.Background(), scenarioRequest())
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,aGVsbG8=", *resp.Front)
	require.Nil(t, resp.Price)
}

func TestGenerate_OptionalViewsBestEffort(t *testing.T) {
	srv, _ := imagesServer(t, func(view string) (int, string) {
		switch view {
		case "side":
			return http.StatusInternalServerError, `{"error":{"message":"overloaded"}}`
		case "back":
			return http.StatusOK, `{"created":1,"data":[]}`
		}
		return http.StatusOK, urlBody("https://cdn.example/front.png")
	})

	resp, err := newTestProvider(t, srv.URL, flatQuote(99)).Generate(context.Background(), scenarioRequest())
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/front.png", *resp.Front)
	require.Nil(t, resp.Side)
	require.Nil(t, resp.Back)
}

func TestGenerate_FrontFailureIsAnError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"invalid api key"}}`},
		{"empty data", http.StatusOK, `{"created":1,"data":[]}`},
		{"no url or b64", http.StatusOK, `{"created":1,"data":[{"revised_prompt":"x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := imagesServer(t, func(string) (int, string) { return tt.status, tt.body })

			_, err := newTestProvider(t, srv.URL, flatQuote(1)).Generate(context.Background(), scenarioRequest())
			require.Error(t, err)
			require.Contains(t, err.Error(), "front view")
			require.Len(t, calls(), 1, "side and back must not be requested without a front")
		})
	}
}

func TestImageRef(t *testing.T) {
	_, err := imageRef(openai.Image{})
	require.Error(t, err)

	ref, err := imageRef(openai.Image{URL: " https://a/f.png ", B64JSON: "ignored"})
	require.NoError(t, err)
	require.Equal(t, "https://a/f.png", ref)
}
