package embedding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PauloHFS/bizbloom/internal/httpclient"
	"github.com/PauloHFS/bizbloom/internal/llm"
	"github.com/PauloHFS/bizbloom/internal/vector"
)

type RemoteConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	Dimension int
	Timeout   time.Duration
}

// Remote embeds through an OpenAI-compatible /v1/embeddings endpoint.
type Remote struct {
	client llm.EmbeddingClient
	model  string
	dim    int
}

func NewRemote(cfg RemoteConfig) (*Remote, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	opts := []llm.ClientOption{
		llm.WithModel(cfg.Model),
		llm.WithTimeout(cfg.Timeout),
		llm.WithHTTPClient(httpclient.New(httpclient.Config{
			Name:    "embeddings",
			Timeout: cfg.Timeout,
		}).Client),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, llm.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, llm.WithAPIKey(cfg.APIKey))
	}

	client, err := llm.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return NewRemoteWithClient(client.WithMetrics(), cfg.Model, cfg.Dimension), nil
}

func NewRemoteWithClient(client llm.EmbeddingClient, model string, dim int) *Remote {
	return &Remote{client: client, model: model, dim: dim}
}

func (r *Remote) Dimension() int {
	return r.dim
}

func (r *Remote) ModelID() string {
	return r.model
}

// Embed returns the zero vector for blank text without calling the provider.
func (r *Remote) Embed(ctx context.Context, text string) (vector.Vector, error) {
	if strings.TrimSpace(text) == "" {
		return make(vector.Vector, r.dim), nil
	}

	raw, err := llm.EmbedText(ctx, r.client, r.model, text)
	if err != nil {
		return nil, err
	}

	v := vector.Vector(raw)
	if err := checkDimension(v, r.dim); err != nil {
		return nil, fmt.Errorf("model %s: %w", r.model, err)
	}
	return v, nil
}

// EmbedBatch sends every non-blank text in one request. Blank texts get the
// zero vector, as in Embed.
func (r *Remote) EmbedBatch(ctx context.Context, texts []string) ([]vector.Vector, error) {
	out := make([]vector.Vector, len(texts))
	var (
		pending []string
		slots   []int
	)
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			out[i] = make(vector.Vector, r.dim)
			continue
		}
		pending = append(pending, text)
		slots = append(slots, i)
	}

	raws, err := llm.EmbedTexts(ctx, r.client, r.model, pending)
	if err != nil {
		return nil, err
	}
	for n, raw := range raws {
		v := vector.Vector(raw)
		if err := checkDimension(v, r.dim); err != nil {
			return nil, fmt.Errorf("model %s: input %d: %w", r.model, slots[n], err)
		}
		out[slots[n]] = v
	}
	return out, nil
}
