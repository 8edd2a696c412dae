package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
)

func (c *Client) Embed(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	if req.Model == "" && c.model != "" {
		req.Model = c.model
	}

	if req.Model == "" {
		return nil, &InvalidRequestError{APIError: APIError{Message: "model is required"}}
	}

	if req.Input == nil {
		return nil, &InvalidRequestError{APIError: APIError{Message: "input is required"}}
	}

	if req.EncodingFormat == "" {
		req.EncodingFormat = "float"
	}

	if req.Dimensions == nil && c.dimensions > 0 {
		dims := c.dimensions
		req.Dimensions = &dims
	}

	resp, err := c.doRequestWithRetry(ctx, http.MethodPost, "/v1/embeddings", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read error response: %w", readErr)
		}
		return nil, parseAPIError(resp.StatusCode, resp.Header, respBody)
	}

	var embeddingResp EmbeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&embeddingResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	sort.SliceStable(embeddingResp.Data, func(i, j int) bool {
		return embeddingResp.Data[i].Index < embeddingResp.Data[j].Index
	})

	return &embeddingResp, nil
}

// EmbedText embeds a single string. An empty model uses the client's default.
func EmbedText(ctx context.Context, c EmbeddingClient, model, text string) ([]float32, error) {
	resp, err := c.Embed(ctx, EmbeddingRequest{Model: model, Input: text})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, ErrNoEmbedding
	}
	return resp.Data[0].Float32(), nil
}

// EmbedTexts embeds a batch in one request. The result is in input order.
func EmbedTexts(ctx context.Context, c EmbeddingClient, model string, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := c.Embed(ctx, EmbeddingRequest{Model: model, Input: texts})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", ErrNoEmbedding, len(resp.Data), len(texts))
	}

	out := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		out[i] = d.Float32()
	}
	return out, nil
}
