package llm

type Usage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

type EmbeddingRequest struct {
	Model string `json:"model"`
	// Input is a string or a []string.
	Input          any    `json:"input"`
	EncodingFormat string `json:"encoding_format,omitempty"`
	Dimensions     *int   `json:"dimensions,omitempty"`
}

type EmbeddingResponse struct {
	Object string      `json:"object"`
	Data   []Embedding `json:"data"`
	Model  string      `json:"model"`
	Usage  Usage       `json:"usage"`
}

type Embedding struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

// Float32 converts the wire representation to float32.
func (e Embedding) Float32() []float32 {
	out := make([]float32, len(e.Embedding))
	for i, x := range e.Embedding {
		out[i] = float32(x)
	}
	return out
}
