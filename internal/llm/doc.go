// Package llm provides an OpenAI-compatible HTTP client for embedding providers.
//
// # Supported Providers
//
// The client speaks the /v1/embeddings API exposed by:
//
//   - OpenAI (https://api.openai.com)
//   - OpenRouter (https://openrouter.ai/api)
//   - Ollama (http://localhost:11434)
//
// # Quick Start
//
//	client, err := llm.NewClient(
//	    llm.WithAPIKey("sk-..."),
//	    llm.WithModel("text-embedding-3-small"),
//	)
//
//	vec, err := llm.EmbedText(ctx, client.WithMetrics(), "", "solar powered cold storage for farms")
//
// Transient failures (429 and 5xx) are retried with exponential backoff.
package llm
