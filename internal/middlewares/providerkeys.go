package middlewares

import (
	"github.com/gin-gonic/gin"
)

const (
	// Header names match what the web client sends. Keys are pass-through
	// provider credentials, never stored server-side.
	AnthropicKeyHeader  = "X-Anthropic-Key"
	ElevenLabsKeyHeader = "X-ElevenLabs-Key"

	anthropicKeyContextKey  = "anthropicKey"
	elevenLabsKeyContextKey = "elevenLabsKey"
)

// ProviderKeyMiddleware copies the optional provider-key headers into the
// request context. A missing header is fine - the services fall back to
// server-configured keys or mock responses.
func ProviderKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader(AnthropicKeyHeader); key != "" {
			c.Set(anthropicKeyContextKey, key)
		}
		if key := c.GetHeader(ElevenLabsKeyHeader); key != "" {
			c.Set(elevenLabsKeyContextKey, key)
		}
		c.Next()
	}
}

// AnthropicKey returns the per-request Anthropic key, or "" if absent.
func AnthropicKey(c *gin.Context) string {
	return c.GetString(anthropicKeyContextKey)
}

// ElevenLabsKey returns the per-request ElevenLabs key, or "" if absent.
func ElevenLabsKey(c *gin.Context) string {
	return c.GetString(elevenLabsKeyContextKey)
}
