package openaiEmbedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"

	"github.com/smandava/studyrag/internal/config"
	"github.com/smandava/studyrag/pkg/logger_i"
)

type Client struct {
	api       openai.Client
	model     string
	dimension int64
	limiter   *rate.Limiter
	logger    *logger_i.Logger
}

func NewClient(apikey string) *Client {
	return &Client{
		api:       openai.NewClient(option.WithAPIKey(apikey)),
		model:     config.OpenAIEmbeddingModel,
		dimension: int64(config.EmbeddingOutputDimensionality),
		limiter:   rate.NewLimiter(rate.Limit(config.EmbeddingRequestsPerSecond), config.EmbeddingBurst),
		logger:    logger_i.NewLogger("openai_embedding"),
	}
}

func (c *Client) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// BatchEmbedding sends one request per call. There is no separate huge-run
// path for OpenAI - the ingestion pipeline already batches upstream.
func (c *Client) BatchEmbedding(ctx context.Context, chunks []string, isHugeDataSet bool) ([][]float32, error) {
	if len(chunks) == 0 {
		return nil, nil
	}
	return c.embed(ctx, chunks)
}

func (c *Client) embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:      openai.EmbeddingModel(c.model),
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Dimensions: openai.Int(c.dimension),
	})
	if err != nil {
		c.logger.Error("Error getting embeddings from OpenAI", "error", err.Error())
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs", len(resp.Data), len(texts))
	}

	// Responses carry an index - don't rely on slice order
	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		vectors[d.Index] = vec
	}
	return vectors, nil
}
