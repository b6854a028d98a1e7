package googleEmbedding

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/smandava/studyrag/internal/config"
	"github.com/smandava/studyrag/pkg/logger_i"
)

type Client struct {
	genAi     *genai.Client
	model     string
	dimension int32
	limiter   *rate.Limiter
	logger    *logger_i.Logger
}

// NewClient builds a genai backed embedder. The client is handed to callers
// explicitly - there is no package level instance.
func NewClient(ctx context.Context, modelName string, apikey string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		return nil, fmt.Errorf("creating google embedding client: %w", err)
	}

	dim := config.EmbeddingOutputDimensionality
	return &Client{
		genAi:     c,
		model:     modelName,
		dimension: dim,
		limiter:   rate.NewLimiter(rate.Limit(config.EmbeddingRequestsPerSecond), config.EmbeddingBurst),
		logger:    logger_i.NewLogger("google_embedding"),
	}, nil
}

func (c *Client) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(text),
		&genai.EmbedContentConfig{OutputDimensionality: &c.dimension, TaskType: "RETRIEVAL_DOCUMENT"})
	if err != nil {
		c.logger.Error("Error getting embedding from Google", "error", err.Error())
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("google embedding returned no vectors")
	}
	return result.Embeddings[0].Values, nil
}

func (c *Client) BatchEmbedding(ctx context.Context, chunks []string, isHugeDataSet bool) ([][]float32, error) {
	if len(chunks) == 0 {
		return nil, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if !isHugeDataSet {
		res, err := c.doCall(ctx, getContent(chunks))
		if err != nil || res == nil {
			if doRetry(err, c.logger) {
				c.logger.Debug("Retrying after backoff", "backoff", config.EmbeddingRetryBackoff)
				time.Sleep(config.EmbeddingRetryBackoff)

				res, err = c.doCall(ctx, getContent(chunks))
			}
			if err != nil {
				c.logger.Error("Error getting embeddings from Google", "error", err)
				return nil, err
			}
		}
		embeddingResults := make([][]float32, 0, len(res.Embeddings))
		for _, r := range res.Embeddings {
			embeddingResults = append(embeddingResults, r.Values)
		}
		return embeddingResults, nil
	}

	// Huge runs go through the asynchronous batch job API instead of
	// hammering the synchronous endpoint.
	return c.runBatchJob(ctx, chunks)
}

func (c *Client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content,
		&genai.EmbedContentConfig{OutputDimensionality: &c.dimension, TaskType: "RETRIEVAL_DOCUMENT"})
}
