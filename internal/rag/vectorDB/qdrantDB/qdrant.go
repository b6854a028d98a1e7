package qdrantDB

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/smandava/studyrag/internal/config"
	"github.com/smandava/studyrag/internal/domain/ragModel"
	"github.com/smandava/studyrag/pkg/logger_i"
)

type Config struct {
	Host       string
	Port       int
	UseTLS     bool
	PoolSize   uint
	Collection string
	Dimension  uint64
}

func DefaultConfig() Config {
	return Config{
		Host:       config.QdrantHost,
		Port:       config.QdrantGrpcPort,
		UseTLS:     config.QdrantUseTLS,
		PoolSize:   uint(config.QdrantPoolSize),
		Collection: config.EmbeddingCollectionName,
		Dimension:  uint64(config.EmbeddingOutputDimensionality),
	}
}

type ClientHolder struct {
	qObj       *qdrant.Client
	collection string
	dimension  uint64
	logger     *logger_i.Logger
}

// NewClient dials Qdrant over gRPC. Callers own the client lifetime - call
// Close when done.
func NewClient(cfg Config) (*ClientHolder, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		UseTLS:   cfg.UseTLS,
		PoolSize: cfg.PoolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("could not instantiate qdrant client: %w", err)
	}

	return &ClientHolder{
		qObj:       client,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
		logger:     logger_i.NewLogger("Qdrant"),
	}, nil
}

func (db *ClientHolder) Close() error {
	return db.qObj.Close()
}

func (db *ClientHolder) Init(ctx context.Context) error {
	if db.collection == "" {
		return errors.New("empty collection name")
	}

	exists, err := db.qObj.CollectionExists(ctx, db.collection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return db.qObj.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: db.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     db.dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (db *ClientHolder) UpsertBatch(ctx context.Context, records []ragModel.EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(records))
	for i, record := range records {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.New().String()),
			Vectors: qdrant.NewVectors(record.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"chunk_text":     record.ChunkText,
				"document_id":    record.DocumentId,
				"sequence_index": record.SequenceIndex,
				"ingested_at":    record.IngestedAt.Unix(),
			}),
		}
	}

	_, err := db.qObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collection,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *ClientHolder) QuerySimilar(ctx context.Context, queryVector []float32, documentId string, limit int) ([]ragModel.RetrievalResult, error) {
	query := &qdrant.QueryPoints{
		CollectionName: db.collection,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if documentId != "" {
		query.Filter = documentFilter(documentId)
	}

	result, err := db.qObj.Query(ctx, query)
	if err != nil {
		db.logger.Error("Error querying Qdrant", "error", err)
		return nil, err
	}

	matches := make([]ragModel.RetrievalResult, 0, len(result))
	for _, hit := range result {
		matches = append(matches, ragModel.RetrievalResult{
			ChunkText: hit.Payload["chunk_text"].GetStringValue(),
			Score:     hit.Score,
		})
	}
	return matches, nil
}

func (db *ClientHolder) DeleteByDocument(ctx context.Context, documentId string) error {
	_, err := db.qObj.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: db.collection,
		Points:         qdrant.NewPointsSelectorFilter(documentFilter(documentId)),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant delete by document failed: %w", err)
	}
	return nil
}

func documentFilter(documentId string) *qdrant.Filter {
	return &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("document_id", documentId),
		},
	}
}
