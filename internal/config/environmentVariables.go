package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	//chunking defaults - character based, see the chunker package for the windowing rules
	DefaultChunkSize = 1000
	DefaultOverlap   = 100

	//retrieval
	DefaultRetrievalLimit = 5
	//separator between retrieved passages so unrelated chunks dont bleed into each other
	ContextSeparator = "\n\n---\n\n"

	//ingestion
	EmbeddingBatchSize = 100
	//bounded fan-out across batches of one ingestion run
	MaxEmbedWorkers  int64 = 4
	HugeDocThreshold       = 1000000

	//TODO:this will differ based on the provider
	EmbeddingOutputDimensionality int32 = 1536
	EmbeddingCollectionName             = "study-material"

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = ""
	QdrantPort              = 6333 //http
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false //set for https
	QdrantPoolSize          = 1     //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout  = 30 * time.Second

	//embedding providers
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	//client side limiter - providers rate limit per caller
	EmbeddingRequestsPerSecond = 5
	EmbeddingBurst             = 10
	EmbeddingRetryBackoff      = 5 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""

	//redis has 16 DB we can use
	RedisMaterialStore = 0

	RedisMaterialStoreTTL = time.Duration(0) //material records dont expire
	IngestLockTTL         = 5 * time.Minute  //safety valve if a lock holder dies mid-run
)
