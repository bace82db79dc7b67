package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/neptunedata"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/gcue/internal/document"
	"github.com/mesh-intelligence/gcue/pkg/types"
)

// openCypherAPI is the subset of the neptunedata client used by NeptuneClient.
type openCypherAPI interface {
	ExecuteOpenCypherQuery(ctx context.Context, params *neptunedata.ExecuteOpenCypherQueryInput, optFns ...func(*neptunedata.Options)) (*neptunedata.ExecuteOpenCypherQueryOutput, error)
}

// NeptuneClient executes openCypher queries against a Neptune endpoint.
type NeptuneClient struct {
	api    openCypherAPI
	dbURI  string
	logger *zap.Logger
}

// NewNeptuneClient creates a client for the endpoint at dbURI using the
// credentials and region carried by awsCfg.
func NewNeptuneClient(awsCfg aws.Config, dbURI string, logger *zap.Logger) *NeptuneClient {
	api := neptunedata.NewFromConfig(awsCfg, func(o *neptunedata.Options) {
		o.BaseEndpoint = aws.String(dbURI)
	})

	return newNeptuneClient(api, dbURI, logger)
}

func newNeptuneClient(api openCypherAPI, dbURI string, logger *zap.Logger) *NeptuneClient {
	return &NeptuneClient{
		api:    api,
		dbURI:  dbURI,
		logger: logger,
	}
}

// DBURI returns the endpoint URL.
func (c *NeptuneClient) DBURI() string {
	return c.dbURI
}

// ExecuteQuery sends query in a single request. The response document must
// be an array; each element becomes one row.
func (c *NeptuneClient) ExecuteQuery(ctx context.Context, query string) (types.QueryResults, error) {
	start := time.Now()

	output, err := c.api.ExecuteOpenCypherQuery(ctx, &neptunedata.ExecuteOpenCypherQueryInput{
		OpenCypherQuery: aws.String(query),
	})
	if err != nil {
		return types.QueryResults{}, fmt.Errorf("%w: %w", types.ErrExecution, err)
	}

	var raw any
	if output.Results != nil {
		if err := output.Results.UnmarshalSmithyDocument(&raw); err != nil {
			return types.QueryResults{}, fmt.Errorf("%w: couldn't decode response: %w", types.ErrExecution, err)
		}
	}

	rows, ok := document.Normalize(raw).([]any)
	if !ok {
		return types.QueryResults{}, fmt.Errorf("%w: %w, was expecting an array", types.ErrExecution, types.ErrUnexpectedResponse)
	}

	c.logger.Debug("query executed",
		zap.String("backend", "neptune"),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return types.ResultsFrom(rows), nil
}

// Close is a no-op; the HTTP client holds no session.
func (c *NeptuneClient) Close(context.Context) error {
	return nil
}
