package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go-reporting/internal/config"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// ElasticClient implements Client on top of the Elasticsearch REST API.
type ElasticClient struct {
	es        *elasticsearch.Client
	logger    *zap.Logger
	pageSize  int
	keepAlive time.Duration
}

func NewElasticClient(cfg *config.Config, logger *zap.Logger) (Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.ElasticURLs,
		Username:  cfg.ElasticUser,
		Password:  cfg.ElasticPass,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return newElasticClient(es, logger, cfg.ScrollSize, cfg.ScrollKeepAlive), nil
}

func newElasticClient(es *elasticsearch.Client, logger *zap.Logger, pageSize int, keepAlive time.Duration) *ElasticClient {
	if pageSize <= 0 {
		pageSize = 500
	}
	if keepAlive <= 0 {
		keepAlive = time.Minute
	}
	return &ElasticClient{es: es, logger: logger, pageSize: pageSize, keepAlive: keepAlive}
}

func (c *ElasticClient) PutTemplate(ctx context.Context, name string, body []byte) error {
	res, err := c.es.Indices.PutTemplate(name, bytes.NewReader(body), c.es.Indices.PutTemplate.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("put template %s: %w", name, err)
	}
	defer res.Body.Close()
	return responseError(res, "put template "+name)
}

func (c *ElasticClient) CreateIndex(ctx context.Context, index string) error {
	res, err := c.es.Indices.Create(index, c.es.Indices.Create.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer res.Body.Close()
	return responseError(res, "create index "+index)
}

func (c *ElasticClient) GetMapping(ctx context.Context, index string) (Mapping, error) {
	res, err := c.es.Indices.GetMapping(
		c.es.Indices.GetMapping.WithContext(ctx),
		c.es.Indices.GetMapping.WithIndex(index),
	)
	if err != nil {
		return nil, fmt.Errorf("get mapping %s: %w", index, err)
	}
	defer res.Body.Close()
	if err := responseError(res, "get mapping "+index); err != nil {
		return nil, err
	}

	var mapping Mapping
	if err := json.NewDecoder(res.Body).Decode(&mapping); err != nil {
		return nil, fmt.Errorf("decode mapping %s: %w", index, err)
	}
	return mapping, nil
}

func (c *ElasticClient) Search(ctx context.Context, index string, q *Query) (*Response, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	defer res.Body.Close()
	return decodeResponse(res, "search "+index)
}

func (c *ElasticClient) ScrollSearch(ctx context.Context, index string, q *Query, fn func(hits []Hit) error) error {
	body, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode query: %w", err)
	}
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(bytes.NewReader(body)),
		c.es.Search.WithScroll(c.keepAlive),
		c.es.Search.WithSize(c.pageSize),
	)
	if err != nil {
		return fmt.Errorf("scroll search %s: %w", index, err)
	}
	page, err := decodeAndClose(res, "scroll search "+index)
	if err != nil {
		return err
	}

	scrollID := page.ScrollID
	defer func() { c.clearScroll(scrollID) }()

	for pages := 1; len(page.Hits.Hits) > 0; pages++ {
		if err := fn(page.Hits.Hits); err != nil {
			return err
		}
		c.logger.Debug("Consumed scroll page", zap.String("index", index), zap.Int("page", pages), zap.Int("hits", len(page.Hits.Hits)))

		if page, err = c.nextPage(ctx, scrollID); err != nil {
			return err
		}
		if page.ScrollID != "" {
			scrollID = page.ScrollID
		}
	}
	return nil
}

func (c *ElasticClient) nextPage(ctx context.Context, scrollID string) (*Response, error) {
	body, err := json.Marshal(map[string]string{
		"scroll":    c.keepAlive.String(),
		"scroll_id": scrollID,
	})
	if err != nil {
		return nil, err
	}
	res, err := c.es.Scroll(
		c.es.Scroll.WithContext(ctx),
		c.es.Scroll.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("scroll: %w", err)
	}
	return decodeAndClose(res, "scroll")
}

// clearScroll releases the server-side scroll context. Failures only cost server
// memory until the keep-alive expires, so they are logged.
func (c *ElasticClient) clearScroll(scrollID string) {
	if scrollID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := c.es.ClearScroll(c.es.ClearScroll.WithContext(ctx), c.es.ClearScroll.WithScrollID(scrollID))
	if err != nil {
		c.logger.Warn("Failed to clear scroll", zap.Error(err))
		return
	}
	res.Body.Close()
}

func decodeAndClose(res *esapi.Response, op string) (*Response, error) {
	defer res.Body.Close()
	return decodeResponse(res, op)
}

func decodeResponse(res *esapi.Response, op string) (*Response, error) {
	if err := responseError(res, op); err != nil {
		return nil, err
	}
	var out Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return &out, nil
}

func responseError(res *esapi.Response, op string) error {
	if !res.IsError() {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return &ResponseError{Op: op, StatusCode: res.StatusCode, Body: string(msg)}
}

// ResponseError is returned when the search service answers with an error status.
type ResponseError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
}
