package search

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/motorline/dealership-backend/internal/domain/entity"
)

// CarIndex mirrors catalog records into Elasticsearch for the public search
// endpoint. The database stays the source of truth; every call here is
// best-effort from the caller's point of view.
type CarIndex struct {
	ES   *elasticsearch.Client
	Name string
}

func NewCarIndex(es *elasticsearch.Client, index string) *CarIndex {
	return &CarIndex{ES: es, Name: index}
}

func (x *CarIndex) Index(ctx context.Context, c *entity.Car) error {
	doc := map[string]any{
		"id":           c.ID,
		"make":         c.Make,
		"model":        c.Model,
		"year":         c.Year,
		"price":        c.Price,
		"color":        c.Color,
		"body_type":    c.BodyType,
		"fuel_type":    c.FuelType,
		"transmission": c.Transmission,
		"description":  c.Description,
		"status":       string(c.Status),
		"featured":     c.Featured,
		"images":       c.Images,
		"created_at":   c.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: x.Name, DocumentID: c.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(reqCtx, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return errStatus(res.Status())
	}
	return nil
}

func (x *CarIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.Name, DocumentID: id}

	reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(reqCtx, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return errStatus(res.Status())
	}
	return nil
}

// Search runs a multi_match over the searchable listing fields.
func (x *CarIndex) Search(ctx context.Context, query string, size int) ([]map[string]any, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"make^2", "model^2", "color", "body_type", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(body)

	reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := x.ES.Search(
		x.ES.Search.WithContext(reqCtx),
		x.ES.Search.WithIndex(x.Name),
		x.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

type errStatus string

func (e errStatus) Error() string { return "elasticsearch: " + string(e) }
