package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/capydb/capydb-go/pkg/ejson"
	"github.com/capydb/capydb-go/pkg/models"
)

var validate = validator.New()

// Collection is a handle on one collection's document operations and
// semantic search.
type Collection struct {
	client *Client
	dbName string
	name   string
}

func (c *Collection) Name() string {
	return c.name
}

func (c *Collection) collectionURL() string {
	return fmt.Sprintf(
		"%s/db/%s_%s/collection/%s",
		c.client.baseURL,
		c.client.projectID,
		c.dbName,
		c.name,
	)
}

func (c *Collection) documentURL() string {
	return c.collectionURL() + "/document"
}

type InsertResponse struct {
	InsertedIDs []string `json:"inserted_ids"`
}

type UpdateResponse struct {
	MatchedCount  int64  `json:"matched_count"`
	ModifiedCount int64  `json:"modified_count"`
	UpsertedID    string `json:"upserted_id,omitempty"`
}

type DeleteResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

type FindOptions struct {
	Projection *models.Document
	Sort       *models.Document
	Limit      int `validate:"gte=0"`
	Skip       int `validate:"gte=0"`
}

type QueryOptions struct {
	Filter        *models.Document
	Projection    *models.Document
	EmbModel      string
	TopK          int `validate:"gte=0"`
	IncludeValues bool
}

// Insert writes documents to the collection. Typed values are encoded to
// their wire form; the server chunks, embeds, and indexes them
// asynchronously after the call returns.
func (c *Collection) Insert(
	ctx context.Context,
	documents ...*models.Document,
) (*InsertResponse, error) {
	encoded := make([]json.RawMessage, len(documents))
	for index, doc := range documents {
		raw, err := ejson.EncodeDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding document %d: %w", index, err)
		}
		encoded[index] = raw
	}

	payload := map[string]any{"documents": encoded}

	var out InsertResponse
	if err := c.client.doRequest(ctx, http.MethodPost, c.documentURL(), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies an update document to everything matching filter.
func (c *Collection) Update(
	ctx context.Context,
	filter *models.Document,
	update *models.Document,
	upsert bool,
) (*UpdateResponse, error) {
	encodedFilter, err := encodeOptional(filter)
	if err != nil {
		return nil, fmt.Errorf("encoding filter: %w", err)
	}
	encodedUpdate, err := encodeOptional(update)
	if err != nil {
		return nil, fmt.Errorf("encoding update: %w", err)
	}

	payload := map[string]any{
		"filter": encodedFilter,
		"update": encodedUpdate,
		"upsert": upsert,
	}

	var out UpdateResponse
	if err := c.client.doRequest(ctx, http.MethodPut, c.documentURL(), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes every document matching filter.
func (c *Collection) Delete(
	ctx context.Context,
	filter *models.Document,
) (*DeleteResponse, error) {
	encodedFilter, err := encodeOptional(filter)
	if err != nil {
		return nil, fmt.Errorf("encoding filter: %w", err)
	}

	payload := map[string]any{"filter": encodedFilter}

	var out DeleteResponse
	if err := c.client.doRequest(ctx, http.MethodDelete, c.documentURL(), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Find returns the documents matching filter, with typed values
// reconstructed and any server-generated chunks populated.
func (c *Collection) Find(
	ctx context.Context,
	filter *models.Document,
	opts *FindOptions,
) ([]*models.Document, error) {
	encodedFilter, err := encodeOptional(filter)
	if err != nil {
		return nil, fmt.Errorf("encoding filter: %w", err)
	}

	payload := map[string]any{"filter": encodedFilter}
	if opts != nil {
		if err := validateOptions(opts); err != nil {
			return nil, err
		}
		if opts.Projection != nil {
			projection, err := ejson.EncodeDocument(opts.Projection)
			if err != nil {
				return nil, fmt.Errorf("encoding projection: %w", err)
			}
			payload["projection"] = json.RawMessage(projection)
		}
		if opts.Sort != nil {
			sort, err := ejson.EncodeDocument(opts.Sort)
			if err != nil {
				return nil, fmt.Errorf("encoding sort: %w", err)
			}
			payload["sort"] = json.RawMessage(sort)
		}
		if opts.Limit > 0 {
			payload["limit"] = opts.Limit
		}
		if opts.Skip > 0 {
			payload["skip"] = opts.Skip
		}
	}

	var out struct {
		Docs []json.RawMessage `json:"docs"`
	}
	if err := c.client.doRequest(ctx, http.MethodPost, c.documentURL()+"/find", payload, &out); err != nil {
		return nil, err
	}

	docs := make([]*models.Document, len(out.Docs))
	for index, raw := range out.Docs {
		doc, err := ejson.DecodeDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding document %d: %w", index, err)
		}
		docs[index] = doc
	}
	return docs, nil
}

// Get fetches a single document by its identifier, typically to reconcile
// server-generated chunks onto a caller-held copy.
func (c *Collection) Get(ctx context.Context, id string) (*models.Document, error) {
	filter := models.NewDocument().Set("_id", id)

	docs, err := c.Find(ctx, filter, &FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, models.NewNotFoundError(fmt.Sprintf("document %q", id))
	}
	return docs[0], nil
}

// Query runs a semantic search over the collection's typed values.
// Matches come back ranked by descending similarity; the client preserves
// the server's order.
func (c *Collection) Query(
	ctx context.Context,
	query string,
	opts *QueryOptions,
) (*models.QueryResponse, error) {
	if query == "" {
		return nil, models.NewValidationError("query", "must not be empty")
	}

	payload := map[string]any{"query": query}
	if opts != nil {
		if err := validateOptions(opts); err != nil {
			return nil, err
		}
		if opts.EmbModel != "" && !models.ValidEmbeddingModels[opts.EmbModel] {
			message := fmt.Sprintf("%q is not a supported embedding model", opts.EmbModel)
			if models.ValidModelMap[opts.EmbModel] {
				message = fmt.Sprintf("%q is a vision model; queries embed with an embedding model", opts.EmbModel)
			}
			return nil, models.NewValidationError("emb_model", message)
		}
		if opts.Filter != nil {
			filter, err := ejson.EncodeDocument(opts.Filter)
			if err != nil {
				return nil, fmt.Errorf("encoding filter: %w", err)
			}
			payload["filter"] = json.RawMessage(filter)
		}
		if opts.Projection != nil {
			projection, err := ejson.EncodeDocument(opts.Projection)
			if err != nil {
				return nil, fmt.Errorf("encoding projection: %w", err)
			}
			payload["projection"] = json.RawMessage(projection)
		}
		if opts.EmbModel != "" {
			payload["emb_model"] = opts.EmbModel
		}
		if opts.TopK > 0 {
			payload["top_k"] = opts.TopK
		}
		if opts.IncludeValues {
			payload["include_values"] = true
		}
	}

	var out struct {
		Matches []models.QueryMatch `json:"matches"`
	}
	if err := c.client.doRequest(ctx, http.MethodPost, c.documentURL()+"/query", payload, &out); err != nil {
		return nil, err
	}

	return models.NewQueryResponse(out.Matches), nil
}

// Drop deletes the collection and everything in it.
func (c *Collection) Drop(ctx context.Context) error {
	return c.client.doRequest(ctx, http.MethodDelete, c.collectionURL(), nil, nil)
}

func validateOptions(opts any) error {
	if err := validate.Struct(opts); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return models.NewValidationError(
				fe.Field(),
				fmt.Sprintf("failed %q validation", fe.Tag()),
			)
		}
		return err
	}
	return nil
}

// encodeOptional encodes doc, treating nil as the empty document.
func encodeOptional(doc *models.Document) (json.RawMessage, error) {
	if doc == nil {
		return json.RawMessage(`{}`), nil
	}
	raw, err := ejson.EncodeDocument(doc)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
