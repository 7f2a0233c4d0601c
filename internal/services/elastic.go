package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
)

//
// --- INDEXING ---
//

// IndexProduct pushes a product document into the products index. Called
// asynchronously after writes; failures are logged, never surfaced.
func IndexProduct(p models.Product) {
	indexDocument("products", p.ID.String(), p, p.Title)
}

// IndexShop pushes a shop document into the shops index.
func IndexShop(s models.Shop) {
	indexDocument("shops", s.ID.String(), s, s.Name)
}

// RemoveFromIndex deletes a document after the entity is deleted from the store.
func RemoveFromIndex(index, id string) {
	if database.Elastic == nil {
		return
	}
	req := esapi.DeleteRequest{Index: index, DocumentID: id}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Elastic delete failed:", err)
		return
	}
	res.Body.Close()
}

func indexDocument(index, id string, doc any, label string) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic not initialized, cannot index:", label)
		return
	}

	data, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Elastic request failed:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic returned an error for %s: %s", label, res.String())
	} else {
		log.Printf("✅ Indexed in Elasticsearch (%s): %s", index, label)
	}
}

//
// --- SEARCH ---
//

// SearchProducts runs a multi_match query over title, description and brand.
func SearchProducts(query string) ([]map[string]interface{}, error) {
	return searchIndex("products", query, []string{"title", "description", "brand"})
}

// SearchShops runs a multi_match query over name, address and category.
// Results still need the approved-status filter applied by the caller, since
// the index carries every status.
func SearchShops(query string) ([]map[string]interface{}, error) {
	return searchIndex("shops", query, []string{"name", "address", "category"})
}

func searchIndex(index, query string, fields []string) ([]map[string]interface{}, error) {
	if database.Elastic == nil {
		return nil, errors.New("elasticsearch client not initialized")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": fields,
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("query encoding failed: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("elastic request failed: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		json.NewDecoder(res.Body).Decode(&e)
		log.Printf("❌ Elasticsearch error: %+v", e)
		return nil, errors.New("index missing or empty")
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("response decoding failed: %v", err)
	}

	hitsData, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid elastic response (no hits)")
	}

	hitsArray, ok := hitsData["hits"].([]interface{})
	if !ok {
		return nil, errors.New("no results")
	}

	results := make([]map[string]interface{}, 0, len(hitsArray))
	for _, hit := range hitsArray {
		hitMap, _ := hit.(map[string]interface{})
		if source, ok := hitMap["_source"].(map[string]interface{}); ok {
			results = append(results, source)
		}
	}

	return results, nil
}
