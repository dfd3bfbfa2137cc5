package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tomeworks/verba/internal/logging"
	"github.com/tomeworks/verba/internal/validation"
	"github.com/tomeworks/verba/pkg/verba"
	"github.com/tomeworks/verba/pkg/verba/fetch"
	"github.com/tomeworks/verba/pkg/verba/store/memstore"
)

// testPages is the content the fake transport serves during handler tests.
var testPages = map[string]string{
	"https://books.test/moby":  "Title: Moby Dick\nCall me Ishmael. The whale, the whale.",
	"https://books.test/plain": "words words words and more",
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	svc, err := verba.New(verba.Options{
		Store: memstore.New(),
		Fetcher: fetch.Func(func(ctx context.Context, locator string) ([]byte, error) {
			body, ok := testPages[locator]
			if !ok {
				return nil, fmt.Errorf("no route to %s", locator)
			}
			return []byte(body), nil
		}),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	t.Cleanup(func() { svc.Close() })

	validator, err := validation.New()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	log := logging.New("error")
	SetupDocuments(router, log, svc, validator)
	SetupRankings(router, log, svc, validator)
	return router
}

// doRequest runs one request through the router. A nil body sends no body;
// any other value is marshalled as JSON.
func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeEnvelope unpacks the {data, errors} response envelope, decoding
// data into out when out is non-nil.
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, out any) []string {
	t.Helper()

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []string        `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, w.Body.String())
	}
	if out != nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("decode envelope data: %v (data %q)", err, envelope.Data)
		}
	}
	return envelope.Errors
}
