/*Package client provides easy and fast access to the reflora REST api.

With NewWithRouter the client talks directly to the mux router instead of
marshalling HTTP over a socket; this is perfectly suited for unit tests.
With NewWithURL it makes real HTTP requests against a running server.
*/
package client

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/goccy/go-json"

	"github.com/gorilla/mux"
)

// Client provides easy access to the REST API.
type Client struct {
	router     *mux.Router
	httpClient *http.Client
	url        string
	token      string
}

// NewWithRouter creates a client to make pseudo-REST requests to the
// backend, through the mux router.
func NewWithRouter(router *mux.Router) Client {
	return Client{
		router: router,
	}
}

// NewWithURL creates a client to make REST requests to a running backend
func NewWithURL(url string) Client {
	return Client{
		url:        url,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// WithToken returns a new client that authenticates with the given bearer token
func (c Client) WithToken(token string) Client {
	c.token = token
	return c
}

func (c Client) do(method, path string, body interface{}, result interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.url+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(c.token) > 0 {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	var status int
	var responseBody []byte
	if c.router != nil {
		rec := httptest.NewRecorder()
		c.router.ServeHTTP(rec, req)
		status = rec.Code
		responseBody = rec.Body.Bytes()
	} else {
		res, err := c.httpClient.Do(req)
		if err != nil {
			return 0, err
		}
		defer res.Body.Close()
		status = res.StatusCode
		responseBody, err = io.ReadAll(res.Body)
		if err != nil {
			return status, err
		}
	}

	if status >= 200 && status < 300 && result != nil && len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, result); err != nil {
			return status, fmt.Errorf("cannot unmarshal response for %s %s: %w", method, path, err)
		}
	}
	return status, nil
}

// RawGet gets the resource from path. Returns the http status code.
func (c Client) RawGet(path string, result interface{}) (int, error) {
	return c.do(http.MethodGet, path, nil, result)
}

// RawPost posts body to path. Returns the http status code.
func (c Client) RawPost(path string, body interface{}, result interface{}) (int, error) {
	return c.do(http.MethodPost, path, body, result)
}

// RawPut puts body to path. Returns the http status code.
func (c Client) RawPut(path string, body interface{}, result interface{}) (int, error) {
	return c.do(http.MethodPut, path, body, result)
}

// RawDelete deletes the resource at path. Returns the http status code.
func (c Client) RawDelete(path string) (int, error) {
	return c.do(http.MethodDelete, path, nil, nil)
}
