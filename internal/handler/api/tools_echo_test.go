package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TAMCP/internal/services/indicators"
	"TAMCP/internal/usecase"
	xhttp "TAMCP/pkg/http"
	xlogger "TAMCP/pkg/logger"
)

const testToken = "s3cret"

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	registry := usecase.NewToolRegistry(indicators.NewCalculator(indicators.NewTalibBackend()))
	h := NewToolsEchoHandler(xlogger.NewNop(), registry, "test")
	srv, err := xhttp.NewServer(h, xhttp.WithAuthToken(testToken))
	require.NoError(t, err)
	return srv.Echo()
}

func doRequest(e *echo.Echo, method, path, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUnauthorizedBodiesAreIdentical(t *testing.T) {
	e := newTestEcho(t)
	body := `{"name":"sma","arguments":{"prices":[1,2,3],"period":2}}`

	for name, auth := range map[string]string{
		"missing header": "",
		"no prefix":      testToken,
		"empty token":    "Bearer ",
		"wrong token":    "Bearer nope",
		"lower prefix":   "bearer " + testToken,
	} {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, "/call", auth, body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		})
	}
}

func TestHealthAndToolList(t *testing.T) {
	e := newTestEcho(t)
	auth := "Bearer " + testToken

	rec := doRequest(e, http.MethodGet, "/health", auth, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/tools", auth, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Tools []struct {
			Name        string                 `json:"name"`
			InputSchema map[string]interface{} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Tools, 5)
	assert.Equal(t, "rsi", body.Tools[0].Name)
	assert.Equal(t, "object", body.Tools[0].InputSchema["type"])
}

func TestCallSMAEndToEnd(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(e, http.MethodPost, "/call", "Bearer "+testToken,
		`{"name":"sma","arguments":{"prices":[1,2,3,4,5,6,7,8,9,10],"period":5}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":[null,null,null,null,3,4,5,6,7,8]}`, rec.Body.String())
}

func TestCallErrors(t *testing.T) {
	e := newTestEcho(t)
	auth := "Bearer " + testToken

	cases := map[string]struct {
		body   string
		status int
		msg    string
	}{
		"invalid period": {`{"name":"sma","arguments":{"prices":[1,2,3],"period":4}}`, http.StatusBadRequest, "period cannot be greater than length of prices"},
		"null price":     {`{"name":"rsi","arguments":{"prices":[1,null]}}`, http.StatusBadRequest, "all items in prices must be numeric (index 1)"},
		"unknown tool":   {`{"name":"adx","arguments":{}}`, http.StatusNotFound, "unknown tool: adx"},
		"missing name":   {`{"arguments":{}}`, http.StatusBadRequest, "name is required"},
		"malformed":      {`{"name":`, http.StatusBadRequest, "malformed request body"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, "/call", auth, tc.body)
			assert.Equal(t, tc.status, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

func TestCallMACDHugeSignalReturnsNulls(t *testing.T) {
	e := newTestEcho(t)
	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = float64(i + 1)
	}
	args, _ := json.Marshal(prices)
	body := `{"name":"macd","arguments":{"prices":` + string(args) + `,"fast":12,"slow":26,"signal":9223372036854775807}}`

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() { done <- doRequest(e, http.MethodPost, "/call", "Bearer "+testToken, body) }()

	select {
	case rec := <-done:
		require.Equal(t, http.StatusOK, rec.Code)
		var res struct {
			Result map[string][]*float64 `json:"result"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		for _, key := range []string{"macd", "signal", "histogram"} {
			require.Len(t, res.Result[key], 40)
			for _, v := range res.Result[key] {
				assert.Nil(t, v)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("macd with a huge signal period did not return")
	}
}
