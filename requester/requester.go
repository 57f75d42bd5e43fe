// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/rpc/v2/json2"
)

const contentType = "application/json"

var ErrUnexpectedStatus = errors.New("unexpected status code")

// EndpointRequester issues JSON-RPC 2.0 calls against a single node.
type EndpointRequester struct {
	cli     *http.Client
	uri     string
	name    string
	metrics *Metrics
}

// New returns a requester for [uri]. [name] only labels errors.
func New(uri string, name string) *EndpointRequester {
	return &EndpointRequester{
		cli:  http.DefaultClient,
		uri:  strings.TrimSuffix(uri, "/"),
		name: name,
	}
}

// WithClient replaces the HTTP client used for every request.
func (e *EndpointRequester) WithClient(cli *http.Client) *EndpointRequester {
	e.cli = cli
	return e
}

// WithMetrics records every request in [m].
func (e *EndpointRequester) WithMetrics(m *Metrics) *EndpointRequester {
	e.metrics = m
	return e
}

func (e *EndpointRequester) URI() string { return e.uri }

// SendRequest calls [method] with [params] and decodes the result into
// [reply]. Errors returned by the node are *json2.Error.
func (e *EndpointRequester) SendRequest(
	ctx context.Context,
	method string,
	params interface{},
	reply interface{},
) (err error) {
	defer func(start time.Time) { e.metrics.observe(method, start, err) }(time.Now())
	body, err := json2.EncodeClientRequest(method, params)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s request", err, method)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.uri, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := e.cli.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s request to %s failed", err, method, e.name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusErr(method, resp)
	}
	return json2.DecodeClientResponse(resp.Body, reply)
}

// Get fetches [path] relative to the endpoint and decodes the JSON body
// into [reply].
func (e *EndpointRequester) Get(ctx context.Context, path string, reply interface{}) (err error) {
	defer func(start time.Time) { e.metrics.observe(path, start, err) }(time.Now())
	u, err := url.JoinPath(e.uri, path)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", contentType)

	resp, err := e.cli.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s on %s failed", err, path, e.name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusErr(path, resp)
	}
	return json.NewDecoder(resp.Body).Decode(reply)
}

func statusErr(what string, resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%w: %s returned %d: %s", ErrUnexpectedStatus, what, resp.StatusCode, bytes.TrimSpace(msg))
}
