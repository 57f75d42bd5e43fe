// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package jsonrpctest runs an in-process node that answers JSON-RPC calls
// from registered handlers.
package jsonrpctest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// Error is returned by a handler to produce a JSON-RPC error response.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Name    string      `json:"name,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// Call is a request received by the node.
type Call struct {
	Method string
	Params json.RawMessage
}

type HandlerFunc func(params json.RawMessage) (interface{}, error)

type request struct {
	Version string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      json.RawMessage `json:"id"`
}

type response struct {
	Version string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

type Node struct {
	server *httptest.Server

	mu       sync.Mutex
	handlers map[string]HandlerFunc
	status   interface{}
	calls    []Call
}

// NewNode starts a node that is closed when the test ends.
func NewNode(t testing.TB) *Node {
	n := &Node{handlers: map[string]HandlerFunc{}}
	router := mux.NewRouter()
	router.HandleFunc("/", n.serveRPC).Methods(http.MethodPost)
	router.HandleFunc("/status", n.serveStatus).Methods(http.MethodGet)
	n.server = httptest.NewServer(router)
	t.Cleanup(n.server.Close)
	return n
}

func (n *Node) URL() string { return n.server.URL }

// Handle registers [f] for [method], replacing any previous handler.
func (n *Node) Handle(method string, f HandlerFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[method] = f
}

// Reply answers [method] with a fixed result.
func (n *Node) Reply(method string, result interface{}) {
	n.Handle(method, func(json.RawMessage) (interface{}, error) { return result, nil })
}

// SetStatus sets the body served on GET /status.
func (n *Node) SetStatus(status interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.status = status
}

// Calls returns every JSON-RPC request received so far.
func (n *Node) Calls() []Call {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Call(nil), n.calls...)
}

// CallsTo returns the requests received for [method].
func (n *Node) CallsTo(method string) []Call {
	var out []Call
	for _, c := range n.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (n *Node) serveRPC(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.calls = append(n.calls, Call{Method: req.Method, Params: req.Params})
	h, ok := n.handlers[req.Method]
	n.mu.Unlock()

	resp := response{Version: "2.0", ID: req.ID}
	if !ok {
		resp.Error = &Error{Code: -32601, Message: "Method not found", Data: req.Method}
	} else if result, err := h(req.Params); err != nil {
		rpcErr, ok := err.(*Error)
		if !ok {
			rpcErr = &Error{Code: -32000, Message: "Server error", Data: err.Error()}
		}
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	writeJSON(w, resp)
}

func (n *Node) serveStatus(w http.ResponseWriter, _ *http.Request) {
	n.mu.Lock()
	status := n.status
	n.mu.Unlock()
	if status == nil {
		http.Error(w, "status unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, status)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
