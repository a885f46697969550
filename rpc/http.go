// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"io"
	"net"
	"net/http"
	"net/rpc/jsonrpc"

	"github.com/33cn/digitalbomb/metrics"
	"github.com/rs/cors"
)

// HTTPConn adapt HTTP connection to ReadWriteCloser
type HTTPConn struct {
	in  io.Reader
	out io.Writer
}

func (c *HTTPConn) Read(p []byte) (n int, err error)  { return c.in.Read(p) }
func (c *HTTPConn) Write(d []byte) (n int, err error) { return c.out.Write(d) }

// Close nothing
func (c *HTTPConn) Close() error { return nil }

// Handler http 入口: POST / 为 jrpc, GET /metrics 为统计数据
func (j *JSONRPCServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", j.serveJRPC)
	mux.Handle("/metrics", metrics.Handler())
	var handler http.Handler = mux
	if j.cfg.EnableCORS {
		handler = cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodPost, http.MethodGet},
			AllowedHeaders: []string{"*"},
		}).Handler(mux)
	}
	return j.filter(handler)
}

func (j *JSONRPCServer) filter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !j.checkIPWhitelist(ip) {
			rlog.Error("reject ip", "ip", ip)
			http.Error(w, "reject", http.StatusForbidden)
			return
		}
		if !j.checkRateLimit(ip) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (j *JSONRPCServer) serveJRPC(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	serverCodec := jsonrpc.NewServerCodec(&HTTPConn{in: r.Body, out: w})
	w.Header().Set("Content-type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := j.s.ServeRequest(serverCodec); err != nil {
		rlog.Debug("Error while serving JSON request", "err", err)
	}
}
