// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient 实现 jrpc 的 http 客户端
package jsonclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// JSONClient a object of jsonclient
type JSONClient struct {
	url    string
	prefix string
	client *http.Client
}

// NewJSONClient produce a json object, 方法名没有前缀时默认加上 DigitalBomb.
func NewJSONClient(url string) (*JSONClient, error) {
	return NewJSONClientWithPrefix("DigitalBomb", url)
}

// NewJSONClientWithPrefix 指定默认服务名
func NewJSONClientWithPrefix(prefix, url string) (*JSONClient, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return &JSONClient{url: url, prefix: prefix, client: &http.Client{Timeout: 30 * time.Second}}, nil
}

type clientRequest struct {
	Method string         `json:"method"`
	Params [1]interface{} `json:"params"`
	ID     string         `json:"id"`
}

type clientResponse struct {
	ID     string           `json:"id"`
	Result *json.RawMessage `json:"result"`
	Error  interface{}      `json:"error"`
}

// Call jsonclient call method
func (client *JSONClient) Call(method string, params, resp interface{}) error {
	if !strings.Contains(method, ".") {
		method = client.prefix + "." + method
	}
	req := &clientRequest{Method: method, ID: uuid.New().String()}
	req.Params[0] = params
	data, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}
	postresp, err := client.client.Post(client.url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return errors.Wrap(err, "post")
	}
	defer postresp.Body.Close()
	b, err := io.ReadAll(postresp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if postresp.StatusCode != http.StatusOK {
		return errors.Errorf("http status %d: %s", postresp.StatusCode, strings.TrimSpace(string(b)))
	}
	cresp := &clientResponse{}
	if err := json.Unmarshal(b, cresp); err != nil {
		return errors.Wrap(err, "unmarshal response")
	}
	if cresp.ID != req.ID {
		return errors.Errorf("response id %s not match %s", cresp.ID, req.ID)
	}
	if cresp.Error != nil {
		x, ok := cresp.Error.(string)
		if !ok {
			return errors.Errorf("invalid error %v", cresp.Error)
		}
		if x == "" {
			x = "unspecified error"
		}
		return errors.New(x)
	}
	if cresp.Result == nil {
		return errors.New("empty result")
	}
	if resp == nil {
		return nil
	}
	return json.Unmarshal(*cresp.Result, resp)
}
