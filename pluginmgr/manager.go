// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"sort"
	"sync"

	log "github.com/33cn/digitalbomb/common/log"
	"github.com/spf13/cobra"
)

var mlog = log.New("module", "plugin.manager")

type registry struct {
	mu      sync.Mutex
	plugins map[string]*PluginBase
	once    sync.Once
}

func newRegistry() *registry {
	return &registry{plugins: make(map[string]*PluginBase)}
}

func (r *registry) register(p *PluginBase) {
	if p == nil {
		panic("plugin param is nil")
	}
	if p.Name == "" {
		panic("plugin package name is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plugins[p.Name]; ok {
		panic("plugin is existed. name = " + p.Name)
	}
	r.plugins[p.Name] = p
}

// 按包名排序, 初始化和注册顺序固定
func (r *registry) list() []*PluginBase {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*PluginBase, 0, len(r.plugins))
	for _, p := range r.plugins {
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

func (r *registry) initExec(sub map[string][]byte) {
	r.once.Do(func() {
		for _, p := range r.list() {
			mlog.Debug("init exec", "plugin", p.Name, "exec", p.ExecName)
			p.initExec(sub)
		}
	})
}

func (r *registry) hasExec(name string) bool {
	for _, p := range r.list() {
		if p.Exec != nil && p.ExecName == name {
			return true
		}
	}
	return false
}

var plugins = newRegistry()

// Register 注册插件, 在插件包的 init 中调用
func Register(p *PluginBase) {
	plugins.register(p)
}

// InitExec 初始化所有执行器, 只执行一次, sub 为按执行器名称索引的子配置
func InitExec(sub map[string][]byte) {
	plugins.initExec(sub)
}

// HasExec 是否注册了执行器
func HasExec(name string) bool {
	return plugins.hasExec(name)
}

// AddCmd 添加所有插件的命令行
func AddCmd(root *cobra.Command) {
	for _, p := range plugins.list() {
		p.addCmd(root)
	}
}

// AddRPC 注册所有插件的 rpc
func AddRPC(s RPCServer) {
	for _, p := range plugins.list() {
		p.addRPC(s)
	}
}
