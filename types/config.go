// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config 节点配置
type Config struct {
	Title     string    `toml:"title"`
	Log       Log       `toml:"log"`
	Store     Store     `toml:"store"`
	RPC       RPC       `toml:"rpc"`
	Mempool   Mempool   `toml:"mempool"`
	Consensus Consensus `toml:"consensus"`
	Metrics   Metrics   `toml:"metrics"`
	Genesis   Genesis   `toml:"genesis"`
}

// Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `toml:"logFile"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `toml:"maxFileSize"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `toml:"maxBackups"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32 `toml:"maxAge"`
	// 日志文件名是否使用本地时间（否则使用UTC时间）
	LocalTime bool `toml:"localTime"`
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool `toml:"compress"`
	// 是否打印调用源文件和行号
	CallerFile bool `toml:"callerFile"`
	// 是否打印调用方法
	CallerFunction bool `toml:"callerFunction"`
}

// Store 存储配置
type Store struct {
	Name    string `toml:"name"`
	Driver  string `toml:"driver"`
	DbPath  string `toml:"dbPath"`
	DbCache int32  `toml:"dbCache"`
}

// RPC rpc 配置
type RPC struct {
	JrpcBindAddr   string   `toml:"jrpcBindAddr"`
	Whitelist      []string `toml:"whitelist"`
	MaxConnections int      `toml:"maxConnections"`
	// 每个 ip 每秒允许的请求数以及突发容量, 0 表示不限制
	RateLimit  float64 `toml:"rateLimit"`
	RateBurst  int64   `toml:"rateBurst"`
	EnableCORS bool    `toml:"enableCORS"`
}

// Mempool 交易池配置
type Mempool struct {
	PoolCacheSize      int `toml:"poolCacheSize"`
	MaxTxNumPerAccount int `toml:"maxTxNumPerAccount"`
}

// Consensus 共识配置
type Consensus struct {
	Name string `toml:"name"`
	// 出块间隔, 单位毫秒
	BlockInterval int64 `toml:"blockInterval"`
	MaxTxNumber   int   `toml:"maxTxNumber"`
}

// Metrics 统计配置
type Metrics struct {
	Enable bool `toml:"enable"`
	// 输出到日志的时间间隔, 单位秒
	Duration int64 `toml:"duration"`
}

// GenesisAccount 创世分配
type GenesisAccount struct {
	Addr   string `toml:"addr"`
	Amount int64  `toml:"amount"`
}

// Genesis 创世配置
type Genesis struct {
	BlockTime int64             `toml:"blockTime"`
	Accounts  []*GenesisAccount `toml:"accounts"`
}

// ConfigSubModule 子模块配置, 按名字保存 json 格式的原始配置
type ConfigSubModule struct {
	Exec map[string][]byte
}

type subModule struct {
	Exec struct {
		Sub map[string]interface{} `toml:"sub"`
	} `toml:"exec"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Title: "digitalbomb",
		Log: Log{
			Loglevel:        "info",
			LogConsoleLevel: "info",
			MaxFileSize:     300,
			MaxBackups:      100,
			MaxAge:          28,
			LocalTime:       true,
			Compress:        true,
		},
		Store: Store{
			Name:    "datadir",
			Driver:  "goleveldb",
			DbPath:  "datadir",
			DbCache: 64,
		},
		RPC: RPC{
			JrpcBindAddr:   "localhost:8801",
			Whitelist:      []string{"127.0.0.1"},
			MaxConnections: 1000,
		},
		Mempool: Mempool{
			PoolCacheSize:      10240,
			MaxTxNumPerAccount: 100,
		},
		Consensus: Consensus{
			Name:          "solo",
			BlockInterval: 1000,
			MaxTxNumber:   1000,
		},
		Metrics: Metrics{
			Duration: 60,
		},
		Genesis: Genesis{},
	}
}

// InitCfg 读取配置文件
func InitCfg(path string) (*Config, *ConfigSubModule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read config")
	}
	return InitCfgString(string(data))
}

// InitCfgString 解析配置字符串, 未配置的部分使用默认值
func InitCfgString(cfgstring string) (*Config, *ConfigSubModule, error) {
	cfg := DefaultConfig()
	if _, err := tml.Decode(cfgstring, cfg); err != nil {
		return nil, nil, errors.Wrap(err, "decode config")
	}
	sub, err := parseSubModule(cfgstring)
	if err != nil {
		return nil, nil, err
	}
	return cfg, sub, nil
}

func parseSubModule(cfgstring string) (*ConfigSubModule, error) {
	var sub subModule
	if _, err := tml.Decode(cfgstring, &sub); err != nil {
		return nil, errors.Wrap(err, "decode sub config")
	}
	subcfg := &ConfigSubModule{Exec: make(map[string][]byte)}
	for name, value := range sub.Exec.Sub {
		data, err := json.Marshal(value)
		if err != nil {
			return nil, errors.Wrapf(err, "sub config %s", name)
		}
		subcfg.Exec[name] = data
	}
	return subcfg, nil
}

// MustDecodeSub 解析子模块配置, 配置为空时保留默认值
func MustDecodeSub(data []byte, cfg interface{}) {
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		panic(err)
	}
}
