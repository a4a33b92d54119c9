package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/taskflow/internal/flagx"
	"github.com/dmitrijs2005/taskflow/internal/timex"
	"github.com/tidwall/jsonc"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals
// accept strings like "3s" or integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values from the file named by -c/-config or
// $TASKFLOW_CONFIG. Comments and trailing commas are allowed; keys missing
// from the file keep their current values. Read and decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	jc := JsonConfig{
		ServerEndpointAddr:  cfg.ServerEndpointAddr,
		OnlineCheckInterval: timex.Duration{Duration: cfg.OnlineCheckInterval},
		RequestTimeout:      timex.Duration{Duration: cfg.RequestTimeout},
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	cfg.RequestTimeout = jc.RequestTimeout.Duration
}
