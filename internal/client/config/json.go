package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/resumeroast/internal/flagx"
	"github.com/dmitrijs2005/resumeroast/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "150ms"
// or as integer nanoseconds. After parsing, set values are copied into the
// runtime Config.
type JsonConfig struct {
	APIBaseURL      *string         `json:"api_base_url"`
	DatabaseDSN     *string         `json:"database_dsn"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	URLSyncDebounce *timex.Duration `json:"url_sync_debounce"`
	LogLevel        *string         `json:"log_level"`
	AnnouncementID  *string         `json:"announcement_id"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags (flagx.JsonConfigFlags); when
// neither is given, nothing is loaded. Absent JSON keys leave the existing
// values alone. Read or unmarshal errors panic; loading happens once at
// startup and a broken config file should stop the program.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.URLSyncDebounce != nil {
		cfg.URLSyncDebounce = time.Duration(jc.URLSyncDebounce.Duration)
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.AnnouncementID != nil {
		cfg.AnnouncementID = *jc.AnnouncementID
	}
}
