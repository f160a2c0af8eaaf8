package module

import (
	"openslots/internal/platform/config"
	trendssvc "openslots/internal/services/trends/service"
)

// FromConfig reads TRENDS_* values from process config/env
func FromConfig(cfg config.Conf) trendssvc.RecorderConfig {
	tc := cfg.Prefix("TRENDS_")
	return trendssvc.RecorderConfig{
		Buffer:     tc.MayInt("BUFFER", 1024),
		BatchMax:   tc.MayInt("BATCH_MAX", 256),
		FlushEvery: tc.MayDuration("FLUSH_EVERY", 0),
	}
}
