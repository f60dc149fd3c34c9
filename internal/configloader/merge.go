package configloader

import "github.com/yaklabco/gliedit/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Strings: override wins when non-empty
//   - Pointers: override wins when non-nil, so an explicit false still applies
//   - MaxBackups: override wins when positive
//
// Neither input is modified.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.File != "" {
		result.File = override.File
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	mergePtr(&result.Context, override.Context)
	mergePtr(&result.ReadOnly, override.ReadOnly)
	mergePtr(&result.BlockOnConflict, override.BlockOnConflict)

	mergePtr(&result.Backups.Enabled, override.Backups.Enabled)
	if override.Backups.MaxBackups > 0 {
		result.Backups.MaxBackups = override.Backups.MaxBackups
	}

	mergePtr(&result.Preview.Enabled, override.Preview.Enabled)
	mergePtr(&result.Preview.Context, override.Preview.Context)

	return result
}

func mergePtr[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
