// Package preset stores tile generator configurations as documents.
//
// A [Preset] mirrors the generator's tool window: grid dimensions, a mode
// selector per field group with a simple value and advanced min/max bounds,
// the keep-on-regenerate checkboxes and the clear-scene checkbox.
// [Preset.Reader] exposes it as a [params.UIReader], so a preset is applied
// with [params.Set.Sync] exactly as a live window would be:
//
//	p, err := preset.Load("bricks.toml")
//	if err != nil {
//	    return err
//	}
//	set, err := p.Params()
//
// # Formats
//
// Presets are TOML by default. Files ending in .yaml or .yml are read and
// written as YAML.
//
// # Stores
//
// A [Store] keeps named presets. [FileStore] writes one TOML file per preset
// under the user's config directory; [RedisStore] shares presets between
// machines. Names are validated with [errors.ValidatePresetName].
package preset
