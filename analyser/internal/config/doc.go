// Package config loads and watches the analyser configuration file.
//
// Top-level types:
//   - Config{Data, Report, Thresholds, LogLevel}: full tree parsed from YAML
//   - DataConfig: source (file|embedded), data_path, expiry_path, watch
//   - ReportConfig: path of the text report plus optional json_path and
//     prom_path exports
//
// Load(path) reads the YAML file, applies defaults (embedded source when no
// data_path is set, mgmt_report.txt, the high-positivity threshold rule,
// info logging), then validates enums and rules. Default() returns the same
// defaults without reading a file.
//
// Watch(ctx, path, onChange) reloads the file on change and hands the new
// Config to onChange. A reload that fails validation is logged and the
// previous config stays active.
package config
