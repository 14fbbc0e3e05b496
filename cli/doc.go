// Package cli contains the command line interface for pagebind.
//
// # Usage
//
// Bind a landing page for an instance and namespace, reading the page from
// stdin and writing the result to stdout:
//
//	pagebind --instance=ska-mid --namespace=integration < index.html
//
// Print resolved values, or browse the value model interactively:
//
//	pagebind resolve MVPInstance.name KibanaURL
//	pagebind --chart=./charts/ska-mid explore
//
// # Value Model Options
//
//   - --instance (env MVP): deployment instance selector or alias
//   - --namespace (env NAMESPACE): Kubernetes namespace
//   - --chart: Helm chart directory or archive, or a YAML chart descriptor
//   - --definitions: YAML file replacing the built-in instances and derived
//     values
//
// # Configuration Files
//
// Flag values are also read from config.json and config.yaml in the user
// configuration directory. The YAML loader ([loadYAML]) flattens nested
// keys into hyphenated flag names. The init command writes the current flag
// values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o pagebind .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/pagebind/pprof)
package cli
