// Package model builds the read-only value model that page bindings resolve
// dotted paths against.
//
// A model is assembled once from explicit inputs: a deployment instance
// selector, a Kubernetes namespace, and a chart descriptor. Derived values,
// such as the log-stream monitoring URL, are computed from those inputs by
// expression rules declared in a definitions document:
//
//	instances:
//	  ska-mid:
//	    name: SKA Mid
//	    image: https://example.org/ska_mid.svg
//	    aliases: [mvp-mid]
//	derive:
//	  - key: KibanaURL
//	    expr: '"../app/logs/stream?ns=" + namespace'
//
// Rules are compiled and evaluated with [github.com/expr-lang/expr]. Each
// rule sees the selected instance, the namespace, the chart, the raw
// selector, every value derived by an earlier rule, and the "list"
// builtins for delimited lists (join, append, remove):
//
//	  - key: Title
//	    expr: 'list.join(" | ", instance.name, namespace)'
//
// The resulting [lang.Value] has the top-level keys MVPInstance, Namespace,
// ChartInfo, and one key per derived rule.
package model
