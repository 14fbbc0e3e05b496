package model

import (
	"fmt"

	"github.com/ardnew/mung"
)

// Names bound in the environment of every derive rule.
const (
	envInstance  = "instance"
	envNamespace = "namespace"
	envChart     = "chart"
	envSelector  = "selector"
	envList      = "list"
)

// builtins returns the functions available to every derive rule.
// A new map is built per call because rule evaluation adds keys to it.
func builtins() map[string]any {
	return map[string]any{
		envList: map[string]any{
			"join":   listJoin,
			"append": listAppend,
			"remove": listRemove,
		},
	}
}

// listJoin joins the non-empty items with delim, keeping the first
// occurrence of each. Sequence arguments are flattened, so
// list.join(", ", map(chart.dependencies, #.name)) lists every subchart.
func listJoin(delim string, items ...any) string {
	return mung.Make(
		mung.WithDelim(delim),
		mung.WithSubject(flatten(items)),
		mung.WithFilter(nonEmpty),
	).String()
}

// listAppend adds items to the end of the delim-separated list. An item
// already in the list moves to the end.
func listAppend(list, delim string, items ...any) string {
	return mung.Make(
		mung.WithDelim(delim),
		mung.WithSubjectItems(list),
		mung.WithSuffix(flatten(items)),
		mung.WithFilter(nonEmpty),
	).String()
}

// listRemove drops every occurrence of items from the delim-separated list.
func listRemove(list, delim string, items ...any) string {
	return mung.Make(
		mung.WithDelim(delim),
		mung.WithSubjectItems(list),
		mung.WithRemove(flatten(items)),
		mung.WithFilter(nonEmpty),
	).String()
}

func nonEmpty(s string) bool { return s != "" }

// flatten renders rule arguments as strings. Nil arguments, such as fields
// of an unselected instance, are dropped.
func flatten(items []any) []string {
	out := make([]string, 0, len(items))

	for _, item := range items {
		switch v := item.(type) {
		case nil:
		case string:
			out = append(out, v)
		case []any:
			out = append(out, flatten(v)...)
		case []string:
			out = append(out, v...)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}

	return out
}
