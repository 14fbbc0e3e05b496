// Package dom abstracts the few page-element capabilities that bindings
// need: reading and writing text, attributes and classes, replacing inner
// markup, and reacting to activation.
//
// [Element] and [Document] are the capability interfaces. [HTML] implements
// them over a parsed [golang.org/x/net/html] tree, with [HTML.Activate]
// standing in for a user clicking an element.
//
// Visibility is expressed by a single reserved class, [HiddenClass]. An
// element carrying it is hidden; [Show] and [Hide] only ever remove or add
// that class.
package dom
