// Package bind substitutes values from a [lang.Value] model into the marked
// elements of a [dom.Document] and wires menu-triggered panels.
//
// Elements select their binding with a marker class:
//
//	templateText        "{path}" placeholders in the text are replaced
//	templateImage       the src attribute is a path, replaced by its value
//	templateVersioning  inner markup is replaced by the chart version list
//	templateURL         the href attribute is a path, replaced by its value
//	openedByMenu        the panel is shown by its "openerfor_<N>" trigger
//
// [Bootstrap] waits for the document to become ready, then visits the
// marker classes in that order and the elements of each class in document
// order. Bindings fail soft: an unresolved path renders as the empty string,
// is logged, and never stops the pass.
package bind
