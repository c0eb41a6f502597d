// Package entry defines the translation entry model and the grammars for
// locales, namespaces and keys.
//
// An Entry is one translated string addressed by (project, locale, namespace,
// dot key). Its placeholder set is derived from the value and recomputed on
// every change. A Bundle groups flat maps by locale and namespace and is the
// shape that archives are read into and written from.
package entry
