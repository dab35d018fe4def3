// Package types defines the data model shared by every component of the
// cascade engine: the closed container/model/package state enums, the
// shapes ingress hands to the cascade engine, and the result types
// callers see back.
//
// Model and package states are never computed here — this package only
// names the values the evaluator (pkg/evaluator) is allowed to produce.
package types
