// Package mock provides test doubles for the ai service interfaces.
//
// The doubles default to deterministic behavior (hash-derived vectors,
// document-derived questions) so tests stay reproducible, and expose
// function fields for injecting failures or custom responses.
package mock
