// Package mapplan builds the per-request execution plan of a map/report
// printing engine and resolves the remote or embedded resources that plan
// needs.
//
// # Overview
//
// mapplan is two tightly coupled subsystems:
//
//   - processor/graph: given an ordered list of processors — typed,
//     named-input/named-output transformation stages — and a catalogue of
//     externally supplied attributes, graph.Build constructs a directed
//     acyclic dependency graph in which every processor's inputs are
//     satisfied by either the attribute catalogue or an earlier
//     processor's output, with no ambiguity, no type mismatch, and
//     nothing missing.
//   - fetch: a uniform request/response abstraction that dispatches a
//     logical URI to one of three retrieval strategies — an embedded
//     data: payload, a configuration-file-backed local resource, or a
//     retried network request — applying diagnostic-context propagation
//     and a bounded retry policy over 5xx responses and transport errors.
//
// # Packages
//
//   - processor: the Processor contract and reflection-driven descriptor
//     extraction processors declare their inputs/outputs through.
//   - graph: Build (the dependency graph builder), FillAttributes (the
//     two-pass attribute propagator), and Graph.Walk (a thin concurrent
//     consumer used to prove the built graph is usable).
//   - fetch: Dispatcher, the data/file/http resolvers, and the diagnostic
//     context propagator.
//
// Everything outside these two subsystems — servlet plumbing, template
// parsing, PDF assembly, report rendering — is out of scope and appears,
// where at all, as a narrow consumed interface (processor.Processor,
// fetch.Configuration, fetch.TransportFactory).
package mapplan
