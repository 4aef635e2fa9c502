// Package harness runs alignment conformance scenarios.
//
// A scenario is a YAML file describing a chain of inline logs, a destination
// log, a pattern and the mark the transplant is expected to produce:
//
//	name: later_log_anchor
//	description: anchor found in the second of two logs
//	disjoint: true
//	pattern: Lights On
//	label: Lights On
//	logs:
//	  - marks: [{frame: 54001, time: "30:00.03", name: video end}]
//	  - behaviors: [{frame: 12331, time: "06:51.03", description: Lights On}]
//	    marks: [{frame: 54001, time: "30:00.03", name: video end}]
//	expect:
//	  found: true
//	  frame: -41670
//	  time: "-23:09.00"
//
// Disjoint scenarios take each log's boundary from its "video end" mark, the
// way CopyMarkDisjoint does. Other scenarios give every log an explicit
// boundary and run through CopyMark.
//
// Run executes a scenario and evaluates its expect clause. RunWithGolden also
// compares the destination's resulting MARKS section against
// testdata/golden/{name}.golden.
package harness
