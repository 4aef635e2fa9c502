// Package chain loads chain manifests: configuration files naming the logs
// of a consecutive recording, their boundaries, the destination log and the
// behavior to transplant.
//
// Manifests may be written in YAML or CUE. Both decode into Manifest, and
// both reject unknown fields. Paths are resolved relative to the manifest's
// directory.
//
//	pattern: "Lights On"
//	label:   "Lights On"
//	dest:    "1_4.txt"
//	logs: [
//		{path: "1_1.txt", boundary: {time: "30:00.03", frame: 54001}},
//		{path: "1_2.txt"}, // boundary taken from its "video end" mark
//	]
package chain
