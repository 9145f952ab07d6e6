// Package bwtree defines the shared contracts for the Bw-tree node core.
//
// A Bw-tree node is a delta chain: a singly linked sequence of small update
// records ending in a consolidated base node. Chains are addressed through a
// mapping table of logical ids, and every update is installed by swinging the
// id's head pointer with a single compare-and-swap.
//
// The subpackages carry the mechanics:
//   - bound: keys augmented with the -inf/+inf sentinels
//   - mapping: the lock-free id -> head registry
//   - chain: node layouts, the append/CAS protocol, traversal,
//     consolidation and chain destruction
//   - core: the driver-facing facade bundling the above
//
// This package holds only what every subpackage and every caller shares:
// the configuration surface, the sentinel errors, and the metric set.
package bwtree
