// Package traverse implements the two dependency-ordered walks shared by
// the FHE and ZKP backends: Forward (single-threaded, used by R1CS
// generation) and Parallel (worker-pool, used by FHE execution).
//
// Both drivers schedule a node once every one of its predecessors has been
// visited — the per-node pending counter is always incoming degree. The
// original Sunscreen parallel_traverse counted outgoing (consumer) degree
// instead, which is backward for a forward-dependency walk; that is not
// reproduced here (see spec.md §9, "Scheduler counter direction").
package traverse
