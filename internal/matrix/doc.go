// Package matrix builds the CI build matrix of CUDA and torch versions.
//
// The registry tag listing is reduced to the newest patch release of every
// CUDA major.minor line, then each configured CUDA version is crossed with
// each configured torch version. Pairs that exceed a torch line's CUDA
// ceiling are left out.
package matrix
