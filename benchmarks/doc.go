// Package benchmarks holds micro benchmarks for decoding and unpacking. Run
// with: go test -bench . ./benchmarks
package benchmarks
