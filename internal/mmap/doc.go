// Package mmap provides platform-specific helpers for obtaining region memory
// outside the Go heap.
//
// On Unix systems memory comes from an anonymous private mapping, on Windows from
// VirtualAlloc. Other platforms fall back to an ordinary byte slice.
package mmap
