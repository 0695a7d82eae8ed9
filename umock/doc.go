// Package umock routes calls to operating system and library facilities
// through swappable seams so that code using them can be unit tested
// without touching its call sites.
//
// ## WHY THIS PACKAGE EXISTS
//
// Networking code talks to the resolver, the socket layer, interface
// enumeration, TLS, files and thread primitives. Exercising its error paths
// against the real facilities is slow, flaky or impossible (a resolver that
// fails on demand, a poll that times out, a TLS write to a dead peer).
// Every facility in this package is therefore reached through exactly one
// indirection point, a Seam, whose active implementation a test can replace
// for the duration of a scope.
//
// ## DESIGN
//
// Each facility consists of four parts:
//
//  1. A capability interface (e.g. Netdb) with the method set of the real
//     facility.
//  2. A real implementation (e.g. NetdbReal) that forwards every call to the
//     real facility and adds nothing.
//  3. One process-wide seam variable (e.g. NetdbSeam) created at package
//     initialization and pointing at the real implementation for the whole
//     process lifetime.
//  4. Facade functions (e.g. GetAddrInfo) that forward their arguments to
//     the seam's current implementation and return its results unchanged.
//
// Test doubles live in package umocktest. Injecting one returns a token
// that restores the previously active implementation, so substitutions
// nest in strict LIFO order:
//
//	netdb := umocktest.NewNetdbMock(t) // injected, restored by t.Cleanup
//	netdb.On("GetAddrInfo", mock.Anything, "example.com", "80", (*umock.AddrInfoHints)(nil)).
//	    Return(addrs, nil)
//
// ## CONCURRENCY
//
// Current() is a single atomic load and is safe for any number of
// concurrent callers. Injecting and restoring are not synchronized with
// callers of the facades: substitute implementations while the code under
// test is quiescent.
//
// A double that is injected and never restored stays active until the
// process exits.
package umock
