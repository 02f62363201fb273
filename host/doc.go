/*
Package host declares the boundary between a contract and the execution
environment it is deployed to. The environment is deterministic and
single-threaded: no two top-level calls interleave, every call either
commits in full or aborts with no durable effect, and asynchronous calls
issued during a call are delivered as separate receipts after the current
one commits.

Contract code receives an Env at every entry point and must not retain it
across calls. Failures are signalled by panicking with a message string;
the environment recovers the panic at the call boundary, discards all
staged state and reports the message to the caller.
*/
package host
