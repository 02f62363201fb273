/*
Package runtime is a deterministic in-process implementation of the
host boundary declared in package host. It plays the role the real
execution environment plays in production: it owns account balances,
meters per-contract storage usage, schedules receipts one at a time and
gives every receipt transactional semantics over a staged storage
overlay.

Execution is single-threaded and cooperative. A top-level call is a
receipt; receipts run strictly one after another, never interleaved.
Asynchronous calls issued during a receipt become new receipts delivered
after the issuing receipt commits, and their resolve callbacks are
guaranteed to run exactly once with the outcome of the awaited call.
Ordering between unrelated top-level calls is unspecified; tests use
SubmitUrgent to exercise the interleavings this permits.

A receipt that panics commits nothing: storage writes, balance
transfers, notifications and issued calls of the failed receipt are all
discarded and the attached deposit returns to the signer.
*/
package runtime
