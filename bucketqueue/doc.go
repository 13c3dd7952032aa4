// Package bucketqueue provides a bounded, single-producer/multi-consumer
// FIFO queue of pending bucket.Block work items, with explicit
// no-more-input signalling.
//
// The queue never fails: PushBlocking and PopBlocking only block or
// report drained.
package bucketqueue
