// Package param implements the typed, observable parameter and component
// substrate every engine node builds on: bounded/compound/boolean/discrete/
// enum/object/functional parameter kinds, synchronous change listeners, and
// the component tree parameters are registered against.
//
// The one-shot "a parameter belongs to exactly one owning component"
// contract mirrors the idempotency guard in
// framesupplier/internal/supplier.go's Start (a started bool checked and
// set under lock); listener dispatch mirrors the subscriber bookkeeping in
// framebus.bus, generalized from fan-out-on-publish to fan-out-on-change.
package param
