// Package compress implements the binary format's per-section deflate
// policy: a section is compressed only when doing so is actually worth
// the decode-time cost, and every decision is made independently per
// section rather than globally for the whole file.
//
// [ShouldAttempt] gates compression on raw size; [Encode] additionally
// rejects a compressed candidate that didn't pay for itself, returning
// the original bytes unchanged. Callers (the binary encoder) persist
// whichever bytes [Encode] returns alongside the boolean it reports, and
// hand both back to [Decode] to reverse the decision. Both functions are
// safe to call concurrently — they hold no shared state — so an encoder
// can fan section compression out across a worker pool.
package compress
