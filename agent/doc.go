// Package agent contains the conversation orchestrator: the state machine
// that sequences intent extraction, place verification and collaborator
// fan-out for one utterance, and composes the final reply.
//
// Design principles:
//   - No hidden state: Process is pure over (utterance, history) and the
//     caller owns persistence of the returned history.
//   - Fixed fallback ladder: the enhanced extractor/clarifier, when wired,
//     are tried first and any failure routes silently to the heuristic path.
//   - Partial failure never aborts: each collaborator that yields no data is
//     replaced by a substitute sentence and composition continues.
//
// Collaborator calls run sequentially with a bounded per-call timeout; a
// timeout counts as an ordinary collaborator failure.
package agent
