// Package dispatch resolves free-form catalog queries and shapes provider output into response envelopes.
//
// # Pipeline
//
// Every operation runs the same sequential pipeline:
//
//  1. [Normalize] : raw lyrics/songdata/limit parameters → [models.ResolvedFlags]
//  2. [Classify] : query text → [models.ResourceReference] (song, album, playlist link or free text)
//  3. [Resolver] : link, id or name → catalog id via the [services.Provider]
//  4. Provider fetch, then truncation with [models.Result.Apply]
//  5. [models.Envelope] : {status, error?, ...}
//
// # Dispatcher
//
// [Dispatcher] exposes one method per endpoint (search, song, album, playlist, lyrics, result).
// Each validates its required input, converts provider errors into failure envelopes and recovers from
// panics, so nothing but an envelope leaves the package.
//
// The dispatcher holds no per-request state and is safe for concurrent use.
package dispatch
