// Package middleware adapts goAuthz claims to net/http.
//
// # Flow
//
// An [Extractor] looks for a token in the configured cookie, then in the
// "Authorization: Bearer" header, hands it to the caller's [Validator], and
// rejects expired claims. [Extractor.Authenticate] stores the claims in the
// request context; [Extractor.RequireAll], [Extractor.RequireAny],
// [Extractor.RequireAdmin] and [Extractor.RequirePremium] gate handlers on
// the claims' effective permissions.
//
// Missing, undecodable or expired tokens yield 401. Valid claims lacking a
// permission yield 403.
//
// Each request is counted as exactly one decision, however many guards it
// passes through. The first middleware that resolves the claims owns the
// decision and records the check latency; later guards only report denials.
//
// With auditing enabled, denials are queued to the configured sink by a
// background dispatcher; call [Extractor.Close] on shutdown to flush it.
//
// # Architecture boundaries
//
// This package does not verify token signatures. The [Validator] port is
// where a host plugs in its JWT verifier.
//
// # What this package must NOT do
//
//   - Parse or sign JWTs itself.
//   - Decide permissions from anything but [goAuthz.Claims.EffectivePermissions].
package middleware
