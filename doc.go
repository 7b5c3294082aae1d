// Package goAuthz provides a capability-flag authorization model: the
// built-in user/premium/admin roles, JWT-compatible claims that resolve
// effective permissions, and the ambient pieces request adapters share
// (config, decision metrics, audit sinks, clock).
//
// # Effective permissions
//
// [Claims.EffectivePermissions] returns the claims' permission override when
// present and the role's default set otherwise. The override replaces the
// role set; it is never merged. Claims-level checks ([Claims.Can],
// [Claims.CanAll], [Claims.CanAny]) use the effective set, so they diverge
// from role-level checks whenever an override is set.
//
// # Architecture boundaries
//
// Permission sets and the Role interface live in the permission package.
// HTTP extraction lives in middleware. Token issuance and signature
// verification are the caller's concern: [Claims] implements jwt.Claims so a
// verifier can decode straight into it.
//
// # What this package must NOT do
//
//   - Perform network or storage I/O.
//   - Enforce expiry implicitly; callers ask [Claims.IsExpired].
//   - Import middleware or metrics exporters (no import cycles).
package goAuthz
