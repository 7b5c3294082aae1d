// Package chiguard mounts goAuthz middleware on chi routers.
//
// [Group] and [Route] wrap a sub-router in [middleware.Extractor.Authenticate]
// followed by a RequireAll check. [RequireSelfOr] admits a request when a URL
// parameter names the caller's own subject, and otherwise falls back to a
// permission check.
package chiguard
