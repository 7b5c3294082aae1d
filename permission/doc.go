// Package permission provides the 32-bit permission set, its name table and
// codecs, and the Role interface that maps a role to a default set.
//
// # Permission sets
//
// [Set] is a closed bit space: twelve named bits ([Read] … [Premium]) plus
// presets ([Viewer], [Editor], [Manager]) built from them. Strict decoding
// ([FromBitsChecked], JSON, YAML, binary) rejects any other bit; [FromBitsTruncating]
// drops unknown bits instead.
//
// # Wire forms
//
// JSON and YAML write the bare number. Decoding accepts the number or a
// name list such as "read, write" or "READ | WRITE". The text form (env vars,
// flags) is the name list. [EncodeSet] produces a fixed 4-byte form.
//
// # Roles
//
// [Role] is open: [StaticRole] and [RoleManager] cover host-defined roles, and
// the root package ships the built-in user/premium/admin roles.
//
// # What this package must NOT do
//
//   - Perform I/O other than reading a caller-supplied role catalog.
//   - Import goAuthz or any sibling package.
package permission
