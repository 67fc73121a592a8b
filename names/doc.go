// Package names maps the hash tokens saves store (CName FNV-1a 64
// hashes and TweakDBID record ids) back to readable name content,
// using name lists shipped as YAML resources. Hashing is one-way in
// the format itself; reverse lookup only works for names a list
// contains, and everything else resolves to a stable placeholder form
// that survives re-hashing.
package names
