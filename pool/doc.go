// Package pool interns the strings a save blob repeats (type names,
// field names, enumerator names) into u16 tokens. Equality of interned
// strings is id comparison; the blob header stores the pool once and
// every property frame refers into it.
package pool
