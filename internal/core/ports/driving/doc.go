// Package driving provides interfaces for primary/inbound ports:
// the operations external collaborators call into the core with.
package driving
