// Package state persists the warm-up progress record. A single JSON document
// is read and written wholesale; saves go through a temp-file-plus-rename so
// an interrupted write never corrupts the previous snapshot.
//
// The store assumes single-process, single-instance execution. Concurrent
// invocations are not guarded against and can lose updates.
package state
