// Package container arranges child objects: in a row or column, inside a
// fixed box, relative to each other, or stacked on top of each other.
//
// Every container is itself a *compose.Object, so containers nest. A
// child can belong to one container only.
package container
