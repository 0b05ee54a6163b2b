// Package component provides long-lived, stateful component instances.
//
// An Instance survives across reconciliation passes while its stable id
// keeps appearing in freshly rendered trees. The reconciler only touches a
// narrow surface of it: the key-to-root-node table, the dirty flag, the
// host boundary markers, and the lifecycle events (Created, Updated,
// Destroy). Everything else — input, state, render function — belongs to
// the application.
//
// Registry is the explicit lookup context passed through the reconcile
// call chain; there is no package-level instance table.
package component
