/*
Package domain contains the build-level vocabulary shared by the compiler, its
adapters and its observers.

It defines the lifecycle events emitted while a build runs, the hooks that
receive them, warnings, and the error taxonomy of a build. The package is kept
free of I/O and of graph types.

# Error taxonomy

  - Warnings: a missing object, blendshape or material slot. Logged, collected
    in the build result, never fatal.
  - Feature-fatal: an action failed. Reported as *ActionError naming the feature.
  - Structural-fatal: *MissingBuilderError, *NoActionsError and parameter kind
    mismatches, raised before any graph mutation.
  - Pre-existing corruption: *UnsupportedVersionError, raised before compilation.
*/
package domain
