/*
Package ports defines the driven ports (interfaces) of the graft compiler.

These interfaces decouple the build from external implementations, so the same
pipeline runs against in-memory fakes, a scratch directory on disk, or a shared
Redis instance.

# Key Interfaces

  - AvatarSource: loads avatars (hierarchy, features, authored assets).
  - AssetStore: the per-avatar scratch area generated assets are written to.
  - BuildLocker: enforces a single in-flight build per avatar.
*/
package ports
