// Package feature defines the author-facing feature models attached to scene
// objects.
//
// Models are a closed set: every concrete type implements Model through an
// unexported method, so a type switch over Toggle, FullController, Socket,
// GestureDriver, MoveObject and Unknown is exhaustive. Records persisted by
// newer tool versions decode to Unknown with Future set, which blocks a build
// instead of producing a lossy one.
//
// Models carry configuration only. They reference scene objects by path and
// authored assets by library name, and own no graph objects.
package feature
