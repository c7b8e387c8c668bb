// Package watch notifies callers when files on disk change.
//
// Files uses fsnotify on the parent directory of each path and reacts to
// Write and Create events for the watched names only. Editors and deploy
// tools often replace a file by renaming a new one over it; watching the
// directory keeps those saves visible after the original inode is gone.
package watch
