// Package project manages folder-based texrack projects.
//
// A project is a folder holding a manifest.json and an assets/ subfolder of
// imported image textures:
//
//	<project-folder>/
//	  manifest.json
//	  assets/
//	    texture_<id><extension>
//
// The Manager creates, opens, imports and lists projects under a shared
// projects root, and adds or removes textures while keeping the manifest in
// step with the files under assets/. Every mutation is persisted after the
// physical file operation has succeeded.
//
// The Manager holds no locks around the manifest read-modify-write cycle.
// Two callers mutating the same project race and the last writer wins.
package project
