// Package ueformat reads the UEFormat binary asset interchange container,
// as produced by Unreal Engine asset exporters, and decodes its model
// payload (.uemodel) into an in-memory scene-graph-ready representation.
//
// # File Format Overview
//
// A UEFormat file consists of:
//   - The 8-byte magic "UEFORMAT"
//   - An envelope header: payload identifier ("UEMODEL", "UEANIM",
//     "UEWORLD"), a version byte, the object name, and a compression flag
//     with optional algorithm name and size fields
//   - A payload, optionally whole-buffer compressed (ZSTD in current
//     exporters), structured as self-delimited sections
//
// Each section and chunk carries a length-prefixed type name, an element
// count, and its body size in bytes. Unknown types are skipped using the
// declared size, so readers stay compatible with future revisions.
//
// Model payloads hold a list of LODs, each with vertex positions, a flat
// triangle index list, normals, vertex color channels, UV channels,
// material face ranges, bone weights and morph targets.
//
// # Basic Usage
//
//	model, err := ueformat.DecodeFile("mesh.uemodel")
//	if err != nil {
//		// handle err
//	}
//	for _, lod := range model.LODs {
//		_ = lod.Vertices
//	}
//
// # Security Considerations
//
// Every length and count read from a file is treated as untrusted and is
// bounds-checked before allocation. Whole-payload decompression is capped
// by configurable [Limits] to prevent decompression bombs.
package ueformat
