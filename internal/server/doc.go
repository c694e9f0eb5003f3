// Package server implements the MCP (Model Context Protocol) server for
// Gemini image generation and raster manipulation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes image generation
// and processing capabilities through the MCP protocol. It's designed to work
// with Claude and other MCP-compatible clients.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// The server provides 14 tools organized into categories:
//
// Gemini Generation:
//   - gemini_generate_image: Generate an image from a text prompt
//   - gemini_edit_image: Edit an existing image with an instruction
//   - gemini_generate_with_references: Generate guided by reference images
//   - gemini_describe_image: Describe an image at a chosen detail level
//
// Geometry:
//   - im_resize: Scale an image, optionally preserving aspect ratio
//   - im_crop: Extract a region by coordinates or gravity
//   - im_rotate: Rotate by an arbitrary angle
//   - im_flip: Mirror horizontally or vertically
//
// Format and Effects:
//   - im_convert: Convert between image formats
//   - im_effects: Blur, sharpen, tone adjustments, grayscale, sepia, negative
//   - im_composite: Overlay one image onto another
//
// Derived Images and Metadata:
//   - im_thumbnail: Square cover-crop thumbnail
//   - im_info: Format, dimensions, depth, file size, DPI
//   - im_border: Pad with a solid-color border
//
// # Error Handling
//
// Tools report expected failures (a missing input file, an invalid argument
// combination) as result strings beginning with "Error:", delivered as
// successful tool responses so the client model can read and react to them.
// Unexpected faults (I/O failures, exhausted API retries) become JSON-RPC
// error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(geminiClient, rasterOps)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
