// Package server implements the MCP (Model Context Protocol) server for the
// image-science tools.
//
// The server exposes the imaging package over JSON-RPC 2.0 so that MCP
// clients can inspect images and derive thumbnails, fits and crops.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logs go to stderr so they never interleave with responses.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Dimensions, format, depth and colour type
//   - image_dimensions: Width and height
//   - image_file_type: Format detection without decoding
//
// Derivative Images:
//   - image_resize: Exact size
//   - image_thumbnail: Proportional, longest edge = size
//   - image_cropped_thumbnail: Centred square crop, then thumbnail
//   - image_fit_within: Largest size inside a box, never enlarged
//   - image_convert: Re-encode in the format of the output extension
//
// Region Operations:
//   - image_crop: Extract rectangular region
//   - image_crop_quadrant: Extract named region (top-left, center, etc.)
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//   - image_sample_colors_multi: Sample multiple points
//   - image_dominant_colors: Extract color palette
//
// Derived images are written to "output" when it is given. Otherwise they
// are returned base64-encoded in "format" (png by default).
//
// # Image Lifetime
//
// Nothing is cached between calls. Each tool call opens its image in a
// scope, and the source and every intermediate are released before the
// response is written, whether the call succeeded or not.
//
// # Error Handling
//
// Protocol errors use standard JSON-RPC codes:
//   - -32601: Method not found
//   - -32602: Invalid params
//
// Tool failures return code -32000 with the error message in "data".
package server
