// Package server exposes the render pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz           liveness and rasterizer availability
//	POST /render/{kind}     render the JSON body as spectrum, overlay or feature
//
// The request body is the same JSON the CLI reads (see package io). Query
// parameters mirror the CLI flags:
//
//	format      svg (default), png or pdf
//	width       canvas width, height defaults to the same value
//	height      canvas height
//	xlim        x axis limits, "lo-hi", "lo-" or "-hi"; mz_range and
//	            time_range are accepted as aliases
//	ylim        y axis limits
//	zoom_y      rescale the y axis to the tallest peak inside xlim
//	title       document title
//	color       feature fill color
//	scale       PNG scale factor
//	refresh     bypass cached documents and artifacts
//	index       0-based position of the spectrum to draw from a list body
//	scan_id     id of the spectrum to draw from a list body
//
// Every response carries an X-Render-ID header. Successful renders also
// report X-Input-Hash and X-Cache (hit or miss). Failures are JSON objects
// with the error code, a message and the render id.
package server
