// Package request turns loosely typed user input (form fields, query strings,
// CLI arguments, MCP tool arguments) into a validated domain.Request.
package request
