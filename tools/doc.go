// Package tools defines the Tool interface for the Prolific tool catalog, including parameter schema generation, argument decoding and result rendering. Tools map one-to-one to Prolific API operations and are exposed to agents through the MCP server.
package tools
