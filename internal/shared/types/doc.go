// Package types provides shared data structures for the webbridge service.
//
// Core Types:
//   - Service: service provider definition exposed to the host
//   - Tool: one invokable operation with its parameter schema
//   - Parameter: declared argument of a tool
//   - Result: standard operation result in the tagged success/error shape
//
// Request Types:
//   - ExecuteRequest: host request to run one tool
//   - WSMessage: WebSocket envelope for streamed execution
//
// The Result shape mirrors the worker wire contract on purpose: the host
// sees the same {success, data|error} discriminated form at every layer.
package types
