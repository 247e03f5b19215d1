// Package ws provides WebSocket streaming for tool execution.
//
// A client sends {"type": "execute", "tool_id": ..., "params": ...} and
// receives execution_start, a progress message per worker output line, the
// final result, and complete. Progress is best effort: lines are forwarded
// as the worker emits them, including the final tagged result line.
//
// Message Types (server to client):
//   - system: connection established
//   - execution_start: tool accepted
//   - progress: one worker output line (stream: stdout or stderr)
//   - result: the operation result
//   - complete: execution finished
//   - error: validation or execution boundary failure
//   - pong: reply to ping
package ws
