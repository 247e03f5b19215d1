/*
Package bridge is the execution layer connecting web operations to an
ephemeral Python worker.

# Overview

Every operation call becomes exactly one request/response exchange with a
short-lived worker process:

  - The Runtime Resolver probes, per call, whether the pre-installed
    interpreter can import the worker's core dependency and picks either the
    direct interpreter or a sandboxed dependency-fetching launcher.
  - The Transport spawns the worker, writes one JSON request to stdin,
    closes it, and drains stdout/stderr until exit. One process per call,
    never pooled, never left running.
  - Output Recovery takes the final non-empty stdout line and parses it as
    the tagged {success, data|error} result, tolerating any diagnostic
    noise the worker printed above it.

# Failure Classification

Failures keep their origin internally (spawn, exit, timeout, parse,
worker-reported) while collapsing to one failure shape for callers. The
debug operation surfaces the classification via Diagnostics.

# Wire Format

	stdin:  {"action": "fetch", "params": {"url": "..."}}   (written once, then closed)
	stdout: free-form lines...
	        {"success": true, "data": ...}                  (final non-empty line)

A non-zero exit code is a failure regardless of any emitted JSON.
*/
package bridge
