/*
Package ports defines the driven ports (interfaces) for termuxdev.

These interfaces decouple the advice logic from the vendor client that talks to the
generative-language service, so the gateway can run against Gemini in production and
against in-memory fakes in tests.

# Key Interfaces

  - Generator: submits one generation request and returns the produced text.
  - Advisor: the gateway surface; both calls always yield displayable text.
  - Service: what the HTTP, MCP and CLI adapters consume (catalog plus validated calls).
*/
package ports
