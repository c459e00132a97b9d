// Package parallagon provides an HTTP client for the mission server API.
//
// # Overview
//
// This package defines the API client for communicating with the KinOS
// mission server. It handles HTTP communication, JSON serialization, and
// type-safe representation of missions, panel files, notifications, and
// agent status.
//
// # Architecture
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the server API schema
//
// # Client Usage
//
// Create a client using the server URL from configuration:
//
//	client, err := parallagon.NewClient("http://127.0.0.1:8000")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	// Fetch the mission list
//	missions, err := client.FetchMissions(ctx)
//	if err != nil {
//		log.Printf("mission fetch failed: %v", err)
//	}
//
//	// Fetch panel contents for one mission
//	content, err := client.FetchContent(ctx, missions[0].ID)
//	if err != nil {
//		log.Printf("content fetch failed: %v", err)
//	}
//
// # API Endpoints
//
// Read endpoints:
//
//   - GET /api/missions: List of missions
//   - GET /api/missions/{id}/content: Panel name to content map
//   - GET /api/missions/{id}/files: Tracked files, optionally with content
//   - GET /api/suivi: Raw mission log text
//   - GET /api/notifications: Pending notification records
//   - GET /api/agents/status: Agent id to state map
//   - GET /api/logs: Structured operation log records
//
// Mutating endpoints:
//
//   - POST /api/start, /api/stop: Start or stop every agent
//   - POST /api/agent/{Name}/{action}: Start or stop one agent; the
//     server expects the capitalized agent name in the path
//   - POST /api/demande: Save the edited request document
//   - POST /api/logs/clear, GET /api/logs/export: Maintain the server log
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json, and Content-Type on bodies
//   - Have a 5-second timeout via the underlying http.Client
//   - Return wrapped errors with context about what failed
//
// Error responses carrying a JSON {"error": "..."} body surface that
// message; anything else reports the HTTP status.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying
// http.Client handles connection pooling internally.
//
// # Design Rationale
//
// The package is intentionally minimal:
//   - No caching (the poll engine owns refresh cadence)
//   - No retries (the engine decides retry policy)
//   - No streaming (snapshot-based polling is sufficient)
//
// The Service interface mirrors the client's method set so the engine can
// be exercised against a stub in tests.
package parallagon
