package parallagon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultServerURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultServerURL)
	}

	u, err = parseBaseURL("example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpoints(t *testing.T) {
	t.Parallel()

	var gotFilesQuery string
	var gotAgentPath string
	var gotDemandeBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/api/missions":
			_ = json.NewEncoder(w).Encode([]Mission{{ID: 1, Name: "revue"}})
		case r.URL.Path == "/api/missions/1/content":
			_ = json.NewEncoder(w).Encode(map[string]string{"production": "# Draft"})
		case r.URL.Path == "/api/missions/1/files":
			gotFilesQuery = r.URL.RawQuery
			_ = json.NewEncoder(w).Encode([]FileRecord{{Path: "production.md", Modified: 1700000000.5}})
		case r.URL.Path == "/api/suivi":
			_ = json.NewEncoder(w).Encode(suiviResponse{Content: "[10:00:01] started"})
		case r.URL.Path == "/api/notifications":
			_ = json.NewEncoder(w).Encode([]Notification{{Type: "info", Message: "hello", Panel: "production", Flash: true}})
		case r.URL.Path == "/api/agents/status":
			_ = json.NewEncoder(w).Encode(map[string]AgentState{"production": {Running: true}})
		case r.URL.Path == "/api/agent/Production/start":
			gotAgentPath = r.URL.Path
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "success"})
		case r.URL.Path == "/api/demande" && r.Method == http.MethodPost:
			_ = json.NewDecoder(r.Body).Decode(&gotDemandeBody)
			_ = json.NewEncoder(w).Encode(saveResult{Success: true})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	missions, err := c.FetchMissions(ctx)
	if err != nil {
		t.Fatalf("FetchMissions returned error: %v", err)
	}
	if len(missions) != 1 || missions[0].Name != "revue" {
		t.Fatalf("FetchMissions = %#v, want 1 mission named revue", missions)
	}

	content, err := c.FetchContent(ctx, 1)
	if err != nil {
		t.Fatalf("FetchContent returned error: %v", err)
	}
	if content["production"] != "# Draft" {
		t.Fatalf("FetchContent = %#v", content)
	}

	files, err := c.FetchFiles(ctx, 1, true)
	if err != nil {
		t.Fatalf("FetchFiles returned error: %v", err)
	}
	if len(files) != 1 || files[0].Modified != 1700000000.5 {
		t.Fatalf("FetchFiles = %#v", files)
	}
	if gotFilesQuery != "include_content=true" {
		t.Fatalf("files query = %q, want include_content=true", gotFilesQuery)
	}

	suivi, err := c.FetchSuivi(ctx)
	if err != nil {
		t.Fatalf("FetchSuivi returned error: %v", err)
	}
	if suivi != "[10:00:01] started" {
		t.Fatalf("FetchSuivi = %q", suivi)
	}

	notifs, err := c.FetchNotifications(ctx)
	if err != nil {
		t.Fatalf("FetchNotifications returned error: %v", err)
	}
	if len(notifs) != 1 || !notifs[0].Flash || notifs[0].Panel != "production" {
		t.Fatalf("FetchNotifications = %#v", notifs)
	}

	status, err := c.FetchAgentStatus(ctx)
	if err != nil {
		t.Fatalf("FetchAgentStatus returned error: %v", err)
	}
	if !status["production"].Running {
		t.Fatalf("FetchAgentStatus = %#v", status)
	}

	if err := c.ToggleAgent(ctx, "production", "start"); err != nil {
		t.Fatalf("ToggleAgent returned error: %v", err)
	}
	if gotAgentPath != "/api/agent/Production/start" {
		t.Fatalf("agent path = %q, want capitalized name", gotAgentPath)
	}

	if err := c.SaveDemande(ctx, "new request", 1, "revue"); err != nil {
		t.Fatalf("SaveDemande returned error: %v", err)
	}
	if gotDemandeBody["content"] != "new request" || gotDemandeBody["missionName"] != "revue" {
		t.Fatalf("demande body = %#v", gotDemandeBody)
	}
}

func TestClient_ErrorPayloadSurfaced(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Mission information missing"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	err = c.SaveDemande(context.Background(), "x", 0, "")
	if err == nil {
		t.Fatal("SaveDemande succeeded, want error")
	}
	if want := "Mission information missing"; !strings.Contains(err.Error(), want) {
		t.Fatalf("error = %q, want it to contain %q", err, want)
	}
}

func TestClient_ToggleAgentValidatesAction(t *testing.T) {
	c, err := NewClient("")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.ToggleAgent(context.Background(), "production", "restart"); err == nil {
		t.Fatal("ToggleAgent accepted invalid action")
	}
	if err := c.ToggleAgent(context.Background(), "  ", "start"); err == nil {
		t.Fatal("ToggleAgent accepted empty agent id")
	}
}
