package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

// Smoke test against a running server. ADMIN_TOKEN must be a JWT signed
// with the server's JWT_SECRET for the knowledge steps.
var (
	baseURL    = envOr("API_BASE_URL", "http://localhost:3000/api")
	adminToken = os.Getenv("ADMIN_TOKEN")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func prettyPrint(raw []byte) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Println(string(raw))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(title, method, url, token string, body interface{}) []byte {
	color.Yellow("\n%s", title)
	resp, raw, err := sendRequest(method, url, token, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Red("Status: %s", resp.Status)
	} else {
		color.Green("Status: %s", resp.Status)
	}
	prettyPrint(raw)
	return raw
}

func main() {
	color.Cyan("🚀 Starting Civic Voice Agent API Test\n")

	step("[PUBLIC] 1. Health", "GET", "/health", "", nil)

	queries := []string{
		"When is garbage collected?",
		"How is the traffic to the railway station?",
		"Tell me a joke",
	}
	for i, q := range queries {
		step(fmt.Sprintf("[PUBLIC] %d. Query: %q", i+2, q), "POST", "/agent/v1/query", "", map[string]string{"query": q})
	}

	step("[PUBLIC] 5. Report draft", "POST", "/agent/v1/report-draft", "",
		map[string]string{"text": "There is a big pothole on MG Road near the bus stop"})

	if adminToken == "" {
		color.Yellow("\nADMIN_TOKEN not set; skipping knowledge admin steps")
		return
	}

	raw := step("[ADMIN] 6. Create article", "POST", "/admin/knowledge/v1", adminToken, map[string]interface{}{
		"title":   "Library Opening Hours",
		"content": "The central library is open 9 AM to 8 PM, Tuesday to Sunday.",
		"tags":    []string{"library", "hours", "schedule"},
	})

	var created struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	_ = json.Unmarshal(raw, &created)

	step("[PUBLIC] 7. Query the new article", "POST", "/agent/v1/query", "", map[string]string{"query": "When is the library open?"})

	if created.Data.Id != "" {
		step("[ADMIN] 8. Delete article", "DELETE", "/admin/knowledge/v1/"+created.Data.Id, adminToken, nil)
	}

	color.Cyan("\n✅ Done")
}
