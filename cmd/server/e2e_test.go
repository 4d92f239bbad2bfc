// cmd/server/e2e_test.go
//go:build e2e
// +build e2e

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"
)

func baseURL() string {
	if v := os.Getenv("TRIAL_BALANCE_URL"); v != "" {
		return v
	}
	return "http://localhost:8083"
}

func TestStoredReportE2E(t *testing.T) {
	payload := map[string]interface{}{
		"start_period": "2016-01-01",
		"end_period":   "2016-12-31",
	}

	jsonData, _ := json.Marshal(payload)

	// Create report
	resp, err := http.Post(
		baseURL()+"/api/v1/trial-balance/reports",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		t.Fatalf("Failed to create report: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	id, ok := result["id"].(string)
	if !ok || id == "" {
		t.Fatal("Report ID is missing")
	}

	// Fetch it back as CSV
	csvResp, err := http.Get(baseURL() + "/api/v1/trial-balance/reports/" + id + "?format=csv")
	if err != nil {
		t.Fatalf("Failed to get report: %v", err)
	}
	defer csvResp.Body.Close()

	if csvResp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", csvResp.StatusCode)
	}

	body, _ := io.ReadAll(csvResp.Body)
	if !bytes.HasPrefix(body, []byte("ACCOUNT,DESCRIPTION,DEBIT,CREDIT,BALANCE")) {
		t.Errorf("Unexpected CSV header: %q", body)
	}

	t.Logf("Report stored successfully: %s", id)
}

func TestNotReadyE2E(t *testing.T) {
	resp, err := http.Get(baseURL() + "/api/v1/trial-balance?format=csv")
	if err != nil {
		t.Fatalf("Failed to call API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", resp.StatusCode)
	}
}
