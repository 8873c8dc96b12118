package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var baseURL = "http://localhost:8080"

type step struct {
	name     string
	method   string
	endpoint string
	payload  interface{}
}

func main() {
	if v := os.Getenv("SERVER_URL"); v != "" {
		baseURL = v
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	suffix := fmt.Sprintf("%d", time.Now().Unix())
	imageForm := "ImageRecognition_" + suffix

	steps := []step{
		{"Assimilate forms", "POST", "/context/assimilate", map[string]interface{}{
			"forms": []map[string]interface{}{
				{"id": "GEN_Objectness", "description": "anything that can be recognized as an object", "ethical_score": 1.0},
				{"id": imageForm, "description": "a generalized image recognition concept", "examples_count": 1, "ethical_score": 0.9},
			},
			"relations": []map[string]interface{}{
				{"source_form_id": "GEN_Objectness", "target_form_id": imageForm, "relation_type": "IS_A", "strength": 0.9},
			},
		}},
		{"List forms", "GET", "/context/forms", nil},
		{"Related forms", "GET", "/context/forms/GEN_Objectness/related?relation_type=IS_A", nil},
		{"Extract forms", "POST", "/context/extract", map[string]string{"observation": "a red ball rolling"}},
		{"Recommend strategy", "POST", "/context/strategy", map[string]interface{}{
			"task_description": "classify photos of animals",
			"model_state":      []float32{0.1, 0.2},
		}},
		{"Filter strategy", "POST", "/context/strategy/filter", map[string]interface{}{
			"description": "adversarial training",
		}},
		{"Evaluate form", "POST", "/context/forms/" + imageForm + "/evaluate", nil},
		{"Outcome alignment", "POST", "/context/outcomes/alignment", map[string]interface{}{
			"outputs":   []float32{0.8, 0.9},
			"threshold": 0.7,
		}},
		{"Concept clusters", "GET", "/context/clusters", nil},
	}

	for i, s := range steps {
		fmt.Printf("%d. %s...\n", i+1, s.name)
		if !sendRequest(s.method, s.endpoint, s.payload) {
			fmt.Printf("FAILED: %s\n", s.name)
			os.Exit(1)
		}
		fmt.Printf("PASSED: %s\n", s.name)
	}
}

func sendRequest(method, endpoint string, payload interface{}) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}
	fmt.Printf("Response: %s\n", string(respBody))

	return true
}
