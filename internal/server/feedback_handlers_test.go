package server

import (
	"net/http"
	"testing"

	"prompthub/internal/models"

	"gorm.io/gorm"
)

func seedPrompt(t *testing.T, db *gorm.DB, authorID uint) *models.Prompt {
	t.Helper()
	prompt := models.Prompt{
		Title:   "Explain dynamic programming",
		Content: "You are a tutor...",
		Subject: "Computer Science",
		UserID:  authorID,
	}
	if err := db.Create(&prompt).Error; err != nil {
		t.Fatalf("seed prompt: %v", err)
	}
	return &prompt
}

func TestApplyFeedbackEndpoint(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	author := seedUser(t, db, "author", false)
	seedUser(t, db, "reader", false)
	prompt := seedPrompt(t, db, author.ID)
	token := tokenFor(t, s, "reader")

	path := promptPath(prompt.ID) + "/feedback"

	// No token: rejected before any state changes.
	resp, _ := doJSON(t, app, http.MethodPost, path, "", map[string]any{"feedback_type": "like"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous feedback: expected 401, got %d", resp.StatusCode)
	}

	// First like.
	resp, body := doJSON(t, app, http.MethodPost, path, token, map[string]any{"feedback_type": "like"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("like: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["likes"].(float64) != 1 || body["my_feedback"] != "like" {
		t.Fatalf("like: unexpected body %v", body)
	}

	// Switch to dislike.
	resp, body = doJSON(t, app, http.MethodPost, path, token, map[string]any{"feedback_type": "dislike"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("switch: expected 200, got %d", resp.StatusCode)
	}
	if body["likes"].(float64) != 0 || body["dislikes"].(float64) != 1 || body["my_feedback"] != "dislike" {
		t.Fatalf("switch: unexpected body %v", body)
	}

	// Toggle off: my_feedback disappears from the payload entirely.
	resp, body = doJSON(t, app, http.MethodPost, path, token, map[string]any{"feedback_type": "dislike"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle off: expected 200, got %d", resp.StatusCode)
	}
	if body["dislikes"].(float64) != 0 {
		t.Fatalf("toggle off: unexpected body %v", body)
	}
	if _, present := body["my_feedback"]; present {
		t.Fatalf("toggle off: my_feedback should be omitted, got %v", body["my_feedback"])
	}

	// Unknown type.
	resp, _ = doJSON(t, app, http.MethodPost, path, token, map[string]any{"feedback_type": "love"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid type: expected 400, got %d", resp.StatusCode)
	}

	// Unknown prompt.
	resp, _ = doJSON(t, app, http.MethodPost, "/prompts/4242/feedback", token, map[string]any{"feedback_type": "like"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing prompt: expected 404, got %d", resp.StatusCode)
	}

	// Malformed id.
	resp, _ = doJSON(t, app, http.MethodPost, "/prompts/abc/feedback", token, map[string]any{"feedback_type": "like"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed id: expected 400, got %d", resp.StatusCode)
	}
}

func TestFeedbackAnnotationIsPerUser(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	author := seedUser(t, db, "author", false)
	seedUser(t, db, "alice", false)
	seedUser(t, db, "bob", false)
	prompt := seedPrompt(t, db, author.ID)

	aliceToken := tokenFor(t, s, "alice")
	bobToken := tokenFor(t, s, "bob")

	resp, _ := doJSON(t, app, http.MethodPost, promptPath(prompt.ID)+"/feedback", aliceToken,
		map[string]any{"feedback_type": "like"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("alice like: expected 200, got %d", resp.StatusCode)
	}

	// Alice sees her own reaction on the detail read.
	resp, body := doJSON(t, app, http.MethodGet, promptPath(prompt.ID), aliceToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("alice read: expected 200, got %d", resp.StatusCode)
	}
	if body["my_feedback"] != "like" {
		t.Fatalf("alice should see my_feedback=like, got %v", body["my_feedback"])
	}

	// Bob sees the shared counter but no personal annotation.
	resp, body = doJSON(t, app, http.MethodGet, promptPath(prompt.ID), bobToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bob read: expected 200, got %d", resp.StatusCode)
	}
	if body["likes"].(float64) != 1 {
		t.Fatalf("bob should see likes=1, got %v", body["likes"])
	}
	if _, present := body["my_feedback"]; present {
		t.Fatalf("bob should see no my_feedback, got %v", body["my_feedback"])
	}

	// Anonymous readers also see the counter only.
	resp, body = doJSON(t, app, http.MethodGet, promptPath(prompt.ID), "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("anonymous read: expected 200, got %d", resp.StatusCode)
	}
	if _, present := body["my_feedback"]; present {
		t.Fatal("anonymous read must not carry my_feedback")
	}
}
