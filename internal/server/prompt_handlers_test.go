package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"prompthub/internal/models"
)

func TestCreateAndListPrompts(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	seedUser(t, db, "writer", false)
	token := tokenFor(t, s, "writer")

	resp, _ := doJSON(t, app, http.MethodPost, "/prompts/", "", map[string]any{
		"title": "t", "content": "c",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous create: expected 401, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodPost, "/prompts/", token, map[string]any{
		"title":   "Essay outline helper",
		"content": "You are an essay planning assistant.",
		"subject": "Literature",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%v)", resp.StatusCode, body)
	}
	if body["subject"] != "Literature" {
		t.Fatalf("create: unexpected body %v", body)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/prompts/", token, map[string]any{
		"content": "no title",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing title: expected 400, got %d", resp.StatusCode)
	}

	// A second prompt in another subject, then list filtered.
	resp, _ = doJSON(t, app, http.MethodPost, "/prompts/", token, map[string]any{
		"title":   "Proof sketcher",
		"content": "You sketch proofs.",
		"subject": "Mathematics",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("second create: expected 201, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/prompts/?subject=Mathematics", nil)
	listResp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer func() { _ = listResp.Body.Close() }()
	raw, _ := io.ReadAll(listResp.Body)

	var prompts []models.Prompt
	if err := json.Unmarshal(raw, &prompts); err != nil {
		t.Fatalf("decode list: %v (%s)", err, raw)
	}
	if len(prompts) != 1 || prompts[0].Title != "Proof sketcher" {
		t.Fatalf("expected [Proof sketcher], got %v", prompts)
	}
	if prompts[0].User.Username != "writer" {
		t.Fatalf("expected author embedded in listing, got %q", prompts[0].User.Username)
	}
}

func TestDeletePromptRequiresAdmin(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	author := seedUser(t, db, "author", false)
	seedUser(t, db, "moderator", true)
	prompt := seedPrompt(t, db, author.ID)

	authorToken := tokenFor(t, s, "author")
	adminToken := tokenFor(t, s, "moderator")

	// Even the prompt's own author cannot delete it.
	resp, _ := doJSON(t, app, http.MethodDelete, promptPath(prompt.ID), authorToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("author delete: expected 403, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodDelete, promptPath(prompt.ID), adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin delete: expected 200, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodGet, promptPath(prompt.ID), "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("read after delete: expected 404, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodDelete, promptPath(prompt.ID), adminToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("double delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestIncrementViewEndpoint(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	author := seedUser(t, db, "author", false)
	prompt := seedPrompt(t, db, author.ID)
	token := tokenFor(t, s, "author")

	path := promptPath(prompt.ID) + "/increment-view"

	resp, _ := doJSON(t, app, http.MethodPost, path, "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous view: expected 401, got %d", resp.StatusCode)
	}

	for want := 1; want <= 2; want++ {
		resp, body := doJSON(t, app, http.MethodPost, path, token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("increment: expected 200, got %d", resp.StatusCode)
		}
		if int(body["views"].(float64)) != want {
			t.Fatalf("expected views=%d, got %v", want, body["views"])
		}
	}
}

// The view route and the delete route share the /prompts/:id prefix; posting
// a view must never delete anything.
func TestViewRouteDoesNotCollideWithDelete(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	author := seedUser(t, db, "author", false)
	prompt := seedPrompt(t, db, author.ID)
	token := tokenFor(t, s, "author")

	resp, _ := doJSON(t, app, http.MethodPost, promptPath(prompt.ID)+"/increment-view", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("increment: expected 200, got %d", resp.StatusCode)
	}

	var still models.Prompt
	if err := db.First(&still, prompt.ID).Error; err != nil {
		t.Fatalf("prompt vanished after view increment: %v", err)
	}
	if still.Views != 1 {
		t.Fatalf("expected views=1, got %d", still.Views)
	}
}
