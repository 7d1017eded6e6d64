package main

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/getSweetSpotcl/fitai/internal/e2etest"
)

func Test_application_loginFlow(t *testing.T) {
	server := startTestServer(t)
	ctx := t.Context()
	client := server.Client()

	userID := registerTestUser(t, server, "premium")

	// A fresh login with the right key succeeds.
	if err := client.Login(ctx, "test-api-key-"+t.Name()); err != nil {
		t.Fatalf("login: %v", err)
	}

	// A wrong key is rejected.
	resp, err := client.PostJSON(ctx, "/api/login", map[string]string{"apiKey": "wrong"})
	if err != nil {
		t.Fatalf("post login: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401 for wrong key, got %d", resp.StatusCode)
	}

	// Re-login since the failed attempt does not clear the session.
	if err = client.Login(ctx, "test-api-key-"+t.Name()); err != nil {
		t.Fatalf("login again: %v", err)
	}

	// Authenticated requests against another user's resources are forbidden.
	resp, err = client.Get(ctx, "/api/users/"+strconv.Itoa(userID+1)+"/workouts")
	if err != nil {
		t.Fatalf("get foreign workouts: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403 for foreign user, got %d", resp.StatusCode)
	}

	// Logout invalidates the session.
	resp, err = client.PostJSON(ctx, "/api/logout", nil)
	if err != nil {
		t.Fatalf("post logout: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: unexpected status code %d", resp.StatusCode)
	}

	resp, err = client.Get(ctx, "/api/users/"+strconv.Itoa(userID)+"/workouts")
	if err != nil {
		t.Fatalf("get workouts after logout: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401 after logout, got %d", resp.StatusCode)
	}
}

func Test_application_localizedErrors(t *testing.T) {
	server := startTestServer(t)
	ctx := t.Context()
	client := server.Client()

	// Unauthenticated request defaults to Spanish.
	resp, err := client.Get(ctx, "/api/users/1/workouts")
	if err != nil {
		t.Fatalf("get workouts: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err = e2etest.DecodeJSON(resp, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "Inicia sesión para continuar." {
		t.Errorf("unexpected Spanish error message: %q", body.Error)
	}
}
