package server

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIndexListsArtifacts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"dp.html", "graph.svg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	srv := httptest.NewServer(New(dir).Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"dp.html", "graph.svg", "http-equiv=\"refresh\""} {
		if !strings.Contains(string(body), want) {
			t.Errorf("index missing %q:\n%s", want, body)
		}
	}
}

func TestServesArtifactBytes(t *testing.T) {
	dir := t.TempDir()
	want := "<table></table>"
	if err := os.WriteFile(filepath.Join(dir, "dp.html"), []byte(want), 0644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(New(dir).Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/files/dp.html")
	if err != nil {
		t.Fatalf("GET file: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestMissingArtifactIs404(t *testing.T) {
	srv := httptest.NewServer(New(t.TempDir()).Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/files/nope.svg")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 404 {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
