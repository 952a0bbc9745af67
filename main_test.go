package main

import (
	"testing"

	platformhttp "tapcard/internal/platform/http"
	"tapcard/internal/testutil"
)

func TestMainWiring(t *testing.T) {
	testutil.ChdirRepoRoot(t)
	srv := testutil.NewServer(t)
	if handler := platformhttp.Routes(srv); handler == nil {
		t.Fatalf("expected router handler")
	}
}
