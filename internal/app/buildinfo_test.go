package app

import "testing"

func TestResolveBuildPrefersLinkerValues(t *testing.T) {
	b := resolveBuild("v1.4.2", "deadbeefcafebabefeedface1234567890abcd", "2026-02-14T22:11:12Z", vcsSettings{
		moduleVersion: "v9.9.9",
		revision:      "1111111111111111111111111111111111111111",
		time:          "2020-01-01T00:00:00Z",
		modified:      "false",
	})

	if b.Version != "v1.4.2" || b.Commit != "deadbeefcafebabefeedface1234567890abcd" {
		t.Fatalf("expected linker values, got %+v", b)
	}
	if b.CommitShort != "deadbeefcafe" {
		t.Fatalf("expected shortened commit, got %q", b.CommitShort)
	}
	if b.Modified != "false" {
		t.Fatalf("expected modified flag from vcs, got %q", b.Modified)
	}
	if got := b.UserAgent("healthscript"); got != "healthscript/v1.4.2" {
		t.Fatalf("unexpected user agent %q", got)
	}
}

func TestResolveBuildFallsBack(t *testing.T) {
	revision := "abcdef1234567890abcdef1234567890abcdef12"
	b := resolveBuild("", "", "", vcsSettings{moduleVersion: "v0.3.0", revision: revision, time: "2026-02-14T10:00:00Z"})
	if b.Version != "v0.3.0" || b.Commit != revision || b.CommitShort != revision[:12] {
		t.Fatalf("expected vcs fallbacks, got %+v", b)
	}
	if b.Modified != "unknown" {
		t.Fatalf("expected unknown modified flag, got %q", b.Modified)
	}

	b = resolveBuild("dev", "", "", vcsSettings{moduleVersion: "(devel)"})
	if b.Version != "dev" || b.Commit != "unknown" || b.Time != "unknown" {
		t.Fatalf("expected defaults, got %+v", b)
	}
}
