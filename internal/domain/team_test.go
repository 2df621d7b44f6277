package domain

import "testing"

func TestTeamContains(t *testing.T) {
	team := Team{"alice", "bob"}
	if !team.Contains("alice") {
		t.Error("expected team to contain alice")
	}
	if team.Contains("mallory") {
		t.Error("expected team not to contain mallory")
	}
}
