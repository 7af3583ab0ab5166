package recordid_test

import (
	"strings"
	"testing"

	"promptkeep/services/message-api/internal/utils/recordid"
)

func TestNewMessageID(t *testing.T) {
	id := recordid.NewMessageID()
	if !strings.HasPrefix(id, recordid.MessagePrefix) {
		t.Fatalf("NewMessageID() = %q, want msg_ prefix", id)
	}
	if !recordid.IsValid(recordid.MessagePrefix, id) {
		t.Errorf("IsValid rejected freshly generated id %q", id)
	}
}

func TestNewPersonaID(t *testing.T) {
	id := recordid.NewPersonaID()
	if !strings.HasPrefix(id, recordid.PersonaPrefix) {
		t.Fatalf("NewPersonaID() = %q, want prs_ prefix", id)
	}
	if recordid.IsValid(recordid.MessagePrefix, id) {
		t.Errorf("persona id %q validated against message prefix", id)
	}
}

func TestIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := recordid.NewMessageID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := recordid.Parse(recordid.MessagePrefix, "msg_not-a-ulid"); err == nil {
		t.Error("Parse accepted malformed ulid")
	}
	if recordid.IsValid(recordid.PersonaPrefix, "") {
		t.Error("IsValid accepted empty string")
	}
}
