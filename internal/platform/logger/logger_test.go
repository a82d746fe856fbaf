package logger

import "testing"

func TestScrubRedactsSecretsAndHashesPersonalFields(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "true")

	out := scrub([]interface{}{
		"llm_api_key", "sk-123",
		"user_name", "Jane Doe",
		"company", "Acme",
		"dangling",
	})
	if len(out) != 7 {
		t.Fatalf("scrub length: want=7 got=%d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("api key: want=%q got=%v", "[REDACTED]", out[1])
	}
	hashed, ok := out[3].(string)
	if !ok || len(hashed) != len("hash:")+12 || hashed[:5] != "hash:" {
		t.Fatalf("user_name: unexpected digest %v", out[3])
	}
	if out[5] != "Acme" {
		t.Fatalf("company: want=%q got=%v", "Acme", out[5])
	}
	if out[6] != "dangling" {
		t.Fatalf("dangling key: want=%q got=%v", "dangling", out[6])
	}
}

func TestScrubNestedMap(t *testing.T) {
	got := scrubValue("payload", map[string]interface{}{"Authorization": "Bearer x", "title": "ok"})
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got %T", got)
	}
	if m["Authorization"] != "[REDACTED]" || m["title"] != "ok" {
		t.Fatalf("unexpected nested scrub: %+v", m)
	}
}
