package bridge

import (
	"strings"
	"testing"
)

func TestRecoverSuccess(t *testing.T) {
	resp := Recover([]byte(`{"success":true,"data":"hello"}`))

	if !resp.Success {
		t.Fatalf("Expected success, got error: %s", resp.Error)
	}
	if resp.Data != "hello" {
		t.Errorf("Expected data %q, got %v", "hello", resp.Data)
	}
	if resp.Kind != KindNone {
		t.Errorf("Expected no failure kind, got %s", resp.Kind)
	}
}

func TestRecoverToleratesNoise(t *testing.T) {
	stdout := "loading...\nstep 2\n{\"success\":true,\"data\":\"hello\"}"

	resp := Recover([]byte(stdout))

	if !resp.Success {
		t.Fatalf("Expected success despite noise, got: %s", resp.Error)
	}
	if resp.Data != "hello" {
		t.Errorf("Expected data %q, got %v", "hello", resp.Data)
	}
}

func TestRecoverTrailingBlankLines(t *testing.T) {
	stdout := "{\"success\":true,\"data\":42}\n\n  \n"

	resp := Recover([]byte(stdout))

	if !resp.Success {
		t.Fatalf("Expected success, got: %s", resp.Error)
	}
	if n, ok := resp.Data.(float64); !ok || n != 42 {
		t.Errorf("Expected data 42, got %v", resp.Data)
	}
}

func TestRecoverWorkerFailure(t *testing.T) {
	resp := Recover([]byte(`{"success":false,"error":"selector not found"}`))

	if resp.Success {
		t.Fatal("Expected failure")
	}
	if resp.Kind != KindWorker {
		t.Errorf("Expected worker kind, got %s", resp.Kind)
	}
	if resp.Error != "selector not found" {
		t.Errorf("Expected worker message, got %q", resp.Error)
	}
}

func TestRecoverWorkerFailureEmptyMessage(t *testing.T) {
	resp := Recover([]byte(`{"success":false}`))

	if resp.Success {
		t.Fatal("Expected failure")
	}
	if resp.Kind != KindWorker {
		t.Errorf("Expected worker kind, got %s", resp.Kind)
	}
	if resp.Error == "" {
		t.Error("Empty worker message should be replaced with a fallback")
	}
}

func TestRecoverMalformedFinalLine(t *testing.T) {
	resp := Recover([]byte("not json"))

	if resp.Success {
		t.Fatal("Expected failure for malformed output")
	}
	if resp.Kind != KindParse {
		t.Errorf("Expected parse kind, got %s", resp.Kind)
	}
	if !strings.Contains(resp.Error, "not json") {
		t.Errorf("Failure message should contain a prefix of the raw output, got %q", resp.Error)
	}
}

func TestRecoverUntaggedJSON(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
	}{
		{"object without tag", `{"data":"hello"}`},
		{"bare string", `"hello"`},
		{"array", `[1,2,3]`},
		{"success wrong type", `{"success":"yes"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Recover([]byte(tt.stdout))
			if resp.Success {
				t.Fatal("Expected failure for untagged JSON")
			}
			if resp.Kind != KindParse {
				t.Errorf("Expected parse kind, got %s", resp.Kind)
			}
		})
	}
}

func TestRecoverEmptyOutput(t *testing.T) {
	for _, stdout := range []string{"", "\n\n", "   \n  "} {
		resp := Recover([]byte(stdout))
		if resp.Success {
			t.Fatalf("Expected failure for empty output %q", stdout)
		}
		if resp.Kind != KindParse {
			t.Errorf("Expected parse kind for %q, got %s", stdout, resp.Kind)
		}
	}
}

func TestRecoverBoundsRawPrefix(t *testing.T) {
	noise := strings.Repeat("x", 4096)

	resp := Recover([]byte(noise))

	if resp.Success {
		t.Fatal("Expected failure")
	}
	if len(resp.Error) > rawPrefixLimit+128 {
		t.Errorf("Failure message should be bounded, got %d bytes", len(resp.Error))
	}
	if !strings.Contains(resp.Error, "...") {
		t.Error("Truncated prefix should be marked")
	}
}

func TestRecoverNullData(t *testing.T) {
	resp := Recover([]byte(`{"success":true}`))

	if !resp.Success {
		t.Fatalf("Expected success, got: %s", resp.Error)
	}
	if resp.Data != nil {
		t.Errorf("Expected nil data, got %v", resp.Data)
	}
}

func TestLastNonEmptyLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "hello", "hello"},
		{"trailing newline", "hello\n", "hello"},
		{"multiple lines", "a\nb\nc", "c"},
		{"blank tail", "a\nb\n\n  \n", "b"},
		{"crlf", "a\r\nb\r\n", "b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lastNonEmptyLine([]byte(tt.input)); got != tt.want {
				t.Errorf("lastNonEmptyLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
