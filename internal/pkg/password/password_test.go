package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hashed == "secret123" {
		t.Fatal("Hash returned the plaintext")
	}

	if !Verify("secret123", hashed) {
		t.Error("Verify failed for the correct password")
	}
	if Verify("wrong", hashed) {
		t.Error("Verify succeeded for a wrong password")
	}
}

func TestGenerateTemp(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		temp, err := GenerateTemp()
		if err != nil {
			t.Fatalf("GenerateTemp failed: %v", err)
		}
		if len(temp) != 8 {
			t.Errorf("Length mismatch: got %d, want 8", len(temp))
		}
		if seen[temp] {
			t.Errorf("Duplicate temp password generated: %s", temp)
		}
		seen[temp] = true
	}
}

func TestValidatePassword(t *testing.T) {
	if !ValidatePassword("secret123") {
		t.Error("Expected secret123 to be accepted")
	}
	if ValidatePassword("short") {
		t.Error("Expected short password to be rejected")
	}
}
