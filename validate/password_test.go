package validate

import "testing"

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     PasswordReport
	}{
		{
			name:     "empty password fails every rule",
			password: "",
			want:     PasswordReport{},
		},
		{
			name:     "short lowercase only",
			password: "abc",
			want:     PasswordReport{Lowercase: true},
		},
		{
			name:     "long but missing digit and special",
			password: "Abcdefgh",
			want:     PasswordReport{MinLength: true, Uppercase: true, Lowercase: true},
		},
		{
			name:     "all rules satisfied",
			password: "Abcdef1!",
			want:     PasswordReport{MinLength: true, Uppercase: true, Lowercase: true, Digit: true, Special: true},
		},
		{
			name:     "special from the fixed set",
			password: "PASSW0RDx?",
			want:     PasswordReport{MinLength: true, Uppercase: true, Lowercase: true, Digit: true, Special: true},
		},
		{
			name:     "digits and specials without letters",
			password: "12345678!?",
			want:     PasswordReport{MinLength: true, Digit: true, Special: true},
		},
		{
			// 7 characters, 8 bytes: byte counting would wrongly
			// pass the length rule
			name:     "multibyte length counts characters not bytes",
			password: "Pässw1!",
			want:     PasswordReport{Uppercase: true, Lowercase: true, Digit: true, Special: true},
		},
		{
			name:     "multibyte password meeting every rule",
			password: "Pässwörd1!",
			want:     PasswordReport{MinLength: true, Uppercase: true, Lowercase: true, Digit: true, Special: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckPassword(tt.password)
			if got != tt.want {
				t.Errorf("CheckPassword(%q) = %+v, want %+v", tt.password, got, tt.want)
			}
		})
	}
}

// Validity must be exactly the conjunction of the five individual rules,
// regardless of which rule is the one missing.
func TestPasswordReportValid(t *testing.T) {
	almost := []string{
		"Abcdef1",   // too short
		"abcdef1!x", // no uppercase
		"ABCDEF1!X", // no lowercase
		"Abcdefg!",  // no digit
		"Abcdefg1",  // no special
	}
	for _, p := range almost {
		if CheckPassword(p).Valid() {
			t.Errorf("CheckPassword(%q).Valid() = true, want false", p)
		}
	}

	if !CheckPassword("Abcdef1!").Valid() {
		t.Error("expected Abcdef1! to be valid")
	}
}

func TestPasswordsMatch(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		want     bool
	}{
		{"both empty", "", "", false},
		{"empty confirmation", "Abcdef1!", "", false},
		{"mismatch", "Abcdef1!", "Abcdef1?", false},
		{"match", "Abcdef1!", "Abcdef1!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PasswordsMatch(tt.password, tt.confirm); got != tt.want {
				t.Errorf("PasswordsMatch(%q, %q) = %v, want %v", tt.password, tt.confirm, got, tt.want)
			}
		})
	}
}

func TestUsername(t *testing.T) {
	if msg := Username("ab"); msg == "" {
		t.Error("expected error for 2-character username")
	}
	if msg := Username("abc"); msg != "" {
		t.Errorf("unexpected error for 3-character username: %s", msg)
	}
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	if msg := Username(string(long)); msg == "" {
		t.Error("expected error for 51-character username")
	}
	// 3 characters, 6 bytes: must count characters
	if msg := Username("äöü"); msg != "" {
		t.Errorf("unexpected error for 3-character multibyte username: %s", msg)
	}
}
