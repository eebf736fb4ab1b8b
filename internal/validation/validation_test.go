package validation

import "testing"

func TestPassword(t *testing.T) {
	cases := []struct {
		name  string
		value string
		code  string
	}{
		{"valid", "Passw0rd", ""},
		{"empty", "", "required"},
		{"short", "Pass12", "password_too_short"},
		{"no upper", "password1", "password_complexity"},
		{"no lower", "PASSWORD1", "password_complexity"},
		{"no digit", "Passwords", "password_complexity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := Violations{}
			Password("password", tc.value, v)
			if got := v["password"]; got != tc.code {
				t.Fatalf("Password(%q) code = %q, want %q", tc.value, got, tc.code)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	cases := []struct {
		value string
		code  string
	}{
		{"john.smith@email.com", ""},
		{"a@b.co", ""},
		{"", "required"},
		{"no-at-sign", "invalid_email"},
		{"two@@signs.com", "invalid_email"},
		{"spaces in@mail.com", "invalid_email"},
		{"missing@tld", "invalid_email"},
	}
	for _, tc := range cases {
		v := Violations{}
		Email("email", tc.value, v)
		if got := v["email"]; got != tc.code {
			t.Errorf("Email(%q) code = %q, want %q", tc.value, got, tc.code)
		}
	}
}

func TestUsername(t *testing.T) {
	cases := []struct {
		value string
		code  string
	}{
		{"johnsmith", ""},
		{"user_1", ""},
		{"", "required"},
		{"ab", "too_short"},
		{"bad name", "invalid_username"},
		{"bad-name", "invalid_username"},
	}
	for _, tc := range cases {
		v := Violations{}
		Username("username", tc.value, v)
		if got := v["username"]; got != tc.code {
			t.Errorf("Username(%q) code = %q, want %q", tc.value, got, tc.code)
		}
	}
}

func TestOneOf(t *testing.T) {
	v := Violations{}
	OneOf("status", "Active", []string{"Active", "Inactive"}, v)
	if !v.Empty() {
		t.Fatalf("expected no violation, got %v", v)
	}
	OneOf("status", "Archived", []string{"Active", "Inactive"}, v)
	if v["status"] != "invalid_option" {
		t.Fatalf("status code = %q, want invalid_option", v["status"])
	}
}

func TestPasswordsMatch(t *testing.T) {
	v := Violations{}
	PasswordsMatch("confirmPassword", "Passw0rd", "Passw0rd", v)
	if !v.Empty() {
		t.Fatalf("expected no violation, got %v", v)
	}
	PasswordsMatch("confirmPassword", "Passw0rd", "Other1pw", v)
	if v["confirmPassword"] != "password_mismatch" {
		t.Fatalf("code = %q, want password_mismatch", v["confirmPassword"])
	}
	v = Violations{}
	PasswordsMatch("confirmPassword", "Passw0rd", "", v)
	if v["confirmPassword"] != "required" {
		t.Fatalf("code = %q, want required", v["confirmPassword"])
	}
}
