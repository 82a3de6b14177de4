package validate

import "testing"

func TestEmail(t *testing.T) {
	valid := []string{"a@b.co", "student.name+tag@example.org", "  padded@example.com  "}
	for _, v := range valid {
		if !Email(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}

	invalid := []string{"", "plain", "a@b", "a b@c.de", "@example.com"}
	for _, v := range invalid {
		if Email(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}

func TestPhone(t *testing.T) {
	if !Phone("+94771234567") || !Phone("0771234567") {
		t.Error("expected valid phone numbers to pass")
	}
	if Phone("123") || Phone("not-a-number") {
		t.Error("expected invalid phone numbers to fail")
	}
}

func TestRegisterValidation(t *testing.T) {
	errs := Register("", "", "")
	if errs["email"] != "Email is required" || errs["password"] != "Password is required" {
		t.Fatalf("unexpected errors: %v", errs)
	}

	errs = Register("bad-email", "short", "abc")
	if errs["email"] != "Invalid email format" {
		t.Fatalf("unexpected email error: %v", errs)
	}
	if errs["password"] != "Password must be at least 8 characters" {
		t.Fatalf("unexpected password error: %v", errs)
	}
	if errs["whatsapp_number"] != "Invalid phone number" {
		t.Fatalf("unexpected phone error: %v", errs)
	}

	if errs := Register("ok@example.com", "password123", ""); len(errs) != 0 {
		t.Fatalf("expected clean payload to pass, got %v", errs)
	}
}
