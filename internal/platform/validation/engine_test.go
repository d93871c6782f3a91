package validation

import (
	"reflect"
	"testing"
)

// TestEngine_Validate_ValidInput は全フィールドがルールを満たす場合にエラーが返らないことを検証します。
func TestEngine_Validate_ValidInput(t *testing.T) {
	t.Parallel()
	e := NewEngine()

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"all registration fields", map[string]string{
			FieldFullname: "Jane Doe",
			FieldMobile:   "9876543210",
			FieldEmail:    "jane@x.com",
			FieldPassword: "Abcd123!",
		}},
		{"login fields only", map[string]string{
			FieldEmail:    "jane@x.com",
			FieldPassword: "Abcd123!",
		}},
		{"password change pair", map[string]string{
			FieldOldPassword: "Abcd123!",
			FieldNewPassword: "Efgh456?",
		}},
		{"empty mapping", map[string]string{}},
		{"mobile starting with each allowed digit", map[string]string{
			FieldMobile: "6000000000",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if msgs := e.Validate(tt.fields); msgs != nil {
				t.Errorf("expected no errors, got %v", msgs)
			}
		})
	}
}

// TestEngine_Validate_RuleViolations は各ルールの違反が正しいメッセージになることを検証します。
func TestEngine_Validate_RuleViolations(t *testing.T) {
	t.Parallel()
	e := NewEngine()

	tests := []struct {
		name   string
		fields map[string]string
		want   []string
	}{
		{"bad email", map[string]string{FieldEmail: "not-an-email"}, []string{msgInvalidEmail}},
		{"short fullname", map[string]string{FieldFullname: "Jo"}, []string{msgShortFullname}},
		{"mobile wrong prefix", map[string]string{FieldMobile: "1234567890"}, []string{msgInvalidMobile}},
		{"mobile too short", map[string]string{FieldMobile: "98765"}, []string{msgInvalidMobile}},
		{"mobile with letters", map[string]string{FieldMobile: "98765abcde"}, []string{msgInvalidMobile}},
		{"password too short", map[string]string{FieldPassword: "Ab1!"}, []string{msgWeakPassword}},
		{"password no uppercase", map[string]string{FieldPassword: "abcd123!"}, []string{msgWeakPassword}},
		{"password no lowercase", map[string]string{FieldPassword: "ABCD123!"}, []string{msgWeakPassword}},
		{"password no digit", map[string]string{FieldPassword: "Abcdefg!"}, []string{msgWeakPassword}},
		{"password no symbol", map[string]string{FieldPassword: "Abcd1234"}, []string{msgWeakPassword}},
		{"weak old password", map[string]string{
			FieldOldPassword: "weak",
			FieldNewPassword: "Efgh456?",
		}, []string{msgWeakPasswords}},
		{"same old and new password", map[string]string{
			FieldOldPassword: "Abcd123!",
			FieldNewPassword: "Abcd123!",
		}, []string{msgSamePasswords}},
		{"weak pair and same value collapse", map[string]string{
			FieldOldPassword: "weak",
			FieldNewPassword: "weak",
		}, []string{msgWeakPasswords, msgSamePasswords}},
		{"multiple fields fail together", map[string]string{
			FieldEmail:    "nope",
			FieldFullname: "Jo",
			FieldMobile:   "12345",
			FieldPassword: "short",
		}, []string{msgInvalidEmail, msgShortFullname, msgInvalidMobile, msgWeakPassword}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Validate(tt.fields)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestEngine_Validate_AbsentFieldsSkipped は存在しないフィールドのルールが適用されないことを検証します。
func TestEngine_Validate_AbsentFieldsSkipped(t *testing.T) {
	t.Parallel()
	e := NewEngine()

	// Only the email is submitted; nothing else may be judged.
	fields := map[string]string{FieldEmail: "jane@x.com"}
	if msgs := e.Validate(fields); msgs != nil {
		t.Errorf("expected no errors for absent fields, got %v", msgs)
	}

	// An empty value counts as absent, same as the original form semantics.
	fields = map[string]string{FieldEmail: "jane@x.com", FieldPassword: ""}
	if msgs := e.Validate(fields); msgs != nil {
		t.Errorf("expected empty field to be skipped, got %v", msgs)
	}
}

// TestEngine_Validate_PairTriggeredByEitherField はどちらか一方の存在で両方のパスワードが検証されることを確認します。
func TestEngine_Validate_PairTriggeredByEitherField(t *testing.T) {
	t.Parallel()
	e := NewEngine()

	// new_password alone still triggers the pair rule; the absent old
	// password fails the strength check and equals nothing.
	got := e.Validate(map[string]string{FieldNewPassword: "Efgh456?"})
	want := []string{msgWeakPasswords}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// TestEngine_Validate_Deterministic は同じ入力に対して常に同じ順序の結果が返ることを検証します。
func TestEngine_Validate_Deterministic(t *testing.T) {
	t.Parallel()
	e := NewEngine()

	fields := map[string]string{
		FieldEmail:       "nope",
		FieldFullname:    "Jo",
		FieldMobile:      "12345",
		FieldPassword:    "short",
		FieldOldPassword: "weak",
		FieldNewPassword: "weak",
	}

	first := e.Validate(fields)
	for i := 0; i < 20; i++ {
		if got := e.Validate(fields); !reflect.DeepEqual(got, first) {
			t.Fatalf("result order changed between runs: %v vs %v", first, got)
		}
	}
}
