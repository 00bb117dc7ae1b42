package store

import (
	"errors"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		// Valid usernames
		{name: "single lowercase letter", username: "a", wantErr: nil},
		{name: "single digit", username: "7", wantErr: nil},
		{name: "simple word", username: "alice", wantErr: nil},
		{name: "with hyphens", username: "alice-smith", wantErr: nil},
		{name: "digits and letters", username: "user42", wantErr: nil},
		{name: "digits with hyphens", username: "1-2-3", wantErr: nil},
		{name: "consecutive hyphens", username: "a--b", wantErr: nil},

		// Format violations
		{name: "empty string", username: "", wantErr: ErrUsernameInvalid},
		{name: "uppercase letters", username: "Alice", wantErr: ErrUsernameInvalid},
		{name: "mixed case", username: "aLice", wantErr: ErrUsernameInvalid},
		{name: "starts with hyphen", username: "-alice", wantErr: ErrUsernameInvalid},
		{name: "ends with hyphen", username: "alice-", wantErr: ErrUsernameInvalid},
		{name: "only a hyphen", username: "-", wantErr: ErrUsernameInvalid},
		{name: "contains spaces", username: "alice smith", wantErr: ErrUsernameInvalid},
		{name: "contains underscore", username: "alice_smith", wantErr: ErrUsernameInvalid},
		{name: "contains period", username: "alice.smith", wantErr: ErrUsernameInvalid},
		{name: "contains at sign", username: "alice@example", wantErr: ErrUsernameInvalid},

		// Reserved usernames
		{name: "reserved auth", username: "auth", wantErr: ErrUsernameReserved},
		{name: "reserved static", username: "static", wantErr: ErrUsernameReserved},
		{name: "reserved quests", username: "quests", wantErr: ErrUsernameReserved},
		{name: "reserved admin", username: "admin", wantErr: ErrUsernameReserved},
		{name: "reserved api", username: "api", wantErr: ErrUsernameReserved},
		{name: "reserved settings", username: "settings", wantErr: ErrUsernameReserved},

		// Not reserved (substrings of reserved words are fine)
		{name: "quest-fan not reserved", username: "quest-fan", wantErr: nil},
		{name: "myadmin not reserved", username: "myadmin", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateUsername(%q) = %v, want nil", tt.username, err)
				}
				return
			}
			if err == nil {
				t.Errorf("ValidateUsername(%q) = nil, want %v", tt.username, tt.wantErr)
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateUsername(%q) = %v, want error wrapping %v", tt.username, err, tt.wantErr)
			}
		})
	}
}
