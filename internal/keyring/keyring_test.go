package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetCredentials(t *testing.T) {
	// Use mock keyring for testing
	gokeyring.MockInit()

	want := Credentials{Email: "a@x.com", Password: "hunter22"}

	if err := SetCredentials(want); err != nil {
		t.Fatalf("SetCredentials() failed: %v", err)
	}

	got, err := GetCredentials()
	if err != nil {
		t.Fatalf("GetCredentials() failed: %v", err)
	}

	if got != want {
		t.Errorf("GetCredentials() = %+v, want %+v", got, want)
	}
}

func TestSetCredentialsEmpty(t *testing.T) {
	gokeyring.MockInit()

	tests := []struct {
		name  string
		creds Credentials
	}{
		{name: "empty email", creds: Credentials{Password: "pw"}},
		{name: "empty password", creds: Credentials{Email: "a@x.com"}},
		{name: "both empty", creds: Credentials{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SetCredentials(tt.creds); err == nil {
				t.Error("SetCredentials() should return an error for empty fields")
			}
		})
	}
}

func TestGetCredentialsNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteCredentials()

	if _, err := GetCredentials(); err != ErrNotFound {
		t.Errorf("GetCredentials() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteCredentials(t *testing.T) {
	gokeyring.MockInit()

	if err := SetCredentials(Credentials{Email: "a@x.com", Password: "pw123456"}); err != nil {
		t.Fatalf("SetCredentials() failed: %v", err)
	}

	if err := DeleteCredentials(); err != nil {
		t.Fatalf("DeleteCredentials() failed: %v", err)
	}

	if _, err := GetCredentials(); err != ErrNotFound {
		t.Errorf("GetCredentials() after delete error = %v, want %v", err, ErrNotFound)
	}
}
