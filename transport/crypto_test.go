package transport

import "testing"

func TestSealOpenRoundTrip(t *testing.T) {
	senderPub, senderPriv, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair (sender): %v", err)
	}
	recipientPub, recipientPriv, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair (recipient): %v", err)
	}

	plaintext := []byte("turn=5 house=1 treasuryDelta=40")
	sealed, err := Seal(plaintext, recipientPub, senderPriv)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	opened, err := Open(sealed, senderPub, recipientPriv)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if string(opened) != string(plaintext) {
		t.Errorf("Open = %q, want %q", opened, plaintext)
	}
}

func TestOpenRejectsTamperedPayload(t *testing.T) {
	senderPub, senderPriv, _ := GenerateKeypair()
	recipientPub, recipientPriv, _ := GenerateKeypair()

	sealed, err := Seal([]byte("hello"), recipientPub, senderPriv)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	sealed[len(sealed)-1] ^= 0xFF

	if _, err := Open(sealed, senderPub, recipientPriv); err == nil {
		t.Error("expected Open to reject a tampered payload")
	}
}
