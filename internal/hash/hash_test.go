package hash

import "testing"

func TestSHA256Hasher_HashBytes(t *testing.T) {
	hasher := NewSHA256Hasher()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty content",
			input: "",
			want:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:  "known content",
			input: "hello world",
			want:  "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasher.HashBytes([]byte(tt.input)); got != tt.want {
				t.Errorf("HashBytes(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}

	t.Run("different content has different hashes", func(t *testing.T) {
		a := hasher.HashBytes([]byte("my.string=value"))
		b := hasher.HashBytes([]byte("my.string=other"))
		if a == b {
			t.Errorf("expected different hashes, both were %s", a)
		}
	})
}

func TestFakeHasher(t *testing.T) {
	hasher := NewFakeHasher()
	hasher.SetHash("a=b", "hash-ab")

	if got := hasher.HashBytes([]byte("a=b")); got != "hash-ab" {
		t.Errorf("HashBytes(set) = %s, want hash-ab", got)
	}
	if got := hasher.HashBytes([]byte("other")); got != "fakehash" {
		t.Errorf("HashBytes(unset) = %s, want fakehash", got)
	}
}
