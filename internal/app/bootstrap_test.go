package app

import "testing"

func TestListenAddr(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "8080", want: ":8080"},
		{in: " :9000 ", want: ":9000"},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ListenAddr(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ListenAddr(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ListenAddr(%q)=%q,%v want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestBodyLimit(t *testing.T) {
	if got := bodyLimit(0); got != defaultBodyLimit {
		t.Fatalf("bodyLimit(0)=%d, want %d", got, defaultBodyLimit)
	}
	if got := bodyLimit(10 * 1024 * 1024); got != 10*1024*1024+formSlack {
		t.Fatalf("bodyLimit(10MiB)=%d", got)
	}
}
