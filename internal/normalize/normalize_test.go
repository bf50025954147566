package normalize

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "Pilgrim@Example.COM", want: "pilgrim@example.com"},
		{name: "spaces", in: "  a@x.com ", want: "a@x.com"},
		{name: "already normal", in: "a@x.com", want: "a@x.com"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Email(tt.in); got != tt.want {
				t.Errorf("Email() = %q, want %q", got, tt.want)
			}
		})
	}
}
