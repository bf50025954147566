package web

import (
	"errors"
	"testing"
)

func Test_validateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "plain", email: "ali@example.com", wantErr: false},
		{name: "subdomain", email: "ali@mail.example.co.uk", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "no at", email: "ali.example.com", wantErr: true},
		{name: "no domain dot", email: "ali@example", wantErr: true},
		{name: "spaces", email: "ali @example.com", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := validateEmail(tt.email); (err != nil) != tt.wantErr {
				t.Errorf("validateEmail() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_validateImageURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https jpg", url: "https://cdn.example.com/kaaba.jpg", wantErr: false},
		{name: "http png", url: "http://cdn.example.com/madinah.png", wantErr: false},
		{name: "uppercase ext", url: "https://cdn.example.com/hotel.WEBP", wantErr: false},
		{name: "no scheme", url: "cdn.example.com/kaaba.jpg", wantErr: true},
		{name: "ftp scheme", url: "ftp://cdn.example.com/kaaba.jpg", wantErr: true},
		{name: "not an image", url: "https://cdn.example.com/itinerary.pdf", wantErr: true},
		{name: "no extension", url: "https://cdn.example.com/kaaba", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := validateImageURL(tt.url); (err != nil) != tt.wantErr {
				t.Errorf("validateImageURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_joinedMessage(t *testing.T) {
	err := errors.Join(
		errors.New("name must be at least 2 characters"),
		errors.Join(errors.New("email is required"), errors.New("phone must be at least 6 characters")),
	)
	got := joinedMessage(err)
	want := "name must be at least 2 characters; email is required; phone must be at least 6 characters"
	if got != want {
		t.Errorf("joinedMessage() = %q, want %q", got, want)
	}
}
