package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{
		Username: "reader_one",
		Email:    "reader@example.com",
		Password: "s3cretpass",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"short username", func(r *RegisterRequest) { r.Username = "ab" }},
		{"username with spaces", func(r *RegisterRequest) { r.Username = "bad name" }},
		{"invalid email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }},
		{"empty genre entry", func(r *RegisterRequest) { r.PreferredGenres = []string{""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestUpdateUserRequestValidate(t *testing.T) {
	assert.NoError(t, UpdateUserRequest{}.Validate())

	bad := "nope"
	assert.Error(t, UpdateUserRequest{Email: &bad}.Validate())

	good := "new@example.com"
	assert.NoError(t, UpdateUserRequest{Email: &good, PreferredGenres: []string{"Fiction"}}.Validate())
}
