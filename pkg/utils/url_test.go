package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinOrigin(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"relative path", "https://rera.odisha.gov.in", "/projects/project-details/42", "https://rera.odisha.gov.in/projects/project-details/42"},
		{"base with trailing slash", "https://rera.odisha.gov.in/", "/projects/1", "https://rera.odisha.gov.in/projects/1"},
		{"href without slash", "https://rera.odisha.gov.in", "projects/1", "https://rera.odisha.gov.in/projects/1"},
		{"query kept verbatim", "http://127.0.0.1:8080", "/detail?id=7&tab=promoter", "http://127.0.0.1:8080/detail?id=7&tab=promoter"},
		{"absolute href", "https://rera.odisha.gov.in", "https://mirror.example.org/p/1", "https://mirror.example.org/p/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinOrigin(tt.base, tt.href))
		})
	}
}

func TestHashURLIsStable(t *testing.T) {
	a := HashURL("https://rera.odisha.gov.in/projects/1")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashURL("https://rera.odisha.gov.in/projects/1"))
	assert.NotEqual(t, a, HashURL("https://rera.odisha.gov.in/projects/2"))
}
