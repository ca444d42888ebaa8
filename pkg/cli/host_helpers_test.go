package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHostURL(t *testing.T) {
	tests := []struct {
		host    string
		wantErr bool
	}{
		{host: "http://localhost:8080", wantErr: false},
		{host: "https://tracker.example.com", wantErr: false},
		{host: "http://localhost:8080/", wantErr: false},
		{host: "", wantErr: true},
		{host: "   ", wantErr: true},
		{host: "ftp://localhost", wantErr: true},
		{host: "http://localhost:8080/api", wantErr: true},
		{host: "http://localhost:8080?x=1", wantErr: true},
		{host: "localhost:8080", wantErr: true},
	}

	for _, tt := range tests {
		err := validateHostURL(tt.host)
		if tt.wantErr {
			assert.Error(t, err, "host %q", tt.host)
		} else {
			assert.NoError(t, err, "host %q", tt.host)
		}
	}
}
