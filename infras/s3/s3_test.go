package s3

import (
	"stay/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "proofs"
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"
	cfg.External.S3.APIEndpoint = "https://s3.example.com"

	svc := &s3Impl{Config: cfg}

	tests := []struct {
		name   string
		bucket string
		url    string
		want   string
	}{
		{
			name: "public domain with bucket",
			url:  "https://cdn.example.com/proofs/booking/abc.png",
			want: "booking/abc.png",
		},
		{
			name: "public domain without bucket",
			url:  "https://cdn.example.com/booking/abc.png",
			want: "booking/abc.png",
		},
		{
			name:   "api endpoint",
			bucket: "archive",
			url:    "https://s3.example.com/archive/booking/abc.png",
			want:   "booking/abc.png",
		},
		{
			name: "foreign url",
			url:  "https://elsewhere.example.com/abc.png",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.GetObjectNameFromURL(tt.bucket, tt.url))
		})
	}
}
