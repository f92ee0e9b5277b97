package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// assetSpec is a parsed asset storage URL
type assetSpec struct {
	Type string // "memory", "fs", "s3"

	BaseDir string

	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	PathStyle       bool
	PresignDuration int
}

// parseAssetURL parses an asset storage URL:
//
//	memory://
//	file://public                    relative directory
//	file:///srv/portfolio/public     absolute directory
//	s3://bucket/prefix?region=us-east-1&endpoint=http://localhost:9000&path_style=true&presign=600
func parseAssetURL(raw string) (assetSpec, error) {
	switch {
	case raw == "memory" || raw == "memory://":
		return assetSpec{Type: "memory"}, nil

	case strings.HasPrefix(raw, "file://"):
		dir := strings.TrimPrefix(raw, "file://")
		if dir == "" {
			return assetSpec{}, fmt.Errorf("filesystem path cannot be empty in asset storage URL")
		}
		return assetSpec{Type: "fs", BaseDir: dir}, nil

	case strings.HasPrefix(raw, "s3://"):
		return parseS3URL(raw)
	}

	return assetSpec{}, fmt.Errorf("unsupported asset storage URL: %q (use 'memory://', 'file://...', or 's3://...')", raw)
}

func parseS3URL(raw string) (assetSpec, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return assetSpec{}, fmt.Errorf("invalid asset storage URL: %w", err)
	}
	if u.Host == "" {
		return assetSpec{}, fmt.Errorf("S3 bucket name cannot be empty in asset storage URL")
	}

	q := u.Query()
	spec := assetSpec{
		Type:     "s3",
		Bucket:   u.Host,
		Region:   "us-east-1",
		Endpoint: q.Get("endpoint"),
	}
	if prefix := strings.Trim(u.Path, "/"); prefix != "" {
		spec.Prefix = prefix + "/"
	}

	if v := q.Get("region"); v != "" {
		spec.Region = v
	}
	if v := q.Get("path_style"); v != "" {
		spec.PathStyle, err = strconv.ParseBool(v)
		if err != nil {
			return assetSpec{}, fmt.Errorf("invalid path_style in asset storage URL: %w", err)
		}
	}
	if v := q.Get("presign"); v != "" {
		spec.PresignDuration, err = strconv.Atoi(v)
		if err != nil || spec.PresignDuration <= 0 {
			return assetSpec{}, fmt.Errorf("invalid presign duration in asset storage URL: %q", v)
		}
	}
	return spec, nil
}
