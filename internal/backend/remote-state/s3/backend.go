// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package s3 implements the "s3" backend, which keeps the units of a table
// store as objects under a folder of an S3 bucket:
//
//	s3://bucket/folder?region=eu-west-1&profile=drift
//
// Credentials are resolved the usual AWS way: environment variables, shared
// config and credentials files, then instance metadata.
package s3

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsbase "github.com/hashicorp/aws-sdk-go-base/v2"
	baselogging "github.com/hashicorp/aws-sdk-go-base/v2/logging"
	awsbaseValidation "github.com/hashicorp/aws-sdk-go-base/v2/validation"

	"github.com/driftconfig/driftconfig/internal/backend"
	"github.com/driftconfig/driftconfig/internal/logging"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
	"github.com/driftconfig/driftconfig/internal/tfdiags"
	"github.com/driftconfig/driftconfig/version"
)

// Config is the configuration of an S3 backend, decoded from its URL.
type Config struct {
	Bucket string
	// Folder is the key prefix of every unit, without a trailing slash.
	Folder string

	Region              string
	Profile             string
	Endpoint            string
	UsePathStyle        bool
	Encrypt             bool
	KMSKeyID            string
	ACL                 string
	SkipS3Checksum      bool
	SkipCredsValidation bool
	MaxRetries          int
}

// New returns the client for an "s3" URL.
func New(ctx context.Context, u *url.URL) (remote.Client, error) {
	cfg, diags := ParseURL(u)
	if diags.HasErrors() {
		return nil, diags.Err()
	}
	return cfg.Client(ctx)
}

// ParseURL decodes and validates the configuration in an "s3" URL.
func ParseURL(u *url.URL) (*Config, tfdiags.Diagnostics) {
	var diags tfdiags.Diagnostics
	q := u.Query()

	cfg := &Config{
		Bucket:     u.Host,
		Folder:     strings.Trim(u.Path, "/"),
		Region:     q.Get("region"),
		Profile:    q.Get("profile"),
		Endpoint:   q.Get("endpoint"),
		KMSKeyID:   q.Get("kms_key_id"),
		ACL:        q.Get("acl"),
		MaxRetries: 5,
	}

	if cfg.Bucket == "" {
		diags = diags.Append(attributeErrDiag("s3.bucket", "Missing bucket name", fmt.Sprintf("The URL %q does not name a bucket.", u.Redacted())))
	}
	if cfg.Folder == "" {
		diags = diags.Append(attributeErrDiag("s3.folder", "Missing folder", fmt.Sprintf("The URL %q does not name a folder within the bucket.", u.Redacted())))
	}

	if cfg.Region != "" && q.Get("skip_region_validation") == "" {
		if err := awsbaseValidation.SupportedRegion(cfg.Region); err != nil {
			diags = diags.Append(attributeErrDiag("s3.region", "Invalid region value", err.Error()))
		}
	}

	for name, dst := range map[string]*bool{
		"path_style":                  &cfg.UsePathStyle,
		"encrypt":                     &cfg.Encrypt,
		"skip_s3_checksum":            &cfg.SkipS3Checksum,
		"skip_credentials_validation": &cfg.SkipCredsValidation,
	} {
		v, err := backend.QueryBool(q, name)
		if err != nil {
			diags = diags.Append(attributeErrDiag("s3."+name, "Invalid boolean value", err.Error()))
			continue
		}
		*dst = v
	}

	if raw := q.Get("max_retries"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			diags = diags.Append(attributeErrDiag("s3.max_retries", "Invalid max_retries value", fmt.Sprintf("Must be a non-negative integer, got %q.", raw)))
		} else {
			cfg.MaxRetries = n
		}
	}

	if cfg.KMSKeyID != "" {
		diags = diags.Append(validateKMSKey("s3.kms_key_id", cfg.KMSKeyID))
		cfg.Encrypt = true
	}
	if cfg.ACL != "" && !slices.Contains(validACLs, cfg.ACL) {
		diags = diags.Append(attributeErrDiag("s3.acl", "Invalid ACL", fmt.Sprintf("%q is not a canned S3 ACL.", cfg.ACL)))
	}

	return cfg, diags
}

// Client builds an S3 API client for the configuration and returns a remote
// client using it.
func (c *Config) Client(ctx context.Context) (*RemoteClient, error) {
	ctx, baselog := attachLoggerToContext(ctx)

	cfg := &awsbase.Config{
		CallerDocumentationURL: "https://github.com/driftconfig/driftconfig",
		CallerName:             "S3 Backend",
		MaxRetries:             c.MaxRetries,
		Profile:                c.Profile,
		Region:                 c.Region,
		SkipCredsValidation:    c.SkipCredsValidation,
		// Account lookups need IAM or STS permissions a config reader may
		// not have.
		SkipRequestingAccountId: true,
		HTTPProxyMode:           awsbase.HTTPProxyModeSeparate,
		APNInfo: &awsbase.APNInfo{
			PartnerName: "Driftconfig",
			Products: []awsbase.UserAgentProduct{
				{Name: "driftconfig", Version: version.String()},
			},
		},
		Logger: baselog,
	}

	_, awsConfig, awsDiags := awsbase.GetAwsConfig(ctx, cfg)

	diags := fromBaseDiags(awsDiags)
	if diags.HasErrors() {
		return nil, fmt.Errorf("configuring S3 backend: %s", diagnosticsString(diags))
	}
	for _, d := range diags {
		log.Printf("[WARN] s3: %s", diagnosticString(d))
	}

	return NewClient(s3.NewFromConfig(awsConfig, c.s3Options), c), nil
}

func (c *Config) s3Options(options *s3.Options) {
	if c.Endpoint != "" {
		options.BaseEndpoint = aws.String(c.Endpoint)
	}
	if c.UsePathStyle {
		options.UsePathStyle = true
	}
}

func attachLoggerToContext(ctx context.Context) (context.Context, baselogging.HcLogger) {
	ctx, baselog := baselogging.NewHcLogger(ctx, logging.HCLogger().Named("backend-s3"))
	ctx = baselogging.RegisterLogger(ctx, baselog)
	return ctx, baselog
}
