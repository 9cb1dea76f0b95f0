// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package s3

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

func TestParseURL(t *testing.T) {
	tests := map[string]struct {
		url      string
		want     *Config
		wantDiag string
	}{
		"minimal": {
			url: "s3://drift-config/dg-config",
			want: &Config{
				Bucket:     "drift-config",
				Folder:     "dg-config",
				MaxRetries: 5,
			},
		},
		"everything": {
			url: "s3://drift-config/dg-config/?region=eu-west-1&profile=ops&endpoint=http://localhost:9000&path_style=true&kms_key_id=alias/drift&acl=private&max_retries=2&skip_s3_checksum=1",
			want: &Config{
				Bucket:         "drift-config",
				Folder:         "dg-config",
				Region:         "eu-west-1",
				Profile:        "ops",
				Endpoint:       "http://localhost:9000",
				UsePathStyle:   true,
				Encrypt:        true,
				KMSKeyID:       "alias/drift",
				ACL:            "private",
				SkipS3Checksum: true,
				MaxRetries:     2,
			},
		},
		"no folder": {
			url:      "s3://drift-config",
			wantDiag: "Missing folder",
		},
		"bad region": {
			url:      "s3://drift-config/dg?region=mars-north-1",
			wantDiag: "Invalid region value",
		},
		"bad kms key": {
			url:      "s3://drift-config/dg?kms_key_id=nope",
			wantDiag: "Invalid KMS Key ID",
		},
		"bad kms arn": {
			url:      "s3://drift-config/dg?kms_key_id=arn:aws:kms:us-west-2:111122223333:nope",
			wantDiag: "Invalid KMS Key ARN",
		},
		"bad acl": {
			url:      "s3://drift-config/dg?acl=everyone",
			wantDiag: "Invalid ACL",
		},
		"bad bool": {
			url:      "s3://drift-config/dg?encrypt=perhaps",
			wantDiag: "Invalid boolean value",
		},
		"bad retries": {
			url:      "s3://drift-config/dg?max_retries=-1",
			wantDiag: "Invalid max_retries value",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			u, err := url.Parse(test.url)
			if err != nil {
				t.Fatal(err)
			}
			got, diags := ParseURL(u)
			if test.wantDiag != "" {
				if !hasSummary(diags, test.wantDiag) {
					t.Fatalf("expected diagnostic %q, got:\n%s", test.wantDiag, diagnosticsString(diags))
				}
				return
			}
			if diags.HasErrors() {
				t.Fatalf("unexpected errors:\n%s", diagnosticsString(diags))
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("wrong config\n%s", diff)
			}
		})
	}
}

func TestKeyIdFromARNResource(t *testing.T) {
	tests := map[string]string{
		"key/8a9bb2ea-46ad-4f8b-bc1e-7f93e8b5e02d": "8a9bb2ea-46ad-4f8b-bc1e-7f93e8b5e02d",
		"key/mrk-f827515944fb43f9b902a09d2c8b554f": "mrk-f827515944fb43f9b902a09d2c8b554f",
		"alias/drift":                              "",
		"key/nope":                                 "",
	}
	for in, want := range tests {
		if got := keyIdFromARNResource(in); got != want {
			t.Errorf("%s: got %q, want %q", in, got, want)
		}
	}
}

func hasSummary(diags tfdiags.Diagnostics, summary string) bool {
	for _, d := range diags {
		if d.Description().Summary == summary {
			return true
		}
	}
	return false
}
