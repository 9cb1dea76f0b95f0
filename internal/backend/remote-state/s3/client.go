// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package s3

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/driftconfig/driftconfig/internal/tables/remote"
	"github.com/driftconfig/driftconfig/internal/tables/tablefile"
)

//go:generate go tool go.uber.org/mock/mockgen -destination mock_s3/mock.go -package mock_s3 github.com/driftconfig/driftconfig/internal/backend/remote-state/s3 S3API

const (
	s3EncryptionAlgorithm = "AES256"

	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"
)

// S3API is the subset of the S3 API the client uses.
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var _ S3API = (*s3.Client)(nil)

type RemoteClient struct {
	s3Client             S3API
	bucketName           string
	folder               string
	serverSideEncryption bool
	acl                  string
	kmsKeyID             string

	skipS3Checksum bool
}

// NewClient returns a client storing units through the given API.
func NewClient(api S3API, cfg *Config) *RemoteClient {
	return &RemoteClient{
		s3Client:             api,
		bucketName:           cfg.Bucket,
		folder:               cfg.Folder,
		serverSideEncryption: cfg.Encrypt,
		acl:                  cfg.ACL,
		kmsKeyID:             cfg.KMSKeyID,
		skipS3Checksum:       cfg.SkipS3Checksum,
	}
}

func (c *RemoteClient) Get(ctx context.Context, unit string) (*remote.Payload, error) {
	ctx, _ = attachLoggerToContext(ctx)
	key := c.key(unit)

	// Head works around some s3 compatible backends not handling missing GetObject requests correctly (ex: minio Get returns Missing Bucket)
	_, err := c.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &c.bucketName,
		Key:    &key,
	})
	if err != nil {
		var nb *types.NoSuchBucket
		if errors.As(err, &nb) {
			return nil, fmt.Errorf(errS3NoSuchBucket, err)
		}

		var nk *types.NotFound
		if errors.As(err, &nk) {
			return nil, nil
		}

		return nil, err
	}

	output, err := c.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &c.bucketName,
		Key:    &key,
	})
	if err != nil {
		var nb *types.NoSuchBucket
		if errors.As(err, &nb) {
			return nil, fmt.Errorf(errS3NoSuchBucket, err)
		}

		var nk *types.NoSuchKey
		if errors.As(err, &nk) {
			return nil, nil
		}

		return nil, err
	}

	defer output.Body.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, output.Body); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	sum := md5.Sum(buf.Bytes())
	return &remote.Payload{
		Data: buf.Bytes(),
		MD5:  sum[:],
	}, nil
}

func (c *RemoteClient) Put(ctx context.Context, unit string, data []byte) error {
	key := c.key(unit)

	i := &s3.PutObjectInput{
		ContentType:   aws.String(contentType(unit)),
		ContentLength: aws.Int64(int64(len(data))),
		Body:          bytes.NewReader(data),
		Bucket:        &c.bucketName,
		Key:           &key,
	}

	if !c.skipS3Checksum {
		i.ChecksumAlgorithm = types.ChecksumAlgorithmSha256

		// There is a conflict in the aws-go-sdk-v2 that prevents it from working with many s3 compatible services
		// Since we can pre-compute the hash here, we can work around it.
		// ref: https://github.com/aws/aws-sdk-go-v2/issues/1689
		algo := sha256.New()
		algo.Write(data)
		sum64str := base64.StdEncoding.EncodeToString(algo.Sum(nil))
		i.ChecksumSHA256 = &sum64str
	}

	if c.serverSideEncryption {
		if c.kmsKeyID != "" {
			i.SSEKMSKeyId = &c.kmsKeyID
			i.ServerSideEncryption = types.ServerSideEncryptionAwsKms
		} else {
			i.ServerSideEncryption = s3EncryptionAlgorithm
		}
	}

	if c.acl != "" {
		i.ACL = types.ObjectCannedACL(c.acl)
	}

	log.Printf("[DEBUG] Uploading %s to S3 bucket %s", key, c.bucketName)

	ctx, _ = attachLoggerToContext(ctx)
	if _, err := c.s3Client.PutObject(ctx, i); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func (c *RemoteClient) Delete(ctx context.Context, unit string) error {
	ctx, _ = attachLoggerToContext(ctx)
	key := c.key(unit)

	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &c.bucketName,
		Key:    &key,
	})
	return err
}

func (c *RemoteClient) List(ctx context.Context) ([]string, error) {
	const maxKeys = 1000

	ctx, _ = attachLoggerToContext(ctx)
	prefix := c.folder + "/"

	params := &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucketName),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(maxKeys),
	}

	var units []string
	pg := s3.NewListObjectsV2Paginator(c.s3Client, params)
	for pg.HasMorePages() {
		page, err := pg.NextPage(ctx)
		if err != nil {
			var noBucketErr *types.NoSuchBucket
			if errors.As(err, &noBucketErr) {
				return nil, fmt.Errorf(errS3NoSuchBucket, err)
			}

			var apiErr smithy.APIError
			if errors.As(err, &apiErr) && apiErr.ErrorCode() == "AccessDenied" {
				return nil, fmt.Errorf("listing s3://%s/%s is not permitted: %w", c.bucketName, prefix, err)
			}

			return nil, err
		}

		for _, obj := range page.Contents {
			unit := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			// Ignore anything with a "/" in it since units are stored
			// directly in the folder.
			if unit == "" || strings.Contains(unit, "/") {
				continue
			}
			units = append(units, unit)
		}
	}
	return units, nil
}

func (c *RemoteClient) key(unit string) string {
	return path.Join(c.folder, unit)
}

func contentType(unit string) string {
	if _, format, ok := tablefile.ParseUnit(unit); ok && format == tablefile.Msgpack {
		return contentTypeMsgpack
	}
	return contentTypeJSON
}

const errS3NoSuchBucket = `S3 bucket does not exist.

The referenced S3 bucket must have been previously created. If the S3 bucket
was created within the last minute, please wait for a minute or two and try
again.

Error: %w
`
