package s3

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/multierr"

	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/port"
)

// S3 allows at most 1000 keys per DeleteObjects request.
const maxDeleteBatch = 1000

// Client is the subset of the S3 API the store uses. *s3.Client satisfies it.
type Client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// Store maps store paths onto object keys under an optional prefix.
// Directories are implied by key prefixes.
type Store struct {
	client Client
	bucket string
	prefix string
}

func NewStore(client Client, bucket, keyPrefix string) *Store {
	if keyPrefix != "" && !strings.HasSuffix(keyPrefix, "/") {
		keyPrefix += "/"
	}
	return &Store{
		client: client,
		bucket: bucket,
		prefix: keyPrefix,
	}
}

func (s *Store) key(p string) string {
	return s.prefix + strings.Trim(p, "/")
}

func (s *Store) dirPrefix(p string) string {
	k := s.key(p)
	if k == "" || strings.HasSuffix(k, "/") {
		return k
	}
	return k + "/"
}

func (s *Store) logical(key string) string {
	return strings.TrimSuffix(strings.TrimPrefix(key, s.prefix), "/")
}

func (s *Store) Exists(ctx context.Context, p string) (bool, error) {
	_, err := s.Metadata(ctx, p)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Store) Metadata(ctx context.Context, p string) (domain.FileEntry, error) {
	logical := strings.Trim(p, "/")

	if logical != "" {
		head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.key(p)),
		})
		if err == nil {
			return domain.FileEntry{
				Kind:     domain.FileKindFile,
				Path:     logical,
				Basename: path.Base(logical),
				Size:     aws.ToInt64(head.ContentLength),
			}, nil
		}
		if !isNotFound(err) {
			return domain.FileEntry{}, fmt.Errorf("head object %s: %w", p, err)
		}
	}

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(s.dirPrefix(p)),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return domain.FileEntry{}, fmt.Errorf("list objects %s: %w", p, err)
	}
	if len(out.Contents) == 0 && len(out.CommonPrefixes) == 0 {
		return domain.FileEntry{}, fmt.Errorf("%w: %s", domain.ErrNotFound, p)
	}
	return domain.FileEntry{
		Kind:     domain.FileKindDir,
		Path:     logical,
		Basename: path.Base(logical),
	}, nil
}

func (s *Store) List(ctx context.Context, p string, recursive bool) ([]domain.FileEntry, error) {
	prefix := s.dirPrefix(p)
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}
	if !recursive {
		input.Delimiter = aws.String("/")
	}

	entries := make(map[string]domain.FileEntry)
	addDir := func(logical string) {
		if _, ok := entries[logical]; !ok {
			entries[logical] = domain.FileEntry{Kind: domain.FileKindDir, Path: logical, Basename: path.Base(logical)}
		}
	}
	base := s.logical(prefix)

	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects %s: %w", p, err)
		}

		for _, cp := range page.CommonPrefixes {
			addDir(s.logical(aws.ToString(cp.Prefix)))
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == prefix {
				continue
			}
			logical := s.logical(key)
			if strings.HasSuffix(key, "/") {
				addDir(logical)
			} else {
				entries[logical] = domain.FileEntry{
					Kind:     domain.FileKindFile,
					Path:     logical,
					Basename: path.Base(logical),
					Size:     aws.ToInt64(obj.Size),
				}
			}
			if recursive {
				for dir := path.Dir(logical); dir != "." && dir != base && strings.HasPrefix(dir, base); dir = path.Dir(dir) {
					addDir(dir)
				}
			}
		}
	}

	if len(entries) == 0 {
		if _, err := s.Metadata(ctx, p); err != nil {
			return nil, err
		}
	}

	result := make([]domain.FileEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result, nil
}

// Rename copies then deletes each object. Directories are moved key by key.
func (s *Store) Rename(ctx context.Context, oldPath, newPath string) error {
	entry, err := s.Metadata(ctx, oldPath)
	if err != nil {
		return err
	}
	if entry.IsFile() {
		return s.moveObject(ctx, s.key(oldPath), s.key(newPath))
	}

	children, err := s.List(ctx, oldPath, true)
	if err != nil {
		return err
	}
	oldBase, newBase := strings.Trim(oldPath, "/"), strings.Trim(newPath, "/")
	for _, child := range children {
		if !child.IsFile() {
			continue
		}
		target := newBase + strings.TrimPrefix(child.Path, oldBase)
		if err := s.moveObject(ctx, s.key(child.Path), s.key(target)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) moveObject(ctx context.Context, from, to string) error {
	if _, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(copySource(s.bucket, from)),
		Key:        aws.String(to),
	}); err != nil {
		return fmt.Errorf("copy %s to %s: %w", from, to, err)
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(from),
	}); err != nil {
		return fmt.Errorf("delete %s: %w", from, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, p string) error {
	entry, err := s.Metadata(ctx, p)
	if err != nil {
		return err
	}
	if entry.IsDir() {
		return fmt.Errorf("delete %s: is a directory", p)
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(p)),
	}); err != nil {
		return fmt.Errorf("delete %s: %w", p, err)
	}
	return nil
}

func (s *Store) DeleteRecursive(ctx context.Context, p string) error {
	prefix := s.dirPrefix(p)
	keys := []string{prefix}

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list objects %s: %w", p, err)
		}
		for _, obj := range page.Contents {
			if key := aws.ToString(obj.Key); key != prefix {
				keys = append(keys, key)
			}
		}
	}

	return s.deleteKeys(ctx, keys)
}

func (s *Store) deleteKeys(ctx context.Context, keys []string) error {
	var errs error
	for i := 0; i < len(keys); i += maxDeleteBatch {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		end := min(i+maxDeleteBatch, len(keys))
		objects := make([]types.ObjectIdentifier, 0, end-i)
		for _, key := range keys[i:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
		}

		result, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete objects: %w", err))
			continue
		}
		for _, deleteErr := range result.Errors {
			errs = multierr.Append(errs, fmt.Errorf("delete %s: %s: %s",
				aws.ToString(deleteErr.Key), aws.ToString(deleteErr.Code), aws.ToString(deleteErr.Message)))
		}
	}
	return errs
}

func copySource(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return bucket + "/" + strings.Join(segments, "/")
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey)
}

var _ port.FileStore = (*Store)(nil)
