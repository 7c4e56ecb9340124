package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeObjects struct {
	objects  map[string][]byte
	failPut  error
	pageSize int
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut != nil {
		return nil, f.failPut
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

// ListObjectsV2 pages through the sorted object keys, using the last key of a
// page as its continuation token.
func (f *fakeObjects) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	bucket := *in.Bucket + "/"
	var names []string
	for name := range f.objects {
		if key, ok := strings.CutPrefix(name, bucket); ok && strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			names = append(names, key)
		}
	}
	slices.Sort(names)

	if token := aws.ToString(in.ContinuationToken); token != "" {
		i, _ := slices.BinarySearch(names, token)
		names = names[i+1:]
	}

	out := &s3.ListObjectsV2Output{}
	if f.pageSize > 0 && len(names) > f.pageSize {
		names = names[:f.pageSize]
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(names[len(names)-1])
	}
	for _, name := range names {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(name)})
	}
	return out, nil
}

func TestS3Backend(t *testing.T) {
	ctx := context.Background()
	fake := &fakeObjects{objects: map[string][]byte{}}
	b := newS3Backend(fake, "cards", "swipestate/")

	if _, err := b.Get(ctx, "tinder_app_data"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := b.Put(ctx, "tinder_app_data", []byte(`{"favorites":[]}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, ok := fake.objects["cards/swipestate/tinder_app_data"]; !ok {
		t.Errorf("Expected object under prefix, have %v", fake.objects)
	}

	got, err := b.Get(ctx, "tinder_app_data")
	if err != nil || string(got) != `{"favorites":[]}` {
		t.Errorf("Unexpected read back (%q, %v)", got, err)
	}
}

func TestS3BackendKeys(t *testing.T) {
	ctx := context.Background()
	fake := &fakeObjects{objects: map[string][]byte{}, pageSize: 2}
	b := newS3Backend(fake, "cards", "swipestate/")

	for _, key := range []string{"tinder_app_data", "project_drafts", "project_draft", "drafts/2025 06"} {
		if err := b.Put(ctx, key, []byte("{}")); err != nil {
			t.Fatalf("Put %q failed: %v", key, err)
		}
	}
	fake.objects["cards/other/project_drafts"] = []byte("[]")
	fake.objects["cards/swipestate/nested/object"] = []byte("[]")

	keys, err := b.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	want := []string{"drafts/2025 06", "project_draft", "project_drafts", "tinder_app_data"}
	if !slices.Equal(keys, want) {
		t.Errorf("Expected %v, got %v", want, keys)
	}
}

func TestS3BackendPutFailureIsSwallowedByAdapter(t *testing.T) {
	captureLogs(t)
	fake := &fakeObjects{objects: map[string][]byte{}, failPut: errors.New("access denied")}
	s := NewAdapter(newS3Backend(fake, "cards", ""), 0)

	s.Write("project_drafts", "[]")
	if _, ok := s.Read("project_drafts"); ok {
		t.Error("Expected failed write to leave key absent")
	}
}
