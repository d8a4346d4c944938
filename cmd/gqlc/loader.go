package main

import (
	"context"
	"errors"
	"io"
	"strings"

	"gocloud.dev/blob/fileblob"

	"github.com/shyptr/gqlc/compiler"
)

// loadSources walks dir via a blob.Bucket rather than the os package
// directly, so the file-discovery collaborator isn't hard-wired to the
// local filesystem and could point at another blob backend without
// changing the compiler's []compiler.SourceFile input contract
// (SPEC_FULL.md §B).
func loadSources(ctx context.Context, dir string) ([]compiler.SourceFile, error) {
	bucket, err := fileblob.OpenBucket(dir, nil)
	if err != nil {
		return nil, err
	}
	defer bucket.Close()

	var files []compiler.SourceFile
	iter := bucket.List(nil)
	for {
		obj, err := iter.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if obj.IsDir || !strings.HasSuffix(obj.Key, ".graphql") {
			continue
		}
		data, err := bucket.ReadAll(ctx, obj.Key)
		if err != nil {
			return nil, err
		}
		files = append(files, compiler.SourceFile{Path: obj.Key, Src: string(data)})
	}
	return files, nil
}
