package fetch

import (
	"context"
	"os"

	"github.com/gaurav-prasanna/semanticmd/core"
)

// FileFetcher reads HTML from the local filesystem. The "URL" is a path.
type FileFetcher struct{}

// NewFile creates a FileFetcher.
func NewFile() *FileFetcher {
	return &FileFetcher{}
}

// Fetch reads the file at path.
func (f *FileFetcher) Fetch(ctx context.Context, path string) (*core.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{URL: path, Message: "cancelled", Cause: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{URL: path, Message: "reading file", Cause: err}
	}
	return &core.FetchResult{URL: path, StatusCode: 200, HTML: string(data)}, nil
}
