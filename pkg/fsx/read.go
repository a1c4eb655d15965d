package fsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/chat"
)

const maxConcurrentReads = 8

// SplitByContent separates files that are uploaded by content (text) from
// those the backend reads by path.
func SplitByContent(paths []string) (text, other []string) {
	for _, p := range paths {
		if chat.IsTextFile(p) {
			text = append(text, p)
		} else {
			other = append(other, p)
		}
	}
	return text, other
}

// ReadFiles reads paths concurrently, keeping their order. The first failure
// cancels the remaining reads.
func ReadFiles(ctx context.Context, paths []string) ([]api.FileContent, error) {
	contents := make([]api.FileContent, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("reading %s: %w", p, err)
			}
			contents[i] = api.FileContent{Name: filepath.Base(p), Content: string(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}
