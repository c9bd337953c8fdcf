package uniforms

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/unifix/pkg/storage"
)

// uploadAll writes every image blob concurrently. It returns the keys that
// were written, including on failure, so the caller can compensate.
func uploadAll(ctx context.Context, store storage.System, images []Image, files []File) ([]string, error) {
	var (
		mu      sync.Mutex
		written = make([]string, 0, len(images))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(images)))

	for i := range images {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			img := images[i]
			if err := store.Upload(gctx, img.StorageKey, bytes.NewReader(files[i].Data), img.ContentType); err != nil {
				return fmt.Errorf("upload %s: %w", img.Filename, err)
			}

			mu.Lock()
			written = append(written, img.StorageKey)
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return written, err
}

// compensate deletes blobs written by a failed upload. It runs even when
// ctx is already cancelled.
func compensate(ctx context.Context, store storage.System, logger *slog.Logger, keys []string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := store.Delete(ctx, key); err != nil {
			logger.Warn("compensating blob delete failed", "key", key, "error", err)
		}
	}
}

func workerCount(n int) int {
	return max(min(runtime.NumCPU(), n), 1)
}
