// Package publish creates draft releases on the code-hosting platform and
// attaches release artifacts to them.
package publish

import (
	"context"
	"path/filepath"

	"github.com/simplybusiness/kiln-release/internal/log"
)

// Release identifies a release created on the hosting platform.
type Release struct {
	ID      int64
	Tag     string
	HTMLURL string
}

// Publisher is the hosting-platform release API.
type Publisher interface {
	// CreateDraftRelease creates an unpublished release for an existing tag.
	CreateDraftRelease(ctx context.Context, tag, title, notes string) (Release, error)
	// UploadAsset attaches one file to the release, named after its base name.
	UploadAsset(ctx context.Context, rel Release, path string) error
}

// Request is one release to publish.
type Request struct {
	Tag    string
	Title  string
	Notes  string
	Assets []string // Paths of every file to attach
}

// Publish creates the draft release and uploads every asset in order. It
// stops at the first failed upload and returns a PublishError listing what
// was and was not attached.
func Publish(ctx context.Context, p Publisher, req Request) (Release, error) {
	log.Info(log.CatPublish, "Creating draft release", "tag", req.Tag, "title", req.Title)
	rel, err := p.CreateDraftRelease(ctx, req.Tag, req.Title, req.Notes)
	if err != nil {
		return Release{}, &PublishError{Tag: req.Tag, Missing: names(req.Assets), Err: err}
	}

	for i, asset := range req.Assets {
		if err := p.UploadAsset(ctx, rel, asset); err != nil {
			log.ErrorErr(log.CatPublish, "Upload failed", err, "asset", filepath.Base(asset), "release", rel.HTMLURL)
			return rel, &PublishError{
				Tag:      req.Tag,
				Release:  rel.HTMLURL,
				Uploaded: names(req.Assets[:i]),
				Missing:  names(req.Assets[i:]),
				Err:      err,
			}
		}
		log.Info(log.CatPublish, "Uploaded asset", "asset", filepath.Base(asset), "n", i+1, "of", len(req.Assets))
	}
	return rel, nil
}

func names(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}
