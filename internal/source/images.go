package source

import (
	"context"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/spherical/question-splitter/internal/domain"
)

// ImageDetector finds the pages of a PDF that reference image XObjects.
type ImageDetector struct{}

// NewImageDetector creates a detector.
func NewImageDetector() *ImageDetector {
	return &ImageDetector{}
}

// Detect returns the 1-based pages holding at least one image.
func (d *ImageDetector) Detect(ctx context.Context, path string) (domain.PageImageIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.SourceUnavailable("failed to open PDF for image detection", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.Cmd = model.LISTIMAGES

	pdfCtx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, domain.SourceUnavailable("failed to read PDF structure", err)
	}

	index := domain.NewPageImageIndex()
	if pdfCtx.Optimize == nil {
		return index, nil
	}

	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(pdfcpu.ImageObjNrs(pdfCtx, pageNr)) > 0 {
			index[pageNr] = struct{}{}
		}
	}

	return index, nil
}
