// Package pptx writes laid out page as Office Open XML presentation with a
// single slide.
package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"onepaper/config"
	"onepaper/layout"
	"onepaper/state"
)

// Meta is package level document information.
type Meta struct {
	Title       string
	Subject     string
	Description string
	Creator     string
	// Modified stamps both core properties and zip entries, same value
	// produces byte identical packages.
	Modified time.Time
}

func (m *Meta) identifier() uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("onepaper:"+m.Title+"@"+m.Modified.UTC().Format(time.RFC3339)))
}

type part struct {
	name string
	doc  *etree.Document
}

func parts(page *layout.Page, meta *Meta, cfg *config.DocumentConfig) []part {
	return []part{
		{partContentTypes, contentTypesPart()},
		{partRootRels, relsPart(
			relationship{"rId1", relOfficeDocument, partPresentation},
			relationship{"rId2", relCoreProps, partCore},
			relationship{"rId3", relExtendedProps, partApp},
		)},
		{partCore, corePart(meta)},
		{partApp, appPart(meta)},
		{partPresentation, presentationPart(page)},
		{partPresRels, relsPart(
			relationship{"rId1", relSlideMaster, "slideMasters/slideMaster1.xml"},
			relationship{"rId2", relSlide, "slides/slide1.xml"},
			relationship{"rId3", relTheme, "theme/theme1.xml"},
		)},
		{partMaster, masterPart()},
		{partMasterRels, relsPart(
			relationship{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"},
			relationship{"rId2", relTheme, "../theme/theme1.xml"},
		)},
		{partLayout, layoutPart()},
		{partLayoutRels, relsPart(
			relationship{"rId1", relSlideMaster, "../slideMasters/slideMaster1.xml"},
		)},
		{partTheme, themePart(layout.PaletteFor(cfg.ThemeMode), cfg.Fonts.Body, cfg.Fonts.Bold)},
		{partSlide, slidePart(page)},
		{partSlideRels, relsPart(
			relationship{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"},
		)},
	}
}

// Write serializes page into w as complete presentation package.
func Write(w io.Writer, page *layout.Page, meta Meta, cfg *config.DocumentConfig) (err error) {
	if page == nil {
		return errors.New("nothing to write")
	}
	if len(meta.Creator) == 0 {
		meta.Creator = "onepaper"
	}

	zw := zip.NewWriter(w)
	defer func() {
		err = multierr.Append(err, zw.Close())
	}()

	for _, p := range parts(page, &meta, cfg) {
		if err := writeXMLToZip(zw, p.name, p.doc, meta.Modified); err != nil {
			return fmt.Errorf("unable to write %s: %w", p.name, err)
		}
	}
	return nil
}

// Generate writes presentation to outputPath. Package is assembled in a
// temporary file next to destination and renamed when complete, so partial
// output is never left behind. All failures are reported as
// *layout.RenderError.
func Generate(ctx context.Context, page *layout.Page, meta Meta, outputPath string, cfg *config.DocumentConfig, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log = log.Named("pptx")

	if _, err := os.Stat(outputPath); err == nil {
		if !env.Overwrite {
			return &layout.RenderError{Op: "write", Err: fmt.Errorf("output file already exists: %s", outputPath)}
		}
		log.Warn("Overwriting existing file", zap.String("file", outputPath))
	} else if !os.IsNotExist(err) {
		return &layout.RenderError{Op: "write", Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return &layout.RenderError{Op: "write", Err: fmt.Errorf("unable to create output directory: %w", err)}
	}

	log.Info("Generating presentation", zap.String("output", outputPath), zap.Int("shapes", len(page.Shapes)))

	var buf bytes.Buffer
	if err := Write(&buf, page, meta, cfg); err != nil {
		return &layout.RenderError{Op: "write", Err: err}
	}
	data := buf.Bytes()
	if cfg.FixZip {
		var err error
		if data, err = withoutDataDescriptors(data); err != nil {
			return &layout.RenderError{Op: "write", Err: err}
		}
	}
	if err := writeAtomically(outputPath, data); err != nil {
		return &layout.RenderError{Op: "write", Err: err}
	}
	return nil
}

func writeAtomically(outputPath string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(outputPath), ".onepaper-*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	tmpName := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return multierr.Append(fmt.Errorf("unable to write output file: %w", err), f.Close())
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}
	if err := os.Rename(tmpName, outputPath); err != nil {
		return fmt.Errorf("unable to move output file in place: %w", err)
	}
	return nil
}

// withoutDataDescriptors rewrites archive clearing data descriptor flag on
// all entries, some readers do not handle them.
func withoutDataDescriptors(data []byte) ([]byte, error) {
	r, err := fixzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("unable to read archive: %w", err)
	}

	var out bytes.Buffer
	w := fixzip.NewWriter(&out)
	for _, file := range r.File {
		file.Flags &= ^fixzip.FlagDataDescriptor
		if err := w.CopyFile(file); err != nil {
			return nil, multierr.Append(fmt.Errorf("unable to copy archive entry (%s): %w", file.Name, err), w.Close())
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("unable to close archive: %w", err)
	}
	return out.Bytes(), nil
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document, modified time.Time) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return writeDataToZip(zw, name, buf.Bytes(), modified)
}

func writeDataToZip(zw *zip.Writer, name string, data []byte, modified time.Time) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
