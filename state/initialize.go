package state

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"stylebridge/animation"
	"stylebridge/document"
	"stylebridge/style"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

// PrepareEngine creates resolver, keyframe registry and document loader
// configured by styling section of configuration.
func (e *LocalEnv) PrepareEngine() error {
	if e.Cfg == nil {
		return errors.New("configuration is not loaded")
	}
	log := e.logger()
	e.Resolver = style.NewResolver(log, e.Cfg.Styling.Options()...)
	e.Keyframes = animation.NewRegistry(log)
	e.Loader = document.NewLoader(log, e.Resolver.Preprocessor(), e.Keyframes)
	return nil
}

// LoadDocument loads stylesheet document, its copy goes to debug report.
// Returned error may accompany usable document, see document.Loader.Load.
func (e *LocalEnv) LoadDocument(path string) (*document.Document, error) {
	if err := e.prepareLoad(path); err != nil {
		return nil, err
	}
	doc, err := e.Loader.LoadFile(path)
	if doc == nil {
		return nil, fmt.Errorf("unable to load stylesheet: %w", err)
	}
	e.storeDump(doc)
	return doc, err
}

// LoadDocuments loads single stylesheet document or every document of zip
// bundle.
func (e *LocalEnv) LoadDocuments(path string) ([]*document.Document, error) {
	if !document.IsArchive(path) {
		doc, err := e.LoadDocument(path)
		if doc == nil {
			return nil, err
		}
		return []*document.Document{doc}, err
	}
	if err := e.prepareLoad(path); err != nil {
		return nil, err
	}
	docs, err := e.Loader.LoadArchive(path)
	for _, doc := range docs {
		e.storeDump(doc)
	}
	return docs, err
}

func (e *LocalEnv) prepareLoad(path string) error {
	if e.Loader == nil {
		return errors.New("styling engine is not prepared")
	}
	if err := e.Rpt.StoreCopy(filepath.ToSlash(filepath.Join("documents", filepath.Base(path))), path); err != nil {
		e.logger().Warn("Unable to store document in debug report", zap.String("document", path), zap.Error(err))
	}
	return nil
}

// storeDump puts loaded document content in debug report.
func (e *LocalEnv) storeDump(doc *document.Document) {
	if e.Rpt == nil {
		return
	}
	e.Rpt.StoreData(path.Join("documents", doc.Name+".tree"), []byte(doc.Dump()))
}

func (e *LocalEnv) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}
