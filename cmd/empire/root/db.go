package root

import (
	"context"
	"database/sql"

	"empireos/internal/content"
	"empireos/internal/engine"
	"empireos/internal/gemini"
	"empireos/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	db, err := storage.Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

// loadCatalog prefers --catalog over EMPIRE_CATALOG_PATH; with neither it
// uses the built-in course.
func (o *options) loadCatalog() (*content.Catalog, error) {
	path := o.catalogPath
	if path == "" {
		path = o.cfg.CatalogPath
	}
	return content.Load(path)
}

// openService starts a fresh session: catalog, in-memory store with the seed
// board, and a Gemini client.
func (o *options) openService(ctx context.Context) (*engine.Service, func(), error) {
	cat, err := o.loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}

	gen := gemini.New(gemini.Config{
		APIKey:  o.cfg.GeminiAPIKey,
		BaseURL: o.cfg.GeminiBaseURL,
		Model:   o.cfg.GeminiModel,
		Timeout: o.cfg.HTTPTimeout,
	}, o.logger)

	svc := engine.NewService(db, cat, gen, o.logger)
	if err := svc.Seed(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
