package main

import (
	"context"
	"path/filepath"

	"gallery/internal/download"
	"gallery/internal/fonts"
	"gallery/internal/googlefonts"

	"go.uber.org/zap"
)

// fetchFont downloads family into the first font directory unless a local file already matches.
func fetchFont(ctx context.Context, a *app, gf *googlefonts.Client, family string) error {
	if path, err := fonts.FindFont(family); err == nil {
		a.log.Info("font already present", zap.String("family", family), zap.String("path", path))
		return nil
	}
	u, err := gf.Resolve(ctx, family)
	if err != nil {
		return err
	}
	dir := filepath.Join(fonts.BaseDirs[0], filepath.Base(googlefonts.NormalizeFamily(family)[0]))
	path, err := download.Fetch(ctx, u, dir)
	if err != nil {
		return err
	}
	a.log.Info("font downloaded", zap.String("family", family), zap.String("path", path))
	return nil
}
