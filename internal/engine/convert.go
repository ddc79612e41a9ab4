package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/danieljhkim/propyaml/internal/clock"
	"github.com/danieljhkim/propyaml/internal/config"
	"github.com/danieljhkim/propyaml/internal/ctxlog"
	"github.com/danieljhkim/propyaml/internal/docpath"
	"github.com/danieljhkim/propyaml/internal/persist"
	"github.com/danieljhkim/propyaml/internal/planner"
)

// scanResult is the snapshot produced by the scan phase.
type scanResult struct {
	acc *planner.Accumulator

	// sources holds the raw content of every matched source
	sources map[string][]byte

	// scanned counts every recognized document
	scanned int
}

// Algorithm steps:
// 1. Normalize options
// 2. Scan every document under the root, building one tree per matching source
// 3. Plan targets, collisions and retirements
// 4. Render and validate every target
// 5. Write targets, back up and retire originals (if not DryRun)
// 6. Write the run manifest (if configured)
func (e *Engine) Convert(ctx context.Context, req *ConvertRequest) (*ConvertResult, error) {
	logger := ctxlog.FromContext(ctx)

	if req.Root == "" {
		return nil, fmt.Errorf("%w: root is required", ErrValidation)
	}
	opts := req.Options
	if err := opts.Normalize(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	scan, err := e.scan(ctx, req.Root, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("scan complete", "root", req.Root, "documents", scan.scanned, "sources", len(scan.sources))

	plan, err := planner.BuildConvertPlan(scan.acc, planner.Options{
		TargetSuffix: opts.TargetSuffix,
		Retire:       opts.Retire,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build convert plan: %w", err)
	}

	generated, err := renderPlan(plan)
	if err != nil {
		return nil, err
	}
	logger.Info("render complete", "targets", len(generated), "collisions", len(plan.Collisions))

	if plan.HasCollisions() {
		for _, c := range plan.Collisions {
			logger.Warn("skipping generation", "source", c.SourcePath, "target", c.TargetPath, "reason", c.Reason)
		}
	}
	for _, op := range plan.Retires() {
		if op.RetiredWithoutTarget {
			logger.Warn("original will be retired although no converted document replaces it",
				"source", op.SourcePath, "retire", string(opts.Retire))
		}
	}

	result := &ConvertResult{
		Root:       req.Root,
		DryRun:     req.DryRun,
		Scanned:    scan.scanned,
		Generated:  generated,
		Collisions: plan.Collisions,
		Retired:    []RetiredDocument{},
	}

	if req.DryRun {
		for _, op := range plan.Retires() {
			result.Retired = append(result.Retired, RetiredDocument{
				Source:        op.SourcePath,
				WithoutTarget: op.RetiredWithoutTarget,
			})
		}
		return result, nil
	}

	for _, doc := range generated {
		if err := e.fs.AtomicWrite(absPath(req.Root, doc.Target), []byte(doc.Content), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", doc.Target, err)
		}
		logger.Debug("generated document", "source", doc.Source, "target", doc.Target)
	}

	retired, err := e.retire(ctx, req.Root, opts, plan)
	if err != nil {
		return nil, err
	}
	result.Retired = retired

	if opts.Manifest != "" {
		manifestPath := config.Resolve(req.Root, opts.Manifest)
		if err := e.writeManifest(manifestPath, req.Root, opts, scan, result); err != nil {
			return nil, err
		}
		result.ManifestPath = manifestPath
	}

	return result, nil
}

// scan discovers every document under root. Every recognized document is
// recorded as existing; matching flat documents are parsed into trees, in
// parallel when opts.Jobs > 1.
func (e *Engine) scan(ctx context.Context, root string, opts config.Options) (*scanResult, error) {
	logger := ctxlog.FromContext(ctx)
	skip := skipPrefixes(root, opts)

	var paths []string
	err := e.fs.WalkFiles(root, func(rel string) error {
		for _, prefix := range skip {
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return nil
			}
		}
		if docpath.Detect(rel) != docpath.FormatUnknown {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	res := &scanResult{
		acc:     planner.NewAccumulator(),
		sources: make(map[string][]byte),
		scanned: len(paths),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)

	for _, rel := range paths {
		res.acc.AddExisting(rel)
		if docpath.Detect(rel) != docpath.FormatProperties {
			continue
		}

		ok, err := docpath.Match(opts.FilePattern, rel)
		if err != nil {
			_ = g.Wait()
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		if !ok {
			logger.Debug("source does not match file pattern", "source", rel, "pattern", opts.FilePattern)
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := e.fs.ReadFile(absPath(root, rel))
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", rel, err)
			}
			tree, err := buildTree(rel, data, opts.SortKeys)
			if err != nil {
				return err
			}

			mu.Lock()
			res.sources[rel] = data
			mu.Unlock()

			logger.Debug("built property tree", "source", rel, "keys", tree.Len())
			return res.acc.AddTree(rel, tree)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// renderPlan renders every generate operation. Nothing is written here so a
// failure leaves the root untouched.
func renderPlan(plan *planner.ConvertPlan) ([]GeneratedDocument, error) {
	generated := []GeneratedDocument{}
	for _, op := range plan.Generates() {
		content, err := renderTree(op.SourcePath, op.Tree)
		if err != nil {
			return nil, err
		}
		generated = append(generated, GeneratedDocument{
			Source:  op.SourcePath,
			Target:  op.TargetPath,
			Content: content,
		})
	}
	return generated, nil
}

// retire backs up (when configured) and removes every original the plan retires.
func (e *Engine) retire(ctx context.Context, root string, opts config.Options, plan *planner.ConvertPlan) ([]RetiredDocument, error) {
	logger := ctxlog.FromContext(ctx)

	var backups *persist.BackupManager
	if opts.BackupDir != "" {
		backups = persist.NewBackupManager(e.fs, root, config.Resolve(root, opts.BackupDir), clock.Stamp(e.clock))
		logger.Info("backing up retired originals", "dir", backups.Dir())
	}

	retired := []RetiredDocument{}
	for _, op := range plan.Retires() {
		doc := RetiredDocument{
			Source:        op.SourcePath,
			WithoutTarget: op.RetiredWithoutTarget,
		}

		if backups != nil {
			backup, err := backups.Backup(op.SourcePath)
			if err != nil {
				return nil, err
			}
			doc.Backup = backup
		}

		if err := e.fs.Remove(absPath(root, op.SourcePath)); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to retire %s: %w", op.SourcePath, err)
		}
		logger.Debug("retired original", "source", op.SourcePath, "backup", doc.Backup)

		retired = append(retired, doc)
	}
	return retired, nil
}

func (e *Engine) writeManifest(path, root string, opts config.Options, scan *scanResult, result *ConvertResult) error {
	m := persist.NewManifest(root, opts, e.clock.Now())

	for _, doc := range result.Generated {
		m.Generated = append(m.Generated, persist.GeneratedEntry{
			Source:     doc.Source,
			Target:     doc.Target,
			SourceHash: e.hasher.HashBytes(scan.sources[doc.Source]),
			TargetHash: e.hasher.HashBytes([]byte(doc.Content)),
		})
	}
	for _, c := range result.Collisions {
		m.Collisions = append(m.Collisions, persist.CollisionEntry{
			Source: c.SourcePath,
			Target: c.TargetPath,
			Reason: c.Reason,
		})
	}
	for _, doc := range result.Retired {
		m.Retired = append(m.Retired, persist.RetiredEntry{
			Source:        doc.Source,
			Backup:        doc.Backup,
			WithoutTarget: doc.WithoutTarget,
		})
	}

	return persist.WriteManifest(e.fs, path, m)
}

// skipPrefixes returns root-relative directories excluded from the scan.
func skipPrefixes(root string, opts config.Options) []string {
	if opts.BackupDir == "" {
		return nil
	}
	rel, err := filepath.Rel(root, config.Resolve(root, opts.BackupDir))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return []string{filepath.ToSlash(rel)}
}

// absPath joins a slash-separated root-relative path onto root.
func absPath(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
