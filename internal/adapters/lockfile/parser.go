// Package lockfile builds the resolved lockfile model from pnpm-lock.yaml text.
package lockfile

import (
	"context"
	"fmt"

	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/yamlnode"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	importersKey = "importers"
	packagesKey  = "packages"
)

var _ ports.LockfileParser = (*Parser)(nil)

// Parser implements ports.LockfileParser over gopkg.in/yaml.v3 node trees.
type Parser struct {
	Logger ports.Logger
	Tracer ports.Tracer
}

// NewParser creates a new Parser.
func NewParser(logger ports.Logger, tracer ports.Tracer) *Parser {
	return &Parser{Logger: logger, Tracer: tracer}
}

// Parse builds every entry of the lockfile, then links its dependencies.
// The returned Lockfile is complete; on error nothing is returned.
func (p *Parser) Parse(ctx context.Context, text, rootManifestPath string) (*domain.Lockfile, error) {
	if rootManifestPath == "" {
		rootManifestPath = domain.DefaultRootManifestPath
	}

	ctx, span := p.Tracer.Start(ctx, "lockfile.build",
		ports.WithAttribute("lockfile.bytes", len(text)))
	defer span.End()

	lock, err := p.build(text, rootManifestPath)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("lockfile.importers", len(lock.Importers()))
	span.SetAttribute("lockfile.packages", len(lock.Packages()))

	if err := p.resolve(ctx, lock); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return lock, nil
}

// build runs the first pass: every importer and package becomes an entry in the index.
func (p *Parser) build(text, rootManifestPath string) (*domain.Lockfile, error) {
	root, err := yamlnode.Parse(text)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockfileParseFailed, "failed to build lockfile"), "cause", err.Error())
	}
	if !yamlnode.IsMapping(root) {
		return nil, zerr.Wrap(domain.ErrMissingRoot, "failed to build lockfile")
	}

	lock := domain.NewLockfile(text, rootManifestPath)

	for pair := range yamlnode.Pairs(yamlnode.Child(root, importersKey, yaml.MappingNode)) {
		if err := expectMapping(importersKey, pair); err != nil {
			return nil, err
		}
		entry := domain.NewProjectEntry(pair.Key, rootManifestPath, pair.Line)
		addDependencies(entry, pair.Value)
		if err := lock.AddEntry(entry); err != nil {
			return nil, zerr.With(err, "section", importersKey)
		}
	}

	for pair := range yamlnode.Pairs(yamlnode.Child(root, packagesKey, yaml.MappingNode)) {
		if err := expectMapping(packagesKey, pair); err != nil {
			return nil, err
		}
		entry := domain.NewPackageEntry(pair.Key, pair.Line)
		if entry.PackageName() == "" {
			p.Logger.Warn(fmt.Sprintf("package key %q on line %d is not in /name/version form", pair.Key, pair.Line))
		}
		addDependencies(entry, pair.Value)
		if err := lock.AddEntry(entry); err != nil {
			return nil, zerr.With(err, "section", packagesKey)
		}
	}

	return lock, nil
}

// resolve runs the second pass, linking every dependency to its target entry.
func (p *Parser) resolve(ctx context.Context, lock *domain.Lockfile) error {
	_, span := p.Tracer.Start(ctx, "lockfile.resolve")
	defer span.End()

	if err := lock.Resolve(); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttribute("lockfile.edges", lock.EdgeCount())
	return nil
}

func expectMapping(section string, pair yamlnode.Pair) error {
	if yamlnode.IsMapping(pair.Value) {
		return nil
	}
	err := zerr.Wrap(domain.ErrExpectingMapping, "invalid "+section+" entry")
	err = zerr.With(err, "section", section)
	err = zerr.With(err, "key", pair.Key)
	return zerr.With(err, "line", pair.Line)
}
