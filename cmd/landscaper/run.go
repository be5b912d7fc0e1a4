package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/increasinglyHuman/BlackBoxLandscaper/internal/catalog"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/export"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/project"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/rng"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/scatter"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/validation"
)

type scatterOptions struct {
	seed      int64
	seedSet   bool
	out       string
	format    string
	formatSet bool
	index     string
	verbose   bool
}

// loadAndValidate loads the project, resolves its definitions and checks
// the layer set.
func loadAndValidate(projectPath string) (*project.Project, *project.Scene, *validation.Report, error) {
	p, err := project.LoadProject(projectPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading project: %w", err)
	}
	scene, err := p.Build()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building project: %w", err)
	}
	return p, scene, scatter.ValidateLayers(scene.Layers), nil
}

func runValidate(projectPath string) error {
	_, scene, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	report.AddInfo(validation.Result{
		Level: validation.LevelConfig,
		Message: fmt.Sprintf("%s region, area %.1f, %d layers",
			scene.Region.Kind(), scene.Region.Area(), len(scene.Layers)),
	})
	printValidationReport(os.Stdout, report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runScatter(ctx context.Context, projectPath string, opts scatterOptions) error {
	p, scene, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(os.Stderr, report)
		return fmt.Errorf("project has validation errors")
	}

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	var seed int64
	switch {
	case opts.seedSet:
		seed = opts.seed
	case scene.Options.Seed != nil:
		seed = *scene.Options.Seed
	default:
		seed = rng.RandomSeed()
	}
	scene.Options.Seed = &seed
	log.Printf("scattering %d layers with seed %d", len(scene.Layers), seed)

	start := time.Now()
	manifests, report := scatter.ScatterLayers(scene.Layers, scene.Region, scene.Terrain, scene.Options)
	if !report.Valid {
		printValidationReport(os.Stderr, report)
		return fmt.Errorf("scatter failed")
	}
	if opts.verbose {
		printValidationReport(os.Stderr, report)
	} else {
		for _, w := range report.Warnings {
			log.Printf("warning: %s", w.Message)
		}
	}

	name := p.Name
	if name == "" {
		name = projectPath
	}
	doc := export.NewDocument(name, &seed, manifests)
	log.Printf("placed %d instances in %s", doc.Instances(), time.Since(start).Round(time.Millisecond))

	if err := writeDocument(doc, opts.out, format, opts.formatSet); err != nil {
		return err
	}

	if opts.index != "" {
		id, err := recordRun(ctx, opts.index, doc, opts.out)
		if err != nil {
			return err
		}
		log.Printf("recorded run %d in %s", id, opts.index)
	}
	return nil
}

// writeDocument writes to stdout when out is empty. For files the extension
// picks the format unless one was given explicitly.
func writeDocument(doc *export.Document, out string, format export.Format, formatSet bool) error {
	if out == "" {
		return export.Write(os.Stdout, doc, format)
	}
	if !formatSet {
		if err := export.WriteFile(out, doc); err != nil {
			return err
		}
	} else {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := export.Write(f, doc, format); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", out, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	log.Printf("wrote %s", out)
	return nil
}

func recordRun(ctx context.Context, path string, doc *export.Document, out string) (int64, error) {
	idx, err := catalog.OpenSQLite(path)
	if err != nil {
		return 0, fmt.Errorf("opening run index: %w", err)
	}
	defer idx.Close()

	run := catalog.Run{
		Project: doc.Project,
		Seed:    *doc.Seed,
		Output:  out,
	}
	if len(doc.Manifests) > 0 {
		run.CreatedAt = doc.Manifests[0].CreatedAt
	} else {
		run.CreatedAt = time.Now()
	}
	return idx.RecordRun(ctx, run, doc.Manifests)
}

func runInspect(path string) error {
	doc, err := export.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifests: %w", err)
	}
	printDocument(os.Stdout, doc)
	return nil
}

func runRuns(ctx context.Context, path string, limit int) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("run index %s: %w", path, err)
	}
	idx, err := catalog.OpenSQLite(path)
	if err != nil {
		return fmt.Errorf("opening run index: %w", err)
	}
	defer idx.Close()

	runs, err := idx.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	printRuns(os.Stdout, runs)
	return nil
}
