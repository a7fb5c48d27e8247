// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/drunkowl/site-tools/internal/translations"
	"github.com/drunkowl/site-tools/pkg/types"
)

// DocumentStatus describes one document produced by a sync.
type DocumentStatus struct {
	Language   types.Language
	Path       string
	Items      int
	Categories int
	Written    bool
}

// Summary is the outcome of a sync run.
type Summary struct {
	Parsed    int
	Skipped   int
	Documents []DocumentStatus
}

// Syncer runs the kitchen menu → locale documents pipeline.
type Syncer struct {
	cfg   types.MenuConfig
	table *translations.Table
	log   zerolog.Logger
}

// NewSyncer validates the language settings against each other and the
// category table.
func NewSyncer(cfg types.MenuConfig, table *translations.Table, log zerolog.Logger) (*Syncer, error) {
	if cfg.Columns.Index(cfg.Base) < 0 {
		return nil, fmt.Errorf("base language %q is not one of the source columns %v", cfg.Base, cfg.Columns)
	}
	if len(cfg.Secondary) == 0 {
		return nil, fmt.Errorf("no secondary languages configured")
	}
	for _, lang := range cfg.Secondary {
		if lang == cfg.Base {
			return nil, fmt.Errorf("secondary language %q is the base language", lang)
		}
		if cfg.Columns.Index(lang) < 0 {
			return nil, fmt.Errorf("secondary language %q is not one of the source columns %v", lang, cfg.Columns)
		}
	}
	if table.Base != cfg.Base {
		return nil, fmt.Errorf("category table is keyed by %q but the base language is %q", table.Base, cfg.Base)
	}
	return &Syncer{cfg: cfg, table: table, log: log}, nil
}

func (s *Syncer) layout() Layout {
	return Layout{Columns: s.cfg.Columns, Base: s.cfg.Base}
}

// Run parses the source file, merges it into the base document and then
// regenerates each secondary document, in that order. Each document is
// written before the next is read; a failure leaves the documents already
// written in place.
func (s *Syncer) Run(w io.Writer) (*Summary, error) {
	parsed, err := ParseFile(s.cfg.SourcePath)
	if err != nil {
		return nil, err
	}
	for _, sk := range parsed.Skipped {
		s.log.Debug().Int("line", sk.Number).Str("text", sk.Text).Str("reason", sk.Reason).Msg("skipped source line")
	}
	s.log.Debug().Int("items", len(parsed.Items)).Int("skipped", len(parsed.Skipped)).Msg("parsed menu source")

	s.log.Debug().Int("version", s.table.Version).Strs("categories", s.table.Categories()).Msg("category table")

	summary := &Summary{Parsed: len(parsed.Items), Skipped: len(parsed.Skipped)}
	layout := s.layout()

	basePath := s.cfg.DocumentPath(s.cfg.Base)
	base, err := LoadDocument(basePath)
	if err != nil {
		return summary, err
	}
	Merge(base, parsed.Items, layout)
	if err := s.write(w, summary, s.cfg.Base, basePath, base); err != nil {
		return summary, err
	}

	for _, lang := range s.cfg.Secondary {
		path := s.cfg.DocumentPath(lang)
		doc, err := LoadDocument(path)
		if err != nil {
			return summary, err
		}
		tm := BuildTranslationMap(parsed.Items, layout, lang, s.table.For(lang))
		Regenerate(doc, base, tm)
		if err := s.write(w, summary, lang, path, doc); err != nil {
			return summary, err
		}
	}

	fmt.Fprintf(w, "\nSync summary: %d items parsed, %d lines skipped, %d documents %s\n",
		summary.Parsed, summary.Skipped, len(summary.Documents), verb(s.cfg.DryRun))
	return summary, nil
}

func (s *Syncer) write(w io.Writer, summary *Summary, lang types.Language, path string, doc *Document) error {
	st := DocumentStatus{
		Language:   lang,
		Path:       path,
		Items:      len(doc.Items),
		Categories: len(doc.Categories),
	}
	if s.cfg.DryRun {
		if _, err := doc.Encode(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	} else {
		if err := WriteDocument(path, doc); err != nil {
			return err
		}
		st.Written = true
	}
	summary.Documents = append(summary.Documents, st)
	fmt.Fprintf(w, "%s: %s (%d items, %d categories)\n", verb(s.cfg.DryRun), path, st.Items, st.Categories)
	return nil
}

func verb(dryRun bool) string {
	if dryRun {
		return "checked"
	}
	return "updated"
}
